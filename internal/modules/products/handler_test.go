package products

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"musicstore/internal/domain"
	"musicstore/internal/middleware"
	"musicstore/internal/pkg/response"
	"musicstore/internal/repository"
)

type listResponse struct {
	Data struct {
		Products   []ProductResponse   `json:"products"`
		Pagination response.Pagination `json:"pagination"`
	} `json:"data"`
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

// asRole stands in for the auth middleware.
func asRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if role != "" {
			c.Set(middleware.CtxRole, role)
		}
		c.Next()
	}
}

func setupRouter(t *testing.T, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewStore[domain.Product](repository.KeyProducts)
	require.NoError(t, store.Hydrate(context.Background(), catalog(t)))

	router := gin.New()
	router.Use(asRole(role))
	NewHandler(NewService(store), store).RegisterRoutes(router.Group("/api/v1"), router.Group("/api/v1/admin"))
	return router
}

func getList(t *testing.T, router *gin.Engine, path string) (int, listResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestList_Pagination(t *testing.T) {
	router := setupRouter(t, "")

	code, resp := getList(t, router, "/api/v1/products?limit=3&page=3")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Data.Products, 1)
	assert.Equal(t, response.Pagination{Page: 3, Limit: 3, Total: 7, TotalPages: 3}, resp.Data.Pagination)

	_, resp = getList(t, router, "/api/v1/products?limit=500")
	assert.Equal(t, 20, resp.Data.Pagination.Limit)
}

func TestList_PageFarPastEndIsEmpty(t *testing.T) {
	router := setupRouter(t, "")

	code, resp := getList(t, router, "/api/v1/products?page=922337203685477581&limit=20")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp.Data.Products)
	assert.Equal(t, 7, resp.Data.Pagination.Total)
}

func TestList_UnknownCategoryRejected(t *testing.T) {
	router := setupRouter(t, "")

	code, resp := getList(t, router, "/api/v1/products?category=sintetizadores")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_CATEGORY", resp.Error.Code)

	code, resp = getList(t, router, "/api/v1/products?category=todos")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 7, resp.Data.Pagination.Total)
}

func TestList_InactiveOnlyForAdmins(t *testing.T) {
	_, resp := getList(t, setupRouter(t, "client"), "/api/v1/products?include_inactive=true")
	assert.Equal(t, 7, resp.Data.Pagination.Total)

	_, resp = getList(t, setupRouter(t, string(domain.RoleAdmin)), "/api/v1/products?include_inactive=true")
	assert.Equal(t, 8, resp.Data.Pagination.Total)
}

func TestList_DerivedFields(t *testing.T) {
	_, resp := getList(t, setupRouter(t, ""), "/api/v1/products?search=stratocaster")
	require.Len(t, resp.Data.Products, 1)
	assert.Equal(t, 9, resp.Data.Products[0].DiscountPercent)
	assert.True(t, resp.Data.Products[0].InStock)
}

func TestGetBySlug(t *testing.T) {
	router := setupRouter(t, "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/slug/shure-sm58", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/slug/afinador-descontinuado", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportCSV(t *testing.T) {
	router := setupRouter(t, string(domain.RoleAdmin))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/products/export", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	rows, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, "p-001", rows[1][0])
}
