package products

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"musicstore/internal/domain"
	"musicstore/internal/middleware"
	"musicstore/internal/modules/crud"
	"musicstore/internal/pkg/response"
	"musicstore/internal/repository"
)

type Handler struct {
	svc   *Service
	admin *crud.Handler[domain.Product, *domain.Product]
}

func NewHandler(svc *Service, store *repository.ProductStore) *Handler {
	return &Handler{
		svc:   svc,
		admin: crud.NewHandler("product", store, Prepare),
	}
}

// RegisterRoutes mounts the catalog. public should carry OptionalAuth so
// admins can list inactive products.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	if public != nil {
		public.GET("/products", h.List)
		public.GET("/products/featured", h.Featured)
		public.GET("/products/offers", h.Offers)
		public.GET("/products/categories", h.Categories)
		public.GET("/products/slug/:slug", h.GetBySlug)
		public.GET("/products/:id", h.Get)
	}
	if admin != nil {
		admin.GET("/products/export", h.Export)
		h.admin.RegisterRoutes(admin, "/products")
	}
}

// List handles GET /api/v1/products
// @Summary		Browse the product catalog
// @Tags		Products
// @Param		category	query	string	false	"guitarras | bajos | baterias | teclados | audio | accesorios"
// @Param		condition	query	string	false	"nuevo | usado"
// @Param		search		query	string	false	"Free text over name, description and brand"
// @Param		min_price	query	number	false	"Minimum price"
// @Param		max_price	query	number	false	"Maximum price"
// @Param		featured	query	bool	false	"Only featured"
// @Param		offer		query	bool	false	"Only offers"
// @Param		new			query	bool	false	"Only new arrivals"
// @Param		sort		query	string	false	"price_asc | price_desc | name | newest"
// @Param		page		query	int		false	"Page (default 1)"
// @Param		limit		query	int		false	"Page size (default 20, max 100)"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{} "Unknown category"
// @Router		/products [GET]
func (h *Handler) List(c *gin.Context) {
	f := Filter{
		Condition:    domain.ProductCondition(c.Query("condition")),
		Search:       c.Query("search"),
		MinPrice:     crud.FloatQuery(c, "min_price"),
		MaxPrice:     crud.FloatQuery(c, "max_price"),
		OnlyFeatured: crud.BoolQuery(c, "featured"),
		OnlyOffers:   crud.BoolQuery(c, "offer"),
		OnlyNew:      crud.BoolQuery(c, "new"),
		Sort:         c.Query("sort"),
	}
	if raw := strings.TrimSpace(c.Query("category")); raw != "" && raw != domain.FilterAll {
		cat, err := domain.ParseProductCategory(raw)
		if err != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_CATEGORY", "Unknown product category",
				gin.H{"allowed": domain.ProductCategories()})
			return
		}
		f.Category = cat
	}
	if f.Condition == domain.FilterAll {
		f.Condition = ""
	}
	if middleware.IsAdmin(c) {
		f.IncludeInactive = crud.BoolQuery(c, "include_inactive")
	}

	items := h.svc.Search(f)
	page, limit := crud.PageQuery(c)

	response.Success(c, http.StatusOK, gin.H{
		"products":   toResponses(crud.Paginate(items, page, limit)),
		"pagination": response.NewPagination(page, limit, len(items)),
	})
}

func (h *Handler) Featured(c *gin.Context) {
	response.Success(c, http.StatusOK, toResponses(h.svc.Search(Filter{OnlyFeatured: true})))
}

func (h *Handler) Offers(c *gin.Context) {
	response.Success(c, http.StatusOK, toResponses(h.svc.Search(Filter{OnlyOffers: true, Sort: SortPriceAsc})))
}

func (h *Handler) Categories(c *gin.Context) {
	response.Success(c, http.StatusOK, domain.ProductCategories())
}

func (h *Handler) Get(c *gin.Context) {
	p, err := h.svc.GetByID(c.Param("id"))
	if err == nil && !p.Active && !middleware.IsAdmin(c) {
		err = repository.ErrNotFound
	}
	h.respond(c, p, err)
}

func (h *Handler) GetBySlug(c *gin.Context) {
	p, err := h.svc.GetBySlug(c.Param("slug"))
	h.respond(c, p, err)
}

// Export handles GET /api/v1/admin/products/export
func (h *Handler) Export(c *gin.Context) {
	data, err := h.svc.ExportCSV()
	if err != nil {
		zap.S().Errorw("product export failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Export failed")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="products.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *Handler) respond(c *gin.Context, p domain.Product, err error) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, toResponse(p))
}
