package tutors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"musicstore/internal/domain"
	"musicstore/internal/modules/crud"
	"musicstore/internal/pkg/response"
	"musicstore/internal/repository"
)

type Handler struct {
	svc   *Service
	admin *crud.Handler[domain.Tutor, *domain.Tutor]
}

func NewHandler(svc *Service, store *repository.TutorStore) *Handler {
	return &Handler{
		svc:   svc,
		admin: crud.NewHandler("tutor", store, Prepare),
	}
}

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	if public != nil {
		public.GET("/tutors", h.List)
		public.GET("/tutors/facets", h.GetFacets)
		public.GET("/tutors/:id", h.Get)
	}
	if admin != nil {
		h.admin.RegisterRoutes(admin, "/tutors")
	}
}

// List handles GET /api/v1/tutors
// @Summary		Search tutors
// @Tags		Tutors
// @Param		instrument	query	string	false	"Instrument, or 'todos'"
// @Param		level		query	string	false	"Level"
// @Param		style		query	string	false	"Style"
// @Param		modality	query	string	false	"presencial | online"
// @Param		search		query	string	false	"Free text over name and descriptions"
// @Param		min_price	query	number	false	"Minimum hourly rate"
// @Param		max_price	query	number	false	"Maximum hourly rate"
// @Param		sort		query	string	false	"asc | desc by hourly rate"
// @Success		200	{object}	map[string]interface{}
// @Router		/tutors [GET]
func (h *Handler) List(c *gin.Context) {
	f := Filter{
		Instrument:  c.Query("instrument"),
		Level:       c.Query("level"),
		Style:       c.Query("style"),
		Modality:    c.Query("modality"),
		Search:      c.Query("search"),
		MinPrice:    crud.FloatQuery(c, "min_price"),
		MaxPrice:    crud.FloatQuery(c, "max_price"),
		SortByPrice: c.Query("sort"),
	}

	tutors := h.svc.Search(f)
	response.Success(c, http.StatusOK, gin.H{
		"tutors": tutors,
		"total":  len(tutors),
	})
}

func (h *Handler) GetFacets(c *gin.Context) {
	response.Success(c, http.StatusOK, h.svc.Facets())
}

// Get handles GET /api/v1/tutors/:id, accepting an id or a slug.
func (h *Handler) Get(c *gin.Context) {
	t, err := h.svc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tutor not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, t)
}
