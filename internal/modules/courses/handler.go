package courses

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
	admin *crud.Handler[domain.Course, *domain.Course]
}

func NewHandler(svc *Service, store *repository.CourseStore) *Handler {
	return &Handler{
		svc:   svc,
		admin: crud.NewHandler("course", store, Prepare),
	}
}

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	if public != nil {
		public.GET("/courses", h.List)
		public.GET("/courses/:id", h.Get)
		public.GET("/tutors/:id/courses", h.ByTutor)
	}
	if admin != nil {
		h.admin.RegisterRoutes(admin, "/courses")
	}
}

// List handles GET /api/v1/courses
func (h *Handler) List(c *gin.Context) {
	f := Filter{
		Difficulty: domain.Difficulty(c.Query("difficulty")),
		Modality:   c.Query("modality"),
		TutorID:    c.Query("tutor_id"),
		Search:     c.Query("search"),
		MinPrice:   crud.FloatQuery(c, "min_price"),
		MaxPrice:   crud.FloatQuery(c, "max_price"),
		Sort:       c.Query("sort"),
	}

	items := h.svc.Search(f)
	response.Success(c, http.StatusOK, gin.H{"courses": items, "total": len(items)})
}

// ByTutor handles GET /api/v1/tutors/:id/courses. An unknown tutor id
// yields an empty list.
func (h *Handler) ByTutor(c *gin.Context) {
	items := h.svc.Search(Filter{TutorID: c.Param("id")})
	response.Success(c, http.StatusOK, gin.H{"courses": items, "total": len(items)})
}

// Get accepts an id or a slug.
func (h *Handler) Get(c *gin.Context) {
	course, err := h.svc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Course not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, course)
}
