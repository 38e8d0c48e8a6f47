package content

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"musicstore/internal/domain"
	"musicstore/internal/modules/crud"
	"musicstore/internal/pkg/response"
	"musicstore/internal/repository"
)

type Handler struct {
	svc          *Service
	adminService *crud.Handler[domain.Service, *domain.Service]
	adminNews    *crud.Handler[domain.News, *domain.News]
}

func NewHandler(svc *Service, services *repository.ServiceStore, news *repository.NewsStore) *Handler {
	return &Handler{
		svc:          svc,
		adminService: crud.NewHandler("service", services, PrepareService),
		adminNews:    crud.NewHandler("news", news, PrepareNews(time.Now)),
	}
}

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	if public != nil {
		public.GET("/services", h.ListServices)
		public.GET("/services/:slug", h.GetService)
		public.GET("/news", h.ListNews)
		public.GET("/news/:slug", h.GetNews)
	}
	if admin != nil {
		h.adminService.RegisterRoutes(admin, "/services")
		h.adminNews.RegisterRoutes(admin, "/news")
	}
}

func (h *Handler) ListServices(c *gin.Context) {
	items := h.svc.ActiveServices()
	response.Success(c, http.StatusOK, gin.H{"services": items, "total": len(items)})
}

func (h *Handler) GetService(c *gin.Context) {
	svc, err := h.svc.ServiceBySlug(c.Param("slug"))
	if err != nil {
		notFound(c, err, "Service not found")
		return
	}
	response.Success(c, http.StatusOK, svc)
}

// ListNews handles GET /api/v1/news?tag=
func (h *Handler) ListNews(c *gin.Context) {
	items := h.svc.News(c.Query("tag"))
	response.Success(c, http.StatusOK, gin.H{"news": items, "total": len(items)})
}

func (h *Handler) GetNews(c *gin.Context) {
	n, err := h.svc.NewsBySlug(c.Param("slug"))
	if err != nil {
		notFound(c, err, "News not found")
		return
	}
	response.Success(c, http.StatusOK, n)
}

func notFound(c *gin.Context, err error, msg string) {
	if errors.Is(err, repository.ErrNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", msg)
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
