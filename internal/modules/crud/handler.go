package crud

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"musicstore/internal/domain"
	"musicstore/internal/pkg/response"
	"musicstore/internal/repository"
)

// PrepareFunc normalises a record before it is stored and rejects invalid ones.
type PrepareFunc[T any] func(rec *T) error

// Handler exposes the admin mutations of one collection.
type Handler[T any, P repository.Record[T]] struct {
	store    *repository.Store[T, P]
	resource string
	prepare  PrepareFunc[T]
}

// NewHandler builds the admin CRUD handler. prepare may be nil.
func NewHandler[T any, P repository.Record[T]](resource string, store *repository.Store[T, P], prepare PrepareFunc[T]) *Handler[T, P] {
	return &Handler[T, P]{store: store, resource: resource, prepare: prepare}
}

// RegisterRoutes mounts the collection under path on an admin group.
func (h *Handler[T, P]) RegisterRoutes(admin *gin.RouterGroup, path string) {
	g := admin.Group(path)
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.POST("", h.Create)
		g.PATCH("", h.Upsert)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

// List returns every record, inactive ones included.
func (h *Handler[T, P]) List(c *gin.Context) {
	items := h.store.List()
	response.Success(c, http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *Handler[T, P]) Get(c *gin.Context) {
	rec, err := h.store.GetByID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

// Create stores the body as a new record under a fresh id.
func (h *Handler[T, P]) Create(c *gin.Context) {
	var rec T
	if err := c.ShouldBindJSON(&rec); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if err := h.run(&rec); err != nil {
		h.fail(c, err)
		return
	}

	created, err := h.store.Create(c.Request.Context(), rec)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Upsert merges the body into the record with the same id, or appends it.
func (h *Handler[T, P]) Upsert(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	rec, created, err := h.store.Upsert(c.Request.Context(), body, h.run)
	if err != nil {
		h.fail(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, rec)
}

// Update replaces the record named by the path id with the body.
func (h *Handler[T, P]) Update(c *gin.Context) {
	var rec T
	if err := c.ShouldBindJSON(&rec); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	P(&rec).SetID(c.Param("id"))
	if err := h.run(&rec); err != nil {
		h.fail(c, err)
		return
	}

	updated, err := h.store.Update(c.Request.Context(), rec)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

func (h *Handler[T, P]) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler[T, P]) run(rec *T) error {
	if h.prepare == nil {
		return nil
	}
	return h.prepare(rec)
}

func (h *Handler[T, P]) fail(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", verr.Fields)
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", h.resource+" not found")
	case errors.Is(err, repository.ErrInvalidPatch):
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, domain.ErrInvalidCategory):
		response.Error(c, http.StatusBadRequest, "INVALID_CATEGORY", "Unknown product category")
	default:
		zap.S().Errorw("catalog mutation failed", "collection", h.store.Key(), "error", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
