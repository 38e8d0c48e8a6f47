package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"musicstore/internal/middleware"
	"musicstore/internal/modules/crud"
	"musicstore/internal/pkg/response"
	"musicstore/internal/repository"
)

// Handler manages the authentication endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/recovery", h.Recovery)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.GetMe)
}

// Register creates a client account.
// @Summary		Register a client
// @Tags		Auth
// @Param		request	body	RegisterRequest	true	"name, email, password"
// @Success		201	{object}	map[string]interface{} "Account created, session returned"
// @Failure		400	{object}	map[string]interface{} "Validation error"
// @Failure		409	{object}	map[string]interface{} "Email already registered"
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	session, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		h.fail(c, err, "REGISTRATION_FAILED")
		return
	}

	response.Success(c, http.StatusCreated, session)
}

// Login exchanges credentials for a bearer token.
// @Summary		Log in
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"email, password"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{} "Invalid credentials"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		h.fail(c, err, "LOGIN_FAILED")
		return
	}

	response.Success(c, http.StatusOK, session)
}

// Recovery always answers 202 for a well-formed email.
func (h *Handler) Recovery(c *gin.Context) {
	var req RecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.service.RequestRecovery(c.Request.Context(), req); err != nil {
		h.fail(c, err, "RECOVERY_FAILED")
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{
		"message": "If the email is registered, recovery instructions are on their way",
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Account no longer exists",
				gin.H{"redirect": middleware.LoginRedirect(c.Request.URL.RequestURI())})
			return
		}
		h.fail(c, err, "INTERNAL_ERROR")
		return
	}
	response.Success(c, http.StatusOK, user)
}

func (h *Handler) fail(c *gin.Context, err error, code string) {
	var verr *crud.ValidationError
	if errors.As(err, &verr) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", verr.Fields)
		return
	}
	zap.S().Errorw("auth request failed", "code", code, "error", err)
	response.Error(c, http.StatusInternalServerError, code, "Internal server error")
}
