package users

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"musicstore/internal/domain"
	"musicstore/internal/modules/auth"
	"musicstore/internal/modules/crud"
	"musicstore/internal/pkg/response"
	"musicstore/internal/pkg/utils"
	"musicstore/internal/repository"
)

// Handler serves the admin accounts screen.
type Handler struct {
	users  *repository.UserStore
	admins *crud.Handler[domain.AdminUser, *domain.AdminUser]
}

func NewHandler(users *repository.UserStore, admins *repository.AdminUserStore) *Handler {
	return &Handler{
		users:  users,
		admins: crud.NewHandler("admin user", admins, Prepare),
	}
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/users", h.ListRegistered)
	h.admins.RegisterRoutes(admin, "/admin-users")
}

// ListRegistered handles GET /api/v1/admin/users?search=
func (h *Handler) ListRegistered(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))

	all := h.users.List()
	out := make([]auth.UserPublic, 0, len(all))
	for _, u := range all {
		if search != "" && !utils.ContainsFold(u.Name, search) && !utils.ContainsFold(u.Email, search) {
			continue
		}
		out = append(out, auth.NewUserPublic(u))
	}
	response.Success(c, http.StatusOK, gin.H{"users": out, "total": len(out)})
}

func Prepare(a *domain.AdminUser) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if a.Role == "" {
		a.Role = domain.RoleClient
	}
	return crud.Validate(a)
}
