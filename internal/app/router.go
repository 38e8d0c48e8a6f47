package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"musicstore/internal/events"
	"musicstore/internal/middleware"
	"musicstore/internal/modules/auth"
	"musicstore/internal/modules/content"
	"musicstore/internal/modules/courses"
	"musicstore/internal/modules/products"
	"musicstore/internal/modules/tutors"
	"musicstore/internal/modules/users"
	"musicstore/internal/pkg/response"
	"musicstore/internal/repository"
)

// Router builds the HTTP surface. Catalog routes are busy-tracked and
// delayed by the simulated latency; status and the change feed are not.
func (a *App) Router() *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.AccessLog())
	r.Use(middleware.CORS(a.Config.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.GET("/status", a.status)
	events.NewWSHandler(a.Hub).RegisterRoutes(v1)

	api := v1.Group("",
		middleware.TrackBusy(a.Busy),
		middleware.SimulatedLatency(a.Config.SimulatedLatency),
	)

	public := api.Group("", middleware.OptionalAuth(a.JWT))
	protected := api.Group("", middleware.JWTAuth(a.JWT))
	admin := api.Group("/admin", middleware.JWTAuth(a.JWT), middleware.AdminOnly())

	s := a.Stores

	authHandler := auth.NewHandler(a.Auth)
	authHandler.RegisterPublicRoutes(api)
	authHandler.RegisterProtectedRoutes(protected)

	tutors.NewHandler(tutors.NewService(s.Tutors), s.Tutors).RegisterRoutes(public, admin)
	products.NewHandler(products.NewService(s.Products), s.Products).RegisterRoutes(public, admin)
	courses.NewHandler(courses.NewService(s.Courses), s.Courses).RegisterRoutes(public, admin)

	contentSvc := content.NewService(s.Services, s.News)
	content.NewHandler(contentSvc, s.Services, s.News).RegisterRoutes(public, admin)

	users.NewHandler(s.Users, s.AdminUsers).RegisterRoutes(admin)

	admin.GET("/export", a.export)
	admin.POST("/import", a.importSeed)

	return r
}

// status reports the busy counter, excluding the status request itself.
func (a *App) status(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"busy":        a.Busy.Busy(),
		"in_flight":   a.Busy.Count(),
		"subscribers": a.Hub.SubscriberCount(),
	})
}

// export returns the catalog collections as a fixture document. Registered
// users carry password hashes and are left out; catalogctl export has them.
func (a *App) export(c *gin.Context) {
	snap := a.Stores.Snapshot()
	snap.Users = nil
	response.Success(c, http.StatusOK, snap)
}

// importSeed replaces the collections present in the body. Absent
// collections are kept.
func (a *App) importSeed(c *gin.Context) {
	var seed repository.Seed
	if err := c.ShouldBindJSON(&seed); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid fixture document")
		return
	}
	if err := a.Stores.Replace(c.Request.Context(), seed); err != nil {
		zap.S().Errorw("import failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "IMPORT_FAILED", "Import failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"tutors":   a.Stores.Tutors.Len(),
		"products": a.Stores.Products.Len(),
		"courses":  a.Stores.Courses.Len(),
		"services": a.Stores.Services.Len(),
		"news":     a.Stores.News.Len(),
	})
}
