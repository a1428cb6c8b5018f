package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agroadvisor-backend/internal/crops"
	"agroadvisor-backend/internal/diseases"
	"agroadvisor-backend/internal/insights"
	"agroadvisor-backend/internal/irrigation"
	"agroadvisor-backend/internal/pests"
	"agroadvisor-backend/internal/shared/config"
	"agroadvisor-backend/internal/shared/metrics"
	"agroadvisor-backend/internal/shared/server/middleware"
	"agroadvisor-backend/internal/shared/server/respond"
	"agroadvisor-backend/internal/users"
)

// RouterDeps carries everything the router needs wired in.
type RouterDeps struct {
	Config            config.Config
	TokenVerifier     middleware.TokenVerifier
	UsersHandler      *users.Handler
	CropsHandler      *crops.Handler
	DiseasesHandler   *diseases.Handler
	IrrigationHandler *irrigation.Handler
	PestsHandler      *pests.Handler
	InsightsHandler   *insights.Handler
	// Availability reports, per engine, whether its model collaborator came
	// up at boot. Served by the health endpoint.
	Availability map[string]bool
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.TokenVerifier),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"status":  "ok",
			"engines": deps.Availability,
		})
	})

	deps.UsersHandler.RegisterRoutes(api)
	deps.CropsHandler.RegisterRoutes(api)
	deps.DiseasesHandler.RegisterRoutes(api)
	deps.IrrigationHandler.RegisterRoutes(api)
	deps.PestsHandler.RegisterRoutes(api)
	deps.InsightsHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
