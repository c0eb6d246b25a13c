package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/jobs"
	"jobtrack-backend/internal/resumes"
	"jobtrack-backend/internal/shared/config"
	"jobtrack-backend/internal/shared/metrics"
	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
	"jobtrack-backend/internal/submissions"
	"jobtrack-backend/internal/uploads"
	"jobtrack-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config             config.Config
	UsersHandler       *users.Handler
	JobsHandler        *jobs.Handler
	SubmissionsHandler *submissions.Handler
	ResumesHandler     *resumes.Handler
	UploadsHandler     *uploads.Handler
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
		middleware.Identity(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"AUTH":  {Rate: 1, Burst: 10},
				"APPLY": {Rate: 0.5, Burst: 5},
			},
			GroupFor: rateLimitGroup,
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.UsersHandler.RegisterRoutes(api)
	deps.JobsHandler.RegisterRoutes(api)
	deps.SubmissionsHandler.RegisterRoutes(api)
	deps.ResumesHandler.RegisterRoutes(api)
	deps.UploadsHandler.RegisterRoutes(api)

	// The uploads listing predates the versioned API surface.
	deps.UploadsHandler.RegisterFileRoutes(r.Group("/api"))

	return r
}

func rateLimitGroup(c *gin.Context) string {
	path := c.Request.URL.Path
	switch {
	case strings.HasPrefix(path, "/api/v1/auth/"):
		return "AUTH"
	case strings.HasSuffix(path, "/apply"):
		return "APPLY"
	default:
		return ""
	}
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
