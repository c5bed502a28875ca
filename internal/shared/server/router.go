package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-backend/internal/answers"
	googleauth "interview-backend/internal/auth"
	"interview-backend/internal/interviews"
	"interview-backend/internal/jobdocs"
	"interview-backend/internal/schedule"
	"interview-backend/internal/shared/config"
	"interview-backend/internal/shared/metrics"
	"interview-backend/internal/shared/server/middleware"
	"interview-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers wired by bootstrap.
type RouterDeps struct {
	Config           config.Config
	InterviewHandler *interviews.Handler
	AnswerHandler    *answers.Handler
	ScheduleHandler  *schedule.Handler
	JobDocHandler    *jobdocs.Handler
	GoogleAuth       *googleauth.GoogleService
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
	)

	r.GET("/healthz", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 20, Burst: 40},
				"ANSWERS": {Rate: 5, Burst: 10},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/answers" {
					return "ANSWERS"
				}
				return ""
			},
		}),
	)

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.InterviewHandler != nil {
		deps.InterviewHandler.RegisterRoutes(api)
	}
	if deps.AnswerHandler != nil {
		deps.AnswerHandler.RegisterRoutes(api)
	}
	if deps.ScheduleHandler != nil {
		deps.ScheduleHandler.RegisterRoutes(api)
	}
	if deps.JobDocHandler != nil {
		deps.JobDocHandler.RegisterRoutes(api)
	}

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
