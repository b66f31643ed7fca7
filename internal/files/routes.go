package files

import (
	"log/slog"
	"net/http"
	"sync"

	"emodiary/internal/config"
	"emodiary/internal/metrics"
	"emodiary/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerValidators sync.Once

// Server holds dependencies for files service
type Server struct {
	service *Service
	cors    config.CORSConfig
	metrics *metrics.Metrics
	log     *slog.Logger
}

// NewServer creates a new files server. m may be nil, in which case /metrics is not served.
func NewServer(service *Service, corsCfg config.CORSConfig, m *metrics.Metrics, log *slog.Logger) *Server {
	return &Server{
		service: service,
		cors:    corsCfg,
		metrics: m,
		log:     log,
	}
}

// RegisterRoutes sets up HTTP routes for files service
func (s *Server) RegisterRoutes() http.Handler {
	registerValidators.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("notblank", validators.NotBlank)
		}
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(s.log))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware())
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cors.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
	}))

	handler := NewHandler(s.service, s.log)

	r.GET("/health", handler.Health)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	filesGroup := r.Group("/files")
	{
		filesGroup.POST("/presign", handler.Presign)
		filesGroup.GET("/mock-upload", handler.MockUpload)
	}

	return r
}
