package delivery_http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ports "kaizen-board/internal/domain/ports/output"
	"kaizen-board/internal/infrastructure/inbound/http/middleware"
	post_http "kaizen-board/internal/infrastructure/inbound/http/post"
)

// HealthCheck pings one dependency for /healthz.
type HealthCheck func(ctx context.Context) error

type Server struct {
	postHTTPService *post_http.PostHTTPService
	checks          map[string]HealthCheck
	server          *http.Server
	address         string
	port            int
	log             ports.Logger
	metrics         ports.MetricsProvider
}

func NewServer(
	postHTTPService *post_http.PostHTTPService,
	address string,
	port int,
	log ports.Logger,
	metrics ports.MetricsProvider,
	checks map[string]HealthCheck,
) *Server {
	s := &Server{
		postHTTPService: postHTTPService,
		checks:          checks,
		address:         address,
		port:            port,
		log:             log,
		metrics:         metrics,
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", address, port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler builds the gin engine with the board, the JSON API and /healthz.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(s.log),
		middleware.Metrics(s.metrics),
	)
	r.SetHTMLTemplate(post_http.Templates())

	r.GET("/healthz", s.healthz)
	s.postHTTPService.RegisterRoutes(r)

	return r
}

func (s *Server) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			s.log.Warn("Health check failed", slog.String("dependency", name), slog.String("error", err.Error()))
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": results})
}

func (s *Server) Run() error {
	s.log.Info("Starting HTTP server", slog.String("address", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
