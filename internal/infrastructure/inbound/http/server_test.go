package delivery_http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	post_service "kaizen-board/internal/application/service/post"
	model "kaizen-board/internal/domain/models"
	delivery_http "kaizen-board/internal/infrastructure/inbound/http"
	"kaizen-board/internal/infrastructure/inbound/http/middleware"
	post_http "kaizen-board/internal/infrastructure/inbound/http/post"
	"kaizen-board/internal/infrastructure/logger"
	"kaizen-board/internal/infrastructure/outbound/metrics/prometheus"
	"kaizen-board/internal/infrastructure/outbound/repository/post/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newServer(checks map[string]delivery_http.HealthCheck) *delivery_http.Server {
	log := logger.New("test")
	metrics := prometheus.NewPrometheusMetricsProvider()
	repo := memory.NewPostRepository(log)
	svc := post_service.NewPostService(repo, memory.NewUnitOfWork(repo), log, metrics)
	api := post_http.NewPostHTTPService(svc, model.OrderByLikes, "2006/1/2", log)
	return delivery_http.NewServer(api, "127.0.0.1", 0, log, metrics, checks)
}

func TestServer_Healthz(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		srv := newServer(map[string]delivery_http.HealthCheck{
			"postgres": func(context.Context) error { return nil },
		})

		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"OK","checks":{"postgres":"ok"}}`, w.Body.String())
	})

	t.Run("degraded", func(t *testing.T) {
		srv := newServer(map[string]delivery_http.HealthCheck{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		})

		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"Service Unavailable","checks":{"postgres":"ok","redis":"connection refused"}}`, w.Body.String())
	})
}

func TestServer_BoardRoundTrip(t *testing.T) {
	handler := newServer(nil).Handler()

	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader("title=Quieter+printer"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Quieter printer")
}
