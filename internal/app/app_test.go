package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/cricket-scoring/internal/config"
	"github.com/riskibarqy/cricket-scoring/internal/platform/logging"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "cricket-scoring-api-test",
		HTTPAddr:           ":0",
		CORSAllowedOrigins: []string{"*"},
		MetricsEnabled:     true,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		PointsWin:          2,
		PointsTie:          1,
		RebuildWorkers:     2,
		InternalJobToken:   "job-secret",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
	}
}

func TestNewHTTPServer_InMemory(t *testing.T) {
	srv, cleanup, err := NewHTTPServer(context.Background(), testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			t.Fatalf("cleanup: %v", err)
		}
	}()

	for _, path := range []string{"/healthz", "/metrics", "/v1/profiles"} {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestNewHTTPServer_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false

	srv, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for /metrics when disabled, got %d", rec.Code)
	}
}

func TestNewHTTPServer_Validation(t *testing.T) {
	t.Run("empty addr", func(t *testing.T) {
		cfg := testConfig()
		cfg.HTTPAddr = ""
		if _, _, err := NewHTTPServer(context.Background(), cfg, nil); err == nil {
			t.Fatalf("expected error for empty addr")
		}
	})

	t.Run("bad webhook url", func(t *testing.T) {
		cfg := testConfig()
		cfg.WebhookEnabled = true
		cfg.WebhookURL = "ftp://hooks.example.com"
		cfg.WebhookSecret = "s3cret"
		_, _, err := NewHTTPServer(context.Background(), cfg, nil)
		if err == nil || !strings.Contains(err.Error(), "EVENT_WEBHOOK_URL") {
			t.Fatalf("expected webhook url error, got %v", err)
		}
	})
}
