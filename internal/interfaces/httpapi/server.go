package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-scoring/internal/platform/logging"
)

// RouterConfig mounts MetricsHandler at /metrics when it is set.
type RouterConfig struct {
	CORSAllowedOrigins []string
	InternalJobToken   string
	MetricsHandler     http.Handler
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.MetricsHandler)
	registerMatchRoutes(mux, handler)
	registerScoringRoutes(mux, handler)
	registerStandingRoutes(mux, handler, cfg.InternalJobToken)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
