package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("cricket-scoring/internal/interfaces/httpapi")

// Path values copied onto handler spans.
var spanPathValues = []struct {
	name string
	key  attribute.Key
}{
	{name: "matchID", key: "cricket.match_id"},
	{name: "inningsNumber", key: "cricket.innings"},
	{name: "tournamentID", key: "cricket.tournament_id"},
}

// RequestTracing opens the server span. Probe and scrape paths are skipped.
func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "cricket-scoring-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)
}

func shouldTraceRequest(path string) bool {
	switch strings.ToLower(strings.TrimSpace(path)) {
	case "/healthz", "/health", "/livez", "/readyz", "/metrics":
		return false
	default:
		return true
	}
}

// startHandlerSpan renames the server span to the matched route pattern,
// which keeps span names bounded, and opens a child span for the handler.
// Without a server span (filtered paths, tests) it returns the request
// context untouched.
func startHandlerSpan(r *http.Request, name string) (context.Context, trace.Span) {
	ctx := r.Context()
	server := trace.SpanFromContext(ctx)
	if !server.SpanContext().IsValid() {
		return ctx, server
	}
	if r.Pattern != "" {
		server.SetName(r.Pattern)
	}
	return tracer.Start(ctx, "httpapi.Handler."+name, trace.WithAttributes(pathAttributes(r)...))
}

func pathAttributes(r *http.Request) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	for _, pv := range spanPathValues {
		value := r.PathValue(pv.name)
		if value == "" {
			continue
		}
		if n, err := strconv.Atoi(value); err == nil {
			attrs = append(attrs, pv.key.Int(n))
			continue
		}
		attrs = append(attrs, pv.key.String(value))
	}
	return attrs
}
