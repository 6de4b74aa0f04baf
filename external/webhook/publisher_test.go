package webhook

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cricket-scoring/internal/platform/logging"
	"github.com/riskibarqy/cricket-scoring/internal/platform/resilience"
	"github.com/riskibarqy/cricket-scoring/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

type received struct {
	body      []byte
	eventID   string
	eventType string
	signature string
}

type webhookServer struct {
	ln       *fasthttputil.InmemoryListener
	mu       sync.Mutex
	requests []received
	calls    atomic.Int32
	statuses []int
}

func newWebhookServer(t *testing.T, statuses ...int) *webhookServer {
	t.Helper()

	s := &webhookServer{ln: fasthttputil.NewInmemoryListener(), statuses: statuses}
	go func() {
		_ = fasthttp.Serve(s.ln, s.handle)
	}()
	t.Cleanup(func() { _ = s.ln.Close() })
	return s
}

func (s *webhookServer) handle(ctx *fasthttp.RequestCtx) {
	n := int(s.calls.Add(1))

	s.mu.Lock()
	s.requests = append(s.requests, received{
		body:      append([]byte(nil), ctx.PostBody()...),
		eventID:   string(ctx.Request.Header.Peek(HeaderEventID)),
		eventType: string(ctx.Request.Header.Peek(HeaderEventType)),
		signature: string(ctx.Request.Header.Peek(HeaderSignature)),
	})
	s.mu.Unlock()

	status := fasthttp.StatusNoContent
	if n <= len(s.statuses) {
		status = s.statuses[n-1]
	}
	ctx.SetStatusCode(status)
}

func (s *webhookServer) dial(string) (net.Conn, error) {
	return s.ln.Dial()
}

func newTestPublisher(t *testing.T, s *webhookServer, retries int, breaker resilience.CircuitBreakerConfig) *Publisher {
	t.Helper()

	p, err := NewPublisher(Config{
		URL:            "http://hooks.test/cricket",
		Secret:         "s3cret",
		Timeout:        time.Second,
		Retries:        retries,
		RetryBackoff:   time.Millisecond,
		CircuitBreaker: breaker,
		Dial:           s.dial,
	}, logging.NewNop())
	require.NoError(t, err)
	return p
}

func sampleEvent() usecase.DomainEvent {
	return usecase.DomainEvent{
		ID:            "evt-1",
		Type:          usecase.EventInningsCompleted,
		MatchID:       "m1",
		InningsNumber: 1,
		OccurredAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Data:          map[string]any{"reason": "all_out", "runs": 142},
	}
}

func TestPublisher_PostsSignedEvent(t *testing.T) {
	s := newWebhookServer(t)
	p := newTestPublisher(t, s, 0, resilience.DefaultCircuitBreakerConfig())

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))

	require.Len(t, s.requests, 1)
	got := s.requests[0]
	assert.Equal(t, "evt-1", got.eventID)
	assert.Equal(t, usecase.EventInningsCompleted, got.eventType)
	assert.True(t, Verify([]byte("s3cret"), got.body, got.signature))
	assert.False(t, Verify([]byte("other"), got.body, got.signature))

	var decoded usecase.DomainEvent
	require.NoError(t, sonic.Unmarshal(got.body, &decoded))
	assert.Equal(t, "m1", decoded.MatchID)
	assert.Equal(t, 1, decoded.InningsNumber)
}

func TestPublisher_RetriesTransientFailures(t *testing.T) {
	s := newWebhookServer(t, fasthttp.StatusServiceUnavailable, fasthttp.StatusTooManyRequests)
	p := newTestPublisher(t, s, 2, resilience.DefaultCircuitBreakerConfig())

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	assert.Equal(t, int32(3), s.calls.Load())
	for _, req := range s.requests {
		assert.Equal(t, "evt-1", req.eventID)
	}
}

func TestPublisher_DoesNotRetryClientErrors(t *testing.T) {
	s := newWebhookServer(t, fasthttp.StatusBadRequest)
	p := newTestPublisher(t, s, 3, resilience.DefaultCircuitBreakerConfig())

	err := p.Publish(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=400")
	assert.Equal(t, int32(1), s.calls.Load())
}

func TestPublisher_OpenCircuitShortCircuits(t *testing.T) {
	s := newWebhookServer(t, fasthttp.StatusBadGateway, fasthttp.StatusBadGateway)
	p := newTestPublisher(t, s, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	require.Error(t, p.Publish(context.Background(), sampleEvent()))
	err := p.Publish(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(1), s.calls.Load())
}

func TestNewPublisher_RejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://hooks.test", "http://"} {
		_, err := NewPublisher(Config{URL: raw}, nil)
		assert.Error(t, err, raw)
	}
}
