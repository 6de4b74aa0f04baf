package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/cricket-scoring/internal/platform/logging"
	"github.com/riskibarqy/cricket-scoring/internal/platform/resilience"
	"github.com/riskibarqy/cricket-scoring/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const (
	HeaderEventID   = "X-Event-Id"
	HeaderEventType = "X-Event-Type"
	HeaderSignature = "X-Signature-256"
)

var errWebhookTransient = crerr.New("webhook transient failure")

type Config struct {
	URL            string
	Secret         string
	Timeout        time.Duration
	Retries        int
	RetryBackoff   time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	// Dial overrides how connections are opened; tests use an in-memory
	// listener.
	Dial fasthttp.DialFunc
}

// Publisher posts domain events as signed JSON to one endpoint. Delivery is
// at least once: retries resend the same event ID.
type Publisher struct {
	client  *fasthttp.Client
	url     string
	secret  []byte
	timeout time.Duration
	retries int
	backoff time.Duration
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewPublisher(cfg Config, logger *logging.Logger) (*Publisher, error) {
	target, err := validateHTTPURL(cfg.URL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid EVENT_WEBHOOK_URL")
	}
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.CountFailures(func(err error) bool { return crerr.Is(err, errWebhookTransient) })
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("webhook circuit breaker state changed", "from", string(from), "to", string(to))
	})

	return &Publisher{
		client: &fasthttp.Client{
			Name:                "cricket-scoring-webhook",
			Dial:                cfg.Dial,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 30 * time.Second,
		},
		url:     target,
		secret:  []byte(cfg.Secret),
		timeout: timeout,
		retries: max(cfg.Retries, 0),
		backoff: backoff,
		breaker: breaker,
		logger:  logger,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, event usecase.DomainEvent) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(event); err != nil {
		return crerr.Wrapf(err, "encode event %s", event.ID)
	}
	body := buf.Bytes()
	signature := p.sign(body)

	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, p.backoff*time.Duration(1<<(attempt-1))); err != nil {
				return crerr.Wrapf(err, "publish event %s", event.ID)
			}
		}

		lastErr = p.breaker.Execute(ctx, func(ctx context.Context) error {
			return p.post(ctx, event, body, signature)
		})
		if lastErr == nil {
			p.logger.DebugContext(ctx, "webhook event delivered", "event_id", event.ID, "type", event.Type, "attempt", attempt+1)
			return nil
		}
		if !crerr.Is(lastErr, errWebhookTransient) {
			return lastErr
		}
		p.logger.WarnContext(ctx, "webhook delivery failed",
			"event_id", event.ID,
			"type", event.Type,
			"attempt", attempt+1,
			"error", lastErr,
		)
	}
	return lastErr
}

func (p *Publisher) post(ctx context.Context, event usecase.DomainEvent, body []byte, signature string) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set(HeaderEventID, event.ID)
	req.Header.Set(HeaderEventType, event.Type)
	if signature != "" {
		req.Header.Set(HeaderSignature, signature)
	}
	req.SetBody(body)

	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return crerr.Wrap(ctx.Err(), "webhook request")
		}
		timeout = min(timeout, remaining)
	}

	if err := p.client.DoTimeout(req, resp, timeout); err != nil {
		return crerr.Mark(crerr.Wrapf(err, "post event %s to %s", event.ID, p.url), errWebhookTransient)
	}

	status := resp.StatusCode()
	if status/100 == 2 {
		return nil
	}
	callErr := crerr.Newf("post event %s status=%d body=%s", event.ID, status, truncate(string(resp.Body()), 512))
	if isRetryableStatus(status) {
		return crerr.Mark(callErr, errWebhookTransient)
	}
	return callErr
}

func (p *Publisher) sign(body []byte) string {
	if len(p.secret) == 0 {
		return ""
	}
	mac := hmac.New(sha256.New, p.secret)
	_, _ = mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a signature header against body with secret.
func Verify(secret, body []byte, header string) bool {
	want, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return false
	}
	got, err := hex.DecodeString(want)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, secret)
	_, _ = mac.Write(body)
	return hmac.Equal(mac.Sum(nil), got)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusRequestTimeout ||
		status == fasthttp.StatusTooManyRequests ||
		status >= fasthttp.StatusInternalServerError
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}
	return candidate, nil
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit] + "...(" + strconv.Itoa(len(value)-limit) + " more bytes)"
}
