package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/cricket-scoring/internal/platform/logging"
	"github.com/riskibarqy/cricket-scoring/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	matchService    *usecase.MatchService
	scoringService  *usecase.ScoringService
	resultService   *usecase.ResultService
	standingService *usecase.StandingService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	scoringService *usecase.ScoringService,
	resultService *usecase.ResultService,
	standingService *usecase.StandingService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:    matchService,
		scoringService:  scoringService,
		resultService:   resultService,
		standingService: standingService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

// decodeBody reads a JSON body into dst and validates it. An empty body is
// accepted when allowEmpty is set.
func (h *Handler) decodeBody(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if !allowEmpty {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
	} else if err := strictJSON.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func pathInningsNumber(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("inningsNumber"))
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("%w: innings number must be a positive integer, got %q", usecase.ErrInvalidInput, raw)
	}
	return value, nil
}
