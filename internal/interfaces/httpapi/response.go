package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/riskibarqy/cricket-scoring/internal/domain/result"
	"github.com/riskibarqy/cricket-scoring/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "cricket-scoring"
	deliveryDomain   = "cricket-scoring.delivery"
)

// Responses follow the Google JSON style guide: a versioned envelope with
// either data or error set.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// mappedError carries the processor reason code in RuleCode for rejected
// deliveries.
type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	RuleCode   string
}

var internalError = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// errorRules is checked in order; the first sentinel found in the chain wins.
var errorRules = []struct {
	targets []error
	mapped  mappedError
}{
	{
		targets: []error{usecase.ErrInvalidInput},
		mapped:  mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
	},
	{
		targets: []error{usecase.ErrNotFound},
		mapped:  mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
	},
	{
		targets: []error{usecase.ErrConflict, match.ErrInvalidTransition, match.ErrSequenceConflict},
		mapped:  mappedError{HTTPStatus: http.StatusConflict, Reason: "conflict", Status: "ABORTED"},
	},
	{
		targets: []error{usecase.ErrUnauthorized},
		mapped:  mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"},
	},
	{
		targets: []error{usecase.ErrDependencyUnavailable},
		mapped:  mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"},
	},
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: googleAPIVersion, Data: data})
}

// writeError maps err onto the envelope and tags the request span with the
// reason. Only server-side failures mark the span as errored.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("cricket.error_reason", mapped.Reason))
	if mapped.RuleCode != "" {
		span.SetAttributes(attribute.String("cricket.rejection", mapped.RuleCode))
	}
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		span.RecordError(err)
		span.SetStatus(codes.Error, mapped.Reason)
	}

	items := []errorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: err.Error()}}
	if mapped.RuleCode != "" {
		items = append(items, errorItem{Domain: deliveryDomain, Reason: mapped.RuleCode, Message: err.Error()})
	}
	writeJSON(w, mapped.HTTPStatus, envelope{
		APIVersion: googleAPIVersion,
		Error: &errorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors:  items,
		},
	})
}

// writeInternalError hides the cause from the client.
func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	const msg = "internal server error"

	trace.SpanFromContext(ctx).SetStatus(codes.Error, msg)
	writeJSON(w, internalError.HTTPStatus, envelope{
		APIVersion: googleAPIVersion,
		Error: &errorBody{
			Code:    internalError.HTTPStatus,
			Message: msg,
			Status:  internalError.Status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: internalError.Reason, Message: msg}},
		},
	})
}

func mapError(err error) mappedError {
	var invalidDelivery *match.InvalidDeliveryError
	if errors.As(err, &invalidDelivery) {
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidDelivery",
			Status:     "FAILED_PRECONDITION",
			RuleCode:   invalidDelivery.Reason,
		}
	}
	var incomplete *result.IncompleteMatchError
	if errors.As(err, &incomplete) {
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "matchIncomplete", Status: "FAILED_PRECONDITION"}
	}

	for _, rule := range errorRules {
		for _, target := range rule.targets {
			if errors.Is(err, target) {
				return rule.mapped
			}
		}
	}
	return internalError
}
