package match

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid match state transition")
	ErrInningsNotFound   = errors.New("innings not found")
	ErrNothingToUndo     = errors.New("no delivery to undo")
	ErrSequenceConflict  = errors.New("ledger sequence conflict")
)

// Reason codes carried by InvalidDeliveryError.
const (
	ReasonInningsCompleted         = "innings_completed"
	ReasonInvalidRuns              = "invalid_runs"
	ReasonRunsOffBatOnExtra        = "runs_off_bat_on_extra"
	ReasonMissingExtraRuns         = "missing_extra_runs"
	ReasonExtraRunsBelowPenalty    = "extra_runs_below_penalty"
	ReasonMissingBowler            = "missing_bowler"
	ReasonBowlerChangeMidOver      = "bowler_change_mid_over"
	ReasonConsecutiveOvers         = "consecutive_overs"
	ReasonBowlerOverLimit          = "bowler_over_limit"
	ReasonMissingBatsman           = "missing_batsman"
	ReasonSameBatsman              = "same_batsman"
	ReasonBatsmanMismatch          = "batsman_mismatch"
	ReasonBatsmanAlreadyDismissed  = "batsman_already_dismissed"
	ReasonWicketTypeRequired       = "wicket_type_required"
	ReasonWicketTypeWithoutWicket  = "wicket_type_without_wicket"
	ReasonMissingDismissedBatsman  = "missing_dismissed_batsman"
	ReasonDismissedNotAtCrease     = "dismissed_not_at_crease"
	ReasonDismissedNotStriker      = "dismissed_not_striker"
	ReasonMissingFielder           = "missing_fielder"
	ReasonFreeHitWicket            = "free_hit_wicket"
	ReasonIllegalWicketOnExtra     = "illegal_wicket_on_extra"
	ReasonUnknownExtraType         = "unknown_extra_type"
	ReasonUnknownWicketType        = "unknown_wicket_type"
)

// InvalidDeliveryError is returned when a delivery breaks a scoring rule.
// The innings state is never changed when it is returned.
type InvalidDeliveryError struct {
	Reason string
	Detail string
}

func (e *InvalidDeliveryError) Error() string {
	if e.Detail == "" {
		return "invalid delivery: " + e.Reason
	}
	return fmt.Sprintf("invalid delivery: %s: %s", e.Reason, e.Detail)
}

func reject(reason, format string, args ...any) error {
	return &InvalidDeliveryError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// RejectionReason extracts the reason code, or "" if err is not a rejection.
func RejectionReason(err error) string {
	var invalid *InvalidDeliveryError
	if errors.As(err, &invalid) {
		return invalid.Reason
	}
	return ""
}
