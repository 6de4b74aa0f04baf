package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
)

func (h *Handler) ApplyDelivery(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ApplyDelivery")
	defer span.End()

	matchID := r.PathValue("matchID")
	number, err := pathInningsNumber(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req deliveryRequest
	if err := h.decodeBody(ctx, w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	applied, err := h.scoringService.ApplyDelivery(ctx, matchID, number, req.toInput())
	if err != nil {
		if reason := match.RejectionReason(err); reason != "" {
			h.logger.InfoContext(ctx, "delivery rejected", "match_id", matchID, "innings", number, "reason", reason)
		} else {
			h.logger.WarnContext(ctx, "apply delivery failed", "match_id", matchID, "innings", number, "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, applyDeliveryDTO{
		Sequence: applied.Sequence,
		Delivery: deliveryToDTO(applied.Delivery),
		Innings:  inningsToDTO(applied.Innings, m.Profile.BallsPerOver),
		Event:    eventToDTO(applied.Event),
	})
}

func (h *Handler) UndoLastDelivery(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "UndoLastDelivery")
	defer span.End()

	matchID := r.PathValue("matchID")
	number, err := pathInningsNumber(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	undone, err := h.scoringService.UndoLastDelivery(ctx, matchID, number)
	if err != nil {
		h.logger.WarnContext(ctx, "undo delivery failed", "match_id", matchID, "innings", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, undoDeliveryDTO{
		Sequence: undone.Sequence,
		Voided:   deliveryToDTO(undone.Voided),
		Innings:  inningsToDTO(undone.Innings, m.Profile.BallsPerOver),
	})
}

func (h *Handler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListDeliveries")
	defer span.End()

	matchID := r.PathValue("matchID")
	number, err := pathInningsNumber(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.scoringService.ListDeliveries(ctx, matchID, number)
	if err != nil {
		h.logger.WarnContext(ctx, "list deliveries failed", "match_id", matchID, "innings", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]ledgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetInningsState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetInningsState")
	defer span.End()

	matchID := r.PathValue("matchID")
	number, err := pathInningsNumber(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	in, err := h.scoringService.GetInningsState(ctx, matchID, number)
	if err != nil {
		h.logger.WarnContext(ctx, "get innings state failed", "match_id", matchID, "innings", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, inningsToDTO(in, m.Profile.BallsPerOver))
}

func (h *Handler) GetScorecard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetScorecard")
	defer span.End()

	matchID := r.PathValue("matchID")
	number, err := pathInningsNumber(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	card, err := h.scoringService.GetStatistics(ctx, matchID, number)
	if err != nil {
		h.logger.WarnContext(ctx, "get scorecard failed", "match_id", matchID, "innings", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scorecardToDTO(card))
}
