package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
)

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListProfiles")
	defer span.End()

	presets := h.matchService.ListProfiles(ctx)
	items := make([]profileDTO, 0, len(presets))
	for _, p := range presets {
		items = append(items, profileToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := h.decodeBody(ctx, w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchService.CreateMatch(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "team_a", req.TeamA, "team_b", req.TeamB, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(m))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	m, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) RecordToss(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RecordToss")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req recordTossRequest
	if err := h.decodeBody(ctx, w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchService.RecordToss(ctx, matchID, req.Winner, match.TossDecision(req.Decision))
	if err != nil {
		h.logger.WarnContext(ctx, "record toss failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) StartInnings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "StartInnings")
	defer span.End()

	matchID := r.PathValue("matchID")
	number, err := pathInningsNumber(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchService.StartInnings(ctx, matchID, number)
	if err != nil {
		h.logger.WarnContext(ctx, "start innings failed", "match_id", matchID, "innings", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) AbandonMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "AbandonMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	m, err := h.matchService.AbandonMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "abandon match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) ResolveMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ResolveMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	res, err := h.resultService.ResolveMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultToDTO(res))
}
