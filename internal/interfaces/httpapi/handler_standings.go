package httpapi

import "net/http"

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListStandings")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	rows, err := h.standingService.ListStandings(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(rows))
}

func (h *Handler) RebuildStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RebuildStandings")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	rows, err := h.standingService.RebuildStandings(ctx, tournamentID)
	if err != nil {
		h.logger.ErrorContext(ctx, "rebuild standings failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "standings rebuilt on request", "tournament_id", tournamentID, "teams", len(rows))
	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(rows))
}
