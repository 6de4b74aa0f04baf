package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/profiles", handler.ListProfiles)
	mux.HandleFunc("POST /v1/matches", handler.CreateMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("POST /v1/matches/{matchID}/toss", handler.RecordToss)
	mux.HandleFunc("POST /v1/matches/{matchID}/abandon", handler.AbandonMatch)
	mux.HandleFunc("POST /v1/matches/{matchID}/result", handler.ResolveMatch)
	mux.HandleFunc("POST /v1/matches/{matchID}/innings/{inningsNumber}/start", handler.StartInnings)
}

func registerScoringRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches/{matchID}/innings/{inningsNumber}", handler.GetInningsState)
	mux.HandleFunc("POST /v1/matches/{matchID}/innings/{inningsNumber}/deliveries", handler.ApplyDelivery)
	mux.HandleFunc("GET /v1/matches/{matchID}/innings/{inningsNumber}/deliveries", handler.ListDeliveries)
	mux.HandleFunc("DELETE /v1/matches/{matchID}/innings/{inningsNumber}/deliveries/last", handler.UndoLastDelivery)
	mux.HandleFunc("GET /v1/matches/{matchID}/innings/{inningsNumber}/scorecard", handler.GetScorecard)
}

func registerStandingRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/standings", handler.ListStandings)
	// Rebuild replays every finished match of the tournament.
	mux.Handle("POST /v1/tournaments/{tournamentID}/standings/rebuild", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RebuildStandings)))
}
