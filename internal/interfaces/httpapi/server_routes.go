package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/characters", handler.ListCharacters)
	mux.HandleFunc("POST /v1/characters", handler.CreateCharacter)
	mux.HandleFunc("GET /v1/characters/{characterID}", handler.GetCharacter)
	mux.HandleFunc("PUT /v1/characters/{characterID}", handler.EditCharacter)
	mux.HandleFunc("DELETE /v1/characters/{characterID}", handler.DeleteCharacter)
	mux.HandleFunc("PUT /v1/characters/{characterID}/team", handler.AssignCharacterToTeam)

	mux.HandleFunc("GET /v1/rescue-teams", handler.ListTeamStatistics)
	mux.HandleFunc("POST /v1/rescue-teams", handler.CreateTeam)
	mux.HandleFunc("GET /v1/rescue-teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("PUT /v1/rescue-teams/{teamID}", handler.RenameTeam)
	mux.HandleFunc("DELETE /v1/rescue-teams/{teamID}", handler.DeleteTeam)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/catalog/avengers", handler.SearchAvengers)
	mux.HandleFunc("GET /v1/catalog/threat-report", handler.GetThreatReport)
}
