package handler

import "net/http"

// Handlers bundles the endpoint handlers for route registration.
type Handlers struct {
	Auth     *AuthHandler
	Ideas    *IdeaHandler
	Projects *ProjectHandler
	Funding  *FundingHandler
	Profiles *ProfileHandler
	DB       *DBHandler
	Agents   *AgentHandler
	Chain    *ChainHandler
	Health   *HealthHandler
}

// RegisterRoutes attaches every endpoint to the mux. Method restrictions
// use the mux's method patterns; body-level operation dispatch happens
// inside each handler.
func RegisterRoutes(mux *http.ServeMux, h Handlers) {
	mux.HandleFunc("GET /health", h.Health.Handle)
	mux.HandleFunc("POST /auth", h.Auth.Handle)
	mux.HandleFunc("POST /db", h.DB.Handle)
	mux.HandleFunc("POST /api/ideas", h.Ideas.Handle)
	mux.HandleFunc("POST /api/projects", h.Projects.Handle)
	mux.HandleFunc("POST /api/funding", h.Funding.Handle)
	mux.HandleFunc("POST /api/profiles", h.Profiles.Handle)
	mux.HandleFunc("POST /api/ai-agents", h.Agents.Handle)
	mux.HandleFunc("GET /chain/health", h.Chain.Health)
	mux.HandleFunc("GET /chain/config", h.Chain.Config)
	mux.HandleFunc("POST /chain/stream", h.Chain.CreateStream)
}
