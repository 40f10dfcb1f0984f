package rest

import "net/http"

// Handlers bundles the REST handlers mounted by NewRouter.
type Handlers struct {
	Messages *MessagesHandler
	Cabinet  *CabinetHandler
	Health   *HealthHandler
}

// NewRouter mounts all REST routes on a fresh mux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	mux.HandleFunc("POST /v1/messages", h.Messages.Handle)

	mux.HandleFunc("GET /v1/groups/{group_id}/medicines", h.Cabinet.List)
	mux.HandleFunc("GET /v1/groups/{group_id}/stats", h.Cabinet.Stats)
	mux.HandleFunc("GET /v1/groups/{group_id}/medicines/{name}/history", h.Cabinet.History)
	mux.HandleFunc("DELETE /v1/groups/{group_id}/medicines/{name}", h.Cabinet.Delete)

	return mux
}
