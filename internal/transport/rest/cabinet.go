package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/medikeep/cabinet-backend/internal/domain"
	"github.com/medikeep/cabinet-backend/internal/service/inventory"
	"github.com/medikeep/cabinet-backend/pkg/ctxutil"
)

type cabinetService interface {
	ListAll(ctx context.Context, groupID string) ([]domain.Medicine, error)
	Stats(ctx context.Context, groupID string) (domain.StatsReport, error)
	History(ctx context.Context, in inventory.SearchInput) (domain.Medicine, []domain.Activity, error)
	Delete(ctx context.Context, in inventory.DeleteInput) (domain.Medicine, error)
}

type warningEvaluator interface {
	Evaluate(m domain.Medicine, now time.Time) []domain.WarningTag
}

type adminChecker interface {
	IsAdmin(actorID string) bool
}

// CabinetHandler serves the group cabinet REST endpoints.
type CabinetHandler struct {
	svc    cabinetService
	alerts warningEvaluator
	admins adminChecker
	log    *slog.Logger
}

// NewCabinetHandler creates a CabinetHandler.
func NewCabinetHandler(svc cabinetService, alerts warningEvaluator, admins adminChecker, logger *slog.Logger) *CabinetHandler {
	return &CabinetHandler{
		svc:    svc,
		alerts: alerts,
		admins: admins,
		log:    logger.With("handler", "cabinet"),
	}
}

// List returns every medicine in the group with current warnings.
// GET /v1/groups/{group_id}/medicines
func (h *CabinetHandler) List(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("group_id")

	meds, err := h.svc.ListAll(r.Context(), groupID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	now := time.Now()
	out := make([]medicineJSON, 0, len(meds))
	for _, m := range meds {
		out = append(out, medicineJSON{
			ID:          m.ID.String(),
			Name:        m.Name,
			Quantity:    m.Quantity,
			Unit:        m.Unit,
			ExpiryDate:  m.ExpiryDate,
			Location:    m.Location,
			AddedByName: m.AddedByName,
			Warnings:    warningStrings(h.alerts.Evaluate(m, now)),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"medicines": out})
}

type actionCountJSON struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

type actorCountJSON struct {
	ActorName string `json:"actor_name"`
	Count     int    `json:"count"`
}

type medicineUsageJSON struct {
	Name      string `json:"name"`
	UsedCount int    `json:"used_count"`
}

type statsResponse struct {
	GroupID         string              `json:"group_id"`
	Since           time.Time           `json:"since"`
	TotalActivities int                 `json:"total_activities"`
	ByAction        []actionCountJSON   `json:"by_action"`
	MostActive      []actorCountJSON    `json:"most_active"`
	MostUsed        []medicineUsageJSON `json:"most_used"`
}

// Stats returns the group's recent activity aggregates.
// GET /v1/groups/{group_id}/stats
func (h *CabinetHandler) Stats(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("group_id")

	report, err := h.svc.Stats(r.Context(), groupID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	resp := statsResponse{
		GroupID:         report.GroupID,
		Since:           report.Since,
		TotalActivities: report.TotalActivities,
		ByAction:        make([]actionCountJSON, 0, len(report.ByAction)),
		MostActive:      make([]actorCountJSON, 0, len(report.MostActive)),
		MostUsed:        make([]medicineUsageJSON, 0, len(report.MostUsed)),
	}
	for _, ac := range report.ByAction {
		resp.ByAction = append(resp.ByAction, actionCountJSON{Action: ac.Action.String(), Count: ac.Count})
	}
	for _, ac := range report.MostActive {
		resp.MostActive = append(resp.MostActive, actorCountJSON{ActorName: ac.ActorName, Count: ac.Count})
	}
	for _, mu := range report.MostUsed {
		resp.MostUsed = append(resp.MostUsed, medicineUsageJSON{Name: mu.Name, UsedCount: mu.UsedCount})
	}

	writeJSON(w, http.StatusOK, resp)
}

type activityJSON struct {
	ID             string    `json:"id"`
	Action         string    `json:"action"`
	QuantityChange *int      `json:"quantity_change,omitempty"`
	ActorName      string    `json:"actor_name"`
	CreatedAt      time.Time `json:"created_at"`
}

// History returns the recent activity log for one medicine, resolved by
// fuzzy name match.
// GET /v1/groups/{group_id}/medicines/{name}/history
func (h *CabinetHandler) History(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	med, entries, err := h.svc.History(r.Context(), inventory.SearchInput{
		GroupID: r.PathValue("group_id"),
		Actor:   actor,
		Name:    r.PathValue("name"),
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	out := make([]activityJSON, 0, len(entries))
	for _, a := range entries {
		out = append(out, activityJSON{
			ID:             a.ID.String(),
			Action:         a.Action.String(),
			QuantityChange: a.QuantityChange,
			ActorName:      a.ActorName,
			CreatedAt:      a.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"medicine": med.Name,
		"history":  out,
	})
}

// Delete removes a medicine and its activity log. Admin only.
// DELETE /v1/groups/{group_id}/medicines/{name}
func (h *CabinetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if !h.admins.IsAdmin(actor.ID) {
		writeError(w, http.StatusForbidden, "admin access required")
		return
	}

	med, err := h.svc.Delete(r.Context(), inventory.DeleteInput{
		GroupID: r.PathValue("group_id"),
		Actor:   actor,
		Name:    r.PathValue("name"),
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"deleted": med.Name})
}

// requireActor resolves the acting identity from the request context and the
// optional X-Actor-Name header. Writes 401 when the actor header is absent.
func requireActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	id, ok := ctxutil.ActorIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "X-Actor-Id header required")
		return domain.Actor{}, false
	}

	name := r.Header.Get("X-Actor-Name")
	if name == "" {
		name = id
	}
	return domain.Actor{ID: id, DisplayName: name}, true
}
