package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/medikeep/cabinet-backend/internal/domain"
	"github.com/medikeep/cabinet-backend/internal/service/inventory"
	"github.com/medikeep/cabinet-backend/pkg/ctxutil"
)

type cabinetServiceMock struct {
	listAllFunc func(ctx context.Context, groupID string) ([]domain.Medicine, error)
	statsFunc   func(ctx context.Context, groupID string) (domain.StatsReport, error)
	historyFunc func(ctx context.Context, in inventory.SearchInput) (domain.Medicine, []domain.Activity, error)
	deleteFunc  func(ctx context.Context, in inventory.DeleteInput) (domain.Medicine, error)

	deleteCalls []inventory.DeleteInput
}

func (m *cabinetServiceMock) ListAll(ctx context.Context, groupID string) ([]domain.Medicine, error) {
	if m.listAllFunc == nil {
		panic("cabinetServiceMock: ListAll called but listAllFunc not set")
	}
	return m.listAllFunc(ctx, groupID)
}

func (m *cabinetServiceMock) Stats(ctx context.Context, groupID string) (domain.StatsReport, error) {
	if m.statsFunc == nil {
		panic("cabinetServiceMock: Stats called but statsFunc not set")
	}
	return m.statsFunc(ctx, groupID)
}

func (m *cabinetServiceMock) History(ctx context.Context, in inventory.SearchInput) (domain.Medicine, []domain.Activity, error) {
	if m.historyFunc == nil {
		panic("cabinetServiceMock: History called but historyFunc not set")
	}
	return m.historyFunc(ctx, in)
}

func (m *cabinetServiceMock) Delete(ctx context.Context, in inventory.DeleteInput) (domain.Medicine, error) {
	m.deleteCalls = append(m.deleteCalls, in)
	if m.deleteFunc == nil {
		panic("cabinetServiceMock: Delete called but deleteFunc not set")
	}
	return m.deleteFunc(ctx, in)
}

type alertsStub struct {
	tags []domain.WarningTag
}

func (s *alertsStub) Evaluate(_ domain.Medicine, _ time.Time) []domain.WarningTag {
	return s.tags
}

type adminsStub struct {
	admins map[string]bool
}

func (s *adminsStub) IsAdmin(actorID string) bool {
	return s.admins[actorID]
}

func newCabinetHandler(svc *cabinetServiceMock, alerts *alertsStub, admins *adminsStub) *CabinetHandler {
	if alerts == nil {
		alerts = &alertsStub{}
	}
	if admins == nil {
		admins = &adminsStub{}
	}
	return NewCabinetHandler(svc, alerts, admins, discardLogger())
}

func withActor(req *http.Request, actorID string) *http.Request {
	return req.WithContext(ctxutil.WithActorID(req.Context(), actorID))
}

func TestCabinetList_OK(t *testing.T) {
	t.Parallel()

	svc := &cabinetServiceMock{
		listAllFunc: func(_ context.Context, groupID string) ([]domain.Medicine, error) {
			if groupID != "g1" {
				t.Errorf("expected group g1, got %q", groupID)
			}
			return []domain.Medicine{
				{ID: uuid.New(), Name: "Napa", Quantity: 2, Unit: "tablets"},
				{ID: uuid.New(), Name: "Seclo", Quantity: 14, Unit: "capsules"},
			}, nil
		},
	}
	h := newCabinetHandler(svc, &alertsStub{tags: []domain.WarningTag{domain.WarningLowStock}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/groups/g1/medicines", nil)
	req.SetPathValue("group_id", "g1")
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Medicines []medicineJSON `json:"medicines"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Medicines) != 2 {
		t.Fatalf("expected 2 medicines, got %d", len(resp.Medicines))
	}
	if resp.Medicines[0].Name != "Napa" {
		t.Errorf("expected first medicine Napa, got %q", resp.Medicines[0].Name)
	}
	if len(resp.Medicines[0].Warnings) != 1 || resp.Medicines[0].Warnings[0] != "LOW_STOCK" {
		t.Errorf("expected LOW_STOCK warning, got %v", resp.Medicines[0].Warnings)
	}
}

func TestCabinetStats_OK(t *testing.T) {
	t.Parallel()

	since := time.Now().AddDate(0, 0, -30)
	svc := &cabinetServiceMock{
		statsFunc: func(_ context.Context, _ string) (domain.StatsReport, error) {
			return domain.StatsReport{
				GroupID:         "g1",
				Since:           since,
				TotalActivities: 7,
				ByAction:        []domain.ActionCount{{Action: domain.ActionAdded, Count: 4}, {Action: domain.ActionUsed, Count: 3}},
				MostActive:      []domain.ActorCount{{ActorName: "Alice", Count: 5}},
				MostUsed:        []domain.MedicineUsage{{Name: "Napa", UsedCount: 3}},
			}, nil
		},
	}
	h := newCabinetHandler(svc, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/groups/g1/stats", nil)
	req.SetPathValue("group_id", "g1")
	rec := httptest.NewRecorder()

	h.Stats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp statsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalActivities != 7 {
		t.Errorf("expected 7 total activities, got %d", resp.TotalActivities)
	}
	if len(resp.ByAction) != 2 || resp.ByAction[0].Action != "added" {
		t.Errorf("unexpected by_action: %v", resp.ByAction)
	}
	if len(resp.MostActive) != 1 || resp.MostActive[0].ActorName != "Alice" {
		t.Errorf("unexpected most_active: %v", resp.MostActive)
	}
	if len(resp.MostUsed) != 1 || resp.MostUsed[0].UsedCount != 3 {
		t.Errorf("unexpected most_used: %v", resp.MostUsed)
	}
}

func TestCabinetHistory_OK(t *testing.T) {
	t.Parallel()

	change := -2
	svc := &cabinetServiceMock{
		historyFunc: func(_ context.Context, in inventory.SearchInput) (domain.Medicine, []domain.Activity, error) {
			if in.Name != "napa" || in.GroupID != "g1" || in.Actor.ID != "u1" {
				t.Errorf("unexpected input: %+v", in)
			}
			return domain.Medicine{Name: "Napa"}, []domain.Activity{
				{ID: uuid.New(), Action: domain.ActionUsed, QuantityChange: &change, ActorName: "Alice", CreatedAt: time.Now()},
			}, nil
		},
	}
	h := newCabinetHandler(svc, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/groups/g1/medicines/napa/history", nil)
	req.SetPathValue("group_id", "g1")
	req.SetPathValue("name", "napa")
	rec := httptest.NewRecorder()

	h.History(rec, withActor(req, "u1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Medicine string         `json:"medicine"`
		History  []activityJSON `json:"history"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Medicine != "Napa" {
		t.Errorf("expected medicine Napa, got %q", resp.Medicine)
	}
	if len(resp.History) != 1 || resp.History[0].Action != "used" {
		t.Fatalf("unexpected history: %v", resp.History)
	}
	if resp.History[0].QuantityChange == nil || *resp.History[0].QuantityChange != -2 {
		t.Errorf("expected quantity change -2, got %v", resp.History[0].QuantityChange)
	}
}

func TestCabinetHistory_NoActor(t *testing.T) {
	t.Parallel()

	h := newCabinetHandler(&cabinetServiceMock{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/groups/g1/medicines/napa/history", nil)
	req.SetPathValue("group_id", "g1")
	req.SetPathValue("name", "napa")
	rec := httptest.NewRecorder()

	h.History(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestCabinetHistory_NotFound(t *testing.T) {
	t.Parallel()

	svc := &cabinetServiceMock{
		historyFunc: func(_ context.Context, _ inventory.SearchInput) (domain.Medicine, []domain.Activity, error) {
			return domain.Medicine{}, nil, domain.ErrNotFound
		},
	}
	h := newCabinetHandler(svc, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/groups/g1/medicines/nope/history", nil)
	req.SetPathValue("group_id", "g1")
	req.SetPathValue("name", "nope")
	rec := httptest.NewRecorder()

	h.History(rec, withActor(req, "u1"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var resp errorJSON
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Kind != "NOT_FOUND" {
		t.Errorf("expected kind NOT_FOUND, got %q", resp.Kind)
	}
}

func TestCabinetDelete_Admin(t *testing.T) {
	t.Parallel()

	svc := &cabinetServiceMock{
		deleteFunc: func(_ context.Context, in inventory.DeleteInput) (domain.Medicine, error) {
			return domain.Medicine{Name: "Napa"}, nil
		},
	}
	h := newCabinetHandler(svc, nil, &adminsStub{admins: map[string]bool{"admin-1": true}})

	req := httptest.NewRequest(http.MethodDelete, "/v1/groups/g1/medicines/napa", nil)
	req.SetPathValue("group_id", "g1")
	req.SetPathValue("name", "napa")
	req.Header.Set("X-Actor-Name", "Alice")
	rec := httptest.NewRecorder()

	h.Delete(rec, withActor(req, "admin-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(svc.deleteCalls) != 1 {
		t.Fatalf("expected 1 delete call, got %d", len(svc.deleteCalls))
	}
	if svc.deleteCalls[0].Actor.DisplayName != "Alice" {
		t.Errorf("expected actor name Alice, got %q", svc.deleteCalls[0].Actor.DisplayName)
	}
}

func TestCabinetDelete_NonAdmin(t *testing.T) {
	t.Parallel()

	svc := &cabinetServiceMock{}
	h := newCabinetHandler(svc, nil, &adminsStub{admins: map[string]bool{"admin-1": true}})

	req := httptest.NewRequest(http.MethodDelete, "/v1/groups/g1/medicines/napa", nil)
	req.SetPathValue("group_id", "g1")
	req.SetPathValue("name", "napa")
	rec := httptest.NewRecorder()

	h.Delete(rec, withActor(req, "mortal-1"))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if len(svc.deleteCalls) != 0 {
		t.Errorf("expected no delete calls, got %d", len(svc.deleteCalls))
	}
}

func TestCabinetDelete_StoreUnavailable(t *testing.T) {
	t.Parallel()

	svc := &cabinetServiceMock{
		deleteFunc: func(_ context.Context, _ inventory.DeleteInput) (domain.Medicine, error) {
			return domain.Medicine{}, domain.ErrStoreUnavailable
		},
	}
	h := newCabinetHandler(svc, nil, &adminsStub{admins: map[string]bool{"admin-1": true}})

	req := httptest.NewRequest(http.MethodDelete, "/v1/groups/g1/medicines/napa", nil)
	req.SetPathValue("group_id", "g1")
	req.SetPathValue("name", "napa")
	rec := httptest.NewRecorder()

	h.Delete(rec, withActor(req, "admin-1"))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}
