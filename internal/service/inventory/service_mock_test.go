package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medikeep/cabinet-backend/internal/domain"
	"github.com/medikeep/cabinet-backend/internal/fuzzy"
)

var _ medicineRepo = &medicineRepoMock{}

type medicineRepoMock struct {
	LockGroupFunc      func(ctx context.Context, groupID string) error
	GetByIDFunc        func(ctx context.Context, groupID string, id uuid.UUID) (domain.Medicine, error)
	ListByGroupFunc    func(ctx context.Context, groupID string) ([]domain.Medicine, error)
	ListNamesFunc      func(ctx context.Context, groupID string) ([]domain.NameRef, error)
	InsertFunc         func(ctx context.Context, draft domain.MedicineDraft) (domain.Medicine, error)
	IncrementFunc      func(ctx context.Context, groupID string, id uuid.UUID, qty int, refresh domain.RefreshFields) (domain.Medicine, error)
	AdjustQuantityFunc func(ctx context.Context, groupID string, id uuid.UUID, delta int) (domain.Medicine, error)
	DeleteByIDFunc     func(ctx context.Context, groupID string, id uuid.UUID) error

	calls struct {
		LockGroup []struct{ GroupID string }
		Insert    []struct{ Draft domain.MedicineDraft }
		Increment []struct {
			ID      uuid.UUID
			Qty     int
			Refresh domain.RefreshFields
		}
		AdjustQuantity []struct {
			ID    uuid.UUID
			Delta int
		}
		DeleteByID []struct{ ID uuid.UUID }
	}
	lock sync.RWMutex
}

func (mock *medicineRepoMock) LockGroup(ctx context.Context, groupID string) error {
	mock.lock.Lock()
	mock.calls.LockGroup = append(mock.calls.LockGroup, struct{ GroupID string }{groupID})
	mock.lock.Unlock()
	if mock.LockGroupFunc == nil {
		return nil
	}
	return mock.LockGroupFunc(ctx, groupID)
}

func (mock *medicineRepoMock) LockGroupCalls() []struct{ GroupID string } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.LockGroup
}

func (mock *medicineRepoMock) GetByID(ctx context.Context, groupID string, id uuid.UUID) (domain.Medicine, error) {
	if mock.GetByIDFunc == nil {
		panic("medicineRepoMock.GetByIDFunc: method is nil but medicineRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, groupID, id)
}

func (mock *medicineRepoMock) ListByGroup(ctx context.Context, groupID string) ([]domain.Medicine, error) {
	if mock.ListByGroupFunc == nil {
		panic("medicineRepoMock.ListByGroupFunc: method is nil but medicineRepo.ListByGroup was just called")
	}
	return mock.ListByGroupFunc(ctx, groupID)
}

func (mock *medicineRepoMock) ListNames(ctx context.Context, groupID string) ([]domain.NameRef, error) {
	if mock.ListNamesFunc == nil {
		panic("medicineRepoMock.ListNamesFunc: method is nil but medicineRepo.ListNames was just called")
	}
	return mock.ListNamesFunc(ctx, groupID)
}

func (mock *medicineRepoMock) Insert(ctx context.Context, draft domain.MedicineDraft) (domain.Medicine, error) {
	if mock.InsertFunc == nil {
		panic("medicineRepoMock.InsertFunc: method is nil but medicineRepo.Insert was just called")
	}
	mock.lock.Lock()
	mock.calls.Insert = append(mock.calls.Insert, struct{ Draft domain.MedicineDraft }{draft})
	mock.lock.Unlock()
	return mock.InsertFunc(ctx, draft)
}

func (mock *medicineRepoMock) InsertCalls() []struct{ Draft domain.MedicineDraft } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Insert
}

func (mock *medicineRepoMock) Increment(ctx context.Context, groupID string, id uuid.UUID, qty int, refresh domain.RefreshFields) (domain.Medicine, error) {
	if mock.IncrementFunc == nil {
		panic("medicineRepoMock.IncrementFunc: method is nil but medicineRepo.Increment was just called")
	}
	mock.lock.Lock()
	mock.calls.Increment = append(mock.calls.Increment, struct {
		ID      uuid.UUID
		Qty     int
		Refresh domain.RefreshFields
	}{id, qty, refresh})
	mock.lock.Unlock()
	return mock.IncrementFunc(ctx, groupID, id, qty, refresh)
}

func (mock *medicineRepoMock) IncrementCalls() []struct {
	ID      uuid.UUID
	Qty     int
	Refresh domain.RefreshFields
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Increment
}

func (mock *medicineRepoMock) AdjustQuantity(ctx context.Context, groupID string, id uuid.UUID, delta int) (domain.Medicine, error) {
	if mock.AdjustQuantityFunc == nil {
		panic("medicineRepoMock.AdjustQuantityFunc: method is nil but medicineRepo.AdjustQuantity was just called")
	}
	mock.lock.Lock()
	mock.calls.AdjustQuantity = append(mock.calls.AdjustQuantity, struct {
		ID    uuid.UUID
		Delta int
	}{id, delta})
	mock.lock.Unlock()
	return mock.AdjustQuantityFunc(ctx, groupID, id, delta)
}

func (mock *medicineRepoMock) AdjustQuantityCalls() []struct {
	ID    uuid.UUID
	Delta int
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.AdjustQuantity
}

func (mock *medicineRepoMock) DeleteByID(ctx context.Context, groupID string, id uuid.UUID) error {
	if mock.DeleteByIDFunc == nil {
		panic("medicineRepoMock.DeleteByIDFunc: method is nil but medicineRepo.DeleteByID was just called")
	}
	mock.lock.Lock()
	mock.calls.DeleteByID = append(mock.calls.DeleteByID, struct{ ID uuid.UUID }{id})
	mock.lock.Unlock()
	return mock.DeleteByIDFunc(ctx, groupID, id)
}

func (mock *medicineRepoMock) DeleteByIDCalls() []struct{ ID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.DeleteByID
}

var _ activityRepo = &activityRepoMock{}

type activityRepoMock struct {
	AppendFunc         func(ctx context.Context, entry domain.Activity) error
	ListByMedicineFunc func(ctx context.Context, groupID string, medicineID uuid.UUID, limit int) ([]domain.Activity, error)
	StatsFunc          func(ctx context.Context, groupID string, since time.Time) (domain.StatsReport, error)

	calls struct {
		Append []struct{ Entry domain.Activity }
	}
	lock sync.RWMutex
}

func (mock *activityRepoMock) Append(ctx context.Context, entry domain.Activity) error {
	mock.lock.Lock()
	mock.calls.Append = append(mock.calls.Append, struct{ Entry domain.Activity }{entry})
	mock.lock.Unlock()
	if mock.AppendFunc == nil {
		return nil
	}
	return mock.AppendFunc(ctx, entry)
}

func (mock *activityRepoMock) AppendCalls() []struct{ Entry domain.Activity } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Append
}

func (mock *activityRepoMock) ListByMedicine(ctx context.Context, groupID string, medicineID uuid.UUID, limit int) ([]domain.Activity, error) {
	if mock.ListByMedicineFunc == nil {
		panic("activityRepoMock.ListByMedicineFunc: method is nil but activityRepo.ListByMedicine was just called")
	}
	return mock.ListByMedicineFunc(ctx, groupID, medicineID, limit)
}

func (mock *activityRepoMock) Stats(ctx context.Context, groupID string, since time.Time) (domain.StatsReport, error) {
	if mock.StatsFunc == nil {
		panic("activityRepoMock.StatsFunc: method is nil but activityRepo.Stats was just called")
	}
	return mock.StatsFunc(ctx, groupID, since)
}

var _ txManager = &txManagerMock{}

// txManagerMock runs the callback directly, without a real transaction.
type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc != nil {
		return mock.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

var _ nameResolver = &nameResolverMock{}

type nameResolverMock struct {
	ResolveFunc func(query string, candidates []domain.NameRef) (fuzzy.Match, bool)
}

func (mock *nameResolverMock) Resolve(query string, candidates []domain.NameRef) (fuzzy.Match, bool) {
	if mock.ResolveFunc == nil {
		panic("nameResolverMock.ResolveFunc: method is nil but nameResolver.Resolve was just called")
	}
	return mock.ResolveFunc(query, candidates)
}
