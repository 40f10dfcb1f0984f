package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// NewGroupID returns a fresh group identifier so tests sharing the container
// never see each other's cabinets.
func NewGroupID() string {
	return "group-" + uniqueSuffix()
}

// SeedMedicine inserts a medicine with sensible defaults, applying any
// mutators before the insert. Returns the stored row.
func SeedMedicine(t *testing.T, pool *pgxpool.Pool, groupID string, muts ...func(*domain.Medicine)) domain.Medicine {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	m := domain.Medicine{
		ID:          uuid.New(),
		GroupID:     groupID,
		Name:        "Med " + suffix,
		Quantity:    10,
		Unit:        "tablets",
		AddedByID:   "actor-" + suffix,
		AddedByName: "Actor " + suffix,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, mut := range muts {
		mut(&m)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO medicines (id, group_id, name, quantity, unit, expiry_date, location,
		                        added_by_id, added_by_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.GroupID, m.Name, m.Quantity, m.Unit, m.ExpiryDate, m.Location,
		m.AddedByID, m.AddedByName, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMedicine insert: %v", err)
	}

	return m
}

// SeedActivity inserts one activity log row for a medicine.
func SeedActivity(t *testing.T, pool *pgxpool.Pool, m domain.Medicine, action domain.ActionKind, change *int, actorName string) domain.Activity {
	t.Helper()
	ctx := context.Background()

	e := domain.Activity{
		ID:             uuid.New(),
		MedicineID:     m.ID,
		GroupID:        m.GroupID,
		Action:         action,
		QuantityChange: change,
		ActorID:        "actor-" + uniqueSuffix(),
		ActorName:      actorName,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO activity_log (id, medicine_id, group_id, action, quantity_change,
		                           actor_id, actor_name, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.MedicineID, e.GroupID, string(e.Action), e.QuantityChange,
		e.ActorID, e.ActorName, e.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedActivity insert: %v", err)
	}

	return e
}
