package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is one append-only audit record of an action taken against a
// medicine. Records are never updated; they are removed only by cascade
// when their medicine is deleted.
type Activity struct {
	ID         uuid.UUID
	MedicineID uuid.UUID
	GroupID    string
	Action     ActionKind

	// QuantityChange is the signed delta applied by the action.
	// Nil for actions that do not change stock (searched, deleted).
	QuantityChange *int

	ActorID   string
	ActorName string
	CreatedAt time.Time
}

// ActionCount is one row of the per-action activity breakdown.
type ActionCount struct {
	Action ActionKind
	Count  int
}

// ActorCount ranks an actor by how many actions they performed.
type ActorCount struct {
	ActorName string
	Count     int
}

// MedicineUsage ranks a medicine by how often it was consumed.
type MedicineUsage struct {
	Name      string
	UsedCount int
}

// StatsReport aggregates a group's activity over a time window.
type StatsReport struct {
	GroupID         string
	Since           time.Time
	TotalActivities int
	ByAction        []ActionCount
	MostActive      []ActorCount
	MostUsed        []MedicineUsage
}
