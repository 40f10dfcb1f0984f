package domain

import (
	"time"

	"github.com/google/uuid"
)

// Medicine is one distinct medicine in a group's shared cabinet.
type Medicine struct {
	ID         uuid.UUID
	GroupID    string
	Name       string
	Quantity   int
	Unit       string
	ExpiryDate *time.Time
	Location   *string

	// AddedByName is a snapshot of the creator's display name at creation
	// time. It is not kept in sync with later identity changes.
	AddedByID   string
	AddedByName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MedicineDraft holds the fields for inserting a new medicine.
type MedicineDraft struct {
	GroupID     string
	Name        string
	Quantity    int
	Unit        string
	ExpiryDate  *time.Time
	Location    *string
	AddedByID   string
	AddedByName string
}

// RefreshFields are the optional attributes an add may refresh on an
// existing medicine. Nil means "not supplied, keep the stored value".
type RefreshFields struct {
	Unit       *string
	ExpiryDate *time.Time
	Location   *string
}

// NameRef is the minimal projection the fuzzy resolver works against.
type NameRef struct {
	ID   uuid.UUID
	Name string
}

// Actor identifies who performed an action, with a best-effort display name
// supplied by the chat transport.
type Actor struct {
	ID          string
	DisplayName string
}
