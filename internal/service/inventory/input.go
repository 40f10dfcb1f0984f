package inventory

import (
	"time"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

// MessageInput is one inbound chat message with its sender and group.
type MessageInput struct {
	GroupID string
	Actor   domain.Actor
	Text    string
}

// Validate checks all fields and collects all errors.
func (i *MessageInput) Validate() error {
	errs := requireIdentity(i.GroupID, i.Actor)
	if i.Text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AddInput holds the parameters for adding stock.
type AddInput struct {
	GroupID  string
	Actor    domain.Actor
	Name     string
	Quantity int
	Unit     *string
	Expiry   *time.Time
	Location *string
}

// Validate checks all fields and collects all errors.
func (i *AddInput) Validate() error {
	errs := requireIdentity(i.GroupID, i.Actor)
	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if i.Quantity <= 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ConsumeInput holds the parameters for consuming stock.
type ConsumeInput struct {
	GroupID  string
	Actor    domain.Actor
	Name     string
	Quantity int
}

// Validate checks all fields and collects all errors.
func (i *ConsumeInput) Validate() error {
	errs := requireIdentity(i.GroupID, i.Actor)
	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if i.Quantity <= 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SearchInput holds the parameters for a cabinet lookup.
type SearchInput struct {
	GroupID string
	Actor   domain.Actor
	Name    string
}

// Validate checks all fields and collects all errors.
func (i *SearchInput) Validate() error {
	errs := requireIdentity(i.GroupID, i.Actor)
	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// DeleteInput holds the parameters for removing a medicine outright.
type DeleteInput struct {
	GroupID string
	Actor   domain.Actor
	Name    string
}

// Validate checks all fields and collects all errors.
func (i *DeleteInput) Validate() error {
	errs := requireIdentity(i.GroupID, i.Actor)
	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func requireIdentity(groupID string, actor domain.Actor) []domain.FieldError {
	var errs []domain.FieldError
	if groupID == "" {
		errs = append(errs, domain.FieldError{Field: "group_id", Message: "required"})
	}
	if actor.ID == "" {
		errs = append(errs, domain.FieldError{Field: "actor_id", Message: "required"})
	}
	return errs
}
