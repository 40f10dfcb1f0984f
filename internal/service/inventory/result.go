package inventory

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

// MedicineView is a medicine decorated with its current warnings.
type MedicineView struct {
	ID          uuid.UUID
	Name        string
	Quantity    int
	Unit        string
	ExpiryDate  *time.Time
	Location    *string
	AddedByName string
	Confidence  int
	Warnings    []domain.WarningTag
}

// Result is the structured outcome of one handled message. Exactly one of
// the data fields is populated, according to the intent.
type Result struct {
	Status   domain.ResultStatus
	Intent   domain.Intent
	Medicine *MedicineView
	Cabinet  []MedicineView
	Warnings []domain.WarningTag

	// ErrorKind and Errors are set only when Status is not SUCCESS.
	ErrorKind domain.ErrorKind
	Errors    []domain.FieldError
}

// view converts a stored medicine into its result projection.
func (s *Service) view(m domain.Medicine, now time.Time) MedicineView {
	return MedicineView{
		ID:          m.ID,
		Name:        m.Name,
		Quantity:    m.Quantity,
		Unit:        m.Unit,
		ExpiryDate:  m.ExpiryDate,
		Location:    m.Location,
		AddedByName: m.AddedByName,
		Warnings:    s.alerts.Evaluate(m, now),
	}
}

// successResult wraps a single-medicine outcome.
func successResult(intent domain.Intent, mv MedicineView) Result {
	return Result{
		Status:   domain.StatusSuccess,
		Intent:   intent,
		Medicine: &mv,
		Warnings: mv.Warnings,
	}
}

// errorResult maps err onto the structured result. Validation failures ask
// the user to restate rather than reporting a hard error.
func errorResult(intent domain.Intent, err error) Result {
	res := Result{
		Status:    domain.StatusError,
		Intent:    intent,
		ErrorKind: domain.KindOf(err),
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		res.Status = domain.StatusNeedsClarification
		res.Errors = verr.Errors
	}
	return res
}
