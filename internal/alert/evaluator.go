// Package alert derives stock and expiry warnings for medicines.
package alert

import (
	"time"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

// Default thresholds, used when configuration supplies none.
const (
	DefaultLowStockThreshold = 3
	DefaultExpiryWarningDays = 30
)

// Evaluator checks medicines against configured stock and expiry limits.
// It is pure: the caller supplies the reference time.
type Evaluator struct {
	lowStockThreshold int
	expiryWarningDays int
}

func New(lowStockThreshold, expiryWarningDays int) *Evaluator {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	if expiryWarningDays <= 0 {
		expiryWarningDays = DefaultExpiryWarningDays
	}
	return &Evaluator{
		lowStockThreshold: lowStockThreshold,
		expiryWarningDays: expiryWarningDays,
	}
}

// Evaluate returns the warnings that apply to m at the given time. Order is
// stable: stock warnings before expiry warnings. Expired and ExpiringSoon
// are mutually exclusive; a medicine without an expiry date never yields
// expiry warnings.
func (e *Evaluator) Evaluate(m domain.Medicine, now time.Time) []domain.WarningTag {
	var tags []domain.WarningTag

	if m.Quantity < e.lowStockThreshold {
		tags = append(tags, domain.WarningLowStock)
	}

	if m.ExpiryDate != nil {
		switch {
		case !m.ExpiryDate.After(now):
			tags = append(tags, domain.WarningExpired)
		case m.ExpiryDate.Before(now.AddDate(0, 0, e.expiryWarningDays)):
			tags = append(tags, domain.WarningExpiringSoon)
		}
	}

	return tags
}

// EvaluateAll maps Evaluate over a cabinet listing, keyed by medicine ID
// string. Medicines with no warnings are omitted.
func (e *Evaluator) EvaluateAll(ms []domain.Medicine, now time.Time) map[string][]domain.WarningTag {
	out := make(map[string][]domain.WarningTag)
	for _, m := range ms {
		if tags := e.Evaluate(m, now); len(tags) > 0 {
			out[m.ID.String()] = tags
		}
	}
	return out
}
