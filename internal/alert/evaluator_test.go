package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	e := New(3, 30)

	date := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	tests := []struct {
		name string
		med  domain.Medicine
		want []domain.WarningTag
	}{
		{
			name: "healthy stock no expiry",
			med:  domain.Medicine{Quantity: 10},
			want: nil,
		},
		{
			name: "below threshold",
			med:  domain.Medicine{Quantity: 2},
			want: []domain.WarningTag{domain.WarningLowStock},
		},
		{
			name: "at threshold is fine",
			med:  domain.Medicine{Quantity: 3},
			want: nil,
		},
		{
			name: "zero stock",
			med:  domain.Medicine{Quantity: 0},
			want: []domain.WarningTag{domain.WarningLowStock},
		},
		{
			name: "expiring within window",
			med:  domain.Medicine{Quantity: 10, ExpiryDate: date(2026, time.February, 1)},
			want: []domain.WarningTag{domain.WarningExpiringSoon},
		},
		{
			name: "expiring outside window",
			med:  domain.Medicine{Quantity: 10, ExpiryDate: date(2026, time.June, 1)},
			want: nil,
		},
		{
			name: "already expired",
			med:  domain.Medicine{Quantity: 10, ExpiryDate: date(2025, time.December, 1)},
			want: []domain.WarningTag{domain.WarningExpired},
		},
		{
			name: "low stock and expired stack",
			med:  domain.Medicine{Quantity: 1, ExpiryDate: date(2025, time.December, 1)},
			want: []domain.WarningTag{domain.WarningLowStock, domain.WarningExpired},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, e.Evaluate(tt.med, now))
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	e := New(0, -5)
	assert.Equal(t, DefaultLowStockThreshold, e.lowStockThreshold)
	assert.Equal(t, DefaultExpiryWarningDays, e.expiryWarningDays)
}
