package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

func TestParse_Classification(t *testing.T) {
	t.Parallel()

	p := New()

	tests := []struct {
		name string
		text string
		want Command
	}{
		{
			name: "plus shorthand",
			text: "+Napa 10",
			want: Command{Intent: domain.IntentAdd, Name: "napa", Quantity: "10"},
		},
		{
			name: "bought with unit",
			text: "Bought Napa Extra 10 tablets",
			want: Command{Intent: domain.IntentAdd, Name: "napa extra", Quantity: "10", Unit: "tablets"},
		},
		{
			name: "got without quantity",
			text: "Got paracetamol",
			want: Command{Intent: domain.IntentAdd, Name: "paracetamol"},
		},
		{
			name: "quantity first",
			text: "10 Napa",
			want: Command{Intent: domain.IntentAdd, Name: "napa", Quantity: "10"},
		},
		{
			name: "added with comma",
			text: "Added Seclo, 14 capsules",
			want: Command{Intent: domain.IntentAdd, Name: "seclo", Quantity: "14", Unit: "capsules"},
		},
		{
			name: "minus shorthand",
			text: "-Napa 2",
			want: Command{Intent: domain.IntentUse, Name: "napa", Quantity: "2"},
		},
		{
			name: "used quantity first",
			text: "Used 2 Napa",
			want: Command{Intent: domain.IntentUse, Name: "napa", Quantity: "2"},
		},
		{
			name: "used name first",
			text: "Used Napa 2",
			want: Command{Intent: domain.IntentUse, Name: "napa", Quantity: "2"},
		},
		{
			name: "took some",
			text: "Took some Napa",
			want: Command{Intent: domain.IntentUse, Name: "napa"},
		},
		{
			name: "question mark search",
			text: "?Napa",
			want: Command{Intent: domain.IntentSearch, Name: "napa"},
		},
		{
			name: "do we have",
			text: "Do we have Napa Extra",
			want: Command{Intent: domain.IntentSearch, Name: "napa extra"},
		},
		{
			name: "check verb",
			text: "Check Napa",
			want: Command{Intent: domain.IntentSearch, Name: "napa"},
		},
		{
			name: "question mark all is a list",
			text: "?all",
			want: Command{Intent: domain.IntentListAll},
		},
		{
			name: "show all is a list",
			text: "Show all",
			want: Command{Intent: domain.IntentListAll},
		},
		{
			name: "what do we have",
			text: "What do we have",
			want: Command{Intent: domain.IntentListAll},
		},
		{
			name: "list keyword",
			text: "list",
			want: Command{Intent: domain.IntentListAll},
		},
		{
			name: "inventory keyword",
			text: "inventory",
			want: Command{Intent: domain.IntentListAll},
		},
		{
			name: "small talk is unknown",
			text: "good morning everyone",
			want: Command{Intent: domain.IntentUnknown},
		},
		{
			name: "gibberish is unknown",
			text: "xjqwv zzkp",
			want: Command{Intent: domain.IntentUnknown},
		},
		{
			name: "empty is unknown",
			text: "   ",
			want: Command{Intent: domain.IntentUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := p.Parse(tt.text)
			tt.want.Raw = got.Raw

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_ExpiryAndLocation(t *testing.T) {
	t.Parallel()

	p := New()

	t.Run("expires month year", func(t *testing.T) {
		t.Parallel()

		got := p.Parse("Bought Napa 10 expires March 2026")

		assert.Equal(t, domain.IntentAdd, got.Intent)
		assert.Equal(t, "napa", got.Name)
		assert.Equal(t, "10", got.Quantity)
		assert.Equal(t, "march 2026", got.Expiry)
	})

	t.Run("exp slash date", func(t *testing.T) {
		t.Parallel()

		got := p.Parse("+Napa 10 exp: 12/2025")

		assert.Equal(t, domain.IntentAdd, got.Intent)
		assert.Equal(t, "12/2025", got.Expiry)
	})

	t.Run("iso month", func(t *testing.T) {
		t.Parallel()

		got := p.Parse("Added Monas 14, expiry 2026-04")

		assert.Equal(t, domain.IntentAdd, got.Intent)
		assert.Equal(t, "2026-04", got.Expiry)
	})

	t.Run("location in cabinet", func(t *testing.T) {
		t.Parallel()

		got := p.Parse("Bought Napa 10 in medicine cabinet")

		assert.Equal(t, domain.IntentAdd, got.Intent)
		assert.Equal(t, "medicine cabinet", got.Location)
	})

	t.Run("no expiry on use", func(t *testing.T) {
		t.Parallel()

		got := p.Parse("Used 2 Napa")

		assert.Empty(t, got.Expiry)
		assert.Empty(t, got.Location)
	})
}
