package parser

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

// Fields are the typed, validated values extracted from a Command.
// Nil pointers mean "not supplied".
type Fields struct {
	Name     string
	Quantity *int
	Unit     *string
	Expiry   *time.Time
	Location *string
}

// DefaultUnit is used when an add supplies no unit.
const DefaultUnit = "tablets"

// expiryLayouts are the accepted calendar-date phrasings, tried in order.
// Month-only dates normalize to the first day of the month.
var expiryLayouts = []string{
	"January 2006",
	"Jan 2006",
	"2/1/2006",
	"02/01/2006",
	"1/2006",
	"01/2006",
	"1-2006",
	"2006-01",
}

// NormalizeFields converts the raw captured strings of a Command into typed
// values. It is a pure transform: no I/O, no side effects. All failures are
// field-tagged domain.ValidationErrors.
func NormalizeFields(cmd Command) (Fields, error) {
	var f Fields

	if cmd.Intent == domain.IntentListAll || cmd.Intent == domain.IntentUnknown {
		return f, nil
	}

	var errs []domain.FieldError

	name, ok := normalizeName(cmd.Name)
	if !ok {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	f.Name = name

	switch cmd.Intent {
	case domain.IntentAdd:
		if cmd.Quantity == "" {
			errs = append(errs, domain.FieldError{Field: "quantity", Message: "required"})
		}
	case domain.IntentUse:
		if cmd.Quantity == "" {
			one := 1
			f.Quantity = &one
		}
	}

	if cmd.Quantity != "" {
		qty, err := strconv.Atoi(cmd.Quantity)
		switch {
		case err != nil:
			errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be a whole number"})
		case qty <= 0:
			errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be positive"})
		default:
			f.Quantity = &qty
		}
	}

	if cmd.Unit != "" {
		unit := CanonicalUnit(cmd.Unit)
		f.Unit = &unit
	}

	if cmd.Expiry != "" {
		expiry, ok := parseExpiry(cmd.Expiry)
		if !ok {
			errs = append(errs, domain.FieldError{Field: "expiry", Message: "unrecognized date"})
		} else {
			f.Expiry = &expiry
		}
	}

	if cmd.Location != "" {
		loc := titleCase(collapseSpaces(cmd.Location))
		f.Location = &loc
	}

	if len(errs) > 0 {
		return Fields{}, domain.NewValidationErrors(errs)
	}
	return f, nil
}

// unitAliases maps raw unit spellings to their canonical form.
var unitAliases = map[string]string{
	"tablet": "tablets", "tablets": "tablets", "tab": "tablets", "tabs": "tablets",
	"capsule": "capsules", "capsules": "capsules", "cap": "capsules", "caps": "capsules",
	"ml": "ml", "milliliter": "ml", "milliliters": "ml",
	"mg": "mg", "milligram": "mg", "milligrams": "mg",
	"strip": "strips", "strips": "strips",
	"bottle": "bottles", "bottles": "bottles",
	"piece": "pieces", "pieces": "pieces", "pcs": "pieces", "pc": "pieces",
}

// CanonicalUnit maps a raw unit word to its canonical plural form.
// Unrecognized units fall back to DefaultUnit.
func CanonicalUnit(raw string) string {
	if unit, ok := unitAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return unit
	}
	return DefaultUnit
}

// normalizeName trims, collapses whitespace, and title-cases a captured
// name. Returns false for names that are empty or contain no printable
// letters or digits.
func normalizeName(raw string) (string, bool) {
	name := collapseSpaces(raw)
	if name == "" {
		return "", false
	}
	printable := false
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			printable = true
			break
		}
	}
	if !printable {
		return "", false
	}
	return titleCase(name), true
}

func parseExpiry(raw string) (time.Time, bool) {
	cand := titleCase(collapseSpaces(raw))
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, cand); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// titleCase uppercases the first letter of each space-separated word and
// lowercases the rest ("napa extra" -> "Napa Extra").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
