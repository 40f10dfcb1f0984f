// Package parser turns free-form chat messages into classified inventory
// commands. Classification is rule-based: each intent category owns an
// ordered list of regexp rules, and categories are tried in a fixed
// priority order (Add > Use > Search > ListAll). The first rule that fully
// captures its fields wins; anything else falls through to the next rule,
// and text matching no rule classifies as IntentUnknown.
package parser

import (
	"strings"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

// Command holds a classified intent plus the raw captured field strings.
// Values are untyped text exactly as matched; NormalizeFields converts
// them into validated typed values.
type Command struct {
	Intent   domain.Intent
	Raw      string
	Name     string
	Quantity string
	Unit     string
	Expiry   string
	Location string
}

// Parser classifies messages against the built-in rule set.
type Parser struct {
	categories []category
}

// New creates a Parser with the default rule set.
func New() *Parser {
	return &Parser{
		categories: []category{
			addCategory(),
			useCategory(),
			searchCategory(),
			listCategory(),
		},
	}
}

// Parse classifies text and extracts raw fields. It never fails: text that
// matches no rule yields a Command with IntentUnknown, which callers treat
// as "ask the user to clarify", not as an error.
func (p *Parser) Parse(text string) Command {
	raw := strings.TrimSpace(text)
	lower := strings.ToLower(raw)

	for _, cat := range p.categories {
		if !cat.looksLike(lower) {
			continue
		}
		for _, r := range cat.rules {
			m := r.re.FindStringSubmatch(lower)
			if m == nil {
				continue
			}
			cmd := Command{Intent: cat.intent, Raw: raw}
			if !r.extract(m, &cmd) {
				continue
			}
			if cat.intent == domain.IntentAdd {
				cmd.Expiry = extractExpiry(lower)
				cmd.Location = extractLocation(lower)
			}
			return cmd
		}
	}

	return Command{Intent: domain.IntentUnknown, Raw: raw}
}
