package parser

import (
	"regexp"
	"strings"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

// category is one intent's guard plus its ordered rule list. The guard is a
// cheap pre-check that the text plausibly belongs to the category; rules do
// the actual capturing. A rule either fully captures the fields it promises
// (extract returns true) or the classifier proceeds to the next rule.
type category struct {
	intent    domain.Intent
	looksLike func(lower string) bool
	rules     []rule
}

type rule struct {
	re      *regexp.Regexp
	extract func(m []string, cmd *Command) bool
}

// nameExpr matches a one- or two-word medicine name.
const nameExpr = `(\w+(?:\s+\w+)?)`

// ---------------------------------------------------------------------------
// Add: "+Napa 10", "Bought Napa Extra 10 tablets", "10 Napa", "Got paracetamol"
// ---------------------------------------------------------------------------

var (
	addKeywords   = []string{"bought", "got", "purchase", "add"}
	leadingQtyRe  = regexp.MustCompile(`^\d+\s+\w`)
	addPlusRe     = regexp.MustCompile(`^\+\s*` + nameExpr + `\s+(\d+)`)
	addVerbQtyRe  = regexp.MustCompile(`(?:bought|got|purchased?|add(?:ed)?)\s+` + nameExpr + `,?\s*(\d+)(?:\s+(\w+))?`)
	addQtyFirstRe = regexp.MustCompile(`^(\d+)\s+` + nameExpr)
	addVerbOnlyRe = regexp.MustCompile(`(?:bought|got|purchased?|add(?:ed)?)\s+` + nameExpr)
)

func addCategory() category {
	return category{
		intent: domain.IntentAdd,
		looksLike: func(lower string) bool {
			return strings.HasPrefix(lower, "+") ||
				containsAny(lower, addKeywords) ||
				leadingQtyRe.MatchString(lower)
		},
		rules: []rule{
			{addPlusRe, func(m []string, cmd *Command) bool {
				cmd.Name, cmd.Quantity = m[1], m[2]
				return true
			}},
			{addVerbQtyRe, func(m []string, cmd *Command) bool {
				cmd.Name, cmd.Quantity, cmd.Unit = m[1], m[2], m[3]
				return true
			}},
			{addQtyFirstRe, func(m []string, cmd *Command) bool {
				cmd.Quantity, cmd.Name = m[1], m[2]
				return true
			}},
			{addVerbOnlyRe, func(m []string, cmd *Command) bool {
				// Quantity deliberately left empty: the normalizer rejects
				// an Add without a quantity so the caller can ask for one.
				cmd.Name = m[1]
				return true
			}},
		},
	}
}

// ---------------------------------------------------------------------------
// Use: "-Napa 2", "Used 2 Napa", "Used Napa 2", "Took some Napa"
// ---------------------------------------------------------------------------

var (
	useKeywords   = []string{"used", "took", "consume"}
	useMinusRe    = regexp.MustCompile(`^-\s*` + nameExpr + `\s+(\d+)`)
	useQtyFirstRe = regexp.MustCompile(`(?:used|took|consumed?)\s+(\d+)\s+` + nameExpr)
	useNameQtyRe  = regexp.MustCompile(`(?:used|took|consumed?)\s+` + nameExpr + `,?\s*(\d+)`)
	useNameOnlyRe = regexp.MustCompile(`(?:used|took|consumed?)\s+(?:some\s+)?` + nameExpr)
)

func useCategory() category {
	return category{
		intent: domain.IntentUse,
		looksLike: func(lower string) bool {
			return strings.HasPrefix(lower, "-") || containsAny(lower, useKeywords)
		},
		rules: []rule{
			{useMinusRe, func(m []string, cmd *Command) bool {
				cmd.Name, cmd.Quantity = m[1], m[2]
				return true
			}},
			{useQtyFirstRe, func(m []string, cmd *Command) bool {
				cmd.Quantity, cmd.Name = m[1], m[2]
				return true
			}},
			{useNameQtyRe, func(m []string, cmd *Command) bool {
				cmd.Name, cmd.Quantity = m[1], m[2]
				return true
			}},
			{useNameOnlyRe, func(m []string, cmd *Command) bool {
				// No quantity captured: the normalizer defaults Use to 1.
				cmd.Name = m[1]
				return true
			}},
		},
	}
}

// ---------------------------------------------------------------------------
// Search: "?Napa", "Do we have Napa", "Check Napa", "Have we got Napa"
// ---------------------------------------------------------------------------

var (
	searchKeywords  = []string{"have", "check", "search", "find", "show"}
	searchMarkRe    = regexp.MustCompile(`^\?\s*` + nameExpr)
	searchDoWeRe    = regexp.MustCompile(`do\s+we\s+have\s+` + nameExpr)
	searchVerbRe    = regexp.MustCompile(`(?:check|search|find|show)\s+` + nameExpr)
	searchHaveGotRe = regexp.MustCompile(`have\s+(?:we\s+)?(?:got\s+)?` + nameExpr)
)

// reservedNames are words that address the whole cabinet, not one medicine.
// A search rule that captures one of these rejects the match so the text can
// classify as a list command instead ("?all", "show everything").
var reservedNames = map[string]bool{
	"all":        true,
	"everything": true,
	"medicine":   true,
	"medicines":  true,
	"inventory":  true,
}

func searchExtract(m []string, cmd *Command) bool {
	first, _, _ := strings.Cut(m[1], " ")
	if reservedNames[first] {
		return false
	}
	cmd.Name = m[1]
	return true
}

func searchCategory() category {
	return category{
		intent: domain.IntentSearch,
		looksLike: func(lower string) bool {
			return strings.HasPrefix(lower, "?") || containsAny(lower, searchKeywords)
		},
		rules: []rule{
			{searchMarkRe, searchExtract},
			{searchDoWeRe, searchExtract},
			{searchVerbRe, searchExtract},
			{searchHaveGotRe, searchExtract},
		},
	}
}

// ---------------------------------------------------------------------------
// ListAll: "?all", "list", "show all", "what do we have", "inventory"
// ---------------------------------------------------------------------------

var listKeywords = []string{
	"?all",
	"list",
	"show all",
	"show everything",
	"list all",
	"list medicines",
	"show medicines",
	"what do we have",
	"inventory",
}

var listAnyRe = regexp.MustCompile(`.*`)

func listCategory() category {
	return category{
		intent: domain.IntentListAll,
		looksLike: func(lower string) bool {
			for _, kw := range listKeywords {
				if lower == kw || strings.HasPrefix(lower, kw) {
					return true
				}
			}
			return false
		},
		rules: []rule{
			{listAnyRe, func(_ []string, _ *Command) bool { return true }},
		},
	}
}

// ---------------------------------------------------------------------------
// Expiry and location extraction (Add only)
// ---------------------------------------------------------------------------

var expiryRes = []*regexp.Regexp{
	regexp.MustCompile(`expire[sd]?\s+([a-z]+\s+\d{4})`),
	regexp.MustCompile(`expiry[:\s]+([a-z]+\s+\d{4})`),
	regexp.MustCompile(`exp[:\s]+(\d{1,2}[/-]\d{4})`),
	regexp.MustCompile(`(\d{4}-\d{2})`),
}

var locationRe = regexp.MustCompile(`(?:in|at|location[:\s]+)\s+([a-z ]+(?:drawer|cabinet|room|shelf|box))`)

func extractExpiry(lower string) string {
	for _, re := range expiryRes {
		if m := re.FindStringSubmatch(lower); m != nil {
			return m[1]
		}
	}
	return ""
}

func extractLocation(lower string) string {
	if m := locationRe.FindStringSubmatch(lower); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
