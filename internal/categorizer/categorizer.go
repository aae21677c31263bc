// Package categorizer suggests a category for a free-text expense description
// using an ordered keyword table.
package categorizer

import (
	"io"
	"math"
	"strings"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

const maxConfidence = 95

// Categorizer classifies descriptions. It is safe for concurrent use.
type Categorizer struct {
	rules []Rule
}

// New returns a Categorizer backed by the built-in rule table.
func New() *Categorizer {
	return &Categorizer{rules: defaultRules()}
}

// Load returns a Categorizer backed by a YAML rule table.
func Load(r io.Reader) (*Categorizer, error) {
	rules, err := ParseRules(r)
	if err != nil {
		return nil, err
	}
	return &Categorizer{rules: rules}, nil
}

// Rules returns the table in evaluation order.
func (c *Categorizer) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Suggest returns the first category whose keywords occur in the description,
// or other when none do.
func (c *Categorizer) Suggest(description string) ledger.Category {
	lowered := strings.ToLower(description)
	for _, rule := range c.rules {
		if rule.Matches(lowered) {
			return rule.Category
		}
	}
	return ledger.CategoryOther
}

// Confidence scores how strongly the description points at category, from 0 to 95.
// Each reference keyword found adds a third; other always scores 0.
func (c *Categorizer) Confidence(description string, category ledger.Category) float64 {
	rule, ok := c.rule(category)
	if !ok || len(rule.Reference) == 0 {
		return 0
	}

	lowered := strings.ToLower(description)
	matches := 0
	for _, keyword := range rule.Reference {
		if strings.Contains(lowered, keyword) {
			matches++
		}
	}
	return math.Min(float64(matches)/3*100, maxConfidence)
}

// Suggestion bundles a suggested category with its confidence.
type Suggestion struct {
	Category   ledger.Category
	Confidence float64
}

// Suggestion runs Suggest and scores the result.
func (c *Categorizer) Suggestion(description string) Suggestion {
	category := c.Suggest(description)
	return Suggestion{
		Category:   category,
		Confidence: c.Confidence(description, category),
	}
}

func (c *Categorizer) rule(category ledger.Category) (Rule, bool) {
	for _, rule := range c.rules {
		if rule.Category == category {
			return rule, true
		}
	}
	return Rule{}, false
}
