package categorizer

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

//go:embed rules.yaml
var defaultRulesYAML string

var ErrInvalidRules = errors.New("invalid category rules")

// Rule maps a category to the keywords that select it. Reference is the smaller
// keyword set used to score confidence.
type Rule struct {
	Category  ledger.Category
	Keywords  []string
	Reference []string

	pattern *regexp.Regexp
}

type ruleFile struct {
	Rules []struct {
		Category  string   `yaml:"category"`
		Keywords  []string `yaml:"keywords"`
		Reference []string `yaml:"reference"`
	} `yaml:"rules"`
}

// Matches reports whether any keyword occurs in the lower-cased text.
func (r Rule) Matches(lowered string) bool {
	return r.pattern.MatchString(lowered)
}

// ParseRules reads an ordered rule table from YAML.
func ParseRules(r io.Reader) ([]Rule, error) {
	var file ruleFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("%w: no rules", ErrInvalidRules)
	}

	seen := make(map[ledger.Category]bool, len(file.Rules))
	rules := make([]Rule, 0, len(file.Rules))
	for i, raw := range file.Rules {
		category, err := ledger.ParseCategory(raw.Category)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: %v", ErrInvalidRules, i, err)
		}
		if category == ledger.CategoryOther {
			return nil, fmt.Errorf("%w: rule %d: %q is the fallback and takes no keywords", ErrInvalidRules, i, category)
		}
		if seen[category] {
			return nil, fmt.Errorf("%w: rule %d: duplicate category %q", ErrInvalidRules, i, category)
		}
		seen[category] = true

		keywords := normalizeKeywords(raw.Keywords)
		if len(keywords) == 0 {
			return nil, fmt.Errorf("%w: rule %d: %q has no keywords", ErrInvalidRules, i, category)
		}

		quoted := make([]string, len(keywords))
		for j, k := range keywords {
			quoted[j] = regexp.QuoteMeta(k)
		}

		rules = append(rules, Rule{
			Category:  category,
			Keywords:  keywords,
			Reference: normalizeKeywords(raw.Reference),
			pattern:   regexp.MustCompile(strings.Join(quoted, "|")),
		})
	}
	return rules, nil
}

func normalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

func defaultRules() []Rule {
	rules, err := ParseRules(strings.NewReader(defaultRulesYAML))
	if err != nil {
		panic(err)
	}
	return rules
}
