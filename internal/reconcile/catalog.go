package reconcile

import (
	"fmt"
	"strings"
)

// CategoryRule ties a questionnaire category to its canonical section
// key and the lowercase keyword fragments used to claim untagged
// documents for the category. The rules are static configuration, not
// computed state.
type CategoryRule struct {
	Category   string
	SectionKey string
	Keywords   []string
}

// Catalog is the ordered set of category rules. It is validated once
// at startup; the reconciler assumes a valid catalog afterwards.
type Catalog []CategoryRule

// Validate checks structural invariants: non-empty category names and
// section keys, no duplicate categories, and strictly lowercase
// keywords (matching is done against lower-cased document names, so an
// uppercase keyword could never match and is a configuration mistake).
func (c Catalog) Validate() error {
	seen := make(map[string]bool, len(c))
	for i, rule := range c {
		if strings.TrimSpace(rule.Category) == "" {
			return fmt.Errorf("catalog rule %d: empty category", i)
		}
		if strings.TrimSpace(rule.SectionKey) == "" {
			return fmt.Errorf("catalog rule %d (%s): empty section key", i, rule.Category)
		}
		if seen[rule.Category] {
			return fmt.Errorf("catalog rule %d: duplicate category %q", i, rule.Category)
		}
		seen[rule.Category] = true
		for _, kw := range rule.Keywords {
			if kw == "" || kw != strings.ToLower(kw) {
				return fmt.Errorf("catalog rule %d (%s): keyword %q must be non-empty lowercase", i, rule.Category, kw)
			}
		}
	}
	return nil
}

// RuleFor returns the rule for a category display name.
func (c Catalog) RuleFor(category string) (CategoryRule, bool) {
	for _, rule := range c {
		if rule.Category == category {
			return rule, true
		}
	}
	return CategoryRule{}, false
}

// DefaultCatalog covers the standard CRA checklist categories used by
// the intake questionnaire template.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			Category:   "Employment Income",
			SectionKey: "employment",
			Keywords:   []string{"t4", "salary", "pay", "employment", "wage"},
		},
		{
			Category:   "Self-Employment",
			SectionKey: "self_employment",
			Keywords:   []string{"t2125", "business", "invoice", "contract", "gst"},
		},
		{
			Category:   "Investment Income",
			SectionKey: "investment",
			Keywords:   []string{"t5", "t3", "dividend", "interest", "brokerage", "capital"},
		},
		{
			Category:   "Medical Expenses",
			SectionKey: "medical",
			Keywords:   []string{"medical", "hospital", "health", "pharmacy", "dental", "prescription"},
		},
		{
			Category:   "Charitable Donations",
			SectionKey: "donations",
			Keywords:   []string{"donation", "charity", "charitable"},
		},
		{
			Category:   "Tuition & Education",
			SectionKey: "tuition",
			Keywords:   []string{"t2202", "tuition", "education", "student"},
		},
		{
			Category:   "Rental Income",
			SectionKey: "rental",
			Keywords:   []string{"rental", "rent", "lease", "tenant"},
		},
		{
			Category:   "RRSP & Pension",
			SectionKey: "rrsp",
			Keywords:   []string{"rrsp", "pension", "t4a", "retirement"},
		},
	}
}
