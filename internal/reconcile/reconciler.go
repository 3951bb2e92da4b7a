package reconcile

import (
	"strings"

	"github.com/iliyamo/tax-portal/internal/model"
)

// Category status labels shown in the dashboard.
const (
	StatusComplete   = "Complete"
	StatusIncomplete = "Incomplete"
	StatusInReview   = "In Review"
)

// Matcher decides whether an uploaded document satisfies one
// required-document name. It is an interface so the loose heuristic
// below can later be swapped for exact section-key matching without
// touching the tally logic.
type Matcher interface {
	Matches(requiredName, docName string) bool
}

// TokenMatcher is the compatibility heuristic: the lower-cased first
// whitespace-delimited token of the required name must appear as a
// substring of the lower-cased document name. "Form 16 (Salary)" →
// token "form". Deliberately loose: it trades precision for recall
// against free-text file names.
type TokenMatcher struct{}

func (TokenMatcher) Matches(requiredName, docName string) bool {
	fields := strings.Fields(strings.ToLower(requiredName))
	if len(fields) == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(docName), fields[0])
}

// CompletionStats are the derived tallies for one category or the
// whole checklist. They are recomputed from documents + questionnaire
// on every request and never persisted.
type CompletionStats struct {
	TotalRequired int `json:"total_required"`
	TotalUploaded int `json:"total_uploaded"`
	TotalApproved int `json:"total_approved"`
	TotalPending  int `json:"total_pending"`
	TotalMissing  int `json:"total_missing"`
}

func (s *CompletionStats) add(o CompletionStats) {
	s.TotalRequired += o.TotalRequired
	s.TotalUploaded += o.TotalUploaded
	s.TotalApproved += o.TotalApproved
	s.TotalPending += o.TotalPending
	s.TotalMissing += o.TotalMissing
}

// Slot is one required-document requirement from a yes-answered
// question, together with the document that satisfies it (nil when
// none does).
type Slot struct {
	RequiredDocument string          `json:"required_document"`
	Document         *model.Document `json:"document,omitempty"`
}

// CategoryResult is the reconciliation outcome for one applicable
// category.
type CategoryResult struct {
	Category string          `json:"category"`
	Status   string          `json:"status"`
	Slots    []Slot          `json:"slots"`
	Stats    CompletionStats `json:"stats"`
}

// Result is the full reconciliation outcome: one entry per applicable
// category plus the aggregate tallies.
type Result struct {
	Categories []CategoryResult `json:"categories"`
	Totals     CompletionStats  `json:"totals"`
}

// Reconciler matches documents to required-document slots using a
// validated catalog and a pluggable matcher.
type Reconciler struct {
	catalog Catalog
	matcher Matcher
}

// New builds a Reconciler with the token heuristic as matcher.
func New(catalog Catalog) *Reconciler {
	return &Reconciler{catalog: catalog, matcher: TokenMatcher{}}
}

// NewWithMatcher builds a Reconciler with a custom matching strategy.
func NewWithMatcher(catalog Catalog, m Matcher) *Reconciler {
	return &Reconciler{catalog: catalog, matcher: m}
}

// Reconcile computes, for each applicable category (at least one yes
// answer), which required documents are satisfied and the completion
// tallies. Categories with no yes answers contribute nothing.
//
// Matched documents are bucketed by their own status: approved counts
// as approved, a "missing" placeholder counts as missing, everything
// else (pending, complete, reupload_requested) counts as pending
// review. A required name with no match at all adds one more to the
// missing tally, and a slot that is both unmatched in the first pass and
// backed by a missing placeholder in another can therefore weigh
// twice. That arithmetic is long-standing observed behavior the
// dashboard depends on; do not "fix" it here.
func (r *Reconciler) Reconcile(docs []model.Document, categories []model.QuestionCategory) Result {
	var res Result
	for _, cat := range categories {
		if !cat.Applicable() {
			continue
		}
		cr := r.reconcileCategory(docs, cat)
		res.Totals.add(cr.Stats)
		res.Categories = append(res.Categories, cr)
	}
	return res
}

func (r *Reconciler) reconcileCategory(docs []model.Document, cat model.QuestionCategory) CategoryResult {
	cr := CategoryResult{Category: cat.Category}

	// Candidate documents for this category: tagged with its section
	// key or claimed by a keyword hit. When neither strategy
	// correlates any document, fall back to the client's full set so
	// the per-slot heuristic still gets a chance.
	candidates := r.documentsForCategory(docs, cat.Category)
	if len(candidates) == 0 {
		candidates = docs
	}

	for _, q := range cat.Questions {
		if q.Answer != model.AnswerYes {
			continue
		}
		for _, required := range q.RequiredDocuments {
			cr.Stats.TotalRequired++
			slot := Slot{RequiredDocument: required}
			if doc := r.matchSlot(candidates, required); doc != nil {
				slot.Document = doc
				cr.Stats.TotalUploaded++
				switch doc.Status {
				case model.DocApproved:
					cr.Stats.TotalApproved++
				case model.DocMissing:
					cr.Stats.TotalMissing++
				default:
					cr.Stats.TotalPending++
				}
			} else {
				// A slot with no document at all also counts as
				// missing.
				cr.Stats.TotalMissing++
			}
			cr.Slots = append(cr.Slots, slot)
		}
	}

	switch {
	case cr.Stats.TotalMissing == 0 && cr.Stats.TotalPending == 0 && cr.Stats.TotalRequired > 0:
		cr.Status = StatusComplete
	case cr.Stats.TotalMissing > 0:
		cr.Status = StatusIncomplete
	default:
		cr.Status = StatusInReview
	}
	return cr
}

// documentsForCategory assembles the category's document set: exact
// section-key matches plus any document whose name contains one of the
// category's keywords, section tag or not.
func (r *Reconciler) documentsForCategory(docs []model.Document, category string) []model.Document {
	rule, ok := r.catalog.RuleFor(category)
	if !ok {
		return nil
	}
	var out []model.Document
	for _, d := range docs {
		if d.SectionKey == rule.SectionKey {
			out = append(out, d)
			continue
		}
		name := strings.ToLower(d.Name)
		for _, kw := range rule.Keywords {
			if strings.Contains(name, kw) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// matchSlot returns the first candidate satisfying the required name,
// or nil.
func (r *Reconciler) matchSlot(candidates []model.Document, required string) *model.Document {
	for i := range candidates {
		if r.matcher.Matches(required, candidates[i].Name) {
			return &candidates[i]
		}
	}
	return nil
}
