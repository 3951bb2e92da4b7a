package reconcile

import (
	"testing"

	"github.com/iliyamo/tax-portal/internal/model"
)

func yesCategory(name string, questions ...model.Question) model.QuestionCategory {
	return model.QuestionCategory{Category: name, Questions: questions}
}

func yesQuestion(key string, required ...string) model.Question {
	return model.Question{Key: key, Answer: model.AnswerYes, RequiredDocuments: required}
}

func TestTokenMatcher(t *testing.T) {
	m := TokenMatcher{}
	cases := []struct {
		required string
		doc      string
		want     bool
	}{
		{"T4 Slip", "My T4 Slip 2024.pdf", true},
		{"T4 Slip", "Receipt.pdf", false},
		{"Form 16 (Salary)", "form 16 salary.pdf", true},
		{"Donation Receipts", "CharityDonation2024.PDF", true},
		{"Medical Receipts", "pharmacy-invoice.jpg", false},
		{"", "anything.pdf", false},
	}
	for _, tc := range cases {
		if got := m.Matches(tc.required, tc.doc); got != tc.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tc.required, tc.doc, got, tc.want)
		}
	}
}

func TestReconcileEndToEnd(t *testing.T) {
	rec := New(DefaultCatalog())
	docs := []model.Document{
		{ID: 1, ClientID: 1, Name: "Form 16 Salary.pdf", Status: model.DocPending},
	}
	cats := []model.QuestionCategory{
		yesCategory("Employment Income", yesQuestion("employment_t4", "Form 16")),
	}

	res := rec.Reconcile(docs, cats)
	if len(res.Categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(res.Categories))
	}
	cr := res.Categories[0]
	want := CompletionStats{TotalRequired: 1, TotalUploaded: 1, TotalPending: 1}
	if cr.Stats != want {
		t.Fatalf("stats = %+v, want %+v", cr.Stats, want)
	}
	if cr.Status != StatusInReview {
		t.Fatalf("status = %q, want %q", cr.Status, StatusInReview)
	}
}

func TestReconcileCompletionMath(t *testing.T) {
	rec := New(DefaultCatalog())
	docs := []model.Document{
		{ID: 1, ClientID: 1, Name: "T4 Slip 2024.pdf", Status: model.DocApproved, SectionKey: "employment"},
	}
	cats := []model.QuestionCategory{
		yesCategory("Employment Income",
			yesQuestion("employment_t4", "T4 Slip"),
			yesQuestion("employment_other", "Income Summary"),
		),
	}

	res := rec.Reconcile(docs, cats)
	cr := res.Categories[0]
	if cr.Stats.TotalRequired != 2 {
		t.Fatalf("TotalRequired = %d, want 2", cr.Stats.TotalRequired)
	}
	if cr.Stats.TotalApproved != 1 {
		t.Fatalf("TotalApproved = %d, want 1", cr.Stats.TotalApproved)
	}
	if cr.Stats.TotalMissing != 1 {
		t.Fatalf("TotalMissing = %d, want 1", cr.Stats.TotalMissing)
	}
	if cr.Status != StatusIncomplete {
		t.Fatalf("status = %q, want %q", cr.Status, StatusIncomplete)
	}
}

func TestReconcileSkipsInapplicableCategories(t *testing.T) {
	rec := New(DefaultCatalog())
	cats := []model.QuestionCategory{
		{Category: "Medical Expenses", Questions: []model.Question{
			{Key: "medical_receipts", Answer: model.AnswerNo, RequiredDocuments: []string{"Medical Receipts"}},
		}},
		{Category: "Rental Income", Questions: []model.Question{
			{Key: "rental_statement", Answer: model.AnswerNA, RequiredDocuments: []string{"Rental Statement"}},
		}},
	}

	res := rec.Reconcile(nil, cats)
	if len(res.Categories) != 0 {
		t.Fatalf("expected no applicable categories, got %d", len(res.Categories))
	}
	if res.Totals != (CompletionStats{}) {
		t.Fatalf("expected zero totals, got %+v", res.Totals)
	}
}

func TestReconcileKeywordClaimsUntaggedDocument(t *testing.T) {
	rec := New(DefaultCatalog())
	// No section key on the document; the "hospital" keyword claims it
	// for Medical Expenses and the slot token then matches its name.
	docs := []model.Document{
		{ID: 1, ClientID: 1, Name: "hospital invoice march.pdf", Status: model.DocApproved},
	}
	cats := []model.QuestionCategory{
		yesCategory("Medical Expenses", yesQuestion("medical_receipts", "Hospital Invoice")),
	}

	res := rec.Reconcile(docs, cats)
	cr := res.Categories[0]
	if cr.Stats.TotalApproved != 1 || cr.Stats.TotalMissing != 0 {
		t.Fatalf("stats = %+v, want approved=1 missing=0", cr.Stats)
	}
	if cr.Status != StatusComplete {
		t.Fatalf("status = %q, want %q", cr.Status, StatusComplete)
	}
}

func TestReconcileMissingPlaceholderCountsAsMissing(t *testing.T) {
	rec := New(DefaultCatalog())
	// A placeholder with status "missing" matches the slot and still
	// lands in the missing tally; the unmatched second slot adds one
	// more. Gaps weigh heavier than imperfect uploads on purpose.
	docs := []model.Document{
		{ID: 1, ClientID: 1, Name: "T4 Slip placeholder", Status: model.DocMissing, SectionKey: "employment"},
	}
	cats := []model.QuestionCategory{
		yesCategory("Employment Income",
			yesQuestion("employment_t4", "T4 Slip"),
			yesQuestion("employment_other", "Income Summary"),
		),
	}

	res := rec.Reconcile(docs, cats)
	cr := res.Categories[0]
	if cr.Stats.TotalMissing != 2 {
		t.Fatalf("TotalMissing = %d, want 2", cr.Stats.TotalMissing)
	}
	if cr.Stats.TotalUploaded != 1 {
		t.Fatalf("TotalUploaded = %d, want 1", cr.Stats.TotalUploaded)
	}
	if cr.Status != StatusIncomplete {
		t.Fatalf("status = %q, want %q", cr.Status, StatusIncomplete)
	}
}

func TestReconcileAggregatesAcrossCategories(t *testing.T) {
	rec := New(DefaultCatalog())
	docs := []model.Document{
		{ID: 1, ClientID: 1, Name: "T4 2024.pdf", Status: model.DocApproved, SectionKey: "employment"},
		{ID: 2, ClientID: 1, Name: "donation receipt.pdf", Status: model.DocPending, SectionKey: "donations"},
	}
	cats := []model.QuestionCategory{
		yesCategory("Employment Income", yesQuestion("employment_t4", "T4 Slip")),
		yesCategory("Charitable Donations", yesQuestion("donation_receipts", "Donation Receipts")),
		yesCategory("Rental Income", yesQuestion("rental_statement", "Rental Statement")),
	}

	res := rec.Reconcile(docs, cats)
	want := CompletionStats{TotalRequired: 3, TotalUploaded: 2, TotalApproved: 1, TotalPending: 1, TotalMissing: 1}
	if res.Totals != want {
		t.Fatalf("totals = %+v, want %+v", res.Totals, want)
	}
}
