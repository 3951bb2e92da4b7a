package model

import "testing"

func TestApplicable(t *testing.T) {
	qc := QuestionCategory{Category: "Medical Expenses", Questions: []Question{
		{Key: "medical_receipts", Answer: AnswerNo},
	}}
	if qc.Applicable() {
		t.Fatal("expected all-no category to be inapplicable")
	}
	qc.Questions = append(qc.Questions, Question{Key: "other", Answer: AnswerYes})
	if !qc.Applicable() {
		t.Fatal("expected category with a yes answer to be applicable")
	}
}

func TestDefaultQuestionnaireShape(t *testing.T) {
	cats := DefaultQuestionnaire()
	if len(cats) == 0 {
		t.Fatal("expected a non-empty template")
	}
	seen := make(map[string]bool)
	for _, cat := range cats {
		if cat.Category == "" {
			t.Fatal("category name must not be empty")
		}
		if cat.Applicable() {
			t.Fatalf("%s: template must start unanswered", cat.Category)
		}
		for _, q := range cat.Questions {
			if q.Key == "" || q.Text == "" {
				t.Fatalf("%s: question key/text must not be empty", cat.Category)
			}
			if seen[q.Key] {
				t.Fatalf("duplicate question key %q", q.Key)
			}
			seen[q.Key] = true
			if len(q.RequiredDocuments) == 0 {
				t.Fatalf("%s: question %q lists no required documents", cat.Category, q.Key)
			}
		}
	}
}
