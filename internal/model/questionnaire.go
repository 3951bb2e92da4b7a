package model

// Answer is a client's response to one intake question.
type Answer string

// Possible values for Answer. AnswerNone means the client has not
// answered yet.
const (
	AnswerYes  Answer = "yes"
	AnswerNo   Answer = "no"
	AnswerNA   Answer = "na"
	AnswerNone Answer = ""
)

// Question is one intake questionnaire item. RequiredDocuments lists
// the human-readable names of documents the client must provide when
// the answer is yes.
type Question struct {
	Key               string   `json:"key"`                // stable identifier within the category
	Text              string   `json:"text"`               // question shown to staff/clients
	Answer            Answer   `json:"answer"`             // yes | no | na | "" (unanswered)
	RequiredDocuments []string `json:"required_documents"` // docs owed when answered yes
}

// QuestionCategory groups questionnaire questions under a checklist
// category ("Employment Income", "Medical Expenses", ...). A category
// is applicable, and contributes to completion statistics, iff at
// least one of its questions is answered yes.
type QuestionCategory struct {
	Category  string     `json:"category"`
	Questions []Question `json:"questions"`
}

// Applicable reports whether any question in the category is answered yes.
func (qc QuestionCategory) Applicable() bool {
	for _, q := range qc.Questions {
		if q.Answer == AnswerYes {
			return true
		}
	}
	return false
}

// DefaultQuestionnaire returns the intake template for one filing year:
// every standard category with unanswered questions. Repositories store
// only the per-client answers; handlers overlay them onto this template
// before handing the result to the reconciler.
func DefaultQuestionnaire() []QuestionCategory {
	return []QuestionCategory{
		{
			Category: "Employment Income",
			Questions: []Question{
				{Key: "employment_t4", Text: "Were you employed during the year?", RequiredDocuments: []string{"T4 Slip"}},
				{Key: "employment_other", Text: "Did you receive tips, gratuities or other employment income?", RequiredDocuments: []string{"Income Summary"}},
			},
		},
		{
			Category: "Self-Employment",
			Questions: []Question{
				{Key: "self_employment", Text: "Did you operate a business or earn self-employment income?", RequiredDocuments: []string{"T2125 Statement", "Expense Receipts"}},
			},
		},
		{
			Category: "Investment Income",
			Questions: []Question{
				{Key: "investment_slips", Text: "Did you earn interest, dividends or capital gains?", RequiredDocuments: []string{"T5 Slip", "T3 Slip"}},
			},
		},
		{
			Category: "Medical Expenses",
			Questions: []Question{
				{Key: "medical_receipts", Text: "Did you pay medical or dental expenses out of pocket?", RequiredDocuments: []string{"Medical Receipts"}},
			},
		},
		{
			Category: "Charitable Donations",
			Questions: []Question{
				{Key: "donation_receipts", Text: "Did you make charitable donations?", RequiredDocuments: []string{"Donation Receipts"}},
			},
		},
		{
			Category: "Tuition & Education",
			Questions: []Question{
				{Key: "tuition_t2202", Text: "Were you enrolled in post-secondary education?", RequiredDocuments: []string{"T2202 Certificate"}},
			},
		},
		{
			Category: "Rental Income",
			Questions: []Question{
				{Key: "rental_statement", Text: "Did you earn rental income?", RequiredDocuments: []string{"Rental Statement", "Property Expenses"}},
			},
		},
		{
			Category: "RRSP & Pension",
			Questions: []Question{
				{Key: "rrsp_receipts", Text: "Did you contribute to an RRSP?", RequiredDocuments: []string{"RRSP Receipts"}},
				{Key: "pension_t4a", Text: "Did you receive pension or retirement income?", RequiredDocuments: []string{"T4A Slip"}},
			},
		},
	}
}
