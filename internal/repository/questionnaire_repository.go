package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/tax-portal/internal/model"
)

// QuestionnaireRepo persists per-client intake answers. Only the
// answers are stored; the category/question template (including the
// required-document names) is code, so schema changes to the intake
// never require a migration.
type QuestionnaireRepo struct{ DB *sql.DB }

func NewQuestionnaireRepo(db *sql.DB) *QuestionnaireRepo { return &QuestionnaireRepo{DB: db} }

// AnswersForClient loads the client's stored answers keyed by question
// key.
func (r *QuestionnaireRepo) AnswersForClient(ctx context.Context, clientID uint64) (map[string]model.Answer, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT question_key, answer FROM questionnaire_answers WHERE client_id=?", clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]model.Answer)
	for rows.Next() {
		var (
			key    string
			answer string
		)
		if err := rows.Scan(&key, &answer); err != nil {
			return nil, err
		}
		out[key] = model.Answer(answer)
	}
	return out, rows.Err()
}

// SaveAnswer upserts one answer.
func (r *QuestionnaireRepo) SaveAnswer(ctx context.Context, clientID uint64, questionKey string, answer model.Answer) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO questionnaire_answers (client_id, question_key, answer) VALUES (?,?,?) "+
			"ON DUPLICATE KEY UPDATE answer=VALUES(answer), updated_at=NOW()",
		clientID, questionKey, string(answer))
	return err
}

// QuestionnaireForClient overlays the stored answers onto the intake
// template, producing the categories the reconciler consumes.
func (r *QuestionnaireRepo) QuestionnaireForClient(ctx context.Context, clientID uint64) ([]model.QuestionCategory, error) {
	answers, err := r.AnswersForClient(ctx, clientID)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	cats := model.DefaultQuestionnaire()
	for ci := range cats {
		for qi := range cats[ci].Questions {
			if a, ok := answers[cats[ci].Questions[qi].Key]; ok {
				cats[ci].Questions[qi].Answer = a
			}
		}
	}
	return cats, nil
}
