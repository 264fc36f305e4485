package mysql

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/questions"
)

type QuestionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// GetByID read-only lookup; tabel questions diisi oleh document ingestion
func (r *QuestionRepository) GetByID(ctx context.Context, org string, id domain.QuestionID) (*domain.Question, error) {
	const q = `
SELECT id, organization_id, question_text, question_type, extracted_keywords, control_mapping, risk_level
FROM questions
WHERE organization_id=? AND id=? LIMIT 1;`
	row := r.db.QueryRowContext(ctx, q, org, id)

	var qu domain.Question
	var keywords, controls []byte
	var risk sql.NullString
	if err := row.Scan(&qu.ID, &qu.OrganizationID, &qu.Text, &qu.Type, &keywords, &controls, &risk); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	qu.ExtractedKeywords = scanStrings(keywords)
	qu.ControlMapping = scanStrings(controls)
	if risk.Valid {
		qu.RiskLevel = domain.RiskLevel(risk.String)
	}
	return &qu, nil
}
