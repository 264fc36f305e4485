package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/evidence"
)

type EvidenceRepository struct{ db *sql.DB }

func NewEvidenceRepository(db *sql.DB) *EvidenceRepository { return &EvidenceRepository{db: db} }

const evidenceColumns = `id, organization_id, title, document_type, control_ids, status, updated_at`

func (r *EvidenceRepository) FindByControlIDs(ctx context.Context, org string, controlIDs []string) ([]*domain.Evidence, error) {
	if len(controlIDs) == 0 {
		return nil, nil
	}
	q := `SELECT ` + evidenceColumns + `
FROM evidence_items
WHERE organization_id=$1 AND status='approved'
  AND control_ids ?| $2
ORDER BY updated_at DESC, id ASC;`
	return r.query(ctx, q, org, pq.Array(controlIDs))
}

func (r *EvidenceRepository) FindByType(ctx context.Context, org string, docType domain.DocumentType) ([]*domain.Evidence, error) {
	q := `SELECT ` + evidenceColumns + `
FROM evidence_items
WHERE organization_id=$1 AND status='approved' AND document_type=$2
ORDER BY updated_at DESC, id ASC;`
	return r.query(ctx, q, org, docType)
}

func (r *EvidenceRepository) query(ctx context.Context, q string, args ...any) ([]*domain.Evidence, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil { return nil, err }
	defer rows.Close()

	var out []*domain.Evidence
	for rows.Next() {
		var e domain.Evidence
		var controls []byte
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.Title, &e.DocumentType, &controls, &e.Status, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.ControlIDs = scanStrings(controls)
		out = append(out, &e)
	}
	return out, rows.Err()
}
