package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/library"
)

type LibraryRepository struct{ db *sql.DB }

func NewLibraryRepository(db *sql.DB) *LibraryRepository { return &LibraryRepository{db: db} }

const entryColumns = `id, organization_id, category, subcategory, key_phrases, standard_answer,
       evidence_refs, usage_count, confidence_score, last_used_at, last_updated,
       is_active, created_by, metadata`

// Save insert/update entry; upsert tidak menyentuh usage_count,
// confidence_score, last_used_at (hanya IncrementUsage yang boleh)
func (r *LibraryRepository) Save(ctx context.Context, e *domain.Entry) error {
	const q = `
INSERT INTO answer_library_entries
(id, organization_id, category, subcategory, key_phrases, standard_answer,
 evidence_refs, usage_count, confidence_score, last_used_at, last_updated,
 is_active, created_by, metadata)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
ON CONFLICT (id) DO UPDATE SET
 category = EXCLUDED.category,
 subcategory = EXCLUDED.subcategory,
 key_phrases = EXCLUDED.key_phrases,
 standard_answer = EXCLUDED.standard_answer,
 evidence_refs = EXCLUDED.evidence_refs,
 last_updated = EXCLUDED.last_updated,
 is_active = EXCLUDED.is_active,
 metadata = EXCLUDED.metadata;`

	lastUpdated := e.LastUpdated
	if lastUpdated.IsZero() { lastUpdated = time.Now() }

	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.OrganizationID, e.Category, e.Subcategory,
		jsonStrings(e.KeyPhrases), e.StandardAnswer,
		jsonStrings(e.EvidenceReferences), e.UsageCount, e.ConfidenceScore,
		e.LastUsedAt, lastUpdated, e.IsActive, e.CreatedBy, jsonMap(e.Metadata),
	)
	return err
}

func (r *LibraryRepository) Get(ctx context.Context, org string, id domain.EntryID) (*domain.Entry, error) {
	q := `SELECT ` + entryColumns + `
FROM answer_library_entries
WHERE organization_id=$1 AND id=$2
LIMIT 1;`
	e, err := scanEntry(r.db.QueryRowContext(ctx, q, org, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return e, err
}

func (r *LibraryRepository) List(ctx context.Context, org string, f domain.ListFilter) ([]*domain.Entry, error) {
	if f.Limit <= 0 { f.Limit = 50 }
	if f.Offset < 0 { f.Offset = 0 }

	q := `SELECT ` + entryColumns + `
FROM answer_library_entries
WHERE organization_id=$1`
	args := []any{org}

	if f.Category != nil {
		args = append(args, *f.Category)
		q += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.SearchText != "" {
		args = append(args, "%"+escapeLikePattern(f.SearchText)+"%")
		n := len(args)
		q += fmt.Sprintf(" AND (standard_answer ILIKE $%d OR subcategory ILIKE $%d OR key_phrases::text ILIKE $%d)", n, n, n)
	}

	args = append(args, f.Limit, f.Offset)
	q += fmt.Sprintf(`
ORDER BY usage_count DESC, confidence_score DESC, last_updated DESC
LIMIT $%d OFFSET $%d;`, len(args)-1, len(args))

	return r.queryEntries(ctx, q, args...)
}

func (r *LibraryRepository) ListAll(ctx context.Context, org string) ([]*domain.Entry, error) {
	q := `SELECT ` + entryColumns + `
FROM answer_library_entries
WHERE organization_id=$1
ORDER BY last_updated DESC, id DESC;`
	return r.queryEntries(ctx, q, org)
}

func (r *LibraryRepository) Delete(ctx context.Context, org string, id domain.EntryID) error {
	const q = `DELETE FROM answer_library_entries WHERE organization_id=$1 AND id=$2;`
	res, err := r.db.ExecContext(ctx, q, org, id)
	if err != nil { return err }
	n, err := res.RowsAffected()
	if err != nil { return err }
	if n == 0 { return domain.ErrNotFound }
	return nil
}

// IncrementUsage atomic counter update, satu statement
func (r *LibraryRepository) IncrementUsage(ctx context.Context, org string, id domain.EntryID, confidenceStep float64, now time.Time) error {
	const q = `
UPDATE answer_library_entries
SET usage_count = usage_count + 1,
    confidence_score = LEAST(100, confidence_score + $1),
    last_used_at = $2
WHERE organization_id=$3 AND id=$4;`
	res, err := r.db.ExecContext(ctx, q, confidenceStep, now, org, id)
	if err != nil { return err }
	n, err := res.RowsAffected()
	if err != nil { return err }
	if n == 0 { return domain.ErrNotFound }
	return nil
}

// FindMatching pakai operator jsonb ?| untuk overlap key phrase
func (r *LibraryRepository) FindMatching(ctx context.Context, org string, keywords []string, limit int) ([]*domain.Entry, error) {
	if limit <= 0 { limit = 3 }
	q := `SELECT ` + entryColumns + `
FROM answer_library_entries
WHERE organization_id=$1 AND is_active
  AND key_phrases ?| $2
ORDER BY confidence_score DESC, id ASC
LIMIT $3;`
	return r.queryEntries(ctx, q, org, pq.Array(keywords), limit)
}

func (r *LibraryRepository) Search(ctx context.Context, org, query string, category *domain.Category, limit int) ([]*domain.Entry, error) {
	if limit <= 0 { limit = 20 }
	q := `SELECT ` + entryColumns + `
FROM answer_library_entries
WHERE organization_id=$1 AND is_active`
	args := []any{org}

	if category != nil {
		args = append(args, *category)
		q += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if query != "" {
		args = append(args, "%"+escapeLikePattern(query)+"%")
		n := len(args)
		q += fmt.Sprintf(" AND (standard_answer ILIKE $%d OR subcategory ILIKE $%d OR key_phrases::text ILIKE $%d)", n, n, n)
	}

	args = append(args, limit)
	q += fmt.Sprintf(`
ORDER BY confidence_score DESC, usage_count DESC, id ASC
LIMIT $%d;`, len(args))

	return r.queryEntries(ctx, q, args...)
}

func (r *LibraryRepository) Stats(ctx context.Context, org string) (*domain.Stats, error) {
	const totals = `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE is_active),
       COALESCE(SUM(usage_count),0),
       COALESCE(AVG(confidence_score),0)
FROM answer_library_entries
WHERE organization_id=$1;`

	st := &domain.Stats{}
	if err := r.db.QueryRowContext(ctx, totals, org).Scan(
		&st.TotalEntries, &st.ActiveEntries, &st.TotalUsage, &st.AverageConfidence,
	); err != nil {
		return nil, fmt.Errorf("stats totals: %w", err)
	}

	const breakdown = `
SELECT category, COUNT(*)
FROM answer_library_entries
WHERE organization_id=$1
GROUP BY category
ORDER BY COUNT(*) DESC, category ASC;`
	rows, err := r.db.QueryContext(ctx, breakdown, org)
	if err != nil {
		return nil, fmt.Errorf("stats breakdown: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cc domain.CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil { return nil, err }
		st.CategoryBreakdown = append(st.CategoryBreakdown, cc)
	}
	if err := rows.Err(); err != nil { return nil, err }

	topUsed := `SELECT ` + entryColumns + `
FROM answer_library_entries
WHERE organization_id=$1
ORDER BY usage_count DESC, confidence_score DESC, id ASC
LIMIT 5;`
	st.TopUsedEntries, err = r.queryEntries(ctx, topUsed, org)
	if err != nil { return nil, fmt.Errorf("stats top used: %w", err) }

	recent := `SELECT ` + entryColumns + `
FROM answer_library_entries
WHERE organization_id=$1
ORDER BY last_updated DESC, id ASC
LIMIT 5;`
	st.RecentlyUpdated, err = r.queryEntries(ctx, recent, org)
	if err != nil { return nil, fmt.Errorf("stats recently updated: %w", err) }
	return st, nil
}

func (r *LibraryRepository) queryEntries(ctx context.Context, q string, args ...any) ([]*domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil { return nil, err }
	defer rows.Close()

	var out []*domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil { return nil, err }
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanEntry(row rowScanner) (*domain.Entry, error) {
	var e domain.Entry
	var phrases, refs, meta []byte
	var lastUsed sql.NullTime
	if err := row.Scan(
		&e.ID, &e.OrganizationID, &e.Category, &e.Subcategory, &phrases, &e.StandardAnswer,
		&refs, &e.UsageCount, &e.ConfidenceScore, &lastUsed, &e.LastUpdated,
		&e.IsActive, &e.CreatedBy, &meta,
	); err != nil {
		return nil, err
	}
	e.KeyPhrases = scanStrings(phrases)
	e.EvidenceReferences = scanStrings(refs)
	e.Metadata = scanMap(meta)
	if lastUsed.Valid {
		t := lastUsed.Time
		e.LastUsedAt = &t
	}
	return &e, nil
}
