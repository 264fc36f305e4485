package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/library"
)

type LibraryRepository struct {
	db *sql.DB
}

func NewLibraryRepository(db *sql.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

const entryColumns = `id, organization_id, category, subcategory, key_phrases, standard_answer,
       evidence_refs, usage_count, confidence_score, last_used_at, last_updated,
       is_active, created_by, metadata`

// Save insert/update entry. Upsert sengaja tidak menyentuh usage_count,
// confidence_score, dan last_used_at: kolom-kolom itu hanya berubah lewat
// IncrementUsage.
func (r *LibraryRepository) Save(ctx context.Context, e *domain.Entry) error {
	const q = `
INSERT INTO answer_library_entries
(id, organization_id, category, subcategory, key_phrases, standard_answer,
 evidence_refs, usage_count, confidence_score, last_used_at, last_updated,
 is_active, created_by, metadata)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 category=VALUES(category), subcategory=VALUES(subcategory),
 key_phrases=VALUES(key_phrases), standard_answer=VALUES(standard_answer),
 evidence_refs=VALUES(evidence_refs), last_updated=VALUES(last_updated),
 is_active=VALUES(is_active), metadata=VALUES(metadata);
`
	lastUpdated := e.LastUpdated
	if lastUpdated.IsZero() {
		lastUpdated = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.OrganizationID, e.Category, e.Subcategory,
		jsonStrings(e.KeyPhrases), e.StandardAnswer,
		jsonStrings(e.EvidenceReferences), e.UsageCount, e.ConfidenceScore,
		e.LastUsedAt, lastUpdated, e.IsActive, e.CreatedBy, jsonMap(e.Metadata),
	)
	return err
}

// Get by ID + org
func (r *LibraryRepository) Get(ctx context.Context, org string, id domain.EntryID) (*domain.Entry, error) {
	q := `SELECT ` + entryColumns + `
FROM answer_library_entries
WHERE organization_id=? AND id=? LIMIT 1;`
	e, err := scanEntry(r.db.QueryRowContext(ctx, q, org, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return e, err
}

// List entries urut usage desc, confidence desc, last_updated desc
func (r *LibraryRepository) List(ctx context.Context, org string, f domain.ListFilter) ([]*domain.Entry, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	query := `SELECT ` + entryColumns + `
FROM answer_library_entries
WHERE organization_id=?`
	args := []any{org}

	if f.Category != nil {
		query += " AND category = ?"
		args = append(args, *f.Category)
	}
	if f.SearchText != "" {
		term := "%" + escapeLikePattern(f.SearchText) + "%"
		query += " AND (standard_answer LIKE ? OR subcategory LIKE ? OR key_phrases LIKE ?)"
		args = append(args, term, term, term)
	}

	query += `
ORDER BY usage_count DESC, confidence_score DESC, last_updated DESC
LIMIT ? OFFSET ?;`
	args = append(args, f.Limit, f.Offset)

	return r.queryEntries(ctx, query, args...)
}

// ListAll semua entry satu organisasi (dipakai export dan diagnostic pass)
func (r *LibraryRepository) ListAll(ctx context.Context, org string) ([]*domain.Entry, error) {
	q := `SELECT ` + entryColumns + `
FROM answer_library_entries
WHERE organization_id=?
ORDER BY last_updated DESC, id DESC;`
	return r.queryEntries(ctx, q, org)
}

// Delete hard delete
func (r *LibraryRepository) Delete(ctx context.Context, org string, id domain.EntryID) error {
	const q = `DELETE FROM answer_library_entries WHERE organization_id=? AND id=?;`
	res, err := r.db.ExecContext(ctx, q, org, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementUsage atomic single-statement update supaya tidak ada lost
// update saat usage dicatat bersamaan dari beberapa request.
func (r *LibraryRepository) IncrementUsage(ctx context.Context, org string, id domain.EntryID, confidenceStep float64, now time.Time) error {
	const q = `
UPDATE answer_library_entries
SET usage_count = usage_count + 1,
    confidence_score = LEAST(100, confidence_score + ?),
    last_used_at = ?
WHERE organization_id=? AND id=?;`
	res, err := r.db.ExecContext(ctx, q, confidenceStep, now, org, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindMatching entry aktif yang key_phrases-nya overlap dengan keyword
// pertanyaan, urut confidence entry tertinggi.
func (r *LibraryRepository) FindMatching(ctx context.Context, org string, keywords []string, limit int) ([]*domain.Entry, error) {
	if limit <= 0 {
		limit = 3
	}
	q := `SELECT ` + entryColumns + `
FROM answer_library_entries
WHERE organization_id=? AND is_active=1
  AND JSON_OVERLAPS(key_phrases, CAST(? AS JSON))
ORDER BY confidence_score DESC, id ASC
LIMIT ?;`
	return r.queryEntries(ctx, q, org, jsonStrings(keywords), limit)
}

// Search entry aktif, urut confidence desc lalu usage desc
func (r *LibraryRepository) Search(ctx context.Context, org, query string, category *domain.Category, limit int) ([]*domain.Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `SELECT ` + entryColumns + `
FROM answer_library_entries
WHERE organization_id=? AND is_active=1`
	args := []any{org}

	if category != nil {
		q += " AND category = ?"
		args = append(args, *category)
	}
	if query != "" {
		term := "%" + escapeLikePattern(query) + "%"
		q += " AND (standard_answer LIKE ? OR subcategory LIKE ? OR key_phrases LIKE ?)"
		args = append(args, term, term, term)
	}

	q += `
ORDER BY confidence_score DESC, usage_count DESC, id ASC
LIMIT ?;`
	args = append(args, limit)

	return r.queryEntries(ctx, q, args...)
}

// Stats rekap agregat per organisasi
func (r *LibraryRepository) Stats(ctx context.Context, org string) (*domain.Stats, error) {
	const totals = `
SELECT COUNT(*),
       COALESCE(SUM(is_active),0),
       COALESCE(SUM(usage_count),0),
       COALESCE(AVG(confidence_score),0)
FROM answer_library_entries
WHERE organization_id=?;`

	st := &domain.Stats{}
	if err := r.db.QueryRowContext(ctx, totals, org).Scan(
		&st.TotalEntries, &st.ActiveEntries, &st.TotalUsage, &st.AverageConfidence,
	); err != nil {
		return nil, fmt.Errorf("stats totals: %w", err)
	}

	const breakdown = `
SELECT category, COUNT(*)
FROM answer_library_entries
WHERE organization_id=?
GROUP BY category
ORDER BY COUNT(*) DESC, category ASC;`
	rows, err := r.db.QueryContext(ctx, breakdown, org)
	if err != nil {
		return nil, fmt.Errorf("stats breakdown: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cc domain.CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, err
		}
		st.CategoryBreakdown = append(st.CategoryBreakdown, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	topUsed := `SELECT ` + entryColumns + `
FROM answer_library_entries
WHERE organization_id=?
ORDER BY usage_count DESC, confidence_score DESC, id ASC
LIMIT 5;`
	st.TopUsedEntries, err = r.queryEntries(ctx, topUsed, org)
	if err != nil {
		return nil, fmt.Errorf("stats top used: %w", err)
	}

	recent := `SELECT ` + entryColumns + `
FROM answer_library_entries
WHERE organization_id=?
ORDER BY last_updated DESC, id ASC
LIMIT 5;`
	st.RecentlyUpdated, err = r.queryEntries(ctx, recent, org)
	if err != nil {
		return nil, fmt.Errorf("stats recently updated: %w", err)
	}
	return st, nil
}

func (r *LibraryRepository) queryEntries(ctx context.Context, q string, args ...any) ([]*domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

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
