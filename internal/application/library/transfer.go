package library

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/library"
)

// Import/export pakai CSV dengan list cell di-join pakai ";". Export adalah
// structural inverse dari import untuk field yang sama (round-trip).

var csvHeader = []string{"category", "subcategory", "key_phrases", "standard_answer", "evidence_references"}

const listSeparator = ";"

// ImportError satu baris gagal; baris lain tetap diproses
type ImportError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult hasil import per batch
type ImportResult struct {
	ImportedCount int           `json:"imported_count"`
	Errors        []ImportError `json:"errors"`
}

// ImportFromCSV baca delimited text, validasi per baris. Baris rusak dicatat
// sebagai error dan proses lanjut ke baris berikutnya; tidak ada transaksi
// all-or-nothing.
func (s *Service) ImportFromCSV(ctx context.Context, org string, r io.Reader, createdBy string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	result := &ImportResult{Errors: []ImportError{}}
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			result.Errors = append(result.Errors, ImportError{Row: row, Message: err.Error()})
			continue
		}
		// skip header
		if row == 1 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "category") {
			continue
		}
		if err := s.importRow(ctx, org, record, createdBy); err != nil {
			result.Errors = append(result.Errors, ImportError{Row: row, Message: err.Error()})
			continue
		}
		result.ImportedCount++
	}
	return result, nil
}

func (s *Service) importRow(ctx context.Context, org string, record []string, createdBy string) error {
	if len(record) < 4 {
		return fmt.Errorf("expected at least 4 columns, got %d", len(record))
	}
	get := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	if get(0) == "" {
		return &domain.ValidationError{Field: "category", Message: "category is required"}
	}
	cat, err := domain.ParseCategory(get(0))
	if err != nil {
		return err
	}
	if get(3) == "" {
		return &domain.ValidationError{Field: "standard_answer", Message: "standard answer is required"}
	}

	entry := &domain.Entry{
		ID:                 domain.EntryID(uuid.New().String()),
		OrganizationID:     org,
		Category:           cat,
		Subcategory:        get(1),
		KeyPhrases:         normalizePhrases(splitList(get(2))),
		StandardAnswer:     get(3),
		EvidenceReferences: splitList(get(4)),
		UsageCount:         0,
		ConfidenceScore:    domain.InitialConfidence,
		LastUpdated:        s.Clock.Now(),
		IsActive:           true,
		CreatedBy:          createdBy,
	}
	return s.Repo.Save(ctx, entry)
}

// ExportToCSV tulis semua entry organisasi dalam format yang bisa dibaca
// balik oleh ImportFromCSV.
func (s *Service) ExportToCSV(ctx context.Context, org string) (string, error) {
	entries, err := s.Repo.ListAll(ctx, org)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, e := range entries {
		rec := []string{
			string(e.Category),
			e.Subcategory,
			strings.Join(e.KeyPhrases, listSeparator),
			e.StandardAnswer,
			strings.Join(e.EvidenceReferences, listSeparator),
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ArchiveExport simpan snapshot export ke object store, balikin URL-nya
func (s *Service) ArchiveExport(ctx context.Context, org string) (string, error) {
	if s.Exports == nil {
		return "", fmt.Errorf("export store is not configured")
	}
	text, err := s.ExportToCSV(ctx, org)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/library/%s.csv", org, s.Clock.Now().UTC().Format("20060102T150405Z"))
	return s.Exports.Put(ctx, key, []byte(text), "text/csv")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, listSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
