package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kumarsatish86/complianceos-suggest/internal/application"
	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/library"
)

// Service implements use-cases untuk Answer Library: CRUD, search, usage
// feedback, statistik, import/export, dan diagnostic pass.
type Service struct {
	Repo    domain.Repository
	Exports domain.ExportStore
	Clock   application.Clock

	// ConfidenceStep kenaikan confidence per usage; default 1
	ConfidenceStep float64
}

// Command untuk create entry
type CreateEntryCommand struct {
	Category           string
	Subcategory        string
	KeyPhrases         []string
	StandardAnswer     string
	EvidenceReferences []string
	CreatedBy          string
	Metadata           map[string]any
}

// Command untuk partial update; field nil tidak diubah
type UpdateEntryCommand struct {
	Category           *string
	Subcategory        *string
	KeyPhrases         []string
	StandardAnswer     *string
	EvidenceReferences []string
	IsActive           *bool
	Metadata           map[string]any
}

// CreateEntry validasi input lalu simpan entry baru dengan usage 0 dan
// confidence awal 50.
func (s *Service) CreateEntry(ctx context.Context, org string, cmd CreateEntryCommand) (domain.EntryID, error) {
	cat, err := domain.ParseCategory(cmd.Category)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(cmd.StandardAnswer) == "" {
		return "", &domain.ValidationError{Field: "standard_answer", Message: "standard answer is required"}
	}

	id := domain.EntryID(uuid.New().String())
	entry := &domain.Entry{
		ID:                 id,
		OrganizationID:     org,
		Category:           cat,
		Subcategory:        strings.TrimSpace(cmd.Subcategory),
		KeyPhrases:         normalizePhrases(cmd.KeyPhrases),
		StandardAnswer:     cmd.StandardAnswer,
		EvidenceReferences: cmd.EvidenceReferences,
		UsageCount:         0,
		ConfidenceScore:    domain.InitialConfidence,
		LastUpdated:        s.Clock.Now(),
		IsActive:           true,
		CreatedBy:          cmd.CreatedBy,
		Metadata:           cmd.Metadata,
	}
	if err := s.Repo.Save(ctx, entry); err != nil {
		return "", fmt.Errorf("saving entry: %w", err)
	}
	return id, nil
}

// GetEntries list urut usage desc, confidence desc, last_updated desc
func (s *Service) GetEntries(ctx context.Context, org string, f domain.ListFilter) ([]*domain.Entry, error) {
	return s.Repo.List(ctx, org, f)
}

// GetEntry ambil 1 entry by id
func (s *Service) GetEntry(ctx context.Context, org string, id domain.EntryID) (*domain.Entry, error) {
	return s.Repo.Get(ctx, org, id)
}

// UpdateEntry partial update; lastUpdated di-refresh, usage count dan
// confidence score tidak pernah direset dari sini.
func (s *Service) UpdateEntry(ctx context.Context, org string, id domain.EntryID, cmd UpdateEntryCommand) (*domain.Entry, error) {
	entry, err := s.Repo.Get(ctx, org, id)
	if err != nil {
		return nil, err
	}

	if cmd.Category != nil {
		cat, err := domain.ParseCategory(*cmd.Category)
		if err != nil {
			return nil, err
		}
		entry.Category = cat
	}
	if cmd.Subcategory != nil {
		entry.Subcategory = strings.TrimSpace(*cmd.Subcategory)
	}
	if cmd.KeyPhrases != nil {
		entry.KeyPhrases = normalizePhrases(cmd.KeyPhrases)
	}
	if cmd.StandardAnswer != nil {
		if strings.TrimSpace(*cmd.StandardAnswer) == "" {
			return nil, &domain.ValidationError{Field: "standard_answer", Message: "standard answer cannot be emptied"}
		}
		entry.StandardAnswer = *cmd.StandardAnswer
	}
	if cmd.EvidenceReferences != nil {
		entry.EvidenceReferences = cmd.EvidenceReferences
	}
	if cmd.IsActive != nil {
		entry.IsActive = *cmd.IsActive
	}
	if cmd.Metadata != nil {
		entry.Metadata = cmd.Metadata
	}
	entry.LastUpdated = s.Clock.Now()

	if err := s.Repo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving entry: %w", err)
	}
	return entry, nil
}

// DeleteEntry hard delete (operasi administratif; soft-deactivate lewat
// UpdateEntry is_active=false)
func (s *Service) DeleteEntry(ctx context.Context, org string, id domain.EntryID) error {
	return s.Repo.Delete(ctx, org, id)
}

// IncrementUsage catat satu pemakaian entry: usage +1, confidence naik
// (cap 100), lastUsedAt di-refresh. Atomic di storage.
func (s *Service) IncrementUsage(ctx context.Context, org string, id domain.EntryID) error {
	step := s.ConfidenceStep
	if step <= 0 {
		step = 1
	}
	return s.Repo.IncrementUsage(ctx, org, id, step, s.Clock.Now())
}

// SearchEntries cari di entry aktif saja, urut confidence desc, usage desc
func (s *Service) SearchEntries(ctx context.Context, org, query string, category *domain.Category, limit int) ([]*domain.Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.Repo.Search(ctx, org, query, category, limit)
}

// GetStats rekap library per organisasi
func (s *Service) GetStats(ctx context.Context, org string) (*domain.Stats, error) {
	return s.Repo.Stats(ctx, org)
}

func normalizePhrases(ss []string) []string {
	out := make([]string, 0, len(ss))
	seen := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
