package library

import (
	"context"
	"sort"

	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/library"
)

// Priority diagnostic pass
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// Improvement satu entry dengan semua flag diagnostiknya, prioritas =
// yang tertinggi dari flag yang kena
type Improvement struct {
	EntryID     domain.EntryID `json:"entry_id"`
	Suggestions []string       `json:"suggestions"`
	Priority    Priority       `json:"priority"`
}

const (
	minKeyPhrases   = 3
	minAnswerLength = 50
	lowConfidence   = 30
	staleAfterDays  = 90
)

// SuggestImprovements jalanin diagnostic pass di seluruh entry organisasi.
// Advisory saja, tidak mengubah lifecycle entry.
func (s *Service) SuggestImprovements(ctx context.Context, org string) ([]Improvement, error) {
	entries, err := s.Repo.ListAll(ctx, org)
	if err != nil {
		return nil, err
	}
	now := s.Clock.Now()

	var out []Improvement
	for _, e := range entries {
		var flags []string
		priority := PriorityLow
		raise := func(p Priority) {
			if p.rank() < priority.rank() {
				priority = p
			}
		}

		if e.UsageCount == 0 {
			flags = append(flags, "Entry has never been used; review its relevance or improve its key phrases")
			raise(PriorityMedium)
		}
		if e.ConfidenceScore < lowConfidence {
			flags = append(flags, "Confidence score is very low; review and refresh the standard answer")
			raise(PriorityHigh)
		}
		if len(e.KeyPhrases) < minKeyPhrases {
			flags = append(flags, "Fewer than 3 key phrases; add more matching vocabulary to improve recall")
			raise(PriorityMedium)
		}
		if len(e.StandardAnswer) < minAnswerLength {
			flags = append(flags, "Standard answer is very short; expand it with more detail")
			raise(PriorityLow)
		}
		// entry yang belum pernah dipakai sudah kena flag zero-usage;
		// staleness hanya relevan untuk entry yang memang dipakai
		if e.UsageCount > 0 && now.Sub(e.LastUpdated).Hours() > staleAfterDays*24 {
			flags = append(flags, "Entry has not been updated in over 90 days; verify it is still accurate")
			raise(PriorityMedium)
		}

		if len(flags) == 0 {
			continue
		}
		out = append(out, Improvement{EntryID: e.ID, Suggestions: flags, Priority: priority})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.rank() < out[j].Priority.rank()
	})
	return out, nil
}
