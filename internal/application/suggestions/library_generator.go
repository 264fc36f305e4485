package suggestions

import (
	"context"
	"fmt"
	"strings"

	"github.com/kumarsatish86/complianceos-suggest/internal/domain/library"
	"github.com/kumarsatish86/complianceos-suggest/internal/domain/questions"
	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/suggestions"
)

// LibraryMatcher bagian kecil dari library.Repository yang dibutuhkan
// generator ini
type LibraryMatcher interface {
	FindMatching(ctx context.Context, org string, keywords []string, limit int) ([]*library.Entry, error)
}

// LibraryGenerator cocokkan keyword pertanyaan dengan key phrases di
// answer library. Kandidat diambil urut confidence entry tertinggi.
type LibraryGenerator struct {
	Repo LibraryMatcher
	Cfg  domain.ScoringConfig
}

func (g *LibraryGenerator) Name() string { return "library" }

func (g *LibraryGenerator) Generate(ctx context.Context, q *questions.Question, org string) ([]domain.Suggestion, error) {
	keywords := lowerAll(q.ExtractedKeywords)
	if len(keywords) == 0 {
		// tanpa keyword match ratio selalu 0 dan skor maksimal 30,
		// tidak mungkin lolos threshold
		return nil, nil
	}

	entries, err := g.Repo.FindMatching(ctx, org, keywords, g.Cfg.LibraryMaxCandidates)
	if err != nil {
		return nil, fmt.Errorf("library lookup: %w", err)
	}

	var out []domain.Suggestion
	for _, e := range entries {
		matched := intersect(keywords, lowerAll(e.KeyPhrases))
		if len(matched) == 0 {
			continue
		}
		ratio := float64(len(matched)) / float64(len(keywords))
		score := domain.ClampScore(ratio*g.Cfg.LibraryKeywordWeight + e.ConfidenceScore*g.Cfg.LibraryConfidenceWeight)
		if score <= g.Cfg.LibraryMinScore {
			continue
		}

		meta := map[string]any{
			"category":    string(e.Category),
			"usage_count": e.UsageCount,
		}
		if e.LastUsedAt != nil {
			meta["last_used_at"] = e.LastUsedAt.Format("2006-01-02T15:04:05Z07:00")
		}

		out = append(out, domain.Suggestion{
			SuggestedAnswer: e.StandardAnswer,
			ConfidenceScore: score,
			SourceType:      domain.SourceLibrary,
			SourceID:        string(e.ID),
			EvidenceIDs:     e.EvidenceReferences,
			Reasoning: fmt.Sprintf("Matched %d key phrase(s) from the answer library: %s",
				len(matched), strings.Join(matched, ", ")),
			Metadata: meta,
		})
	}
	return out, nil
}
