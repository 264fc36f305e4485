package suggestions

import (
	"context"
	"fmt"
	"strings"

	"github.com/kumarsatish86/complianceos-suggest/internal/application"
	"github.com/kumarsatish86/complianceos-suggest/internal/domain/evidence"
	"github.com/kumarsatish86/complianceos-suggest/internal/domain/questions"
	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/suggestions"
)

// EvidenceGenerator cari approved evidence lewat control linkage pertanyaan.
// Evidence yang baru di-update dapat recency boost.
type EvidenceGenerator struct {
	Repo  evidence.Repository
	Cfg   domain.ScoringConfig
	Clock application.Clock
}

func (g *EvidenceGenerator) Name() string { return "evidence" }

func (g *EvidenceGenerator) Generate(ctx context.Context, q *questions.Question, org string) ([]domain.Suggestion, error) {
	if len(q.ControlMapping) == 0 {
		return nil, nil
	}

	items, err := g.Repo.FindByControlIDs(ctx, org, q.ControlMapping)
	if err != nil {
		return nil, fmt.Errorf("evidence lookup: %w", err)
	}
	if len(items) > g.Cfg.EvidenceMaxCandidates {
		items = items[:g.Cfg.EvidenceMaxCandidates]
	}

	now := g.Clock.Now()
	var out []domain.Suggestion
	for _, ev := range items {
		matched := intersect(q.ControlMapping, ev.ControlIDs)
		if len(matched) == 0 {
			continue
		}
		ratio := float64(len(matched)) / float64(len(q.ControlMapping))

		days := int(now.Sub(ev.UpdatedAt).Hours() / 24)
		recency := float64(g.Cfg.EvidenceRecencyWindowDays - days)
		if recency < 0 {
			recency = 0
		}

		score := domain.ClampScore(ratio*g.Cfg.EvidenceControlWeight + recency)
		if score <= g.Cfg.EvidenceMinScore {
			continue
		}

		out = append(out, domain.Suggestion{
			SuggestedAnswer: answerFromEvidence(q.Text, ev.Title),
			ConfidenceScore: score,
			SourceType:      domain.SourceEvidence,
			SourceID:        string(ev.ID),
			EvidenceIDs:     []string{string(ev.ID)},
			Reasoning:       fmt.Sprintf("Matched controls: %s", strings.Join(matched, ", ")),
			Metadata: map[string]any{
				"evidence_title":    ev.Title,
				"document_type":     string(ev.DocumentType),
				"days_since_update": days,
				"matched_controls":  matched,
			},
		})
	}
	return out, nil
}

// answerFromEvidence template deterministik, dipilih dari frasa di
// pertanyaan, selalu menyebut judul evidence.
func answerFromEvidence(questionText, title string) string {
	t := strings.ToLower(questionText)
	switch {
	case containsAny(t, "policy", "policies", "procedure"):
		return fmt.Sprintf("Yes, this is covered by our documented policies and procedures. See %q for details.", title)
	case containsAny(t, "training", "awareness"):
		return fmt.Sprintf("Yes, we maintain a security training and awareness program. Supporting evidence: %q.", title)
	case containsAny(t, "incident", "response"):
		return fmt.Sprintf("Yes, we have an established incident response capability, documented in %q.", title)
	default:
		return fmt.Sprintf("Yes, supporting evidence for this requirement is available in %q.", title)
	}
}
