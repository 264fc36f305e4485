package suggestions

import (
	"context"
	"fmt"
	"strings"

	"github.com/kumarsatish86/complianceos-suggest/internal/domain/evidence"
	"github.com/kumarsatish86/complianceos-suggest/internal/domain/questions"
	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/suggestions"
)

// PatternGenerator murni rule-based. Tiga sub-rule mengecek keberadaan
// evidence kategori tertentu saat pertanyaan memakai vocabulary terkait;
// plus heuristik polaritas yes/no dari teks pertanyaan.
type PatternGenerator struct {
	Evidence evidence.Repository
	Cfg      domain.ScoringConfig
}

func (g *PatternGenerator) Name() string { return "pattern" }

// evidenceRule satu sub-rule: vocabulary pemicu + tipe dokumen + jawaban tetap
type evidenceRule struct {
	vocabulary []string
	docType    evidence.DocumentType
	answer     string
	confidence func(domain.ScoringConfig) float64
}

var evidenceRules = []evidenceRule{
	{
		vocabulary: []string{"policy", "policies"},
		docType:    evidence.TypePolicyDocument,
		answer:     "Yes, we maintain documented policies covering this requirement. They are reviewed and approved on a regular cycle.",
		confidence: func(c domain.ScoringConfig) float64 { return c.PatternPolicyConfidence },
	},
	{
		vocabulary: []string{"training", "awareness"},
		docType:    evidence.TypeTrainingMaterial,
		answer:     "Yes, we run a recurring security training and awareness program for all personnel.",
		confidence: func(c domain.ScoringConfig) float64 { return c.PatternTrainingConfidence },
	},
	{
		vocabulary: []string{"incident", "breach"},
		docType:    evidence.TypeIncidentResponsePlan,
		answer:     "Yes, we have a documented incident response plan that is tested and reviewed regularly.",
		confidence: func(c domain.ScoringConfig) float64 { return c.PatternIncidentConfidence },
	},
}

func (g *PatternGenerator) Generate(ctx context.Context, q *questions.Question, org string) ([]domain.Suggestion, error) {
	text := strings.ToLower(q.Text)
	var out []domain.Suggestion

	for _, rule := range evidenceRules {
		if !containsAny(text, rule.vocabulary...) {
			continue
		}
		items, err := g.Evidence.FindByType(ctx, org, rule.docType)
		if err != nil {
			return out, fmt.Errorf("pattern evidence lookup (%s): %w", rule.docType, err)
		}
		if len(items) == 0 {
			continue
		}
		ids := make([]string, 0, len(items))
		titles := make([]string, 0, len(items))
		for _, ev := range items {
			ids = append(ids, string(ev.ID))
			titles = append(titles, ev.Title)
		}
		out = append(out, domain.Suggestion{
			SuggestedAnswer: rule.answer,
			ConfidenceScore: rule.confidence(g.Cfg),
			SourceType:      domain.SourcePattern,
			EvidenceIDs:     ids,
			Reasoning: fmt.Sprintf("Question mentions %s vocabulary and %d matching %s item(s) exist",
				rule.vocabulary[0], len(items), rule.docType),
			Metadata: map[string]any{
				"rule":            string(rule.docType),
				"evidence_titles": titles,
			},
		})
	}

	if q.Type == questions.TypeYesNo {
		out = append(out, g.yesNoPolarity(q))
	}
	return out, nil
}

// yesNoPolarity: negasi lebih bisa dipercaya daripada sinyal afirmatif, jadi
// dicek duluan dan confidence-nya lebih tinggi. Tanpa cue sama sekali,
// default jawaban "No" konservatif (policy parameter, lihat config).
func (g *PatternGenerator) yesNoPolarity(q *questions.Question) domain.Suggestion {
	text := strings.ToLower(q.Text)

	for _, w := range []string{"not", "never", "no"} {
		if hasWord(text, w) {
			return domain.Suggestion{
				SuggestedAnswer: "No",
				ConfidenceScore: g.Cfg.YesNoNegativeConfidence,
				SourceType:      domain.SourcePattern,
				Reasoning:       fmt.Sprintf("Negation cue %q detected in question text", w),
				Metadata:        map[string]any{"rule": "yes_no_polarity", "cue": w},
			}
		}
	}
	for _, w := range []string{"implemented", "established", "maintained", "documented", "policy"} {
		if hasWord(text, w) {
			return domain.Suggestion{
				SuggestedAnswer: "Yes",
				ConfidenceScore: g.Cfg.YesNoAffirmativeConfidence,
				SourceType:      domain.SourcePattern,
				Reasoning:       fmt.Sprintf("Affirmative cue %q detected in question text", w),
				Metadata:        map[string]any{"rule": "yes_no_polarity", "cue": w},
			}
		}
	}
	return domain.Suggestion{
		SuggestedAnswer: "No",
		ConfidenceScore: g.Cfg.YesNoDefaultConfidence,
		SourceType:      domain.SourcePattern,
		Reasoning:       "No polarity cue found; defaulting to a conservative negative answer",
		Metadata:        map[string]any{"rule": "yes_no_polarity", "cue": ""},
	}
}
