package suggestions

import (
	"context"
	"strings"

	"github.com/kumarsatish86/complianceos-suggest/internal/domain/ai"
	"github.com/kumarsatish86/complianceos-suggest/internal/domain/questions"
	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/suggestions"
)

// topik yang dikenali → confidence lebih tinggi dari fallback; urutan
// slice menentukan topik mana yang menang kalau lebih dari satu match
var generativeTopics = []struct {
	name string
	cues []string
}{
	{"access_control", []string{"access control", "access", "authentication", "authorization"}},
	{"encryption", []string{"encryption", "encrypt", "cryptograph"}},
	{"monitoring", []string{"monitoring", "logging", "audit log"}},
	{"backup_recovery", []string{"backup", "recovery", "restore"}},
}

// GenerativeGenerator fallback kontekstual: delegasi ke generative-text
// capability. Client nil berarti capability tidak dikonfigurasi; generator
// diam saja, tidak pernah menjatuhkan pipeline.
type GenerativeGenerator struct {
	Client ai.Client
	Cfg    domain.ScoringConfig
}

func (g *GenerativeGenerator) Name() string { return "generative" }

func (g *GenerativeGenerator) Generate(ctx context.Context, q *questions.Question, org string) ([]domain.Suggestion, error) {
	if g.Client == nil {
		return nil, nil
	}

	text, err := g.Client.GenerateContextualAnswer(ctx, q.Text)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	topic, score := g.detectTopic(q.Text)
	meta := map[string]any{}
	if topic != "" {
		meta["topic"] = topic
	}

	return []domain.Suggestion{{
		SuggestedAnswer: text,
		ConfidenceScore: score,
		SourceType:      domain.SourceGenerative,
		Reasoning:       "Generated from question context; no curated source produced this answer",
		Metadata:        meta,
	}}, nil
}

func (g *GenerativeGenerator) detectTopic(questionText string) (string, float64) {
	t := strings.ToLower(questionText)
	for _, topic := range generativeTopics {
		if containsAny(t, topic.cues...) {
			return topic.name, g.Cfg.GenerativeTopicConfidence
		}
	}
	return "", g.Cfg.GenerativeDefaultConfidence
}
