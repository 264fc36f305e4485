package suggestions

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumarsatish86/complianceos-suggest/internal/domain/evidence"
	"github.com/kumarsatish86/complianceos-suggest/internal/domain/questions"
	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/suggestions"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func evidenceQuestion(text string, controls ...string) *questions.Question {
	return &questions.Question{
		ID:             "q-1",
		OrganizationID: "acme",
		Text:           text,
		Type:           questions.TypeFreeText,
		ControlMapping: controls,
	}
}

func TestEvidenceGeneratorFullMatchWithRecency(t *testing.T) {
	repo := &fakeEvidenceRepo{byControl: []*evidence.Evidence{{
		ID:           "ev-1",
		Title:        "Access Control Policy v3",
		DocumentType: evidence.TypePolicyDocument,
		ControlIDs:   []string{"AC-1", "AC-2", "AC-3"},
		UpdatedAt:    testNow.AddDate(0, 0, -5),
	}}}
	g := &EvidenceGenerator{Repo: repo, Cfg: domain.DefaultScoringConfig(), Clock: fakeClock{t: testNow}}

	out, err := g.Generate(context.Background(), evidenceQuestion("Describe your access control policy.", "AC-1", "AC-2"), "acme")
	require.NoError(t, err)
	require.Len(t, out, 1)

	// 1.0*60 + (20-5)
	assert.InDelta(t, 75.0, out[0].ConfidenceScore, 0.001)
	assert.Equal(t, domain.SourceEvidence, out[0].SourceType)
	assert.Equal(t, "ev-1", out[0].SourceID)
	assert.Equal(t, []string{"ev-1"}, out[0].EvidenceIDs)
	assert.Equal(t, "Matched controls: AC-1, AC-2", out[0].Reasoning)
	assert.Equal(t, 5, out[0].Metadata["days_since_update"])
	assert.Contains(t, out[0].SuggestedAnswer, `"Access Control Policy v3"`)
}

func TestEvidenceGeneratorNoRecencyBoostForOldEvidence(t *testing.T) {
	repo := &fakeEvidenceRepo{byControl: []*evidence.Evidence{{
		ID:         "ev-1",
		Title:      "Old Report",
		ControlIDs: []string{"AC-1", "AC-9"},
		UpdatedAt:  testNow.AddDate(0, 0, -100),
	}}}
	g := &EvidenceGenerator{Repo: repo, Cfg: domain.DefaultScoringConfig(), Clock: fakeClock{t: testNow}}

	out, err := g.Generate(context.Background(), evidenceQuestion("Any question", "AC-1", "AC-2"), "acme")
	require.NoError(t, err)
	require.Len(t, out, 1)
	// 0.5*60 + 0
	assert.InDelta(t, 30.0, out[0].ConfidenceScore, 0.001)
}

func TestEvidenceGeneratorBelowThreshold(t *testing.T) {
	// 1 dari 3 control match, evidence lama: 20 <= 25
	repo := &fakeEvidenceRepo{byControl: []*evidence.Evidence{{
		ID:         "ev-1",
		Title:      "Stale",
		ControlIDs: []string{"AC-1"},
		UpdatedAt:  testNow.AddDate(-1, 0, 0),
	}}}
	g := &EvidenceGenerator{Repo: repo, Cfg: domain.DefaultScoringConfig(), Clock: fakeClock{t: testNow}}

	out, err := g.Generate(context.Background(), evidenceQuestion("Any", "AC-1", "AC-2", "AC-3"), "acme")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestEvidenceGeneratorNoControlMapping(t *testing.T) {
	repo := &fakeEvidenceRepo{err: errors.New("must not be called")}
	g := &EvidenceGenerator{Repo: repo, Cfg: domain.DefaultScoringConfig(), Clock: fakeClock{t: testNow}}

	out, err := g.Generate(context.Background(), evidenceQuestion("Any question"), "acme")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestEvidenceGeneratorCandidateCap(t *testing.T) {
	var items []*evidence.Evidence
	for i := 0; i < 8; i++ {
		items = append(items, &evidence.Evidence{
			ID:         evidence.EvidenceID(fmt.Sprintf("ev-%d", i)),
			Title:      fmt.Sprintf("Doc %d", i),
			ControlIDs: []string{"AC-1"},
			UpdatedAt:  testNow.AddDate(0, 0, -1),
		})
	}
	repo := &fakeEvidenceRepo{byControl: items}
	g := &EvidenceGenerator{Repo: repo, Cfg: domain.DefaultScoringConfig(), Clock: fakeClock{t: testNow}}

	out, err := g.Generate(context.Background(), evidenceQuestion("Any", "AC-1"), "acme")
	require.NoError(t, err)
	assert.Len(t, out, 5)
}

func TestAnswerFromEvidenceTemplates(t *testing.T) {
	cases := []struct {
		question string
		want     string
	}{
		{"Do you have a written security policy?", "documented policies"},
		{"Describe your security awareness training.", "training and awareness program"},
		{"How do you respond to a security incident?", "incident response capability"},
		{"Do you perform background checks?", "supporting evidence"},
	}
	for _, tc := range cases {
		got := answerFromEvidence(tc.question, "Doc A")
		assert.Contains(t, got, tc.want, "question: %s", tc.question)
		assert.Contains(t, got, `"Doc A"`)
	}
}
