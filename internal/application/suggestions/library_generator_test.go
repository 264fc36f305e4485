package suggestions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumarsatish86/complianceos-suggest/internal/domain/library"
	"github.com/kumarsatish86/complianceos-suggest/internal/domain/questions"
	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/suggestions"
)

func libraryQuestion(keywords ...string) *questions.Question {
	return &questions.Question{
		ID:                "q-1",
		OrganizationID:    "acme",
		Text:              "Is data encrypted at rest?",
		Type:              questions.TypeYesNo,
		ExtractedKeywords: keywords,
	}
}

func TestLibraryGeneratorFullMatch(t *testing.T) {
	repo := &fakeMatcher{entries: []*library.Entry{{
		ID:                 "e-1",
		Category:           library.CategoryDataProtection,
		KeyPhrases:         []string{"encryption", "at rest", "aes-256"},
		StandardAnswer:     "All customer data at rest is encrypted with AES-256.",
		ConfidenceScore:    80,
		UsageCount:         12,
		EvidenceReferences: []string{"ev-9"},
	}}}
	g := &LibraryGenerator{Repo: repo, Cfg: domain.DefaultScoringConfig()}

	out, err := g.Generate(context.Background(), libraryQuestion("Encryption", "at rest"), "acme")
	require.NoError(t, err)
	require.Len(t, out, 1)

	// 1.0*70 + 80*0.3
	assert.InDelta(t, 94.0, out[0].ConfidenceScore, 0.001)
	assert.Equal(t, domain.SourceLibrary, out[0].SourceType)
	assert.Equal(t, "e-1", out[0].SourceID)
	assert.Equal(t, "All customer data at rest is encrypted with AES-256.", out[0].SuggestedAnswer)
	assert.Equal(t, []string{"ev-9"}, out[0].EvidenceIDs)
	assert.Contains(t, out[0].Reasoning, "2 key phrase(s)")
	assert.Equal(t, "data_protection", out[0].Metadata["category"])

	// keywords dikirim lower-cased, limit pakai config
	assert.Equal(t, []string{"encryption", "at rest"}, repo.gotKeywords)
	assert.Equal(t, 3, repo.gotLimit)
}

func TestLibraryGeneratorBelowThreshold(t *testing.T) {
	// 1 dari 4 keyword match: 0.25*70 + 40*0.3 = 29.5, di bawah 30
	repo := &fakeMatcher{entries: []*library.Entry{{
		ID:              "e-1",
		KeyPhrases:      []string{"encryption"},
		StandardAnswer:  "Yes.",
		ConfidenceScore: 40,
	}}}
	g := &LibraryGenerator{Repo: repo, Cfg: domain.DefaultScoringConfig()}

	out, err := g.Generate(context.Background(), libraryQuestion("encryption", "key management", "rotation", "hsm"), "acme")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLibraryGeneratorNoKeywords(t *testing.T) {
	repo := &fakeMatcher{}
	g := &LibraryGenerator{Repo: repo, Cfg: domain.DefaultScoringConfig()}

	out, err := g.Generate(context.Background(), libraryQuestion(), "acme")
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.Nil(t, repo.gotKeywords, "repository must not be queried without keywords")
}

func TestLibraryGeneratorSkipsNonOverlappingEntry(t *testing.T) {
	repo := &fakeMatcher{entries: []*library.Entry{{
		ID:              "e-1",
		KeyPhrases:      []string{"firewall"},
		StandardAnswer:  "Yes.",
		ConfidenceScore: 90,
	}}}
	g := &LibraryGenerator{Repo: repo, Cfg: domain.DefaultScoringConfig()}

	out, err := g.Generate(context.Background(), libraryQuestion("encryption"), "acme")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLibraryGeneratorRepoError(t *testing.T) {
	repo := &fakeMatcher{err: errors.New("connection refused")}
	g := &LibraryGenerator{Repo: repo, Cfg: domain.DefaultScoringConfig()}

	out, err := g.Generate(context.Background(), libraryQuestion("encryption"), "acme")
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "library lookup")
}
