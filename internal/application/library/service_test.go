package library

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/library"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(repo *memRepo) *Service {
	return &Service{Repo: repo, Clock: fakeClock{t: testNow}}
}

func TestCreateEntryDefaults(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	id, err := svc.CreateEntry(context.Background(), "acme", CreateEntryCommand{
		Category:       "data_protection",
		Subcategory:    " Encryption ",
		KeyPhrases:     []string{" Encryption ", "AT REST", "encryption", ""},
		StandardAnswer: "All customer data at rest is encrypted with AES-256.",
		CreatedBy:      "alice",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	e, err := repo.Get(context.Background(), "acme", id)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryDataProtection, e.Category)
	assert.Equal(t, "Encryption", e.Subcategory)
	assert.Equal(t, []string{"encryption", "at rest"}, e.KeyPhrases, "phrases lower-cased and deduped")
	assert.Equal(t, 0, e.UsageCount)
	assert.Equal(t, float64(domain.InitialConfidence), e.ConfidenceScore)
	assert.True(t, e.IsActive)
	assert.Nil(t, e.LastUsedAt)
	assert.Equal(t, testNow, e.LastUpdated)
	assert.Equal(t, "alice", e.CreatedBy)
}

func TestCreateEntryInvalidCategory(t *testing.T) {
	svc := newTestService(newMemRepo())

	_, err := svc.CreateEntry(context.Background(), "acme", CreateEntryCommand{
		Category:       "made_up",
		StandardAnswer: "x",
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "category", ve.Field)
}

func TestCreateEntryRequiresAnswer(t *testing.T) {
	svc := newTestService(newMemRepo())

	_, err := svc.CreateEntry(context.Background(), "acme", CreateEntryCommand{
		Category:       "custom",
		StandardAnswer: "   ",
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "standard_answer", ve.Field)
}

func TestUpdateEntryPartial(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	id, err := svc.CreateEntry(context.Background(), "acme", CreateEntryCommand{
		Category:       "custom",
		KeyPhrases:     []string{"one"},
		StandardAnswer: "Original answer.",
	})
	require.NoError(t, err)

	// simulate prior usage so we can assert counters survive updates
	require.NoError(t, repo.IncrementUsage(context.Background(), "acme", id, 5, testNow))

	sub := "New Sub"
	got, err := svc.UpdateEntry(context.Background(), "acme", id, UpdateEntryCommand{Subcategory: &sub})
	require.NoError(t, err)

	assert.Equal(t, "New Sub", got.Subcategory)
	assert.Equal(t, "Original answer.", got.StandardAnswer)
	assert.Equal(t, []string{"one"}, got.KeyPhrases)
	assert.Equal(t, 1, got.UsageCount, "usage count must survive updates")
	assert.Equal(t, 55.0, got.ConfidenceScore, "confidence must survive updates")
	assert.Equal(t, testNow, got.LastUpdated)
}

func TestUpdateEntryCannotEmptyAnswer(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	id, err := svc.CreateEntry(context.Background(), "acme", CreateEntryCommand{
		Category:       "custom",
		StandardAnswer: "Original.",
	})
	require.NoError(t, err)

	empty := " "
	_, err = svc.UpdateEntry(context.Background(), "acme", id, UpdateEntryCommand{StandardAnswer: &empty})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "standard_answer", ve.Field)
}

func TestUpdateEntryNotFound(t *testing.T) {
	svc := newTestService(newMemRepo())

	_, err := svc.UpdateEntry(context.Background(), "acme", "ghost", UpdateEntryCommand{})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateEntryWrongOrg(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	id, err := svc.CreateEntry(context.Background(), "acme", CreateEntryCommand{
		Category:       "custom",
		StandardAnswer: "Original.",
	})
	require.NoError(t, err)

	_, err = svc.UpdateEntry(context.Background(), "other-org", id, UpdateEntryCommand{})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIncrementUsage(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	id, err := svc.CreateEntry(context.Background(), "acme", CreateEntryCommand{
		Category:       "custom",
		StandardAnswer: "Original.",
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.IncrementUsage(context.Background(), "acme", id))
	}

	e, err := repo.Get(context.Background(), "acme", id)
	require.NoError(t, err)
	assert.Equal(t, 3, e.UsageCount)
	assert.Equal(t, 53.0, e.ConfidenceScore)
	require.NotNil(t, e.LastUsedAt)
	assert.Equal(t, testNow, *e.LastUsedAt)
}

func TestIncrementUsageConfidenceCap(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	svc.ConfidenceStep = 30

	id, err := svc.CreateEntry(context.Background(), "acme", CreateEntryCommand{
		Category:       "custom",
		StandardAnswer: "Original.",
	})
	require.NoError(t, err)

	require.NoError(t, svc.IncrementUsage(context.Background(), "acme", id))
	require.NoError(t, svc.IncrementUsage(context.Background(), "acme", id))

	e, err := repo.Get(context.Background(), "acme", id)
	require.NoError(t, err)
	assert.Equal(t, 100.0, e.ConfidenceScore, "confidence never exceeds 100")
}

func TestSearchEntriesDefaultLimit(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	_, err := svc.SearchEntries(context.Background(), "acme", "q", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, repo.gotSearchLimit)
}

func TestDeleteEntry(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	id, err := svc.CreateEntry(context.Background(), "acme", CreateEntryCommand{
		Category:       "custom",
		StandardAnswer: "Original.",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEntry(context.Background(), "acme", id))
	require.ErrorIs(t, svc.DeleteEntry(context.Background(), "acme", id), domain.ErrNotFound)
}
