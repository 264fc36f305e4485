package suggestions

import (
	"context"
	"time"

	"github.com/kumarsatish86/complianceos-suggest/internal/domain/evidence"
	"github.com/kumarsatish86/complianceos-suggest/internal/domain/library"
	"github.com/kumarsatish86/complianceos-suggest/internal/domain/questions"
	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/suggestions"
)

type fakeQuestionRepo struct {
	byID map[questions.QuestionID]*questions.Question
}

func (f *fakeQuestionRepo) GetByID(_ context.Context, _ string, id questions.QuestionID) (*questions.Question, error) {
	q, ok := f.byID[id]
	if !ok {
		return nil, questions.ErrNotFound
	}
	return q, nil
}

type fakeMatcher struct {
	entries []*library.Entry
	err     error

	gotKeywords []string
	gotLimit    int
}

func (f *fakeMatcher) FindMatching(_ context.Context, _ string, keywords []string, limit int) ([]*library.Entry, error) {
	f.gotKeywords = keywords
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && limit < len(f.entries) {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

type fakeEvidenceRepo struct {
	byControl []*evidence.Evidence
	byType    map[evidence.DocumentType][]*evidence.Evidence
	err       error
}

func (f *fakeEvidenceRepo) FindByControlIDs(_ context.Context, _ string, _ []string) ([]*evidence.Evidence, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byControl, nil
}

func (f *fakeEvidenceRepo) FindByType(_ context.Context, _ string, docType evidence.DocumentType) ([]*evidence.Evidence, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byType[docType], nil
}

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type fakeAI struct {
	answer string
	err    error
	calls  int
}

func (f *fakeAI) GenerateContextualAnswer(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.answer, f.err
}

type stubGenerator struct {
	name   string
	out    []domain.Suggestion
	err    error
	panics bool
	blocks bool
}

func (g *stubGenerator) Name() string { return g.name }

func (g *stubGenerator) Generate(ctx context.Context, _ *questions.Question, _ string) ([]domain.Suggestion, error) {
	if g.panics {
		panic("stub generator exploded")
	}
	if g.blocks {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return g.out, g.err
}
