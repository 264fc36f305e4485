package library

import (
	"context"
	"sort"
	"strings"
	"time"

	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/library"
)

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

// memRepo in-memory domain.Repository, cukup untuk use-case test
type memRepo struct {
	entries map[domain.EntryID]*domain.Entry
	saveErr error

	gotSearchLimit int
}

func newMemRepo() *memRepo {
	return &memRepo{entries: map[domain.EntryID]*domain.Entry{}}
}

func (m *memRepo) Save(_ context.Context, e *domain.Entry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *e
	m.entries[e.ID] = &cp
	return nil
}

func (m *memRepo) Get(_ context.Context, org string, id domain.EntryID) (*domain.Entry, error) {
	e, ok := m.entries[id]
	if !ok || e.OrganizationID != org {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memRepo) forOrg(org string) []*domain.Entry {
	var out []*domain.Entry
	for _, e := range m.entries {
		if e.OrganizationID == org {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memRepo) List(_ context.Context, org string, f domain.ListFilter) ([]*domain.Entry, error) {
	var out []*domain.Entry
	for _, e := range m.forOrg(org) {
		if f.Category != nil && e.Category != *f.Category {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memRepo) ListAll(_ context.Context, org string) ([]*domain.Entry, error) {
	return m.forOrg(org), nil
}

func (m *memRepo) Delete(_ context.Context, org string, id domain.EntryID) error {
	e, ok := m.entries[id]
	if !ok || e.OrganizationID != org {
		return domain.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memRepo) IncrementUsage(_ context.Context, org string, id domain.EntryID, confidenceStep float64, now time.Time) error {
	e, ok := m.entries[id]
	if !ok || e.OrganizationID != org {
		return domain.ErrNotFound
	}
	e.UsageCount++
	e.ConfidenceScore += confidenceStep
	if e.ConfidenceScore > 100 {
		e.ConfidenceScore = 100
	}
	t := now
	e.LastUsedAt = &t
	return nil
}

func (m *memRepo) FindMatching(_ context.Context, org string, keywords []string, limit int) ([]*domain.Entry, error) {
	set := map[string]struct{}{}
	for _, k := range keywords {
		set[k] = struct{}{}
	}
	var out []*domain.Entry
	for _, e := range m.forOrg(org) {
		if !e.IsActive {
			continue
		}
		for _, p := range e.KeyPhrases {
			if _, ok := set[p]; ok {
				out = append(out, e)
				break
			}
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRepo) Search(_ context.Context, org, query string, category *domain.Category, limit int) ([]*domain.Entry, error) {
	m.gotSearchLimit = limit
	q := strings.ToLower(query)
	var out []*domain.Entry
	for _, e := range m.forOrg(org) {
		if !e.IsActive {
			continue
		}
		if category != nil && e.Category != *category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(e.StandardAnswer), q) {
			continue
		}
		out = append(out, e)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRepo) Stats(_ context.Context, org string) (*domain.Stats, error) {
	s := &domain.Stats{}
	for _, e := range m.forOrg(org) {
		s.TotalEntries++
		if e.IsActive {
			s.ActiveEntries++
		}
		s.TotalUsage += e.UsageCount
		s.AverageConfidence += e.ConfidenceScore
	}
	if s.TotalEntries > 0 {
		s.AverageConfidence /= float64(s.TotalEntries)
	}
	return s, nil
}

type fakeExportStore struct {
	gotKey         string
	gotContentType string
	gotData        []byte
	err            error
}

func (f *fakeExportStore) Put(_ context.Context, key string, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.gotKey = key
	f.gotData = data
	f.gotContentType = contentType
	return "https://exports.test/" + key, nil
}
