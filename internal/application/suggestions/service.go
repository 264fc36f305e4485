package suggestions

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/kumarsatish86/complianceos-suggest/internal/domain/questions"
	domain "github.com/kumarsatish86/complianceos-suggest/internal/domain/suggestions"
)

// Service implements the suggestion aggregation use-case: fan out ke semua
// generator, merge, rank, potong top-K. Service is designed to be used
// concurrently and is thread-safe.
type Service struct {
	Questions  questions.Repository
	Generators []domain.Generator
	Cfg        domain.ScoringConfig
}

// GenerateSuggestions jalankan semua generator paralel untuk satu pertanyaan.
// Satu generator gagal/timeout/panic → kontribusinya nol, request tetap
// jalan; hanya pertanyaan yang tidak ketemu yang menggagalkan operasi.
func (s *Service) GenerateSuggestions(ctx context.Context, org string, id questions.QuestionID) ([]domain.Suggestion, error) {
	q, err := s.Questions.GetByID(ctx, org, id)
	if err != nil {
		return nil, err
	}

	// slot hasil per generator, diisi dari goroutine masing-masing;
	// tidak ada shared state lain jadi cukup WaitGroup
	results := make([][]domain.Suggestion, len(s.Generators))
	var wg sync.WaitGroup
	for i, gen := range s.Generators {
		wg.Add(1)
		go func(i int, gen domain.Generator) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("suggestion generator %s panicked: %v", gen.Name(), r)
				}
			}()

			gctx, cancel := context.WithTimeout(ctx, s.Cfg.GeneratorTimeout())
			defer cancel()

			out, err := gen.Generate(gctx, q, org)
			if err != nil {
				log.Printf("suggestion generator %s failed: %v", gen.Name(), err)
				return
			}
			results[i] = out
		}(i, gen)
	}
	wg.Wait()

	var merged []domain.Suggestion
	for _, batch := range results {
		for _, sug := range batch {
			sug.ConfidenceScore = domain.ClampScore(sug.ConfidenceScore)
			merged = append(merged, sug)
		}
	}

	// skor turun; skor sama → prioritas sumber (library > evidence >
	// pattern > generative) supaya hasil reproducible
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].ConfidenceScore != merged[j].ConfidenceScore {
			return merged[i].ConfidenceScore > merged[j].ConfidenceScore
		}
		return merged[i].SourceType.Priority() < merged[j].SourceType.Priority()
	})

	if len(merged) > s.Cfg.MaxSuggestions {
		merged = merged[:s.Cfg.MaxSuggestions]
	}
	return merged, nil
}
