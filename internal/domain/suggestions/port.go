package suggestions

import (
	"context"

	"github.com/kumarsatish86/complianceos-suggest/internal/domain/questions"
)

// Generator port: satu strategi penghasil kandidat jawaban. Setiap generator
// sudah melakukan threshold filtering sendiri; aggregator tinggal merge.
type Generator interface {
	Name() string
	Generate(ctx context.Context, q *questions.Question, org string) ([]Suggestion, error)
}
