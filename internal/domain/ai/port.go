package ai

import "context"

// Client port untuk generative-text capability. Dependency ini optional:
// kalau tidak dikonfigurasi, generator generative degrade jadi tidak emit
// apa-apa dan request suggestion tetap jalan.
type Client interface {
	GenerateContextualAnswer(ctx context.Context, questionText string) (string, error)
}
