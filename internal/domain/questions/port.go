package questions

import (
	"context"
	"errors"
)

// ErrNotFound indicates the question id does not resolve for the organization.
var ErrNotFound = errors.New("question not found")

// Repository port (read-only, diisi oleh document ingestion)
type Repository interface {
	GetByID(ctx context.Context, org string, id QuestionID) (*Question, error)
}
