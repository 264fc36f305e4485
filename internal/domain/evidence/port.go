package evidence

import "context"

// Repository port (read-only). Kedua query hanya mengembalikan evidence
// dengan status approved.
type Repository interface {
	FindByControlIDs(ctx context.Context, org string, controlIDs []string) ([]*Evidence, error)
	FindByType(ctx context.Context, org string, docType DocumentType) ([]*Evidence, error)
}
