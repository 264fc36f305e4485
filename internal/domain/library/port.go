package library

import (
	"context"
	"time"
)

// ListFilter untuk GetEntries
type ListFilter struct {
	Category   *Category
	SearchText string
	Limit      int
	Offset     int
}

// CategoryCount satu baris category breakdown
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// Stats rekap library per organisasi
type Stats struct {
	TotalEntries      int             `json:"total_entries"`
	ActiveEntries     int             `json:"active_entries"`
	TotalUsage        int             `json:"total_usage"`
	AverageConfidence float64         `json:"average_confidence"`
	CategoryBreakdown []CategoryCount `json:"category_breakdown"`
	TopUsedEntries    []*Entry        `json:"top_used_entries"`
	RecentlyUpdated   []*Entry        `json:"recently_updated"`
}

// Repository port (interface untuk persistence)
//
// IncrementUsage wajib atomic di storage (single statement counter update);
// ini satu-satunya operasi di subsystem yang butuh jaminan transaksional.
type Repository interface {
	Save(ctx context.Context, e *Entry) error
	Get(ctx context.Context, org string, id EntryID) (*Entry, error)
	List(ctx context.Context, org string, f ListFilter) ([]*Entry, error)
	ListAll(ctx context.Context, org string) ([]*Entry, error)
	Delete(ctx context.Context, org string, id EntryID) error
	IncrementUsage(ctx context.Context, org string, id EntryID, confidenceStep float64, now time.Time) error
	FindMatching(ctx context.Context, org string, keywords []string, limit int) ([]*Entry, error)
	Search(ctx context.Context, org, query string, category *Category, limit int) ([]*Entry, error)
	Stats(ctx context.Context, org string) (*Stats, error)
}

// ExportStore port (penyimpanan snapshot export, misalnya object storage)
type ExportStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
