package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// Metrics stores application metrics
type Metrics struct {
	RequestsTotal       uint64
	RequestsInProgress  uint64
	RequestsSuccess     uint64
	RequestsFailed      uint64
	SuggestionRequests  uint64
	SuggestionsEmitted  uint64
	LibraryEntriesSaved uint64
	LibraryUsageEvents  uint64
	StartTime           time.Time
}

var globalMetrics = &Metrics{
	StartTime: time.Now(),
}

// IncrementSuggestionRequests counts suggestion generation requests
func IncrementSuggestionRequests() {
	atomic.AddUint64(&globalMetrics.SuggestionRequests, 1)
}

// AddSuggestionsEmitted adds the number of suggestions returned by one request
func AddSuggestionsEmitted(n int) {
	if n > 0 {
		atomic.AddUint64(&globalMetrics.SuggestionsEmitted, uint64(n))
	}
}

// IncrementLibrarySaved counts library entry create/update/import writes
func IncrementLibrarySaved() {
	atomic.AddUint64(&globalMetrics.LibraryEntriesSaved, 1)
}

// IncrementLibraryUsage counts accepted-suggestion usage feedback events
func IncrementLibraryUsage() {
	atomic.AddUint64(&globalMetrics.LibraryUsageEvents, 1)
}

// GetMetrics returns current metrics
func GetMetrics() map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return map[string]interface{}{
		"requests_total":        atomic.LoadUint64(&globalMetrics.RequestsTotal),
		"requests_in_progress":  atomic.LoadUint64(&globalMetrics.RequestsInProgress),
		"requests_success":      atomic.LoadUint64(&globalMetrics.RequestsSuccess),
		"requests_failed":       atomic.LoadUint64(&globalMetrics.RequestsFailed),
		"suggestion_requests":   atomic.LoadUint64(&globalMetrics.SuggestionRequests),
		"suggestions_emitted":   atomic.LoadUint64(&globalMetrics.SuggestionsEmitted),
		"library_entries_saved": atomic.LoadUint64(&globalMetrics.LibraryEntriesSaved),
		"library_usage_events":  atomic.LoadUint64(&globalMetrics.LibraryUsageEvents),
		"uptime_seconds":        time.Since(globalMetrics.StartTime).Seconds(),
		"memory": map[string]interface{}{
			"alloc_bytes": m.Alloc,
			"sys_bytes":   m.Sys,
			"num_gc":      m.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}
}

// MetricsMiddleware tracks request metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddUint64(&globalMetrics.RequestsTotal, 1)
		atomic.AddUint64(&globalMetrics.RequestsInProgress, 1)
		defer atomic.AddUint64(&globalMetrics.RequestsInProgress, ^uint64(0))

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode >= 200 && wrapped.statusCode < 400 {
			atomic.AddUint64(&globalMetrics.RequestsSuccess, 1)
		} else {
			atomic.AddUint64(&globalMetrics.RequestsFailed, 1)
		}
	})
}

// MetricsHandler returns metrics as JSON
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GetMetrics())
}
