package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	applib "github.com/kumarsatish86/complianceos-suggest/internal/application/library"
	appsugg "github.com/kumarsatish86/complianceos-suggest/internal/application/suggestions"
	domai "github.com/kumarsatish86/complianceos-suggest/internal/domain/ai"
	domlib "github.com/kumarsatish86/complianceos-suggest/internal/domain/library"
	domq "github.com/kumarsatish86/complianceos-suggest/internal/domain/questions"
	"github.com/kumarsatish86/complianceos-suggest/internal/middleware"
)

type Router struct {
	suggestSvc *appsugg.Service
	librarySvc *applib.Service
}

// Options wiring router: auth keys boleh kosong (auth dimatikan, untuk
// development), health handler dipasang dari main supaya bisa ping DB.
type Options struct {
	AuthKeys           map[string]string
	RateLimitCapacity  int
	RateLimitPerSecond int
	Health             http.HandlerFunc
}

func NewRouter(suggestSvc *appsugg.Service, librarySvc *applib.Service, opts Options) http.Handler {
	r := &Router{suggestSvc: suggestSvc, librarySvc: librarySvc}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if len(opts.AuthKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(opts.AuthKeys))
	}
	if opts.RateLimitCapacity > 0 {
		mux.Use(middleware.RateLimitMiddleware(opts.RateLimitCapacity, opts.RateLimitPerSecond))
	}
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)

	if opts.Health != nil {
		mux.Get("/health", opts.Health)
	} else {
		mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		})
	}
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1/{org}", func(rt chi.Router) {
		rt.Post("/questions/{id}/suggestions", r.wrap(r.handleGenerateSuggestions))

		rt.Post("/library", r.wrap(r.handleCreateEntry))
		rt.Get("/library", r.wrap(r.handleListEntries))
		rt.Get("/library/search", r.wrap(r.handleSearchEntries))
		rt.Get("/library/stats", r.wrap(r.handleStats))
		rt.Get("/library/export", r.wrap(r.handleExport))
		rt.Post("/library/export/archive", r.wrap(r.handleArchiveExport))
		rt.Post("/library/import", r.wrap(r.handleImport))
		rt.Get("/library/improvements", r.wrap(r.handleImprovements))
		rt.Get("/library/{id}", r.wrap(r.handleGetEntry))
		rt.Put("/library/{id}", r.wrap(r.handleUpdateEntry))
		rt.Delete("/library/{id}", r.wrap(r.handleDeleteEntry))
		rt.Post("/library/{id}/usage", r.wrap(r.handleIncrementUsage))
	})

	return mux
}

// API key resolve ke satu organisasi; path org lain ditolak
var errOrgForbidden = errors.New("api key is not valid for this organization")

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var ve *domlib.ValidationError
		switch {
		case errors.Is(err, errOrgForbidden):
			writeError(w, http.StatusForbidden, err.Error(), "")
		case errors.Is(err, domq.ErrNotFound), errors.Is(err, domlib.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error(), "")
		case errors.As(err, &ve):
			writeError(w, http.StatusUnprocessableEntity, ve.Message, ve.Field)
		case errors.Is(err, domai.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, "ai quota exceeded", "")
		default:
			writeError(w, http.StatusInternalServerError, err.Error(), "")
		}
	}
}

func writeError(w http.ResponseWriter, status int, msg, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"error": msg}
	if field != "" {
		body["field"] = field
	}
	json.NewEncoder(w).Encode(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func orgParam(req *http.Request) (string, error) {
	org := chi.URLParam(req, "org")
	if err := middleware.ValidateOrg(org); err != nil {
		return "", &domlib.ValidationError{Field: "organization", Message: err.Error()}
	}
	if authOrg := middleware.GetOrgFromContext(req.Context()); authOrg != "" && authOrg != org {
		return "", errOrgForbidden
	}
	return org, nil
}

func idParam(req *http.Request) (string, error) {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateID(id); err != nil {
		return "", &domlib.ValidationError{Field: "id", Message: err.Error()}
	}
	return id, nil
}

// POST /v1/{org}/questions/{id}/suggestions
func (r *Router) handleGenerateSuggestions(w http.ResponseWriter, req *http.Request) error {
	org, err := orgParam(req)
	if err != nil {
		return err
	}
	id, err := idParam(req)
	if err != nil {
		return err
	}

	middleware.IncrementSuggestionRequests()
	list, err := r.suggestSvc.GenerateSuggestions(req.Context(), org, domq.QuestionID(id))
	if err != nil {
		return err
	}
	middleware.AddSuggestionsEmitted(len(list))

	// list pendek (bahkan kosong) adalah hasil valid, bukan error
	return writeJSON(w, http.StatusOK, map[string]any{
		"question_id": id,
		"count":       len(list),
		"suggestions": list,
	})
}

// POST /v1/{org}/library
func (r *Router) handleCreateEntry(w http.ResponseWriter, req *http.Request) error {
	org, err := orgParam(req)
	if err != nil {
		return err
	}

	var body struct {
		Category           string         `json:"category"`
		Subcategory        string         `json:"subcategory"`
		KeyPhrases         []string       `json:"key_phrases"`
		StandardAnswer     string         `json:"standard_answer"`
		EvidenceReferences []string       `json:"evidence_references"`
		CreatedBy          string         `json:"created_by"`
		Metadata           map[string]any `json:"metadata"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return &domlib.ValidationError{Field: "body", Message: err.Error()}
	}

	id, err := r.librarySvc.CreateEntry(req.Context(), org, applib.CreateEntryCommand{
		Category:           body.Category,
		Subcategory:        body.Subcategory,
		KeyPhrases:         body.KeyPhrases,
		StandardAnswer:     body.StandardAnswer,
		EvidenceReferences: body.EvidenceReferences,
		CreatedBy:          body.CreatedBy,
		Metadata:           body.Metadata,
	})
	if err != nil {
		return err
	}
	middleware.IncrementLibrarySaved()

	return writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

// GET /v1/{org}/library?category=&q=&limit=&offset=
func (r *Router) handleListEntries(w http.ResponseWriter, req *http.Request) error {
	org, err := orgParam(req)
	if err != nil {
		return err
	}

	f := domlib.ListFilter{SearchText: req.URL.Query().Get("q")}
	if c := req.URL.Query().Get("category"); c != "" {
		cat, err := domlib.ParseCategory(c)
		if err != nil {
			return err
		}
		f.Category = &cat
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	f.Limit = middleware.ClampLimit(limit, 50, 200)
	f.Offset, _ = strconv.Atoi(req.URL.Query().Get("offset"))

	list, err := r.librarySvc.GetEntries(req.Context(), org, f)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/{org}/library/{id}
func (r *Router) handleGetEntry(w http.ResponseWriter, req *http.Request) error {
	org, err := orgParam(req)
	if err != nil {
		return err
	}
	id, err := idParam(req)
	if err != nil {
		return err
	}

	entry, err := r.librarySvc.GetEntry(req.Context(), org, domlib.EntryID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, entry)
}

// PUT /v1/{org}/library/{id}
func (r *Router) handleUpdateEntry(w http.ResponseWriter, req *http.Request) error {
	org, err := orgParam(req)
	if err != nil {
		return err
	}
	id, err := idParam(req)
	if err != nil {
		return err
	}

	var body struct {
		Category           *string        `json:"category"`
		Subcategory        *string        `json:"subcategory"`
		KeyPhrases         []string       `json:"key_phrases"`
		StandardAnswer     *string        `json:"standard_answer"`
		EvidenceReferences []string       `json:"evidence_references"`
		IsActive           *bool          `json:"is_active"`
		Metadata           map[string]any `json:"metadata"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return &domlib.ValidationError{Field: "body", Message: err.Error()}
	}

	entry, err := r.librarySvc.UpdateEntry(req.Context(), org, domlib.EntryID(id), applib.UpdateEntryCommand{
		Category:           body.Category,
		Subcategory:        body.Subcategory,
		KeyPhrases:         body.KeyPhrases,
		StandardAnswer:     body.StandardAnswer,
		EvidenceReferences: body.EvidenceReferences,
		IsActive:           body.IsActive,
		Metadata:           body.Metadata,
	})
	if err != nil {
		return err
	}
	middleware.IncrementLibrarySaved()
	return writeJSON(w, http.StatusOK, entry)
}

// DELETE /v1/{org}/library/{id}
func (r *Router) handleDeleteEntry(w http.ResponseWriter, req *http.Request) error {
	org, err := orgParam(req)
	if err != nil {
		return err
	}
	id, err := idParam(req)
	if err != nil {
		return err
	}

	if err := r.librarySvc.DeleteEntry(req.Context(), org, domlib.EntryID(id)); err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"status": "deleted", "id": id})
}

// POST /v1/{org}/library/{id}/usage
func (r *Router) handleIncrementUsage(w http.ResponseWriter, req *http.Request) error {
	org, err := orgParam(req)
	if err != nil {
		return err
	}
	id, err := idParam(req)
	if err != nil {
		return err
	}

	if err := r.librarySvc.IncrementUsage(req.Context(), org, domlib.EntryID(id)); err != nil {
		return err
	}
	middleware.IncrementLibraryUsage()
	return writeJSON(w, http.StatusOK, map[string]any{"status": "recorded", "id": id})
}

// GET /v1/{org}/library/search?q=&category=&limit=
func (r *Router) handleSearchEntries(w http.ResponseWriter, req *http.Request) error {
	org, err := orgParam(req)
	if err != nil {
		return err
	}

	var category *domlib.Category
	if c := req.URL.Query().Get("category"); c != "" {
		cat, err := domlib.ParseCategory(c)
		if err != nil {
			return err
		}
		category = &cat
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.librarySvc.SearchEntries(req.Context(), org, req.URL.Query().Get("q"), category,
		middleware.ClampLimit(limit, 20, 100))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/{org}/library/stats
func (r *Router) handleStats(w http.ResponseWriter, req *http.Request) error {
	org, err := orgParam(req)
	if err != nil {
		return err
	}

	stats, err := r.librarySvc.GetStats(req.Context(), org)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, stats)
}

// POST /v1/{org}/library/import  (body: text/csv)
func (r *Router) handleImport(w http.ResponseWriter, req *http.Request) error {
	org, err := orgParam(req)
	if err != nil {
		return err
	}
	createdBy := req.URL.Query().Get("created_by")
	if createdBy == "" {
		createdBy = "import"
	}

	body := io.LimitReader(req.Body, middleware.MaxImportBytes)
	result, err := r.librarySvc.ImportFromCSV(req.Context(), org, body, createdBy)
	if err != nil {
		return err
	}
	for i := 0; i < result.ImportedCount; i++ {
		middleware.IncrementLibrarySaved()
	}
	return writeJSON(w, http.StatusOK, result)
}

// GET /v1/{org}/library/export
func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) error {
	org, err := orgParam(req)
	if err != nil {
		return err
	}

	text, err := r.librarySvc.ExportToCSV(req.Context(), org)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", org+"-answer-library.csv"))
	_, err = w.Write([]byte(text))
	return err
}

// POST /v1/{org}/library/export/archive
func (r *Router) handleArchiveExport(w http.ResponseWriter, req *http.Request) error {
	org, err := orgParam(req)
	if err != nil {
		return err
	}

	url, err := r.librarySvc.ArchiveExport(req.Context(), org)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"url": url})
}

// GET /v1/{org}/library/improvements
func (r *Router) handleImprovements(w http.ResponseWriter, req *http.Request) error {
	org, err := orgParam(req)
	if err != nil {
		return err
	}

	out, err := r.librarySvc.SuggestImprovements(req.Context(), org)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, out)
}
