// Package web serves the three screens (landing, search form,
// results) as a small server-rendered UI sharing the same form and
// results state machines as the CLI.
package web

import (
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/starboard-re/comps-cli/internal/form"
	"github.com/starboard-re/comps-cli/internal/model"
	"github.com/starboard-re/comps-cli/internal/results"
	"github.com/starboard-re/comps-cli/internal/session"
	"github.com/starboard-re/comps-cli/pkg/comparable"
)

// Server holds the shared collaborators for all three screens.
type Server struct {
	client  comparable.Client
	store   session.Store
	limiter *rate.Limiter
	tmpl    *template.Template
}

// New creates a Server. The submit limiter protects the remote
// service from rapid resubmission.
func New(client comparable.Client, store session.Store) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, eris.Wrap(err, "web: parse templates")
	}
	return &Server{
		client:  client,
		store:   store,
		limiter: rate.NewLimiter(rate.Every(time.Second), 3),
		tmpl:    tmpl,
	}, nil
}

// Routes builds the router for the three screens.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))
	r.Use(requestLogger)

	r.Get("/", s.handleLanding)
	r.Get("/search", s.handleSearchForm)
	r.Post("/search", s.handleSearchSubmit)
	r.Get("/results", s.handleResults)

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.render(w, "landing", nil)
}

// searchPage is the template data for the search form screen.
type searchPage struct {
	Draft   model.SubjectProperty
	Zonings []model.Zoning
	Notice  string
}

func (s *Server) handleSearchForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "search", searchPage{
		Draft:   model.NewSubjectProperty(),
		Zonings: model.Zonings(),
	})
}

func (s *Server) handleSearchSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		http.Error(w, "too many searches, slow down", http.StatusTooManyRequests)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	f := form.New(s.client, s.store)
	for _, field := range []string{
		form.FieldLatitude, form.FieldLongitude, form.FieldAddress,
		form.FieldSquareFeet, form.FieldYearBuilt, form.FieldZoning,
	} {
		if err := f.UpdateField(field, r.PostFormValue(field)); err != nil {
			http.Error(w, "invalid form body", http.StatusBadRequest)
			return
		}
	}
	if n := r.PostFormValue(form.FieldNumComparables); n != "" {
		if err := f.UpdateField(form.FieldNumComparables, n); err != nil {
			s.render(w, "search", searchPage{
				Draft:   f.Draft(),
				Zonings: model.Zonings(),
				Notice:  "Number of comparables must be a whole number",
			})
			return
		}
	}

	_, err := f.Submit(r.Context())
	if err != nil {
		var vErr *form.ValidationError
		var sErr *form.SearchFailedError
		page := searchPage{Draft: f.Draft(), Zonings: model.Zonings()}
		switch {
		case errors.As(err, &vErr):
			page.Notice = "Please fill in all required fields"
		case errors.As(err, &sErr):
			page.Notice = "Unable to find comparable properties. Please try again."
		default:
			zap.L().Error("search submit failed", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		s.render(w, "search", page)
		return
	}

	http.Redirect(w, r, "/results", http.StatusSeeOther)
}

// resultsCard augments the derived card with its toggle link.
type resultsCard struct {
	results.Card
	ToggleURL string
}

// resultsPage is the template data for the results screen.
type resultsPage struct {
	Count   int
	Summary results.Summary
	Cards   []resultsCard
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	view, err := results.Load(r.Context(), s.store)
	if err != nil {
		// Entering results without a session is a navigational guard,
		// not an error: send the user back to the form.
		if errors.Is(err, results.ErrSessionMissing) {
			http.Redirect(w, r, "/search", http.StatusSeeOther)
			return
		}
		zap.L().Error("load results", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	for _, id := range splitIDs(r.URL.Query().Get("expand")) {
		view.Toggle(id)
	}

	cards := view.Cards()
	page := resultsPage{
		Count:   len(view.Comparables),
		Summary: view.Summary(),
		Cards:   make([]resultsCard, 0, len(cards)),
	}
	for _, c := range cards {
		page.Cards = append(page.Cards, resultsCard{
			Card:      c,
			ToggleURL: toggleURL(view, c.ID),
		})
	}

	s.render(w, "results", page)
}

// toggleURL computes the results link with one card's expansion
// flipped, keeping all other expansion state as-is.
func toggleURL(v *results.View, id string) string {
	v.Toggle(id)
	ids := v.ExpandedIDs()
	v.Toggle(id)

	if len(ids) == 0 {
		return "/results"
	}
	return "/results?expand=" + strings.Join(ids, ",")
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		zap.L().Error("render template", zap.String("template", name), zap.Error(err))
	}
}
