// Package web serves the dashboards over HTTP: an HTML page per dashboard,
// its scene as SVG, its state as JSON and an event endpoint.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/penwyp/go-survey-explorer/internal/application/dashboard"
	"github.com/penwyp/go-survey-explorer/internal/core/filter"
	"github.com/penwyp/go-survey-explorer/internal/core/binder"
	"github.com/penwyp/go-survey-explorer/internal/presentation/svg"
	"github.com/penwyp/go-survey-explorer/internal/util"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxEventBytes = 64 << 10

// Server handles the dashboard routes
type Server struct {
	config    *dashboard.Config
	manager   *dashboard.Manager
	templates *template.Template
	router    chi.Router
	log       *util.ComponentLogger
}

// NewServer creates a Server for the dashboards held by manager
func NewServer(config *dashboard.Config, manager *dashboard.Manager) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"percent":   util.FormatPercent,
		"thousands": func(n int) string { return util.FormatThousands(int64(n)) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		config:    config,
		manager:   manager,
		templates: tmpl,
		log:       util.ForComponent("web"),
	}
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/{kind}", s.handlePage)
	r.Get("/{kind}/scene.svg", s.handleScene)
	r.Get("/{kind}/state", s.handleState)
	r.Post("/{kind}/events", s.handleEvent)
	s.router = r
	return s, nil
}

// ServeHTTP routes a request
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// logRequests logs every request with method, path, status and latency.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			s.log.Debug("request",
				util.F("method", r.Method),
				util.F("path", r.URL.Path),
				util.F("status", status),
				util.F("bytes", ww.BytesWritten()),
				util.F("elapsed", time.Since(start).String()))
		}()
		next.ServeHTTP(ww, r)
	})
}

// ListenAndServe serves on the configured address until ctx is done
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Listen,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		util.LogInfof("Serving dashboards on %s", s.config.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type indexEntry struct {
	Kind      dashboard.Kind
	Title     string
	Results   int
	LoadError string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var entries []indexEntry
	for _, k := range s.manager.Kinds() {
		snap, err := s.manager.Snapshot(k)
		if err != nil {
			continue
		}
		title := snap.Title
		if title == "" {
			title = string(k)
		}
		entries = append(entries, indexEntry{Kind: k, Title: title, Results: snap.Results, LoadError: snap.LoadError})
	}
	s.render(w, "index.html", entries)
}

type pageData struct {
	Snapshot dashboard.Snapshot
	Scene    template.HTML
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := svg.Render(&buf, snap); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	// svg.Render escapes every text node it writes.
	s.render(w, "dashboard.html", pageData{Snapshot: snap, Scene: template.HTML(buf.String())})
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := svg.Render(&buf, snap); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	buf.WriteTo(w)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBytes))
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	var ev dashboard.Event
	if err := sonic.Unmarshal(body, &ev); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid event: %w", err))
		return
	}
	res, err := s.manager.Dispatch(dashboard.Kind(chi.URLParam(r, "kind")), ev)
	if err != nil {
		s.fail(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (dashboard.Snapshot, bool) {
	snap, err := s.manager.Snapshot(dashboard.Kind(chi.URLParam(r, "kind")))
	if err != nil {
		s.fail(w, statusFor(err), err)
		return snap, false
	}
	return snap, true
}

// statusFor maps dashboard errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownDashboard):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, dashboard.ErrUnknownEvent),
		errors.Is(err, dashboard.ErrUnsupportedEvent),
		errors.Is(err, dashboard.ErrUnknownKey),
		errors.Is(err, filter.ErrUnknownGroup),
		errors.Is(err, filter.ErrUnknownOption),
		errors.Is(err, binder.ErrNoElement):
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		s.log.Error("encode response", util.F("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", util.F("error", err.Error()))
	}
	s.writeJSON(w, status, errorBody{Error: err.Error()})
}
