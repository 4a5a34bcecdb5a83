// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
	"github.com/0xcro3dile/decaysearch-go/internal/domain/ports"
	"github.com/0xcro3dile/decaysearch-go/internal/domain/usecases"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// maxBodyBytes bounds the JSON search request.
const maxBodyBytes = 1 << 20

// Searcher runs one search request.
type Searcher interface {
	Run(ctx context.Context, req usecases.SearchRequest) usecases.SearchResponse
}

// Server is the HTTP server for the search API and UI.
type Server struct {
	search    Searcher
	table     ports.TransitionTable
	gatherer  prometheus.Gatherer
	templates *template.Template
	addr      string
	logger    *slog.Logger

	shutdownTimeout time.Duration
	radiation       entities.RadiationType
	printMode       entities.PrintMode
}

// Option configures a Server.
type Option func(*Server)

// WithShutdownTimeout bounds how long Start waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithDefaults sets the radiation type and print mode used when a request
// leaves them out.
func WithDefaults(radiation entities.RadiationType, mode entities.PrintMode) Option {
	return func(s *Server) {
		s.radiation = radiation
		s.printMode = mode
	}
}

// NewServer creates a new HTTP server. gatherer may be nil to disable /metrics.
func NewServer(
	search Searcher,
	table ports.TransitionTable,
	gatherer prometheus.Gatherer,
	addr string,
	logger *slog.Logger,
	opts ...Option,
) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		search:          search,
		table:           table,
		gatherer:        gatherer,
		templates:       tmpl,
		addr:            addr,
		logger:          logger,
		shutdownTimeout: 5 * time.Second,
		radiation:       entities.Gamma,
		printMode:       entities.Everything,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	staticContent, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return corsMiddleware(requestIDMiddleware(s.loggingMiddleware(mux)))
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("decaysearch server starting", "addr", s.addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type indexPage struct {
	Query       string
	Radiation   string
	OnlyMatches bool
	Submitted   bool
	Status      string
	Report      string
	Transitions int
}

// handleIndex renders the search form and, when a query was submitted, its report.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	radiation, mode, err := s.requestOptions(q.Get("type"), q.Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page := indexPage{
		Query:       q.Get("q"),
		Radiation:   radiation.String(),
		OnlyMatches: mode == entities.OnlyMatches,
		Transitions: s.table.Len(),
	}

	if q.Has("q") {
		resp := s.search.Run(r.Context(), usecases.SearchRequest{Query: page.Query, Radiation: radiation, PrintMode: mode})
		page.Submitted = true
		page.Status = statusOf(resp.Outcome)
		page.Report = resp.Text
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", page); err != nil {
		s.logger.ErrorContext(r.Context(), "rendering index", "error", err)
	}
}

type searchRequest struct {
	Query         string `json:"query"`
	RadiationType string `json:"radiation_type"`
	PrintMode     string `json:"print_mode"`
}

type transitionJSON struct {
	Energy      string  `json:"energy"`
	Uncertainty string  `json:"uncertainty"`
	Intensity   float64 `json:"intensity"`
	LowerKeV    float64 `json:"lower_kev"`
	UpperKeV    float64 `json:"upper_kev"`
	Matched     bool    `json:"matched"`
}

type decayJSON struct {
	ID          string           `json:"id"`
	Parent      string           `json:"parent"`
	Daughter    string           `json:"daughter"`
	Transitions []transitionJSON `json:"transitions"`
}

type energyJSON struct {
	LowerKeV float64 `json:"lower_kev"`
	UpperKeV float64 `json:"upper_kev"`
	Modifier string  `json:"modifier"`
}

type searchResponse struct {
	Status   string       `json:"status"`
	Message  string       `json:"message,omitempty"`
	Report   string       `json:"report,omitempty"`
	Matches  int          `json:"matches"`
	Energies []energyJSON `json:"energies"`
	Decays   []decayJSON  `json:"decays"`
}

// handleSearch processes a JSON search request.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	radiation, mode, err := s.requestOptions(req.RadiationType, req.PrintMode)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := s.search.Run(r.Context(), usecases.SearchRequest{Query: req.Query, Radiation: radiation, PrintMode: mode})
	s.writeJSON(w, http.StatusOK, toSearchResponse(resp, mode))
}

// requestOptions parses the radiation type and print mode of a request,
// falling back to the server defaults for empty values.
func (s *Server) requestOptions(radiationType, printMode string) (entities.RadiationType, entities.PrintMode, error) {
	radiation, mode := s.radiation, s.printMode
	var err error
	if radiationType != "" {
		if radiation, err = entities.ParseRadiationType(radiationType); err != nil {
			return radiation, mode, err
		}
	}
	if printMode != "" {
		if mode, err = entities.ParsePrintMode(printMode); err != nil {
			return radiation, mode, err
		}
	}
	return radiation, mode, nil
}

func toSearchResponse(resp usecases.SearchResponse, mode entities.PrintMode) searchResponse {
	out := searchResponse{
		Status:   statusOf(resp.Outcome),
		Matches:  resp.Results.MatchCount(),
		Energies: make([]energyJSON, 0, len(resp.Energies)),
		Decays:   make([]decayJSON, 0, len(resp.Results)),
	}
	if resp.Outcome == ports.OutcomeMatched {
		out.Report = resp.Text
	} else {
		out.Message = resp.Text
	}

	for _, e := range resp.Energies {
		out.Energies = append(out.Energies, energyJSON{LowerKeV: e.LowerKeV, UpperKeV: e.UpperKeV, Modifier: e.Modifier.String()})
	}
	for _, id := range resp.Results.IDs() {
		d := decayJSON{ID: string(id), Transitions: []transitionJSON{}}
		for _, tr := range resp.Results[id] {
			d.Parent, d.Daughter = tr.Transition.Parent, tr.Transition.Daughter
			if mode == entities.OnlyMatches && !tr.Matched {
				continue
			}
			d.Transitions = append(d.Transitions, transitionJSON{
				Energy:      tr.Transition.EnergyText,
				Uncertainty: tr.Transition.UncertaintyText,
				Intensity:   tr.Transition.Intensity,
				LowerKeV:    tr.Transition.LowerKeV,
				UpperKeV:    tr.Transition.UpperKeV,
				Matched:     tr.Matched,
			})
		}
		out.Decays = append(out.Decays, d)
	}
	return out
}

func statusOf(outcome ports.SearchOutcome) string {
	if outcome == ports.OutcomeMatched {
		return "ok"
	}
	return string(outcome)
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"transitions": s.table.Len(),
	})
}

// writeJSON encodes v before touching the response so an encoding failure
// becomes a 500 instead of a truncated 200.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"status": "error", "message": msg})
}

type ctxKey struct{}

// RequestID returns the id assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
			"request_id", RequestID(r.Context()),
		)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == "OPTIONS" {
			return
		}
		next.ServeHTTP(w, r)
	})
}
