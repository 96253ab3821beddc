package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/unitconv"
	"github.com/aretw0/unitconv/internal/logging"
	"github.com/aretw0/unitconv/pkg/conversion"
	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/aretw0/unitconv/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// Server exposes the converter and hosted sessions over HTTP.
type Server struct {
	Manager *session.Manager
	Streams *StreamManager

	logger  *slog.Logger
	metrics http.Handler
	observe ConversionObserver
}

// ConversionObserver is told about every stateless conversion.
type ConversionObserver func(input string, mode domain.Mode, seconds float64)

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithConversionObserver records stateless /convert calls, e.g. into metrics.
func WithConversionObserver(fn ConversionObserver) Option {
	return func(s *Server) {
		s.observe = fn
	}
}

// NewServer creates a Server around a session Manager.
func NewServer(manager *session.Manager, opts ...Option) *Server {
	s := &Server{
		Manager: manager,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// NewHandler creates a new HTTP handler for the session Manager.
func NewHandler(manager *session.Manager, opts ...Option) http.Handler {
	return NewServer(manager, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Get("/modes", s.ListModes)
	r.Get("/convert", s.Convert)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.StartSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Put("/input", s.ChangeInput)
			r.Put("/mode", s.SelectMode)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>unitconv API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if spec, err := GetSpec(); err == nil && spec.Info != nil {
		apiVersion = spec.Info.Version
	} else if err != nil {
		s.logger.Error("Failed to load OpenAPI spec", "err", err)
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "unitconv-http",
		"version":     strings.TrimSpace(unitconv.Version),
		"api_version": apiVersion,
	})
}

type modeResponse struct {
	conversion.UnitPair
	Description string `json:"description"`
}

// ListModes handles the GET /modes request.
func (s *Server) ListModes(w http.ResponseWriter, r *http.Request) {
	pairs := conversion.Pairs()
	resp := make([]modeResponse, len(pairs))
	for i, p := range pairs {
		resp[i] = modeResponse{UnitPair: p, Description: p.Description()}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type conversionResponse struct {
	Value  string      `json:"value"`
	Mode   domain.Mode `json:"mode"`
	Result string      `json:"result"`
}

// Convert handles the stateless GET /convert request.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode, err := conversion.ParseMode(q.Get("mode"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	value := q.Get("value")
	start := time.Now()
	result := conversion.Convert(value, mode)
	if s.observe != nil {
		s.observe(value, mode, time.Since(start).Seconds())
	}
	s.writeJSON(w, http.StatusOK, conversionResponse{
		Value:  value,
		Mode:   mode,
		Result: result,
	})
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Manager.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

type startRequest struct {
	ID string `json:"id"`
}

// StartSession handles the POST /sessions request.
// A missing ID is generated; an existing ID is resumed.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	var body startRequest
	if err := decodeBody(w, r, &body); err != nil && !errors.Is(err, io.EOF) {
		s.badRequest(w, "StartSession", err)
		return
	}
	if body.ID == "" {
		body.ID = uuid.NewString()
	}

	state, err := s.Manager.LoadOrStart(r.Context(), body.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("Session started", "session_id", body.ID, "revision", state.Revision)
	s.writeJSON(w, http.StatusCreated, state)
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.Manager.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

// DeleteSession handles the DELETE /sessions/{id} request and ends its streams.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Manager.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

type inputRequest struct {
	Input *string `json:"input"`
}

// ChangeInput handles the PUT /sessions/{id}/input request.
func (s *Server) ChangeInput(w http.ResponseWriter, r *http.Request) {
	var body inputRequest
	if err := decodeBody(w, r, &body); err != nil {
		s.badRequest(w, "ChangeInput", err)
		return
	}
	if body.Input == nil {
		s.badRequest(w, "ChangeInput", errors.New("missing field \"input\""))
		return
	}
	s.update(w, r, session.InputChanged(*body.Input))
}

type modeRequest struct {
	Mode string `json:"mode"`
}

// SelectMode handles the PUT /sessions/{id}/mode request.
// Unknown modes are rejected instead of being stored as "Invalid".
func (s *Server) SelectMode(w http.ResponseWriter, r *http.Request) {
	var body modeRequest
	if err := decodeBody(w, r, &body); err != nil {
		s.badRequest(w, "SelectMode", err)
		return
	}
	mode, err := conversion.ParseMode(body.Mode)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.update(w, r, session.ModeSelected(mode))
}

// update applies a change and broadcasts the resulting diff to SSE subscribers.
func (s *Server) update(w http.ResponseWriter, r *http.Request, c session.Change) {
	id := chi.URLParam(r, "id")
	before, after, err := s.Manager.Update(r.Context(), id, c)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if diff := domain.Diff(before, after); diff != nil {
		s.logger.Debug("Diff calculated", "session_id", id, "event", c.Type, "revision", after.Revision)
		if payload, err := json.Marshal(diff); err == nil {
			s.Streams.Broadcast(id, string(payload))
		}
	}

	s.writeJSON(w, http.StatusOK, after)
}

// SubscribeEvents handles the GET /sessions/{id}/events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := s.Manager.Load(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	watch := parseWatch(r.URL.Query().Get("watch"))

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()
	s.logger.Info("SSE: Subscribing to Session Updates", "session_id", id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				fmt.Fprintf(w, "event: closed\ndata: %s\n\n", id)
				flusher.Flush()
				return
			}
			if len(watch) > 0 && !matchesWatch(msg, watch) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// parseWatch splits the comma separated watch filter.
func parseWatch(raw string) []string {
	if raw == "" {
		return nil
	}
	var fields []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// matchesWatch reports whether the diff touches any watched field.
// Undecodable payloads are passed through.
func matchesWatch(msg string, watch []string) bool {
	var diff domain.StateDiff
	if err := json.Unmarshal([]byte(msg), &diff); err != nil {
		return true
	}
	for _, field := range watch {
		switch field {
		case "input":
			if diff.Input != nil {
				return true
			}
		case "mode":
			if diff.Mode != nil {
				return true
			}
		case "result":
			if diff.Result != nil {
				return true
			}
		case "revision":
			if diff.Revision != nil {
				return true
			}
		}
	}
	return false
}

// -- Helpers --

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (s *Server) badRequest(w http.ResponseWriter, op string, err error) {
	s.logger.Warn(op+": Invalid request body", "err", err)
	s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid request body: %v", err)})
}

// writeError maps domain sentinels to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidSessionID), errors.Is(err, domain.ErrUnknownMode):
		status = http.StatusBadRequest
	default:
		s.logger.Error("Request failed", "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}
