// Package http exposes the conversation engine over a JSON API. Session
// state lives server-side behind a session.Manager, so clients only carry
// the session ID.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server binds the engine and the session manager to HTTP routes.
type Server struct {
	engine   ports.ConversationEngine
	sessions *session.Manager
	logger   *slog.Logger
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithLogger configures request logging.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates the HTTP surface for an engine.
func NewServer(engine ports.ConversationEngine, sessions *session.Manager, opts ...ServerOption) *Server {
	s := &Server{
		engine:   engine,
		sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler assembles the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/graph", s.handleGraph)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.handleListSessions)
		r.Post("/", s.handleCreateSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)

			r.Post("/choose", s.handleChoose)
			r.Post("/branch", s.handleBranch)
			r.Post("/default", s.handleDefault)
			r.Post("/continue", s.handleContinue)

			r.Post("/quiz/place", s.handlePlace)
			r.Post("/quiz/check", s.handleCheck)
		})
	})

	return r
}

type createSessionRequest struct {
	SessionID string `json:"session_id"`
}

type chooseRequest struct {
	Button int `json:"button"`
}

type branchRequest struct {
	Branch string `json:"branch"`
}

type placeRequest struct {
	Item   string `json:"item"`
	Target string `json:"target"`
}

type checkResponse struct {
	Correct bool          `json:"correct"`
	State   *domain.State `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	nodes, err := s.engine.Inspect()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nodes)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if body.SessionID == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "session_id is required"})
		return
	}

	state, err := s.sessions.LoadOrStart(r.Context(), body.SessionID, func(ctx context.Context) (*domain.State, error) {
		return s.engine.Start(ctx, body.SessionID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, state)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChoose(w http.ResponseWriter, r *http.Request) {
	var body chooseRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	s.step(w, r, func(ctx context.Context, state *domain.State) (*domain.State, error) {
		return s.engine.Choose(ctx, state, body.Button)
	})
}

func (s *Server) handleBranch(w http.ResponseWriter, r *http.Request) {
	var body branchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	s.step(w, r, func(ctx context.Context, state *domain.State) (*domain.State, error) {
		return s.engine.ChooseBranch(ctx, state, body.Branch)
	})
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	s.step(w, r, s.engine.ChooseDefault)
}

func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	s.step(w, r, s.engine.Continue)
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var body placeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	s.step(w, r, func(ctx context.Context, state *domain.State) (*domain.State, error) {
		return s.engine.PlaceItem(ctx, state, body.Item, body.Target)
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	var resp checkResponse

	err := s.sessions.WithLock(r.Context(), sessionID, func(ctx context.Context) error {
		state, err := s.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}
		next, correct, err := s.engine.CheckAnswer(ctx, state)
		if err != nil {
			return err
		}
		if err := s.sessions.Store().Save(ctx, sessionID, next); err != nil {
			return err
		}
		resp = checkResponse{Correct: correct, State: next}
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// step runs a load-navigate-save cycle under the session lock.
func (s *Server) step(w http.ResponseWriter, r *http.Request, fn func(context.Context, *domain.State) (*domain.State, error)) {
	sessionID := chi.URLParam(r, "sessionID")
	var next *domain.State

	err := s.sessions.WithLock(r.Context(), sessionID, func(ctx context.Context) error {
		state, err := s.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}
		next, err = fn(ctx, state)
		if err != nil {
			return err
		}
		return s.sessions.Store().Save(ctx, sessionID, next)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, next)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var integrityErr *domain.GraphIntegrityError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrPrematureSubmission),
		errors.Is(err, domain.ErrNoActiveQuiz):
		status = http.StatusConflict
	case errors.As(err, &integrityErr):
		status = http.StatusInternalServerError
	default:
		// Remaining engine rejections are bad inputs (wrong node type,
		// unknown branch, button out of range).
		status = http.StatusBadRequest
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
