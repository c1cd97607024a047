package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/learnflow/assistant/internal/middleware"
	"github.com/learnflow/assistant/internal/orchestrator"
	"github.com/learnflow/assistant/internal/ratelimit"
)

const apologyReply = "I'm sorry - something went wrong on my side while answering. Please try again."

type Server struct {
	router      *chi.Mux
	port        int
	environment string
	startedAt   time.Time
	orch        *orchestrator.Orchestrator
	limiter     *ratelimit.Limiter
	logger      *slog.Logger
}

func NewServer(port int, environment string, allowedOrigins []string, orch *orchestrator.Orchestrator, limiter *ratelimit.Limiter, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.CORS(allowedOrigins))

	s := &Server{
		router:      router,
		port:        port,
		environment: environment,
		startedAt:   time.Now(),
		orch:        orch,
		limiter:     limiter,
		logger:      logger,
	}

	router.Get("/api/health", s.health)
	router.Post("/api/chat", s.chat)

	return s
}

// Handler exposes the router for the HTTP server and for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Addr() string {
	return fmt.Sprintf(":%d", s.port)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"environment":   s.environment,
		"uptimeSeconds": int(time.Since(s.startedAt).Seconds()),
	})
}

type chatRequest struct {
	Messages []orchestrator.Message `json:"messages"`
	UserID   string                 `json:"userId"`
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	// Upstream trouble is handled below this point with fallbacks;
	// only a genuine bug lands here, and even then the client gets an
	// assistant-shaped apology alongside the 500.
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("chat handler panicked", "panic", rec)
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error": "internal server error",
				"message": orchestrator.Message{
					Role:    orchestrator.RoleAssistant,
					Content: apologyReply,
				},
			})
		}
	}()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "messages must be a non-empty array of {role, content}"})
		return
	}
	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "messages must be a non-empty array of {role, content}"})
		return
	}

	identity := req.UserID
	if identity == "" {
		identity = ipFromRequest(r)
	}

	allowed, resetAt := s.limiter.Allow(identity)
	if !allowed {
		writeJSON(w, http.StatusTooManyRequests, map[string]string{
			"error":     "too many requests, slow down",
			"resetTime": resetAt.UTC().Format(time.RFC3339),
		})
		return
	}

	msg, err := s.orch.Handle(r.Context(), orchestrator.Request{
		Messages:   req.Messages,
		Identity:   identity,
		AdminToken: r.Header.Get("X-Admin-Token"),
	})
	if err != nil {
		// The only orchestrator error is a request-shape violation.
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": msg})
}

func ipFromRequest(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
