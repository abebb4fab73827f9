// Package httpapi exposes read-only JSON introspection over a running
// Scheduler and command Registry: per-type queue depths and the
// command history/registered-command list. It never accepts a
// mutating request — submitting tasks or running commands stays a
// Go-API-only operation, not a network one.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/enigma-engine/taskrunner/internal/command"
	"github.com/enigma-engine/taskrunner/internal/platform/config"
	"github.com/enigma-engine/taskrunner/internal/platform/logger"
	"github.com/enigma-engine/taskrunner/internal/scheduler"
)

// Server is a small read-only HTTP front for a Scheduler and a command
// Registry, built the same functional-option way as the teacher's
// monitoring server.
type Server struct {
	config     *config.Config
	logger     logger.Logger
	scheduler  *scheduler.Scheduler
	registry   *command.Registry
	httpServer *http.Server
}

// Option configures a Server at construction time.
type Option func(*Server)

func WithConfig(cfg *config.Config) Option {
	return func(s *Server) { s.config = cfg }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func WithScheduler(sched *scheduler.Scheduler) Option {
	return func(s *Server) { s.scheduler = sched }
}

func WithCommandRegistry(reg *command.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// New builds a Server and wires its router. Returns an error only if
// required options (config, scheduler) are missing.
func New(opts ...Option) (*Server, error) {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}
	if s.config == nil {
		return nil, fmt.Errorf("httpapi: WithConfig is required")
	}
	if s.scheduler == nil {
		return nil, fmt.Errorf("httpapi: WithScheduler is required")
	}

	s.setupHTTPServer()
	return s, nil
}

func (s *Server) setupHTTPServer() {
	router := mux.NewRouter()

	router.HandleFunc("/health/live", s.handleLiveness).Methods("GET")
	router.HandleFunc("/scheduler/stats", s.handleSchedulerStats).Methods("GET")
	router.HandleFunc("/commands", s.handleCommands).Methods("GET")
	router.HandleFunc("/commands/history", s.handleCommandHistory).Methods("GET")

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.HTTP.Port),
		Handler:      logger.HTTPMiddleware(s.logger)(router),
		ReadTimeout:  s.config.HTTP.ReadTimeout,
		WriteTimeout: s.config.HTTP.WriteTimeout,
		IdleTimeout:  s.config.HTTP.IdleTimeout,
	}
}

// Start runs the HTTP server until it is shut down. Blocks the caller.
func (s *Server) Start() error {
	s.logger.Info("starting introspection HTTP server", "port", s.config.HTTP.Port)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

type taskTypeStats struct {
	Type      string `json:"type"`
	Workers   int    `json:"workers"`
	Pending   int    `json:"pending"`
	Executing int    `json:"executing"`
	Completed int    `json:"completed"`
}

func (s *Server) handleSchedulerStats(w http.ResponseWriter, r *http.Request) {
	reg := s.scheduler.Registry()
	types := reg.AllTypes()

	stats := make([]taskTypeStats, 0, len(types))
	for _, typ := range types {
		stats = append(stats, taskTypeStats{
			Type:      typ,
			Workers:   reg.WorkerCount(typ),
			Pending:   s.scheduler.PendingCount(typ),
			Executing: s.scheduler.ExecutingCount(typ),
			Completed: s.scheduler.CompletedCount(typ),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"types": stats})
}

type commandInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
}

func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "command registry not configured"})
		return
	}

	specs := s.registry.AllCommands()
	commands := make([]commandInfo, len(specs))
	for i, spec := range specs {
		commands[i] = commandInfo{Name: spec.Name, Description: spec.Description, Usage: spec.Usage}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"commands": commands})
}

func (s *Server) handleCommandHistory(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "command registry not configured"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": s.registry.History().GetRecent(100)})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
