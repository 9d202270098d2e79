package webapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zurustar/tasklogger/internal/logging"
)

// Server implements the TaskAPIServer interface
type Server struct {
	controller  *TaskController
	logger      logging.Logger
	options     Options
	server      *http.Server
	taskHandler *TaskHandler
}

var _ TaskAPIServer = (*Server)(nil)

// NewServer creates a new task API server
func NewServer(controller *TaskController, logger logging.Logger, options Options) *Server {
	return &Server{
		controller:  controller,
		logger:      logger,
		options:     options,
		taskHandler: &TaskHandler{controller: controller, logger: logger},
	}
}

// Handler returns the routed handler with the middleware chain applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutesOnMux(mux)

	var handler http.Handler = mux
	handler = rateLimitMiddleware(s.options.RateLimit, s.options.RateBurst, handler)
	handler = metricsMiddleware(s.logger, handler)
	handler = requestIDMiddleware(handler)
	return handler
}

// Start starts the task API server on the specified port
func (s *Server) Start(port int) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting task API server", logging.Field{Key: "port", Value: port})

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Task API server error", logging.ErrorField(err))
		}
	}()

	return nil
}

// Stop stops the task API server
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	s.logger.Info("Stopping task API server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// registerRoutesOnMux registers HTTP routes on the provided mux
func (s *Server) registerRoutesOnMux(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.handleHealth)

	if s.options.MetricsEnabled {
		mux.Handle(s.options.MetricsPath, promhttp.Handler())
	}

	mux.HandleFunc("/tasks", s.taskHandler.HandleTasks)
	mux.HandleFunc("/tasks/", s.taskHandler.HandleTaskByID)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
