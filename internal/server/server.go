package server

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/zurustar/tasklogger/internal/annotation"
	"github.com/zurustar/tasklogger/internal/config"
	"github.com/zurustar/tasklogger/internal/logging"
	"github.com/zurustar/tasklogger/internal/task"
	"github.com/zurustar/tasklogger/internal/webapi"
)

// TaskServerImpl implements the Server interface
type TaskServerImpl struct {
	config        *config.Config
	logger        logging.Logger
	backend       *logging.StructuredLogger
	loggingConfig *annotation.LoggingConfig
	weaver        *annotation.Weaver
	repository    task.Repository
	service       *task.Service
	controller    *webapi.TaskController
	webServer     *webapi.Server

	started bool
	mu      sync.RWMutex
}

// NewTaskServer creates a new task server instance
func NewTaskServer() Server {
	return &TaskServerImpl{}
}

// LoadConfig loads and validates the server configuration
func (s *TaskServerImpl) LoadConfig(filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("cannot load configuration while server is running")
	}

	cfg, err := config.NewManager().Load(filename)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	s.config = cfg
	return nil
}

// Start initializes all components and starts the server
func (s *TaskServerImpl) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("server is already running")
	}

	if s.config == nil {
		return fmt.Errorf("configuration not loaded")
	}

	if err := s.initializeComponents(); err != nil {
		s.cleanup()
		return fmt.Errorf("failed to initialize components: %w", err)
	}

	if err := s.webServer.Start(s.config.Server.Port); err != nil {
		s.cleanup()
		return fmt.Errorf("failed to start task API server: %w", err)
	}

	s.started = true
	s.logger.Info("Task server started successfully",
		logging.Field{Key: "port", Value: s.config.Server.Port},
		logging.Field{Key: "annotation_logging", Value: s.weaver.Enabled()},
	)

	return nil
}

// Stop gracefully shuts down the server
func (s *TaskServerImpl) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}

	s.logger.Info("Initiating server shutdown...")

	if s.webServer != nil {
		if err := s.webServer.Stop(); err != nil {
			s.logger.Error("Error stopping task API server", logging.ErrorField(err))
		}
	}

	s.started = false
	s.logger.Info("Server shutdown completed")

	s.cleanup()
	return nil
}

// initializeComponents initializes all server components in proper order
func (s *TaskServerImpl) initializeComponents() error {
	var err error

	// 1. Initialize logger first
	loggerConfig := logging.LoggerConfig{
		Level:        s.config.Logging.Level,
		File:         s.config.Logging.File,
		Format:       s.config.Logging.Format,
		MaxSizeMB:    s.config.Logging.MaxSizeMB,
		MaxBackups:   s.config.Logging.MaxBackups,
		MaxAgeDays:   s.config.Logging.MaxAgeDays,
		KafkaBrokers: s.config.Logging.Kafka.Brokers,
		KafkaTopic:   s.config.Logging.Kafka.Topic,
	}
	s.backend, err = logging.NewLoggerFromConfig(loggerConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	s.logger = s.backend
	s.logger.Info("Logger initialized")

	// 2. Resolve the annotation severity once, then install the interceptors if enabled
	severity := annotation.ResolveSeverity(
		s.config.AnnotationLogger.AnnotationLogLevel,
		annotation.DefaultSeverity,
		annotation.AllSeverities(),
		s.logger,
	)
	s.loggingConfig = annotation.NewLoggingConfig(severity)

	if s.config.AnnotationLogger.IsEnabled() {
		dispatcher := annotation.NewDispatcher(s.logger)
		s.weaver = annotation.NewWeaver(
			annotation.NewRequestInterceptor(s.loggingConfig, dispatcher),
			annotation.NewResponseInterceptor(s.loggingConfig, dispatcher),
		)
		s.logger.Info("Annotation logging enabled",
			logging.Field{Key: "severity", Value: severity.String()})
	} else {
		s.weaver = annotation.NewWeaver(nil, nil)
		s.logger.Info("Annotation logging disabled")
	}

	// 3. Initialize storage
	repo, err := task.NewSQLiteRepository(s.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	s.repository = repo
	s.logger.Info("Database initialized", logging.Field{Key: "path", Value: s.config.Database.Path})

	// 4. Initialize task service and controller
	s.service = task.NewService(s.repository)
	s.controller = webapi.NewTaskController(s.service, s.weaver)
	s.logger.Info("Task controller initialized")

	// 5. Initialize the HTTP server
	s.webServer = webapi.NewServer(s.controller, s.logger, webapi.Options{
		RateLimit:      s.config.Server.RateLimit,
		RateBurst:      s.config.Server.RateBurst,
		MetricsEnabled: s.config.Metrics.Enabled,
		MetricsPath:    s.config.Metrics.Path,
	})
	s.logger.Info("Task API server initialized")

	return nil
}

// cleanup performs resource cleanup
func (s *TaskServerImpl) cleanup() {
	if s.repository != nil {
		if err := s.repository.Close(); err != nil {
			if s.logger != nil {
				s.logger.Error("Error closing database", logging.ErrorField(err))
			}
		}
		s.repository = nil
	}
	if s.backend != nil {
		s.backend.Close()
		s.backend = nil
	}
}

// RunWithSignalHandling runs the server with graceful shutdown on signals
func (s *TaskServerImpl) RunWithSignalHandling() error {
	if err := s.Start(); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	s.logger.Info("Received shutdown signal", logging.Field{Key: "signal", Value: sig.String()})

	return s.Stop()
}
