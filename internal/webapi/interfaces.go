package webapi

import (
	"context"

	"github.com/zurustar/tasklogger/internal/task"
)

// TaskService is the business layer the controller delegates to
type TaskService interface {
	CreateTask(ctx context.Context, dto task.TaskDTO) (task.TaskDTO, error)
	GetTaskByID(ctx context.Context, id int64) (task.TaskDTO, error)
	UpdateTask(ctx context.Context, id int64, dto task.TaskDTO) (task.TaskDTO, error)
	DeleteTask(ctx context.Context, id int64) error
	ListTasks(ctx context.Context) ([]task.TaskDTO, error)
}

// TaskAPIServer defines the interface for the task HTTP server
type TaskAPIServer interface {
	Start(port int) error
	Stop() error
}

// Options configures the HTTP server
type Options struct {
	// RateLimit is requests per second; 0 disables limiting
	RateLimit      int
	RateBurst      int
	MetricsEnabled bool
	MetricsPath    string
}

// HTTP endpoints:
// POST   /tasks      - Create task
// GET    /tasks      - List all tasks
// GET    /tasks/{id} - Get task
// PUT    /tasks/{id} - Update task
// DELETE /tasks/{id} - Delete task
// GET    /health     - Liveness
// GET    /metrics    - Prometheus metrics
