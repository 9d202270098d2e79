package task

import (
	"context"
	"errors"
)

var (
	// ErrTaskNotFound is returned when no task has the requested ID
	ErrTaskNotFound = errors.New("Task not found")
	// ErrInvalidStatus is returned for a status outside the Status enumeration
	ErrInvalidStatus = errors.New("invalid task status")
	// ErrInvalidTaskID is returned for the reserved ID 0
	ErrInvalidTaskID = errors.New("Task ID cannot be 0")
)

// Repository defines the persistence operations the service needs
type Repository interface {
	// Save inserts the task when its ID is 0 and updates it otherwise
	Save(ctx context.Context, t *Task) error

	// FindByID returns ErrTaskNotFound when the task does not exist
	FindByID(ctx context.Context, id int64) (*Task, error)

	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
	FindAll(ctx context.Context) ([]*Task, error)
	Close() error
}

// CreationError wraps any failure while creating a task
type CreationError struct {
	DTO TaskDTO
	Err error
}

func (e *CreationError) Error() string {
	return "failed to create task by dto: " + e.DTO.String() + ": " + e.Err.Error()
}

func (e *CreationError) Unwrap() error {
	return e.Err
}
