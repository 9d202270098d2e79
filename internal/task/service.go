package task

import (
	"context"
	"fmt"
)

// Service implements the task use cases on top of a Repository
type Service struct {
	repo Repository
}

// NewService creates a task service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateTask stores a new task. Every failure is reported as a *CreationError.
func (s *Service) CreateTask(ctx context.Context, dto TaskDTO) (TaskDTO, error) {
	t, err := ToEntity(dto)
	if err != nil {
		return TaskDTO{}, &CreationError{DTO: dto, Err: err}
	}
	if err := s.repo.Save(ctx, t); err != nil {
		return TaskDTO{}, &CreationError{DTO: dto, Err: err}
	}
	return ToDTO(t), nil
}

// GetTaskByID returns ErrTaskNotFound for an unknown id
func (s *Service) GetTaskByID(ctx context.Context, id int64) (TaskDTO, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TaskDTO{}, err
	}
	return ToDTO(t), nil
}

// UpdateTask overwrites title, description, user and status of an existing task.
// The status must name a Status exactly.
func (s *Service) UpdateTask(ctx context.Context, id int64, dto TaskDTO) (TaskDTO, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TaskDTO{}, err
	}

	status, err := exactStatus(dto.Status)
	if err != nil {
		return TaskDTO{}, err
	}

	t.Title = dto.Title
	t.Description = dto.Description
	t.UserID = dto.UserID
	t.Status = status

	if err := s.repo.Save(ctx, t); err != nil {
		return TaskDTO{}, err
	}
	return ToDTO(t), nil
}

// DeleteTask removes a task, returning ErrTaskNotFound if it does not exist
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w with id %d", ErrTaskNotFound, id)
	}
	return s.repo.DeleteByID(ctx, id)
}

// ListTasks returns every task
func (s *Service) ListTasks(ctx context.Context) ([]TaskDTO, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToDTO(t)
	}
	return dtos, nil
}

func exactStatus(s string) (Status, error) {
	for _, v := range validStatuses {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidStatus, s)
}

