package webapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/zurustar/tasklogger/internal/annotation"
	"github.com/zurustar/tasklogger/internal/task"
)

const unexpectedErrorMessage = "An unexpected error occurred"

// TaskController answers every task operation with a task.Response envelope. Domain
// outcomes such as a missing task are envelopes with a nil error; a non-nil error means
// the call failed unexpectedly.
//
// The exported methods go through the weaver, so the markers below decide which calls
// are logged:
//
//	CreateTask   LogResponse
//	GetTaskByID  LogRequest
//	UpdateTask   LogResponse
//	DeleteTask   LogResponse
//	GetAllTasks  LogResponse
type TaskController struct {
	service TaskService

	create  func(context.Context, task.TaskDTO) (task.Response[*task.TaskDTO], error)
	getByID func(context.Context, int64) (task.Response[*task.TaskDTO], error)
	update  func(context.Context, int64, task.TaskDTO) (task.Response[*task.TaskDTO], error)
	remove  func(context.Context, int64) (task.Response[any], error)
	getAll  func(context.Context) (task.Response[[]task.TaskDTO], error)
}

// NewTaskController creates a controller and binds its operations through weaver.
// A nil or disabled weaver leaves the operations unwrapped.
func NewTaskController(service TaskService, weaver *annotation.Weaver) *TaskController {
	c := &TaskController{service: service}
	owner := annotation.TypeName(c)

	c.create = annotation.Bind1(weaver, owner, "CreateTask", annotation.LogResponse, c.createTask)
	c.getByID = annotation.Bind1(weaver, owner, "GetTaskByID", annotation.LogRequest, c.getTaskByID)
	c.update = annotation.Bind2(weaver, owner, "UpdateTask", annotation.LogResponse, c.updateTask)
	c.remove = annotation.Bind1(weaver, owner, "DeleteTask", annotation.LogResponse, c.deleteTask)
	c.getAll = annotation.Bind0(weaver, owner, "GetAllTasks", annotation.LogResponse, c.getAllTasks)

	return c
}

// CreateTask stores a new task
func (c *TaskController) CreateTask(ctx context.Context, dto task.TaskDTO) (task.Response[*task.TaskDTO], error) {
	return c.create(ctx, dto)
}

// GetTaskByID looks up a single task
func (c *TaskController) GetTaskByID(ctx context.Context, id int64) (task.Response[*task.TaskDTO], error) {
	return c.getByID(ctx, id)
}

// UpdateTask overwrites an existing task
func (c *TaskController) UpdateTask(ctx context.Context, id int64, dto task.TaskDTO) (task.Response[*task.TaskDTO], error) {
	return c.update(ctx, id, dto)
}

// DeleteTask removes a task
func (c *TaskController) DeleteTask(ctx context.Context, id int64) (task.Response[any], error) {
	return c.remove(ctx, id)
}

// GetAllTasks lists every task
func (c *TaskController) GetAllTasks(ctx context.Context) (task.Response[[]task.TaskDTO], error) {
	return c.getAll(ctx)
}

func (c *TaskController) createTask(ctx context.Context, dto task.TaskDTO) (task.Response[*task.TaskDTO], error) {
	created, err := c.service.CreateTask(ctx, dto)
	if err != nil {
		var creationErr *task.CreationError
		if errors.As(err, &creationErr) {
			return task.Failure[*task.TaskDTO]("Failed to create task", creationErr.Error()), nil
		}
		return task.Response[*task.TaskDTO]{}, err
	}
	return task.Success(&created, "Task created successfully"), nil
}

func (c *TaskController) getTaskByID(ctx context.Context, id int64) (task.Response[*task.TaskDTO], error) {
	if id == 0 {
		return task.Failure[*task.TaskDTO]("Invalid Task ID", task.ErrInvalidTaskID.Error()), nil
	}

	found, err := c.service.GetTaskByID(ctx, id)
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return task.Failure[*task.TaskDTO]("Task not found", fmt.Sprintf("No task found with ID %d", id)), nil
	case err != nil:
		return task.Response[*task.TaskDTO]{}, err
	}
	return task.Success(&found, "Task found successfully"), nil
}

func (c *TaskController) updateTask(ctx context.Context, id int64, dto task.TaskDTO) (task.Response[*task.TaskDTO], error) {
	if id == 0 {
		return task.Failure[*task.TaskDTO]("Invalid Task ID", task.ErrInvalidTaskID.Error()), nil
	}

	updated, err := c.service.UpdateTask(ctx, id, dto)
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return task.Failure[*task.TaskDTO]("Task not found", err.Error()), nil
	case errors.Is(err, task.ErrInvalidStatus):
		return task.Failure[*task.TaskDTO]("Invalid Task status", err.Error()), nil
	case err != nil:
		return task.Response[*task.TaskDTO]{}, err
	}
	return task.Success(&updated, "Task updated successfully"), nil
}

func (c *TaskController) deleteTask(ctx context.Context, id int64) (task.Response[any], error) {
	if id == 0 {
		return task.Failure[any]("Invalid Task ID", task.ErrInvalidTaskID.Error()), nil
	}

	err := c.service.DeleteTask(ctx, id)
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return task.Failure[any]("Task not found", err.Error()), nil
	case err != nil:
		return task.Response[any]{}, err
	}
	return task.Success[any](nil, "Task deleted successfully"), nil
}

func (c *TaskController) getAllTasks(ctx context.Context) (task.Response[[]task.TaskDTO], error) {
	tasks, err := c.service.ListTasks(ctx)
	if err != nil {
		return task.Response[[]task.TaskDTO]{}, err
	}
	if len(tasks) == 0 {
		return task.Failure[[]task.TaskDTO]("No tasks found", "There are no tasks available"), nil
	}
	return task.Success(tasks, "Tasks retrieved successfully"), nil
}
