package task

import (
	"fmt"
	"reflect"
)

// TaskDTO is the wire representation of a task
type TaskDTO struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	UserID      *int64 `json:"userId,omitempty"`
}

func (d TaskDTO) String() string {
	return fmt.Sprintf("TaskDto(id=%d, title=%s, description=%s, status=%s, userId=%s)",
		d.ID, d.Title, d.Description, d.Status, formatUserID(d.UserID))
}

// Response is the envelope every task endpoint answers with. T should be nil-able
// (a pointer, slice or interface) so that a failure carries null data.
type Response[T any] struct {
	Message      string `json:"message"`
	Data         T      `json:"data"`
	ErrorDetails string `json:"errorDetails,omitempty"`
}

// Success wraps data with a message
func Success[T any](data T, message string) Response[T] {
	return Response[T]{Message: message, Data: data}
}

// Failure builds an envelope with zero (null) data
func Failure[T any](message, details string) Response[T] {
	return Response[T]{Message: message, ErrorDetails: details}
}

func (r Response[T]) String() string {
	return fmt.Sprintf("ResponseDto[message=%s, data=%s, errorDetails=%s]", r.Message, formatData(r.Data), r.ErrorDetails)
}

func formatData(v any) string {
	if v == nil {
		return "null"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
	}
	return fmt.Sprintf("%v", v)
}

// ToEntity builds a new entity from dto; the ID is left for the repository to assign
func ToEntity(dto TaskDTO) (*Task, error) {
	status, err := ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return &Task{
		Title:       dto.Title,
		Description: dto.Description,
		Status:      status,
		UserID:      dto.UserID,
	}, nil
}

// ToDTO converts an entity for the wire
func ToDTO(t *Task) TaskDTO {
	return TaskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.EffectiveStatus()),
		UserID:      t.UserID,
	}
}
