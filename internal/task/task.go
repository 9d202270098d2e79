package task

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a task
type Status string

const (
	StatusNew       Status = "NEW"
	StatusInWork    Status = "IN_WORK"
	StatusCancelled Status = "CANCELLED"
	StatusClosed    Status = "CLOSED"
	StatusUndefined Status = "UNDEFINED"
)

var validStatuses = []Status{StatusNew, StatusInWork, StatusCancelled, StatusClosed, StatusUndefined}

// ParseStatus maps a case-insensitive name to a Status. An empty string is
// StatusUndefined; anything else unknown is ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return StatusUndefined, nil
	}
	upper := Status(strings.ToUpper(s))
	for _, v := range validStatuses {
		if v == upper {
			return v, nil
		}
	}
	return StatusUndefined, fmt.Errorf("%w: %s", ErrInvalidStatus, s)
}

// Task is the persisted entity
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      Status
	UserID      *int64
}

// EffectiveStatus treats an unset status as StatusUndefined
func (t *Task) EffectiveStatus() Status {
	if t.Status == "" {
		return StatusUndefined
	}
	return t.Status
}

func (t *Task) String() string {
	return fmt.Sprintf("Task{id=%d, title='%s', description='%s', status=%s, userId=%s}",
		t.ID, t.Title, t.Description, t.Status, formatUserID(t.UserID))
}

func formatUserID(id *int64) string {
	if id == nil {
		return "null"
	}
	return fmt.Sprintf("%d", *id)
}
