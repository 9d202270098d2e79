package webapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/zurustar/tasklogger/internal/logging"
	"github.com/zurustar/tasklogger/internal/task"
)

// TaskHandler translates HTTP requests into TaskController calls
type TaskHandler struct {
	controller *TaskController
	logger     logging.Logger
}

// HandleTasks handles task listing and creation
func (h *TaskHandler) HandleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetAllTasks(w, r)
	case http.MethodPost:
		h.handleCreateTask(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleTaskByID handles individual task operations
func (h *TaskHandler) HandleTaskByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/tasks/")
	if path == "" || strings.Contains(path, "/") {
		http.Error(w, "Task ID required", http.StatusBadRequest)
		return
	}

	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		http.Error(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGetTask(w, r, id)
	case http.MethodPut:
		h.handleUpdateTask(w, r, id)
	case http.MethodDelete:
		h.handleDeleteTask(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TaskHandler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var dto task.TaskDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	resp, err := h.controller.CreateTask(r.Context(), dto)
	writeEnvelope(h, w, r, resp, err)
}

func (h *TaskHandler) handleGetTask(w http.ResponseWriter, r *http.Request, id int64) {
	resp, err := h.controller.GetTaskByID(r.Context(), id)
	writeEnvelope(h, w, r, resp, err)
}

func (h *TaskHandler) handleUpdateTask(w http.ResponseWriter, r *http.Request, id int64) {
	var dto task.TaskDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	resp, err := h.controller.UpdateTask(r.Context(), id, dto)
	writeEnvelope(h, w, r, resp, err)
}

func (h *TaskHandler) handleDeleteTask(w http.ResponseWriter, r *http.Request, id int64) {
	resp, err := h.controller.DeleteTask(r.Context(), id)
	writeEnvelope(h, w, r, resp, err)
}

func (h *TaskHandler) handleGetAllTasks(w http.ResponseWriter, r *http.Request) {
	resp, err := h.controller.GetAllTasks(r.Context())
	writeEnvelope(h, w, r, resp, err)
}

// writeEnvelope answers 200 with the controller's envelope, or 500 with the
// unexpected-error envelope when the call failed
func writeEnvelope[T any](h *TaskHandler, w http.ResponseWriter, r *http.Request, resp task.Response[T], err error) {
	if err != nil {
		h.logger.Error("Task operation failed",
			logging.MethodField(r.Method),
			logging.StringField("path", r.URL.Path),
			logging.RequestIDField(RequestIDFromContext(r.Context())),
			logging.ErrorField(err))
		writeJSON(w, http.StatusInternalServerError, task.Failure[any](unexpectedErrorMessage, err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
