package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/TWRT/task-king/internal/repository"
	"github.com/TWRT/task-king/internal/service"
)

// maxBodyBytes caps task request bodies.
const maxBodyBytes = 100 << 10

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TaskHandler struct {
	taskService *service.TaskService
	// exposeErrors controls whether store error text is passed through in
	// the "error" field of failure bodies.
	exposeErrors bool
}

func NewTaskHandler(taskService *service.TaskService, exposeErrors bool) *TaskHandler {
	return &TaskHandler{
		taskService:  taskService,
		exposeErrors: exposeErrors,
	}
}

func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "Backend running")
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Error fetching tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.writeError(w, bodyErrorStatus(err), "Error creating task", err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Error creating task", err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	body, err := readBody(w, r)
	if err != nil {
		h.writeError(w, bodyErrorStatus(err), "Error updating task", err)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, body)
	if errors.Is(err, repository.ErrTaskNotFound) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "Task not found"})
		return
	}
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Error updating task", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// DeleteTask answers 200 whether or not a task with the id existed.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		h.writeError(w, http.StatusInternalServerError, "Error deleting task", err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

func bodyErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func (h *TaskHandler) writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Message: message}
	if h.exposeErrors && err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
