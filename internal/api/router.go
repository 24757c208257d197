package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/rs/cors"

	"github.com/TWRT/task-king/internal/api/handlers"
	"github.com/TWRT/task-king/internal/logging"
	"github.com/TWRT/task-king/internal/repository"
	"github.com/TWRT/task-king/internal/service"
)

type RouterOptions struct {
	// ExposeErrorDetails passes store error text to clients in the "error"
	// field of 4xx/5xx bodies.
	ExposeErrorDetails bool
}

func SetupRouter(store repository.TaskStore, logger *log.Logger, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	taskService := service.NewTaskService(store, logger)
	taskHandler := handlers.NewTaskHandler(taskService, opts.ExposeErrorDetails)

	mux.HandleFunc("GET /{$}", taskHandler.Health)
	mux.HandleFunc("GET /tasks", taskHandler.ListTasks)
	mux.HandleFunc("POST /tasks", taskHandler.CreateTask)
	mux.HandleFunc("PUT /tasks/{id}", taskHandler.UpdateTask)
	mux.HandleFunc("DELETE /tasks/{id}", taskHandler.DeleteTask)

	return cors.AllowAll().Handler(logging.RequestLogger(logger)(mux))
}
