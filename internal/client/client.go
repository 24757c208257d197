package client

import (
	"context"

	"github.com/TWRT/task-king/internal/models"
)

type TaskReader interface {
	GetTasks(ctx context.Context) ([]models.Task, error)
}

type TaskWriter interface {
	CreateTask(ctx context.Context, fields models.TaskFields) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, fields models.TaskFields) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) (string, error)
}

// TaskAPI is what the terminal client needs from the backend.
type TaskAPI interface {
	TaskReader
	TaskWriter
}
