package service

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/TWRT/task-king/internal/models"
	"github.com/TWRT/task-king/internal/repository"
)

type TaskService struct {
	store  repository.TaskStore
	logger *log.Logger
}

func NewTaskService(store repository.TaskStore, logger *log.Logger) *TaskService {
	return &TaskService{
		store:  store,
		logger: logger,
	}
}

func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("list tasks", "err", err)
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// CreateTask casts the request body onto the task schema and persists it.
func (s *TaskService) CreateTask(ctx context.Context, body []byte) (models.Task, error) {
	fields, err := repository.DecodeTaskFields(body)
	if err != nil {
		return models.Task{}, err
	}

	task, err := s.store.Create(ctx, fields)
	if err != nil {
		s.logStoreError("create task", "", err)
		return models.Task{}, err
	}
	s.logger.Debug("task created", "id", task.ID, "priority", task.Priority)
	return task, nil
}

// UpdateTask merges the fields present in body into the task; absent
// fields keep their stored values.
func (s *TaskService) UpdateTask(ctx context.Context, id string, body []byte) (models.Task, error) {
	fields, err := repository.DecodeTaskFields(body)
	if err != nil {
		return models.Task{}, err
	}

	task, err := s.store.UpdateByID(ctx, id, fields)
	if err != nil {
		s.logStoreError("update task", id, err)
		return models.Task{}, err
	}
	s.logger.Debug("task updated", "id", task.ID)
	return task, nil
}

// DeleteTask removes the task. Deleting an unknown id succeeds.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		s.logStoreError("delete task", id, err)
		return err
	}
	s.logger.Debug("task deleted", "id", id)
	return nil
}

func (s *TaskService) logStoreError(op, id string, err error) {
	switch {
	case errors.Is(err, repository.ErrTaskNotFound),
		errors.Is(err, repository.ErrInvalidTask),
		errors.Is(err, repository.ErrInvalidID):
		s.logger.Debug(op, "id", id, "err", err)
	default:
		s.logger.Error(op, "id", id, "err", err)
	}
}
