// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/TWRT/task-king/internal/models"
	"github.com/TWRT/task-king/internal/repository"
)

// FakeStore is an in-memory repository.TaskStore for tests. It applies the
// same defaults and merge rules as the real stores.
type FakeStore struct {
	mu    sync.RWMutex
	tasks []models.Task

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

var _ repository.TaskStore = (*FakeStore)(nil)

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// AddTask inserts a task as-is, assigning an id if it has none.
func (f *FakeStore) AddTask(t models.Task) models.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	f.tasks = append(f.tasks, t)
	return t
}

func (f *FakeStore) Get(id string) (models.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	i := f.index(id)
	if i < 0 {
		return models.Task{}, false
	}
	return f.tasks[i], true
}

func (f *FakeStore) List(ctx context.Context) ([]models.Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return slices.Clone(f.tasks), nil
}

func (f *FakeStore) Create(ctx context.Context, fields models.TaskFields) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return models.Task{}, f.CreateErr
	}
	t := models.NewTask(uuid.NewString(), fields)
	if !t.Priority.Valid() {
		return models.Task{}, repository.ErrInvalidTask
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *FakeStore) UpdateByID(ctx context.Context, id string, fields models.TaskFields) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpdateErr != nil {
		return models.Task{}, f.UpdateErr
	}
	i := f.index(id)
	if i < 0 {
		return models.Task{}, repository.ErrTaskNotFound
	}
	t := f.tasks[i]
	fields.ApplyTo(&t)
	if !t.Priority.Valid() {
		return models.Task{}, repository.ErrInvalidTask
	}
	f.tasks[i] = t
	return t, nil
}

func (f *FakeStore) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	if i := f.index(id); i >= 0 {
		f.tasks = slices.Delete(f.tasks, i, i+1)
	}
	return nil
}

func (f *FakeStore) index(id string) int {
	return slices.IndexFunc(f.tasks, func(t models.Task) bool { return t.ID == id })
}
