package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/TWRT/task-king/internal/models"
)

// TaskStore is the persistence contract the task service depends on.
// DeleteByID does not report a missing id as an error.
type TaskStore interface {
	List(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, fields models.TaskFields) (models.Task, error)
	UpdateByID(ctx context.Context, id string, fields models.TaskFields) (models.Task, error)
	DeleteByID(ctx context.Context, id string) error
}

type SQLiteTaskRepository struct {
	db *sql.DB
}

func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

func (r *SQLiteTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	query := `
		SELECT id, title, description, priority, completed FROM tasks ORDER BY rowid
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("Error trying to get tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Error trying to get tasks: %w", err)
	}

	return tasks, nil
}

func (r *SQLiteTaskRepository) Create(ctx context.Context, fields models.TaskFields) (models.Task, error) {
	task := models.NewTask(uuid.NewString(), fields)
	if err := validateTask(task); err != nil {
		return models.Task{}, err
	}

	query := `
		INSERT INTO tasks (id, title, description, priority, completed)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Priority),
		boolToInt(task.Completed),
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("Error trying to create the task: %w", err)
	}

	return task, nil
}

func (r *SQLiteTaskRepository) UpdateByID(ctx context.Context, id string, fields models.TaskFields) (models.Task, error) {
	id, err := parseTaskID(id)
	if err != nil {
		return models.Task{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Task{}, fmt.Errorf("Error trying to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT id, title, description, priority, completed FROM tasks WHERE id = ?
	`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, err
	}

	fields.ApplyTo(&task)
	if err := validateTask(task); err != nil {
		return models.Task{}, err
	}

	query := `
		UPDATE tasks SET title = ?, description = ?, priority = ?, completed = ? WHERE id = ?
	`
	_, err = tx.ExecContext(ctx, query,
		task.Title,
		task.Description,
		string(task.Priority),
		boolToInt(task.Completed),
		task.ID,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("Error trying to update the task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Task{}, fmt.Errorf("Error trying to commit the task: %w", err)
	}
	return task, nil
}

func (r *SQLiteTaskRepository) DeleteByID(ctx context.Context, id string) error {
	id, err := parseTaskID(id)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("Error trying to delete the task: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		t         models.Task
		priority  string
		completed int
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &priority, &completed)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, err
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("Error trying to read task: %w", err)
	}
	t.Priority = models.Priority(priority)
	t.Completed = completed != 0
	return t, nil
}

// parseTaskID returns the canonical lowercase hyphenated form of id, the
// form ids are stored in.
func parseTaskID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: Cast to UUID failed for value %q", ErrInvalidID, id)
	}
	return u.String(), nil
}

func validateTask(task models.Task) error {
	if !task.Priority.Valid() {
		return fmt.Errorf("%w: priority: `%s` is not a valid enum value for path `priority`", ErrInvalidTask, task.Priority)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
