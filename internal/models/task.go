package models

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank orders priorities for display: High ranks above Medium above Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

type Task struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
}

// TaskFields is a partial task. Nil fields are left untouched on update and
// take the schema default on create.
type TaskFields struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
}

// NewTask applies the fields over the schema defaults.
func NewTask(id string, fields TaskFields) Task {
	task := Task{
		ID:       id,
		Priority: PriorityLow,
	}
	fields.ApplyTo(&task)
	return task
}

func (f TaskFields) ApplyTo(task *Task) {
	if f.Title != nil {
		task.Title = *f.Title
	}
	if f.Description != nil {
		task.Description = *f.Description
	}
	if f.Priority != nil {
		task.Priority = *f.Priority
	}
	if f.Completed != nil {
		task.Completed = *f.Completed
	}
}

func (f TaskFields) Empty() bool {
	return f.Title == nil && f.Description == nil && f.Priority == nil && f.Completed == nil
}
