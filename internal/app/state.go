// Package app holds the client-side application state and the events that
// change it. It performs no I/O: a UI layer runs the network calls and feeds
// their outcomes back in as events, so any front end can drive it.
package app

import (
	"slices"
	"strings"
	"time"

	"github.com/TWRT/task-king/internal/models"
)

// NoticeTTL is how long a notice stays visible unless superseded.
const NoticeTTL = 3 * time.Second

const (
	MsgFetchFailed  = "Could not connect to backend API"
	MsgTitleEmpty   = "Title cannot be empty."
	MsgCreated      = "Task created successfully."
	MsgCreateFailed = "Failed to create task."
	MsgUpdateFailed = "Failed to update task."
	MsgDeleted      = "Task deleted successfully."
	MsgDeleteFailed = "Failed to delete task."
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notice is the single visible status message.
type Notice struct {
	Message  string
	Severity Severity
	// Seq identifies this notice; an expiry for an older seq is ignored.
	Seq uint64
	// Err is the failure behind an error notice, if any.
	Err error
}

// Form is the draft of a new task.
type Form struct {
	Title       string
	Description string
	Priority    models.Priority
}

func DefaultForm() Form {
	return Form{Priority: models.PriorityLow}
}

type State struct {
	// Tasks is the last fetched list, replaced wholesale on every fetch.
	Tasks  []models.Task
	Form   Form
	Notice *Notice
	// Loaded is set once a fetch has completed.
	Loaded bool

	noticeSeq uint64
	fetchSeq  uint64
}

func New() *State {
	return &State{
		Tasks: []models.Task{},
		Form:  DefaultForm(),
	}
}

// BeginFetch issues a token for a new fetch. Only the result carrying the
// most recent token is applied, so a slow earlier response cannot overwrite
// a newer list.
func (s *State) BeginFetch() uint64 {
	s.fetchSeq++
	return s.fetchSeq
}

// FetchCompleted replaces the cached list if token is the latest one.
func (s *State) FetchCompleted(token uint64, tasks []models.Task) bool {
	if token != s.fetchSeq {
		return false
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	s.Tasks = tasks
	s.Loaded = true
	return true
}

func (s *State) FetchFailed(token uint64, err error) bool {
	if token != s.fetchSeq {
		return false
	}
	s.showError(MsgFetchFailed, err)
	return true
}

func (s *State) SetTitle(title string)             { s.Form.Title = title }
func (s *State) SetDescription(description string) { s.Form.Description = description }

func (s *State) SetPriority(p models.Priority) {
	if p.Valid() {
		s.Form.Priority = p
	}
}

// RequestCreate returns the payload for a create request, or false when the
// draft title is blank; in that case a warning is shown and the draft kept.
func (s *State) RequestCreate() (models.TaskFields, bool) {
	if strings.TrimSpace(s.Form.Title) == "" {
		s.ShowNotice(MsgTitleEmpty, SeverityWarning)
		return models.TaskFields{}, false
	}
	title := s.Form.Title
	description := s.Form.Description
	priority := s.Form.Priority
	return models.TaskFields{
		Title:       &title,
		Description: &description,
		Priority:    &priority,
	}, true
}

func (s *State) CreateSucceeded() {
	s.Form = DefaultForm()
	s.ShowNotice(MsgCreated, SeveritySuccess)
}

func (s *State) CreateFailed(err error) {
	s.showError(MsgCreateFailed, err)
}

// RequestToggle returns a partial update flipping only the completion flag
// of the cached task with the given id.
func (s *State) RequestToggle(id string) (models.TaskFields, bool) {
	i := slices.IndexFunc(s.Tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return models.TaskFields{}, false
	}
	completed := !s.Tasks[i].Completed
	return models.TaskFields{Completed: &completed}, true
}

func (s *State) ToggleFailed(err error) {
	s.showError(MsgUpdateFailed, err)
}

func (s *State) DeleteSucceeded() {
	s.ShowNotice(MsgDeleted, SeverityInfo)
}

func (s *State) DeleteFailed(err error) {
	s.showError(MsgDeleteFailed, err)
}

// ShowNotice replaces whatever notice is visible and returns the new seq.
func (s *State) ShowNotice(message string, severity Severity) uint64 {
	s.noticeSeq++
	s.Notice = &Notice{Message: message, Severity: severity, Seq: s.noticeSeq}
	return s.noticeSeq
}

func (s *State) showError(message string, err error) {
	s.ShowNotice(message, SeverityError)
	s.Notice.Err = err
}

// ExpireNotice clears the notice only if seq still identifies it.
func (s *State) ExpireNotice(seq uint64) bool {
	if s.Notice == nil || s.Notice.Seq != seq {
		return false
	}
	s.Notice = nil
	return true
}

func (s *State) DismissNotice() {
	s.Notice = nil
}

// NoticeSeq is the seq of the visible notice, zero when none is shown.
func (s *State) NoticeSeq() uint64 {
	if s.Notice == nil {
		return 0
	}
	return s.Notice.Seq
}

// Sorted returns the cached tasks in display order: incomplete before
// completed, then High, Medium, Low. The cache itself is not reordered.
func (s *State) Sorted() []models.Task {
	out := slices.Clone(s.Tasks)
	slices.SortStableFunc(out, CompareTasks)
	return out
}

func CompareTasks(a, b models.Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	return b.Priority.Rank() - a.Priority.Rank()
}

func (s *State) PendingCount() int {
	n := 0
	for _, t := range s.Tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}
