package models

import (
	"fmt"
	"time"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusOverdue    = "overdue"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	// DateLayout is the wire format of the schedule date fields.
	DateLayout = "2006-01-02"
	// TimeLayout is the wire format of the schedule time fields.
	TimeLayout = "15:04"
)

type Task struct {
	ID          int64
	UserID      string
	Name        string
	Description string
	StartDate   string
	StartTime   string
	EndDate     string
	EndTime     string
	Status      string
	Priority    string
	Category    string
	IsShared    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// OwnerUsername is joined in on reads so viewers of a shared
	// task can tell whose task it is. Never written back.
	OwnerUsername string
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// PriorityForStatus derives a display priority from the task status.
// It is a presentation rule only; the stored priority is authoritative
// and is never overwritten from the status.
func PriorityForStatus(status string) string {
	switch status {
	case StatusPending:
		return PriorityLow
	case StatusInProgress:
		return PriorityMedium
	case StatusCompleted, StatusOverdue:
		return PriorityHigh
	}
	return PriorityLow
}

func combineDateTime(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}

// StartsAt combines the start date and start time fields into one instant.
func (t *Task) StartsAt() (time.Time, error) {
	return combineDateTime(t.StartDate, t.StartTime)
}

// EndsAt combines the end date and end time fields into one instant.
func (t *Task) EndsAt() (time.Time, error) {
	return combineDateTime(t.EndDate, t.EndTime)
}

// OverdueAt reports whether the overdue sweep should transition the task.
// Completed and already overdue tasks are never re-evaluated.
func (t *Task) OverdueAt(now time.Time) bool {
	if t.Status != StatusPending && t.Status != StatusInProgress {
		return false
	}
	endsAt, err := t.EndsAt()
	if err != nil {
		return false
	}
	return now.After(endsAt)
}

// ViewableBy reports whether the user may read the task.
func (t *Task) ViewableBy(userID string) bool {
	return t.UserID == userID || t.IsShared
}

// OwnedBy reports whether the user may mutate the task. Sharing widens
// visibility only; edit, delete, status and share rights stay with the owner.
func (t *Task) OwnedBy(userID string) bool {
	return t.UserID == userID
}
