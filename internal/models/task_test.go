package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidStatus(t *testing.T) {
	for _, status := range []string{
		StatusPending, StatusInProgress, StatusCompleted, StatusOverdue,
	} {
		assert.True(t, ValidStatus(status), status)
	}

	for _, status := range []string{"", "done", "archived", "PENDING", "in_progress"} {
		assert.False(t, ValidStatus(status), status)
	}
}

func TestValidPriority(t *testing.T) {
	for _, priority := range []string{PriorityLow, PriorityMedium, PriorityHigh} {
		assert.True(t, ValidPriority(priority), priority)
	}

	for _, priority := range []string{"", "urgent", "HIGH"} {
		assert.False(t, ValidPriority(priority), priority)
	}
}

func TestTaskEndsAt(t *testing.T) {
	task := &Task{EndDate: "2024-01-01", EndTime: "10:00"}

	endsAt, err := task.EndsAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local), endsAt)

	task = &Task{EndDate: "01/01/2024", EndTime: "10:00"}
	_, err = task.EndsAt()
	assert.Error(t, err)

	task = &Task{EndDate: "2024-01-01", EndTime: "25:99"}
	_, err = task.EndsAt()
	assert.Error(t, err)
}

func TestTaskOverdueAt(t *testing.T) {
	endsAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		status  string
		now     time.Time
		overdue bool
	}{
		{"pending past end", StatusPending, endsAt.Add(time.Hour), true},
		{"in-progress past end", StatusInProgress, endsAt.Add(time.Minute), true},
		{"pending before end", StatusPending, endsAt.Add(-time.Minute), false},
		{"pending exactly at end", StatusPending, endsAt, false},
		{"completed past end", StatusCompleted, endsAt.Add(time.Hour), false},
		{"already overdue", StatusOverdue, endsAt.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{
				Status:  tt.status,
				EndDate: "2024-01-01",
				EndTime: "10:00",
			}
			assert.Equal(t, tt.overdue, task.OverdueAt(tt.now))
		})
	}
}

func TestTaskOverdueAtUnparsableSchedule(t *testing.T) {
	task := &Task{
		Status:  StatusPending,
		EndDate: "not-a-date",
		EndTime: "10:00",
	}
	assert.False(t, task.OverdueAt(time.Now()))
}

func TestTaskViewableBy(t *testing.T) {
	task := &Task{UserID: "alice"}

	assert.True(t, task.ViewableBy("alice"))
	assert.False(t, task.ViewableBy("bob"))

	task.IsShared = true
	assert.True(t, task.ViewableBy("bob"))
}

func TestTaskOwnedBy(t *testing.T) {
	task := &Task{UserID: "alice", IsShared: true}

	// Sharing never grants mutation rights.
	assert.True(t, task.OwnedBy("alice"))
	assert.False(t, task.OwnedBy("bob"))
}

func TestPriorityForStatus(t *testing.T) {
	assert.Equal(t, PriorityLow, PriorityForStatus(StatusPending))
	assert.Equal(t, PriorityMedium, PriorityForStatus(StatusInProgress))
	assert.Equal(t, PriorityHigh, PriorityForStatus(StatusCompleted))
	assert.Equal(t, PriorityHigh, PriorityForStatus(StatusOverdue))
	assert.Equal(t, PriorityLow, PriorityForStatus("unknown"))
}
