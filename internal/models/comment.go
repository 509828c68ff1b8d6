package models

import "time"

type Comment struct {
	ID        int64
	TaskID    int64
	UserID    string
	ParentID  *int64
	Text      string
	CreatedAt time.Time

	// AuthorUsername is joined in on reads.
	AuthorUsername string
}

// DeletableBy reports whether the user may delete the comment: its author
// always may, and the task owner may when the task is shared.
func (c *Comment) DeletableBy(userID string, task *Task) bool {
	if c.UserID == userID {
		return true
	}
	return task.IsShared && task.OwnedBy(userID)
}
