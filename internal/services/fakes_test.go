package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

// fakeState is an in-memory stand-in for the postgres stores. The three
// store fakes share it so cross-table behavior (joins, cascades) matches
// the real schema.
type fakeState struct {
	mu            sync.Mutex
	users         map[string]*models.User
	tasks         map[int64]*models.Task
	comments      map[int64]*models.Comment
	nextTaskID    int64
	nextCommentID int64

	failMarkOverdue map[int64]error
}

func newFakeState() *fakeState {
	return &fakeState{
		users:           make(map[string]*models.User),
		tasks:           make(map[int64]*models.Task),
		comments:        make(map[int64]*models.Comment),
		failMarkOverdue: make(map[int64]error),
	}
}

func (st *fakeState) usernameOf(userID string) string {
	if user, ok := st.users[userID]; ok {
		return user.Username
	}
	return ""
}

func copyTask(task *models.Task) *models.Task {
	clone := *task
	return &clone
}

func copyComment(comment *models.Comment) *models.Comment {
	clone := *comment
	return &clone
}

type fakeUserStore struct{ st *fakeState }

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	for _, existing := range f.st.users {
		if existing.Username == user.Username {
			return ErrUsernameTaken
		}
		if existing.Email == user.Email {
			return ErrEmailRegistered
		}
	}

	clone := *user
	f.st.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) ByUsername(_ context.Context, username string) (*models.User, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	for _, user := range f.st.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeUserStore) List(_ context.Context) ([]*models.User, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	users := make([]*models.User, 0, len(f.st.users))
	for _, user := range f.st.users {
		clone := *user
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})
	return users, nil
}

type fakeTaskStore struct{ st *fakeState }

func (f *fakeTaskStore) Create(_ context.Context, task *models.Task) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	f.st.nextTaskID++
	task.ID = f.st.nextTaskID
	f.st.tasks[task.ID] = copyTask(task)
	return nil
}

func (f *fakeTaskStore) ByID(_ context.Context, id int64) (*models.Task, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	task, ok := f.st.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	clone := copyTask(task)
	clone.OwnerUsername = f.st.usernameOf(task.UserID)
	return clone, nil
}

func (f *fakeTaskStore) VisibleTo(_ context.Context, userID string, filter TaskFilter) ([]*models.Task, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	var tasks []*models.Task
	for _, task := range f.st.tasks {
		if task.UserID != userID && !task.IsShared {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Category != "" && task.Category != filter.Category {
			continue
		}
		clone := copyTask(task)
		clone.OwnerUsername = f.st.usernameOf(task.UserID)
		tasks = append(tasks, clone)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (f *fakeTaskStore) Update(_ context.Context, task *models.Task) (bool, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	existing, ok := f.st.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return false, nil
	}

	clone := copyTask(task)
	clone.IsShared = existing.IsShared
	clone.CreatedAt = existing.CreatedAt
	f.st.tasks[task.ID] = clone
	return true, nil
}

func (f *fakeTaskStore) SetStatus(_ context.Context, id int64, userID, status string, updatedAt time.Time) (bool, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	task, ok := f.st.tasks[id]
	if !ok || task.UserID != userID {
		return false, nil
	}
	task.Status = status
	task.UpdatedAt = updatedAt
	return true, nil
}

func (f *fakeTaskStore) SetShared(_ context.Context, id int64, userID string, shared bool, updatedAt time.Time) (bool, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	task, ok := f.st.tasks[id]
	if !ok || task.UserID != userID {
		return false, nil
	}
	task.IsShared = shared
	task.UpdatedAt = updatedAt
	return true, nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id int64, userID string) (bool, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	task, ok := f.st.tasks[id]
	if !ok || task.UserID != userID {
		return false, nil
	}
	delete(f.st.tasks, id)

	// ON DELETE CASCADE
	for commentID, comment := range f.st.comments {
		if comment.TaskID == id {
			delete(f.st.comments, commentID)
		}
	}
	return true, nil
}

func (f *fakeTaskStore) Active(_ context.Context) ([]*models.Task, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	var tasks []*models.Task
	for _, task := range f.st.tasks {
		if task.Status == models.StatusPending || task.Status == models.StatusInProgress {
			tasks = append(tasks, copyTask(task))
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (f *fakeTaskStore) MarkOverdue(_ context.Context, id int64, updatedAt time.Time) (bool, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	if err, ok := f.st.failMarkOverdue[id]; ok {
		return false, err
	}

	task, ok := f.st.tasks[id]
	if !ok {
		return false, nil
	}
	if task.Status != models.StatusPending && task.Status != models.StatusInProgress {
		return false, nil
	}
	task.Status = models.StatusOverdue
	task.UpdatedAt = updatedAt
	return true, nil
}

type fakeCommentStore struct{ st *fakeState }

func (f *fakeCommentStore) Create(_ context.Context, comment *models.Comment) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	f.st.nextCommentID++
	comment.ID = f.st.nextCommentID
	f.st.comments[comment.ID] = copyComment(comment)
	return nil
}

func (f *fakeCommentStore) ByID(_ context.Context, id int64) (*models.Comment, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	comment, ok := f.st.comments[id]
	if !ok {
		return nil, ErrCommentNotFound
	}
	clone := copyComment(comment)
	clone.AuthorUsername = f.st.usernameOf(comment.UserID)
	return clone, nil
}

func (f *fakeCommentStore) ByTask(_ context.Context, taskID int64) ([]*models.Comment, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	var comments []*models.Comment
	for _, comment := range f.st.comments {
		if comment.TaskID != taskID {
			continue
		}
		clone := copyComment(comment)
		clone.AuthorUsername = f.st.usernameOf(comment.UserID)
		comments = append(comments, clone)
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (f *fakeCommentStore) Delete(_ context.Context, id int64) (bool, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()

	if _, ok := f.st.comments[id]; !ok {
		return false, nil
	}
	delete(f.st.comments, id)
	return true, nil
}
