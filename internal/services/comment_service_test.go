package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentFixture has alice owning a shared task and bob a registered user.
type commentFixture struct {
	st       *fakeState
	tasks    TaskService
	comments CommentService
	taskID   int64
}

func newCommentFixture(t *testing.T, shared bool) *commentFixture {
	t.Helper()

	st := newFakeState()
	addUser(st, "alice", "alice")
	addUser(st, "bob", "bob")
	addUser(st, "carol", "carol")

	taskService := newTestTaskService(st)
	commentService := NewCommentService(
		zerolog.Nop(),
		&fakeTaskStore{st: st},
		&fakeCommentStore{st: st},
	)

	ctx := context.Background()
	task, err := taskService.Create(ctx, validCreateParams("alice"))
	require.NoError(t, err)
	if shared {
		require.NoError(t, taskService.SetShared(ctx, task.ID, "alice", true))
	}

	return &commentFixture{
		st:       st,
		tasks:    taskService,
		comments: commentService,
		taskID:   task.ID,
	}
}

func TestCommentServiceAdd(t *testing.T) {
	f := newCommentFixture(t, true)
	ctx := context.Background()

	comment, err := f.comments.Add(ctx, AddCommentParams{
		TaskID: f.taskID,
		UserID: "bob",
		Text:   "looks good",
	})
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
	assert.Nil(t, comment.ParentID)

	listed, err := f.comments.ListByTask(ctx, f.taskID, "alice")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "looks good", listed[0].Text)
	assert.Equal(t, "bob", listed[0].AuthorUsername)
}

func TestCommentServiceAddRequiresReadAccess(t *testing.T) {
	f := newCommentFixture(t, false)
	ctx := context.Background()

	// The unshared task is invisible to bob; the error does not reveal
	// whether it exists.
	_, err := f.comments.Add(ctx, AddCommentParams{
		TaskID: f.taskID,
		UserID: "bob",
		Text:   "sneaky",
	})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = f.comments.ListByTask(ctx, f.taskID, "bob")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCommentServiceAddValidation(t *testing.T) {
	f := newCommentFixture(t, true)
	ctx := context.Background()

	_, err := f.comments.Add(ctx, AddCommentParams{
		TaskID: f.taskID,
		UserID: "bob",
		Text:   "   ",
	})
	assert.ErrorIs(t, err, ErrEmptyComment)
}

func TestCommentServiceReplies(t *testing.T) {
	f := newCommentFixture(t, true)
	ctx := context.Background()

	parent, err := f.comments.Add(ctx, AddCommentParams{
		TaskID: f.taskID,
		UserID: "bob",
		Text:   "top level",
	})
	require.NoError(t, err)

	reply, err := f.comments.Add(ctx, AddCommentParams{
		TaskID:   f.taskID,
		UserID:   "alice",
		ParentID: &parent.ID,
		Text:     "a reply",
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)

	// Replies can nest arbitrarily deep.
	deeper, err := f.comments.Add(ctx, AddCommentParams{
		TaskID:   f.taskID,
		UserID:   "bob",
		ParentID: &reply.ID,
		Text:     "deeper still",
	})
	require.NoError(t, err)
	assert.Equal(t, reply.ID, *deeper.ParentID)

	// A parent on another task is rejected.
	other, err := f.tasks.Create(ctx, validCreateParams("alice"))
	require.NoError(t, err)
	_, err = f.comments.Add(ctx, AddCommentParams{
		TaskID:   other.ID,
		UserID:   "alice",
		ParentID: &parent.ID,
		Text:     "crossed wires",
	})
	assert.ErrorIs(t, err, ErrParentMismatch)
}

func TestCommentServiceDeleteAuthorization(t *testing.T) {
	f := newCommentFixture(t, true)
	ctx := context.Background()

	comment, err := f.comments.Add(ctx, AddCommentParams{
		TaskID: f.taskID,
		UserID: "bob",
		Text:   "from bob",
	})
	require.NoError(t, err)

	// carol can read the shared task but is neither the author nor
	// the task owner.
	err = f.comments.Delete(ctx, f.taskID, comment.ID, "carol")
	assert.ErrorIs(t, err, ErrPermissionDenied)
	require.Contains(t, f.st.comments, comment.ID)

	// The owner of the shared task may delete bob's comment.
	err = f.comments.Delete(ctx, f.taskID, comment.ID, "alice")
	require.NoError(t, err)
	assert.NotContains(t, f.st.comments, comment.ID)
}

func TestCommentServiceDeleteByAuthor(t *testing.T) {
	f := newCommentFixture(t, true)
	ctx := context.Background()

	comment, err := f.comments.Add(ctx, AddCommentParams{
		TaskID: f.taskID,
		UserID: "bob",
		Text:   "from bob",
	})
	require.NoError(t, err)

	err = f.comments.Delete(ctx, f.taskID, comment.ID, "bob")
	require.NoError(t, err)
	assert.Empty(t, f.st.comments)
}

func TestCommentServiceAuthorDeleteSurvivesUnsharing(t *testing.T) {
	f := newCommentFixture(t, true)
	ctx := context.Background()

	comment, err := f.comments.Add(ctx, AddCommentParams{
		TaskID: f.taskID,
		UserID: "bob",
		Text:   "from bob",
	})
	require.NoError(t, err)

	// Unsharing hides the task from bob, but authorship is not tied to
	// read access: bob may still remove his own comment.
	require.NoError(t, f.tasks.SetShared(ctx, f.taskID, "alice", false))

	err = f.comments.Delete(ctx, f.taskID, comment.ID, "bob")
	require.NoError(t, err)
	assert.NotContains(t, f.st.comments, comment.ID)

	// Everyone else stays behind the visibility gate.
	comment, err = f.comments.Add(ctx, AddCommentParams{
		TaskID: f.taskID,
		UserID: "alice",
		Text:   "from alice",
	})
	require.NoError(t, err)
	err = f.comments.Delete(ctx, f.taskID, comment.ID, "carol")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCommentServiceDeleteWrongTask(t *testing.T) {
	f := newCommentFixture(t, true)
	ctx := context.Background()

	comment, err := f.comments.Add(ctx, AddCommentParams{
		TaskID: f.taskID,
		UserID: "bob",
		Text:   "from bob",
	})
	require.NoError(t, err)

	other, err := f.tasks.Create(ctx, validCreateParams("alice"))
	require.NoError(t, err)

	err = f.comments.Delete(ctx, other.ID, comment.ID, "alice")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentServiceOwnerCannotDeleteOnUnsharedTask(t *testing.T) {
	f := newCommentFixture(t, true)
	ctx := context.Background()

	comment, err := f.comments.Add(ctx, AddCommentParams{
		TaskID: f.taskID,
		UserID: "bob",
		Text:   "from bob",
	})
	require.NoError(t, err)

	// Unsharing the task withdraws the owner's moderation right over
	// other users' comments.
	require.NoError(t, f.tasks.SetShared(ctx, f.taskID, "alice", false))

	err = f.comments.Delete(ctx, f.taskID, comment.ID, "alice")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
