package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

type commentServiceImpl struct {
	logger   zerolog.Logger
	tasks    TaskStore
	comments CommentStore
}

func NewCommentService(
	logger zerolog.Logger,
	tasks TaskStore,
	comments CommentStore,
) CommentService {
	return &commentServiceImpl{
		logger:   logger,
		tasks:    tasks,
		comments: comments,
	}
}

// readableTask loads the task and hides it behind ErrTaskNotFound when the
// user has no read access.
func (s *commentServiceImpl) readableTask(ctx context.Context, taskID int64, userID string) (*models.Task, error) {
	task, err := s.tasks.ByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.ViewableBy(userID) {
		s.logger.Warn().
			Int64("task_id", taskID).
			Str("user_id", userID).
			Msg("task not viewable")
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (s *commentServiceImpl) Add(ctx context.Context, params AddCommentParams) (*models.Comment, error) {
	if strings.TrimSpace(params.Text) == "" {
		return nil, ErrEmptyComment
	}

	_, err := s.readableTask(ctx, params.TaskID, params.UserID)
	if err != nil {
		return nil, err
	}

	if params.ParentID != nil {
		parent, err := s.comments.ByID(ctx, *params.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.TaskID != params.TaskID {
			s.logger.Warn().
				Int64("task_id", params.TaskID).
				Int64("parent_id", parent.ID).
				Msg("reply parent on another task")
			return nil, ErrParentMismatch
		}
	}

	comment := &models.Comment{
		TaskID:    params.TaskID,
		UserID:    params.UserID,
		ParentID:  params.ParentID,
		Text:      params.Text,
		CreatedAt: time.Now(),
	}

	err = s.comments.Create(ctx, comment)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", params.TaskID).
			Msg("failed to insert comment")
		return nil, err
	}
	s.logger.Debug().
		Int64("comment_id", comment.ID).
		Msg("inserted comment")

	s.logger.Info().
		Int64("comment_id", comment.ID).
		Int64("task_id", comment.TaskID).
		Str("user_id", comment.UserID).
		Msg("added comment")
	return comment, nil
}

func (s *commentServiceImpl) ListByTask(ctx context.Context, taskID int64, userID string) ([]*models.Comment, error) {
	_, err := s.readableTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ByTask(ctx, taskID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to select comments")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(comments)).
		Int64("task_id", taskID).
		Msg("selected comments")
	return comments, nil
}

func (s *commentServiceImpl) Delete(ctx context.Context, taskID, commentID int64, userID string) error {
	task, err := s.tasks.ByID(ctx, taskID)
	if err != nil {
		return err
	}

	comment, err := s.comments.ByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.TaskID != taskID {
		return ErrCommentNotFound
	}

	// The author keeps delete rights even after the task is unshared,
	// so the visibility gate applies only to everyone else.
	if comment.UserID != userID && !task.ViewableBy(userID) {
		s.logger.Warn().
			Int64("task_id", taskID).
			Str("user_id", userID).
			Msg("task not viewable")
		return ErrTaskNotFound
	}

	if !comment.DeletableBy(userID, task) {
		s.logger.Warn().
			Int64("comment_id", commentID).
			Str("user_id", userID).
			Msg("comment not deletable by user")
		return ErrPermissionDenied
	}

	deleted, err := s.comments.Delete(ctx, commentID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("comment_id", commentID).
			Msg("failed to delete comment")
		return err
	}
	if !deleted {
		return ErrCommentNotFound
	}

	s.logger.Info().
		Int64("comment_id", commentID).
		Int64("task_id", taskID).
		Str("user_id", userID).
		Msg("deleted comment")
	return nil
}
