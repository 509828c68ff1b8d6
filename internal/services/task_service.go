package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	tasks  TaskStore
}

func NewTaskService(logger zerolog.Logger, tasks TaskStore) TaskService {
	return &taskServiceImpl{
		logger: logger,
		tasks:  tasks,
	}
}

func validateSchedule(task *models.Task) error {
	startsAt, err := task.StartsAt()
	if err != nil {
		return ErrInvalidSchedule
	}
	endsAt, err := task.EndsAt()
	if err != nil {
		return ErrInvalidSchedule
	}
	if !startsAt.Before(endsAt) {
		return ErrInvalidSchedule
	}
	return nil
}

func (s *taskServiceImpl) Create(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	now := time.Now()
	task := &models.Task{
		UserID:      params.UserID,
		Name:        params.Name,
		Description: params.Description,
		StartDate:   params.StartDate,
		StartTime:   params.StartTime,
		EndDate:     params.EndDate,
		EndTime:     params.EndTime,
		Status:      params.Status,
		Priority:    params.Priority,
		Category:    params.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if task.Status == "" {
		task.Status = models.StatusPending
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	if !models.ValidStatus(task.Status) {
		return nil, ErrInvalidTaskStatus
	}
	if !models.ValidPriority(task.Priority) {
		return nil, ErrInvalidPriority
	}
	err := validateSchedule(task)
	if err != nil {
		return nil, err
	}

	err = s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Msg("inserted task")

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) List(ctx context.Context, userID string, filter TaskFilter) ([]*models.Task, error) {
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		return nil, ErrInvalidTaskStatus
	}

	tasks, err := s.tasks.VisibleTo(ctx, userID, filter)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select visible tasks")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("selected visible tasks")
	return tasks, nil
}

func (s *taskServiceImpl) Update(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	task := &models.Task{
		ID:          params.ID,
		UserID:      params.UserID,
		Name:        params.Name,
		Description: params.Description,
		StartDate:   params.StartDate,
		StartTime:   params.StartTime,
		EndDate:     params.EndDate,
		EndTime:     params.EndTime,
		Status:      params.Status,
		Priority:    params.Priority,
		Category:    params.Category,
		UpdatedAt:   time.Now(),
	}

	if !models.ValidStatus(task.Status) {
		return nil, ErrInvalidTaskStatus
	}
	if !models.ValidPriority(task.Priority) {
		return nil, ErrInvalidPriority
	}
	err := validateSchedule(task)
	if err != nil {
		return nil, err
	}

	// The update is conditional on the owner, so a task owned by
	// someone else and a missing task are indistinguishable here.
	updated, err := s.tasks.Update(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}
	if !updated {
		s.logger.Warn().
			Int64("task_id", task.ID).
			Str("user_id", task.UserID).
			Msg("task not found or not owned")
		return nil, ErrTaskNotFound
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("updated task")

	// Re-read the row so the response carries the columns the update
	// does not touch (shared flag, creation time, owner username).
	task, err = s.tasks.ByID(ctx, task.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", params.ID).
			Msg("failed to select updated task")
		return nil, err
	}
	return task, nil
}

func (s *taskServiceImpl) SetStatus(ctx context.Context, taskID int64, userID, status string) error {
	if !models.ValidStatus(status) {
		return ErrInvalidTaskStatus
	}

	updated, err := s.tasks.SetStatus(ctx, taskID, userID, status, time.Now())
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to update task status")
		return err
	}
	if !updated {
		s.logger.Warn().
			Int64("task_id", taskID).
			Str("user_id", userID).
			Msg("task not found or not owned")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Str("user_id", userID).
		Str("status", status).
		Msg("updated task status")
	return nil
}

func (s *taskServiceImpl) SetShared(ctx context.Context, taskID int64, userID string, shared bool) error {
	updated, err := s.tasks.SetShared(ctx, taskID, userID, shared, time.Now())
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to update task shared flag")
		return err
	}
	if !updated {
		s.logger.Warn().
			Int64("task_id", taskID).
			Str("user_id", userID).
			Msg("task not found or not owned")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Str("user_id", userID).
		Bool("is_shared", shared).
		Msg("updated task shared flag")
	return nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, taskID int64, userID string) error {
	deleted, err := s.tasks.Delete(ctx, taskID, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to delete task")
		return err
	}
	if !deleted {
		s.logger.Warn().
			Int64("task_id", taskID).
			Str("user_id", userID).
			Msg("task not found or not owned")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Str("user_id", userID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	tasks, err := s.tasks.Active(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select active tasks")
		return 0, err
	}

	transitioned := 0
	for _, task := range tasks {
		if !task.OverdueAt(now) {
			continue
		}

		// The store re-checks the status in the same statement, so a
		// user-driven transition racing the sweep wins.
		marked, err := s.tasks.MarkOverdue(ctx, task.ID, now)
		if err != nil {
			s.logger.Error().
				Err(err).
				Int64("task_id", task.ID).
				Msg("failed to mark task overdue")
			continue
		}
		if !marked {
			s.logger.Debug().
				Int64("task_id", task.ID).
				Msg("task status changed under the sweep")
			continue
		}

		s.logger.Info().
			Int64("task_id", task.ID).
			Msg("task transitioned to overdue")
		transitioned++
	}

	s.logger.Info().
		Int("count", transitioned).
		Msg("overdue sweep finished")
	return transitioned, nil
}
