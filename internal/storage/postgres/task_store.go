package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/services"
)

type TaskStore struct {
	pgPool *pgxpool.Pool
}

func NewTaskStore(pgPool *pgxpool.Pool) *TaskStore {
	return &TaskStore{pgPool: pgPool}
}

func (s *TaskStore) Create(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (user_id,
                   name,
                   description,
                   start_date,
                   start_time,
                   end_date,
                   end_time,
                   status,
                   priority,
                   category,
                   is_shared,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id
`
	return s.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		task.UserID,
		task.Name,
		task.Description,
		task.StartDate,
		task.StartTime,
		task.EndDate,
		task.EndTime,
		task.Status,
		task.Priority,
		task.Category,
		task.IsShared,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
}

var taskColumns = []string{
	"t.id",
	"t.user_id",
	"t.name",
	"t.description",
	"t.start_date",
	"t.start_time",
	"t.end_date",
	"t.end_time",
	"t.status",
	"t.priority",
	"t.category",
	"t.is_shared",
	"t.created_at",
	"t.updated_at",
	"u.username",
}

func scanTask(row pgx.Row) (*models.Task, error) {
	task := &models.Task{}
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Name,
		&task.Description,
		&task.StartDate,
		&task.StartTime,
		&task.EndDate,
		&task.EndTime,
		&task.Status,
		&task.Priority,
		&task.Category,
		&task.IsShared,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.OwnerUsername,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func selectTasks() squirrel.SelectBuilder {
	return squirrel.Select(taskColumns...).
		From("tasks t").
		Join("users u ON u.id = t.user_id").
		PlaceholderFormat(squirrel.Dollar)
}

func (s *TaskStore) ByID(ctx context.Context, id int64) (*models.Task, error) {
	query, args, err := selectTasks().
		Where(squirrel.Eq{"t.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	task, err := scanTask(s.pgPool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskStore) VisibleTo(ctx context.Context, userID string, filter services.TaskFilter) ([]*models.Task, error) {
	builder := selectTasks().
		Where(squirrel.Or{
			squirrel.Eq{"t.user_id": userID},
			squirrel.Eq{"t.is_shared": true},
		}).
		OrderBy("t.created_at DESC")

	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"t.status": filter.Status})
	}
	if filter.Category != "" {
		builder = builder.Where(squirrel.Eq{"t.category": filter.Category})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.pgPool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) Update(ctx context.Context, task *models.Task) (bool, error) {
	const updateTaskQuery = `
UPDATE tasks
SET name = $1,
    description = $2,
    start_date = $3,
    start_time = $4,
    end_date = $5,
    end_time = $6,
    status = $7,
    priority = $8,
    category = $9,
    updated_at = $10
WHERE id = $11 AND user_id = $12
`
	tag, err := s.pgPool.Exec(
		ctx,
		updateTaskQuery,
		task.Name,
		task.Description,
		task.StartDate,
		task.StartTime,
		task.EndDate,
		task.EndTime,
		task.Status,
		task.Priority,
		task.Category,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *TaskStore) SetStatus(ctx context.Context, id int64, userID, status string, updatedAt time.Time) (bool, error) {
	const updateTaskStatusQuery = `
UPDATE tasks
SET status = $1,
    updated_at = $2
WHERE id = $3 AND user_id = $4
`
	tag, err := s.pgPool.Exec(
		ctx,
		updateTaskStatusQuery,
		status,
		updatedAt,
		id,
		userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *TaskStore) SetShared(ctx context.Context, id int64, userID string, shared bool, updatedAt time.Time) (bool, error) {
	const updateTaskSharedQuery = `
UPDATE tasks
SET is_shared = $1,
    updated_at = $2
WHERE id = $3 AND user_id = $4
`
	tag, err := s.pgPool.Exec(
		ctx,
		updateTaskSharedQuery,
		shared,
		updatedAt,
		id,
		userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *TaskStore) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND user_id = $2
`
	tag, err := s.pgPool.Exec(ctx, deleteTaskQuery, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *TaskStore) Active(ctx context.Context) ([]*models.Task, error) {
	query, args, err := selectTasks().
		Where(squirrel.Eq{"t.status": []string{
			models.StatusPending,
			models.StatusInProgress,
		}}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.pgPool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) MarkOverdue(ctx context.Context, id int64, updatedAt time.Time) (bool, error) {
	// Conditional on the current status so a completed status set
	// between the sweep's read and this write is never overwritten.
	const markOverdueQuery = `
UPDATE tasks
SET status = $1,
    updated_at = $2
WHERE id = $3 AND status IN ($4, $5)
`
	tag, err := s.pgPool.Exec(
		ctx,
		markOverdueQuery,
		models.StatusOverdue,
		updatedAt,
		id,
		models.StatusPending,
		models.StatusInProgress,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
