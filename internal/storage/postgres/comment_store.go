package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/services"
)

type CommentStore struct {
	pgPool *pgxpool.Pool
}

func NewCommentStore(pgPool *pgxpool.Pool) *CommentStore {
	return &CommentStore{pgPool: pgPool}
}

func (s *CommentStore) Create(ctx context.Context, comment *models.Comment) error {
	const insertCommentQuery = `
INSERT INTO task_comments (task_id,
                           user_id,
                           parent_id,
                           comment,
                           created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	return s.pgPool.QueryRow(
		ctx,
		insertCommentQuery,
		comment.TaskID,
		comment.UserID,
		comment.ParentID,
		comment.Text,
		comment.CreatedAt,
	).Scan(&comment.ID)
}

func (s *CommentStore) ByID(ctx context.Context, id int64) (*models.Comment, error) {
	comment := &models.Comment{ID: id}

	const selectCommentQuery = `
SELECT c.task_id,
       c.user_id,
       c.parent_id,
       c.comment,
       c.created_at,
       u.username
FROM task_comments c
JOIN users u ON u.id = c.user_id
WHERE c.id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectCommentQuery,
		id,
	).Scan(
		&comment.TaskID,
		&comment.UserID,
		&comment.ParentID,
		&comment.Text,
		&comment.CreatedAt,
		&comment.AuthorUsername,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *CommentStore) ByTask(ctx context.Context, taskID int64) ([]*models.Comment, error) {
	const selectCommentsQuery = `
SELECT c.id,
       c.user_id,
       c.parent_id,
       c.comment,
       c.created_at,
       u.username
FROM task_comments c
JOIN users u ON u.id = c.user_id
WHERE c.task_id = $1
ORDER BY c.created_at
`
	rows, err := s.pgPool.Query(ctx, selectCommentsQuery, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment := &models.Comment{TaskID: taskID}
		err = rows.Scan(
			&comment.ID,
			&comment.UserID,
			&comment.ParentID,
			&comment.Text,
			&comment.CreatedAt,
			&comment.AuthorUsername,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (s *CommentStore) Delete(ctx context.Context, id int64) (bool, error) {
	const deleteCommentQuery = `
DELETE FROM task_comments
WHERE id = $1
`
	tag, err := s.pgPool.Exec(ctx, deleteCommentQuery, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
