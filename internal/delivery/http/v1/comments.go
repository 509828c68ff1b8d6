package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/services"
)

type commentResponse struct {
	ID             int64     `json:"id"`
	TaskID         int64     `json:"task_id"`
	ParentID       *int64    `json:"parent_comment_id,omitempty"`
	Text           string    `json:"comment"`
	AuthorID       string    `json:"user_id"`
	AuthorUsername string    `json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
}

func newCommentResponse(comment *models.Comment) commentResponse {
	return commentResponse{
		ID:             comment.ID,
		TaskID:         comment.TaskID,
		ParentID:       comment.ParentID,
		Text:           comment.Text,
		AuthorID:       comment.UserID,
		AuthorUsername: comment.AuthorUsername,
		CreatedAt:      comment.CreatedAt,
	}
}

type addCommentRequest struct {
	Text     string `json:"comment" binding:"required,max=4096"`
	ParentID *int64 `json:"parent_comment_id"`
}

func (h *handlerImpl) HandleAddComment(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		abort(c, newBadRequestError("invalid task id"))
		return
	}

	var req addCommentRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	comment, err := h.comments.Add(c, services.AddCommentParams{
		TaskID:   taskID,
		UserID:   userID,
		ParentID: req.ParentID,
		Text:     req.Text,
	})
	if err != nil {
		h.logger.Warn().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to add comment")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newCommentResponse(comment))
}

func (h *handlerImpl) HandleGetComments(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		abort(c, newBadRequestError("invalid task id"))
		return
	}

	comments, err := h.comments.ListByTask(c, taskID, userID)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to list comments")
		abortServiceError(c, err)
		return
	}

	response := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		response = append(response, newCommentResponse(comment))
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleDeleteComment(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		abort(c, newBadRequestError("invalid task id"))
		return
	}

	commentID, err := strconv.ParseInt(c.Param("cid"), 10, 64)
	if err != nil || commentID <= 0 {
		abort(c, newBadRequestError("invalid comment id"))
		return
	}

	err = h.comments.Delete(c, taskID, commentID, userID)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Int64("comment_id", commentID).
			Msg("failed to delete comment")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
