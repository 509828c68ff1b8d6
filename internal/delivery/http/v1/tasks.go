package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/services"
)

type taskResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"task_name"`
	Description     string    `json:"task_description"`
	StartDate       string    `json:"task_start_date"`
	StartTime       string    `json:"task_start_time"`
	EndDate         string    `json:"task_end_date"`
	EndTime         string    `json:"task_end_time"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority"`
	DerivedPriority string    `json:"derived_priority"`
	Category        string    `json:"category,omitempty"`
	IsShared        bool      `json:"is_shared"`
	OwnerUsername   string    `json:"owner_username,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:              task.ID,
		Name:            task.Name,
		Description:     task.Description,
		StartDate:       task.StartDate,
		StartTime:       task.StartTime,
		EndDate:         task.EndDate,
		EndTime:         task.EndTime,
		Status:          task.Status,
		Priority:        task.Priority,
		DerivedPriority: models.PriorityForStatus(task.Status),
		Category:        task.Category,
		IsShared:        task.IsShared,
		OwnerUsername:   task.OwnerUsername,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}
}

type taskRequest struct {
	Name        string `json:"task_name" binding:"required,max=255"`
	Description string `json:"task_description" binding:"max=4096"`
	StartDate   string `json:"task_start_date" binding:"required,datetime=2006-01-02"`
	StartTime   string `json:"task_start_time" binding:"required,datetime=15:04"`
	EndDate     string `json:"task_end_date" binding:"required,datetime=2006-01-02"`
	EndTime     string `json:"task_end_time" binding:"required,datetime=15:04"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Category    string `json:"category" binding:"max=64"`
}

func (r taskRequest) createParams(userID string) services.CreateTaskParams {
	return services.CreateTaskParams{
		UserID:      userID,
		Name:        r.Name,
		Description: r.Description,
		StartDate:   r.StartDate,
		StartTime:   r.StartTime,
		EndDate:     r.EndDate,
		EndTime:     r.EndTime,
		Status:      r.Status,
		Priority:    r.Priority,
		Category:    r.Category,
	}
}

func taskIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	var req taskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.Create(c, req.createParams(userID))
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to create task")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	filter := services.TaskFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}

	tasks, err := h.tasks.List(c, userID, filter)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to list tasks")
		abortServiceError(c, err)
		return
	}

	response := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, newTaskResponse(task))
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
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

	var req taskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.Update(c, services.UpdateTaskParams{
		ID:               taskID,
		CreateTaskParams: req.createParams(userID),
	})
	if err != nil {
		h.logger.Warn().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to update task")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

type setTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *handlerImpl) HandleSetTaskStatus(c *gin.Context) {
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

	var req setTaskStatusRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.tasks.SetStatus(c, taskID, userID, req.Status)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to set task status")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task status updated"})
}

type shareTaskRequest struct {
	IsShared *bool `json:"is_shared" binding:"required"`
}

func (h *handlerImpl) HandleShareTask(c *gin.Context) {
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

	var req shareTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.tasks.SetShared(c, taskID, userID, *req.IsShared)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to set task shared flag")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task sharing updated"})
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
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

	err := h.tasks.Delete(c, taskID, userID)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to delete task")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

func (h *handlerImpl) HandleCheckOverdue(c *gin.Context) {
	count, err := h.tasks.SweepOverdue(c, time.Now())
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to sweep overdue tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": count})
}
