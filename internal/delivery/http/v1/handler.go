package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/services"
)

type Handler interface {
	HandleSignup(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleSetTaskStatus(c *gin.Context)
	HandleShareTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleCheckOverdue(c *gin.Context)

	HandleAddComment(c *gin.Context)
	HandleGetComments(c *gin.Context)
	HandleDeleteComment(c *gin.Context)

	HandleGetUsers(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	auth     services.AuthService
	tasks    services.TaskService
	comments services.CommentService
	users    services.UserService
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	taskService services.TaskService,
	commentService services.CommentService,
	userService services.UserService,
) Handler {
	return &handlerImpl{
		logger:   logger,
		auth:     authService,
		tasks:    taskService,
		comments: commentService,
		users:    userService,
	}
}
