package app

import (
	"github.com/adanyl0v/go-task-manager/internal/config"
	"github.com/adanyl0v/go-task-manager/internal/services"
	"github.com/adanyl0v/go-task-manager/internal/storage/postgres"
)

type appServices struct {
	auth     services.AuthService
	tasks    services.TaskService
	comments services.CommentService
	users    services.UserService
}

func newAppServices() appServices {
	jwtCfg := config.Global().JWT

	userStore := postgres.NewUserStore(globalPostgresPool)
	taskStore := postgres.NewTaskStore(globalPostgresPool)
	commentStore := postgres.NewCommentStore(globalPostgresPool)

	return appServices{
		auth: services.NewAuthService(
			globalLogger,
			userStore,
			jwtCfg.Issuer,
			[]byte(jwtCfg.SigningKey),
			jwtCfg.TokenTTL,
		),
		tasks:    services.NewTaskService(globalLogger, taskStore),
		comments: services.NewCommentService(globalLogger, taskStore, commentStore),
		users:    services.NewUserService(globalLogger, userStore),
	}
}
