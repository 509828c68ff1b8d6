package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/config"
	v1 "github.com/adanyl0v/go-task-manager/internal/delivery/http/v1"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	svcs := newAppServices()

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router, svcs)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go runSweeper(sweepCtx, svcs.tasks)

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")
	stopSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter, svcs appServices) {
	handler := v1.New(
		globalLogger,
		svcs.auth,
		svcs.tasks,
		svcs.comments,
		svcs.users,
	)

	router.POST("/signup", handler.HandleSignup)
	router.POST("/login", handler.HandleLogin)

	// Internal trigger for the overdue sweep; the periodic sweeper
	// calls the same service method.
	router.POST("/tasks/check-overdue", handler.HandleCheckOverdue)

	authed := router.Group("/", handler.HandleAuthMiddleware)
	authed.GET("/tasks", handler.HandleGetTasks)
	authed.POST("/add_task", handler.HandleCreateTask)
	authed.PUT("/tasks/:id", handler.HandleUpdateTask)
	authed.PUT("/tasks/:id/status", handler.HandleSetTaskStatus)
	authed.PUT("/tasks/:id/share", handler.HandleShareTask)
	authed.DELETE("/tasks/:id", handler.HandleDeleteTask)
	authed.POST("/tasks/:id/comments", handler.HandleAddComment)
	authed.GET("/tasks/:id/comments", handler.HandleGetComments)
	authed.DELETE("/tasks/:id/comments/:cid", handler.HandleDeleteComment)
	authed.GET("/users", handler.HandleGetUsers)
}
