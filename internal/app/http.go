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

	"todocore/internal/config"
	v1 "todocore/internal/delivery/http/v1"
	"todocore/internal/services"
	"todocore/internal/storage"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

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
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

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

func registerRoutes(router *gin.Engine) {
	cfg := config.Global()

	userStore := storage.NewPostgresUserStore(globalLogger, globalPostgresPool)
	todoStore := storage.NewPostgresTodoStore(globalLogger, globalPostgresPool)

	authService := services.NewAuthService(
		globalLogger,
		userStore,
		cfg.JWT.Issuer,
		[]byte(cfg.JWT.SigningKey),
		cfg.JWT.AccessTokenTTL,
	)
	todoService := services.NewTodoService(globalLogger, todoStore)

	handler := v1.New(globalLogger, authService, todoService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	authRouter := api.Group("/auth")
	authRouter.POST("/login", handler.HandleLogin)
	authRouter.GET("/me", handler.HandleAuthMiddleware, handler.HandleMe)
	authRouter.GET("/users", handler.HandleAuthMiddleware, handler.HandleListUsers)

	todoRouter := api.Group("/todos", handler.HandleAuthMiddleware)
	todoRouter.POST("", handler.HandleCreateTodo)
	todoRouter.GET("", handler.HandleListTodos)
	todoRouter.GET("/:id", handler.HandleGetTodo)
	todoRouter.PUT("/:id", handler.HandleUpdateTodo)
	todoRouter.DELETE("/:id", handler.HandleDeleteTodo)
}
