package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"todocore/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleMe(c *gin.Context)
	HandleListUsers(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateTodo(c *gin.Context)
	HandleListTodos(c *gin.Context)
	HandleGetTodo(c *gin.Context)
	HandleUpdateTodo(c *gin.Context)
	HandleDeleteTodo(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	auth   services.AuthService
	todos  services.TodoService
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	todoService services.TodoService,
) Handler {
	return &handlerImpl{
		logger: logger,
		auth:   authService,
		todos:  todoService,
	}
}
