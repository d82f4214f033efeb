package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"todocore/internal/duedate"
	"todocore/internal/models"
	"todocore/internal/query"
	"todocore/internal/services"
)

type todoResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Duration    string     `json:"duration,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func newTodoResponse(todo *models.Todo) todoResponse {
	return todoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Status:      string(todo.Status),
		Duration:    todo.Duration,
		DueDate:     todo.DueDate,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

type createTodoRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Duration    string `json:"duration"`
	DueDate     string `json:"due_date"`
}

func (h *handlerImpl) HandleCreateTodo(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	var req createTodoRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	params := services.CreateTodoParams{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
	}
	if req.Status != "" {
		status, err := models.ParseStatus(req.Status)
		if err != nil {
			abort(c, newBadRequestError(err.Error()))
			return
		}
		params.Status = status
	}
	if req.DueDate != "" {
		due, err := duedate.ParseInput(req.DueDate)
		if err != nil {
			abort(c, newBadRequestError(err.Error()))
			return
		}
		params.DueDate = &due
	}

	todo, err := h.todos.Create(c, identity, params)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTodoResponse(todo))
}

type listTodosResponse struct {
	Items []todoResponse `json:"items"`
	Total int            `json:"total"`
}

func (h *handlerImpl) HandleListTodos(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	params, err := parseListParams(c)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	result, err := h.todos.Query(c, identity, params)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	response := listTodosResponse{
		Items: make([]todoResponse, len(result.Items)),
		Total: result.Total,
	}
	for i := range result.Items {
		response.Items[i] = newTodoResponse(&result.Items[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetTodo(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	todo, err := h.todos.Get(c, identity, c.Param("id"))
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTodoResponse(todo))
}

type updateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Duration    *string `json:"duration,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

func (h *handlerImpl) HandleUpdateTodo(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	var req updateTodoRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	patch := services.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
	}
	if req.Status != nil {
		status, err := models.ParseStatus(*req.Status)
		if err != nil {
			abort(c, newBadRequestError(err.Error()))
			return
		}
		patch.Status = &status
	}
	if req.DueDate != nil {
		due, err := duedate.ParseInput(*req.DueDate)
		if err != nil {
			abort(c, newBadRequestError(err.Error()))
			return
		}
		patch.DueDate = &due
	}

	todo, err := h.todos.Update(c, identity, c.Param("id"), patch)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTodoResponse(todo))
}

func (h *handlerImpl) HandleDeleteTodo(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	err := h.todos.Delete(c, identity, c.Param("id"))
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// parseListParams validates the list query string. Failures are
// ErrInvalidArgument so the boundary answers 400 rather than silently
// falling back to defaults.
func parseListParams(c *gin.Context) (services.QueryParams, error) {
	params := services.QueryParams{
		ActingAs: c.Query("user_id"),
		Params: query.Params{
			Search:   c.Query("search"),
			Page:     1,
			Size:     query.DefaultPageSize,
			SortDesc: true,
		},
	}

	var err error
	if v := c.Query("page"); v != "" {
		params.Page, err = strconv.Atoi(v)
		if err != nil || params.Page < 1 {
			return params, fmt.Errorf("%w: page must be a positive integer", services.ErrInvalidArgument)
		}
	}
	if v := c.Query("size"); v != "" {
		params.Size, err = strconv.Atoi(v)
		if err != nil || params.Size < 1 {
			return params, fmt.Errorf("%w: size must be a positive integer", services.ErrInvalidArgument)
		}
	}
	if v := c.Query("status"); v != "" {
		params.Status, err = models.ParseStatus(v)
		if err != nil {
			return params, fmt.Errorf("%w: %w", services.ErrInvalidArgument, err)
		}
	}
	params.SortBy, err = query.ParseSortField(c.Query("sort_by"))
	if err != nil {
		return params, fmt.Errorf("%w: %w", services.ErrInvalidArgument, err)
	}
	if v := c.Query("sort_desc"); v != "" {
		params.SortDesc, err = strconv.ParseBool(v)
		if err != nil {
			return params, fmt.Errorf("%w: sort_desc must be a boolean", services.ErrInvalidArgument)
		}
	}
	if v := c.Query("due_date_start"); v != "" {
		start, err := duedate.ParseInput(v)
		if err != nil {
			return params, fmt.Errorf("%w: %w", services.ErrInvalidArgument, err)
		}
		params.DueDateStart = &start
	}
	if v := c.Query("due_date_end"); v != "" {
		end, err := duedate.ParseInput(v)
		if err != nil {
			return params, fmt.Errorf("%w: %w", services.ErrInvalidArgument, err)
		}
		params.DueDateEnd = &end
	}
	return params, nil
}
