package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todocore/internal/models"
)

// loginRequest mirrors the OAuth2 password form: the username field
// carries the account email.
type loginRequest struct {
	Username string `json:"username" form:"username" binding:"required,max=255"`
	Password string `json:"password" form:"password" binding:"required,max=255"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
	Name        string `json:"name"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBind(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind login form")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	result, err := h.auth.Login(c, req.Username, req.Password)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "bearer",
		Role:        string(result.Role),
		Name:        result.Name,
	})
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
	}
}

func (h *handlerImpl) HandleMe(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	user, err := h.auth.CurrentUser(c, identity)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *handlerImpl) HandleListUsers(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	users, err := h.auth.ListUsers(c, identity)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	response := make([]userResponse, len(users))
	for i := range users {
		response[i] = newUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, response)
}
