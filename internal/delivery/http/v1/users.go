package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Username: user.Username,
	}
}

func (h *handlerImpl) HandleGetUsers(c *gin.Context) {
	users, err := h.users.List(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list users")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]userResponse, 0, len(users))
	for _, user := range users {
		response = append(response, newUserResponse(user))
	}
	c.JSON(http.StatusOK, response)
}
