package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/services"
)

type signupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

func (h *handlerImpl) HandleSignup(c *gin.Context) {
	var req signupRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	user, err := h.auth.Register(c, services.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to register")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=255"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	result, err := h.auth.Login(c, services.LoginParams{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to login")
		if errors.Is(err, services.ErrInvalidCredentials) {
			abort(c, newUnauthorizedError(services.ErrInvalidCredentials.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:     result.Token,
		UserID:    result.UserID,
		Username:  result.Username,
		ExpiresAt: result.ExpiresAt,
	})
}
