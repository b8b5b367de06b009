package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/movepal/api/internal/models"
	"github.com/movepal/api/internal/session"
	"github.com/movepal/api/internal/upstream"
)

const sessionTTLSeconds = 8 * 3600

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login proxies the credentials to the booking API and, on success, seeds a
// gateway session and mirrors the token into cookies for browser callers.
func Login(client *upstream.Client, sessions *session.Store, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		result, err := client.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, upstream.ErrUnauthorized) {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid email or password"))
				return
			}
			var apiErr *upstream.APIError
			if errors.As(err, &apiErr) {
				c.JSON(apiErr.StatusCode, models.ErrorResponse(apiErr.Detail))
				return
			}
			logger.Error("login against booking API failed", "error", err)
			c.JSON(http.StatusBadGateway, models.ErrorResponse("login is currently unavailable"))
			return
		}

		sessionID := uuid.New().String()
		sessions.Set(sessionID, session.Session{
			Token:         result.Token,
			Email:         result.User.Email,
			UserType:      result.User.UserType,
			Authenticated: true,
		})

		isProduction := os.Getenv("GIN_MODE") == "production"
		c.SetCookie("access_token", result.Token, sessionTTLSeconds, "/", "", isProduction, true)
		c.SetCookie("session_id", sessionID, sessionTTLSeconds, "/", "", isProduction, true)

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"user":      result.User,
			"user_type": result.User.UserType,
		}, "login successful"))
	}
}

// Logout ends the upstream session best-effort and always clears local state.
func Logout(client *upstream.Client, sessions *session.Store, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetString("token")
		if err := client.Logout(c.Request.Context(), token); err != nil {
			logger.Warn("upstream logout failed", "error", err)
		}

		if sessionID := c.GetString("session_id"); sessionID != "" {
			sessions.Clear(sessionID)
		}
		c.SetCookie("access_token", "", -1, "/", "", false, true)
		c.SetCookie("session_id", "", -1, "/", "", false, true)

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "logged out"))
	}
}
