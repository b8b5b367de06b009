package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/movepal/api/internal/helpers"
	"github.com/movepal/api/internal/models"
	"github.com/movepal/api/internal/session"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler provides centralized error handling
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Internal server error"))
		}
	}
}

// AuthMiddleware resolves the caller's bearer token (Authorization header,
// access_token cookie, or the session store via the session_id cookie) and
// validates it. A missing or expired token clears the stored session and
// answers 401 with a login redirect carrying the original path.
func AuthMiddleware(jwksURL string, sessions *session.Store, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, _ := c.Cookie("session_id")

		token := bearerToken(c)
		if token == "" {
			token, _ = c.Cookie("access_token")
		}
		if token == "" && sessionID != "" {
			if s, ok := sessions.Get(sessionID); ok {
				token = s.Token
			}
		}
		if token == "" {
			Unauthorized(c, sessions, "missing credentials")
			return
		}

		claims, err := helpers.ValidateToken(token, jwksURL)
		if err != nil {
			logger.Info("token rejected",
				"path", c.Request.URL.Path,
				"error", err,
			)
			Unauthorized(c, sessions, "invalid or expired token")
			return
		}

		c.Set("user", claims)
		c.Set("token", token)
		c.Set("session_id", sessionID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// Unauthorized clears the caller's session state and aborts with a login
// redirect. Handlers reuse it when the upstream API answers 401 mid-request.
func Unauthorized(c *gin.Context, sessions *session.Store, reason string) {
	if sessionID, err := c.Cookie("session_id"); err == nil && sessionID != "" {
		sessions.Clear(sessionID)
	}
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.SetCookie("session_id", "", -1, "/", "", false, true)
	c.JSON(http.StatusUnauthorized, models.RedirectResponse(reason, helpers.LoginRedirect(c.Request.URL.Path)))
	c.Abort()
}

// RequireUserType gates a route group to the given user types. It assumes
// AuthMiddleware already ran.
func RequireUserType(userTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			c.Abort()
			return
		}
		claims, ok := user.(*helpers.Claims)
		if !ok {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid user claims"))
			c.Abort()
			return
		}
		for _, userType := range userTypes {
			if claims.HasUserType(userType) {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, models.ErrorResponse("insufficient permissions"))
		c.Abort()
	}
}
