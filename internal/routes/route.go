package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/movepal/api/internal/container"
	"github.com/movepal/api/internal/handlers"
	"github.com/movepal/api/internal/helpers"
	"github.com/movepal/api/internal/middleware"
	"github.com/movepal/api/internal/models"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "movepal-gateway",
			})
		})

		// public routes
		v1.POST("/login", handlers.Login(container.Upstream, container.Sessions, container.Logger))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.Config.JWKSURL, container.Sessions, container.Logger))

	protected.POST("/logout", handlers.Logout(container.Upstream, container.Sessions, container.Logger))
	protected.GET("/profile", func(c *gin.Context) {
		user, exist := c.Get("user")
		if !exist {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		claims, ok := user.(*helpers.Claims)
		if !ok {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid user claims"))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"user_id":   claims.Subject,
			"email":     claims.Email,
			"user_type": claims.UserType,
			"is_admin":  claims.IsAdmin(),
		})
	})

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.GET("/", handlers.ListBookings(container.BookingService, container.Sessions))
		bookingRoutes.POST("/", handlers.CreateBooking(container.IntakeService, container.Sessions))
		bookingRoutes.PATCH("/:id/status",
			middleware.RequireUserType(models.UserTypeStaff, models.UserTypeAdmin),
			handlers.UpdateBookingStatus(container.BookingService, container.Sessions))
	}

	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(middleware.RequireUserType(models.UserTypeAdmin))
	{
		adminRoutes.DELETE("/bookings/:id", handlers.DeleteBooking(container.BookingService, container.Sessions))
		adminRoutes.GET("/bookings/:id/eligible-staff",
			handlers.EligibleStaff(container.BookingService, container.AssignmentService, container.Sessions))
		adminRoutes.POST("/bookings/:id/assignments",
			handlers.AssignStaff(container.BookingService, container.AssignmentService, container.Sessions))
		adminRoutes.DELETE("/bookings/:id/assignments/:staff_id",
			handlers.UnassignStaff(container.AssignmentService, container.Sessions))
	}

	return r
}
