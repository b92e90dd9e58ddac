// Package routes wires controllers onto the HTTP router.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillbridge/skillbridge/internal/app/controllers"
	"github.com/skillbridge/skillbridge/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	requestController *controllers.RequestController,
	notificationController *controllers.NotificationController,
	messageController *controllers.MessageController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		profiles := authenticated.Group("/skill-profile")
		{
			profiles.POST("", profileController.Upsert)
			profiles.GET("", profileController.GetOwn)
			profiles.GET("/search", profileController.Search)
			profiles.GET("/locations/:type", profileController.Locations)
		}

		requests := authenticated.Group("/requests")
		{
			requests.POST("", requestController.Create)
			requests.GET("", requestController.List)
			requests.PUT("/:requestId/:action", requestController.Transition)
			requests.DELETE("/:requestId", requestController.Delete)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.List)
			notifications.GET("/:id", notificationController.Get)
			notifications.PUT("/:id/read", notificationController.MarkRead)
			notifications.PUT("/:id/action", notificationController.HandleAction)
			notifications.DELETE("/:id", notificationController.Delete)
		}

		messages := authenticated.Group("/messages")
		{
			messages.POST("", messageController.Send)
			messages.GET("/:requestId", messageController.History)
		}
	}
}
