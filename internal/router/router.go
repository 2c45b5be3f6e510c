package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ogennaisrael01/PropertyHub/internal/handlers"
	"github.com/ogennaisrael01/PropertyHub/internal/middleware"
	"github.com/ogennaisrael01/PropertyHub/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		// Listings are public; mutations require an authenticated user
		// and go through the policy engine in the handlers.
		houses := api.Group("/houses")
		{
			houses.GET("", middleware.OptionalAuthMiddleware(), handlers.ListHouses)
			houses.GET("/:house_id", middleware.OptionalAuthMiddleware(), handlers.GetHouse)
			houses.GET("/:house_id/units", middleware.OptionalAuthMiddleware(), handlers.ListUnits)
			houses.GET("/:house_id/units/:unit_id", middleware.OptionalAuthMiddleware(), handlers.GetUnit)

			authed := houses.Group("", middleware.AuthMiddleware())
			{
				authed.POST("", handlers.CreateHouse)
				authed.PATCH("/:house_id", handlers.UpdateHouse)
				authed.DELETE("/:house_id", handlers.DeleteHouse)

				authed.POST("/:house_id/units", handlers.CreateUnit)
				authed.PATCH("/:house_id/units/:unit_id", handlers.UpdateUnit)
				authed.DELETE("/:house_id/units/:unit_id", handlers.DeleteUnit)

				authed.POST("/:house_id/images", handlers.CreateImage)
				authed.DELETE("/:house_id/images/:image_id", handlers.DeleteImage)

				authed.POST("/:house_id/rentals", handlers.CreateHouseRental)
				authed.POST("/:house_id/units/:unit_id/rentals", handlers.CreateUnitRental)
			}
		}

		api.GET("/rentals", middleware.AuthMiddleware(), handlers.MyRentals)

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.ListNotifications)
			notifications.POST("/:notification_id/read", handlers.MarkNotificationRead)
		}

		messages := api.Group("/messages", middleware.AuthMiddleware())
		{
			messages.POST("", handlers.SendMessage)
			messages.GET("", handlers.ListMessages)
		}
	}

	return r
}
