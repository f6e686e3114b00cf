package routes

import (
	"net/http"
	"time"

	"coachbar/handlers"
	"coachbar/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account and profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.AuthenticateHandler)
		api.POST("/forgot-password", hb.ForgotPasswordHandler)
		api.POST("/reset-password", hb.ResetPasswordHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.GetProfileHandler)
		api.PATCH("/me", hb.UpdateProfileHandler)
		api.PUT("/me/fcm-token", hb.UpdateFCMTokenHandler)
		api.DELETE("/me", hb.DeleteAccountHandler)
		api.DELETE("/revoke", hb.RevokeTokenHandler)
		api.GET("/id/:id", hb.GetUserHandler)
	}
}

// RegisterChatRoutes registers conversation endpoints, including the live feed.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chats")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", hb.OpenChannelHandler)
		api.GET("", hb.InboxHandler)
		api.GET("/:id", hb.GetChannelHandler)
		api.POST("/:id/messages", hb.SendMessageHandler)
		api.PUT("/:id/read", hb.MarkReadHandler)
		api.GET("/:id/feed", hb.ChannelFeedHandler)

		// Booking suggestions live inside a conversation.
		api.POST("/:id/suggestions", hb.ProposeBookingHandler)
	}
}

// RegisterBookingRoutes registers suggestion lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/upcoming", hb.UpcomingBookingsHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.PUT("/:id/confirm", hb.ConfirmBookingHandler)
	}
}

// RegisterClassRoutes registers group class endpoints.
func RegisterClassRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/classes")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", hb.CreateClassHandler)
		api.GET("/booked", hb.BookedClassesHandler)
		api.GET("/taught", hb.TaughtClassesHandler)
		api.GET("/:id", hb.GetClassHandler)
		api.POST("/:id/book", hb.BookClassHandler)
		api.DELETE("/:id/book", hb.CancelClassBookingHandler)
	}
}

// RegisterListingRoutes registers listing, category, and review endpoints.
func RegisterListingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/listings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", hb.CreateListingHandler)
		api.GET("/mine", hb.MyListingsHandler)
		api.GET("/:id", hb.GetListingHandler)
		api.PATCH("/:id", hb.UpdateListingHandler)
		api.DELETE("/:id", hb.DeleteListingHandler)
		api.GET("/:id/classes", hb.ListingClassesHandler)
		api.POST("/:id/reviews", hb.AddReviewHandler)
		api.GET("/:id/reviews", hb.ListingReviewsHandler)
		api.GET("/:id/summary", hb.ListingSummaryHandler)
	}

	categories := r.Group("/api/categories")
	{
		categories.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		categories.GET("", hb.CategoriesHandler)
		categories.GET("/:id/listings", hb.CategoryListingsHandler)
	}
}

// RegisterStorageRoutes registers media upload endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/upload/:bucket", hb.UploadFileHandler)
		api.DELETE("/file", hb.DeleteFileHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm CoachBar"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterClassRoutes(r, hb)
	RegisterListingRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
}
