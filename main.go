package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coachbar/config"
	"coachbar/cron"
	"coachbar/database"
	chatRepoPkg "coachbar/database/repository/chat"
	classRepoPkg "coachbar/database/repository/class"
	listingRepoPkg "coachbar/database/repository/listing"
	reviewRepoPkg "coachbar/database/repository/review"
	suggestionRepoPkg "coachbar/database/repository/suggestion"
	userRepoPkg "coachbar/database/repository/user"
	"coachbar/handlers"
	"coachbar/realtime"
	"coachbar/routes"
	"coachbar/services/chat"
	"coachbar/services/listing"
	"coachbar/services/negotiation"
	"coachbar/services/notification"
	"coachbar/services/review"
	"coachbar/services/roster"
	"coachbar/services/storage"
	"coachbar/services/tasks"
	"coachbar/services/user"
	"coachbar/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	cld, cloudName, err := utils.NewCloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary: %v", err)
	}
	storageService := storage.NewStorageService(cld, cloudName)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	chatRepo := chatRepoPkg.NewMongoChatRepo()
	suggestionRepo := suggestionRepoPkg.NewMongoSuggestionRepo()
	classRepo := classRepoPkg.NewMongoClassRepo()
	listingRepo := listingRepoPkg.NewMongoListingRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()

	// services.
	notificationService, err := notification.NewDefaultNotificationService(userRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	feed := realtime.NewHub()
	completionScheduler := tasks.NewAsynqCompletionScheduler()
	defer completionScheduler.Close()

	userService := &user.DefaultUserService{
		Repo:      userRepo,
		AuthCache: user.RedisCache{Client: utils.GetAuthCacheClient()},
		Codes:     user.RedisCache{Client: utils.GetCacheClient()},
	}
	chatService := &chat.DefaultChannelService{
		Repo:     chatRepo,
		Feed:     feed,
		Notifier: notificationService,
	}
	negotiationService := &negotiation.DefaultNegotiationService{
		Repo:      suggestionRepo,
		Chats:     chatRepo,
		Feed:      feed,
		Notifier:  notificationService,
		Scheduler: completionScheduler,
	}
	rosterService := &roster.DefaultRosterService{
		Classes:  classRepo,
		Listings: listingRepo,
	}
	listingService := &listing.DefaultListingService{Repo: listingRepo}
	reviewService := &review.DefaultReviewService{
		Reviews:     reviewRepo,
		Listings:    listingRepo,
		Suggestions: suggestionRepo,
	}

	// Background worker that flips confirmed bookings to completed.
	cron.InitCompletionWorker(suggestionRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:     userRepo,
		Users:        userService,
		Chats:        chatService,
		Negotiations: negotiationService,
		Roster:       rosterService,
		Listings:     listingService,
		Reviews:      reviewService,
		Storage:      storageService,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
