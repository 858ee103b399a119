package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v57/github"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hackmate/hackmate/internal/handlers"
	"github.com/hackmate/hackmate/internal/middleware"
	"github.com/hackmate/hackmate/internal/repositories"
	"github.com/hackmate/hackmate/internal/services"
	"github.com/hackmate/hackmate/internal/workers"
	"github.com/hackmate/hackmate/pkg/cache"
	"github.com/hackmate/hackmate/pkg/config"
	"github.com/hackmate/hackmate/pkg/database"
	"github.com/hackmate/hackmate/pkg/logger"
	"github.com/hackmate/hackmate/pkg/metrics"
)

func main() {
	logger.Init()

	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	gin.SetMode(config.AppConfig.Server.Mode)

	// Initialize database
	if err := database.Init(); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	metricsManager := metrics.New()

	// Redis cache for GitHub enrichment records; nil cache disables it
	enrichmentCache, err := cache.New(
		config.AppConfig.Redis.URL,
		time.Duration(config.AppConfig.Redis.EnrichmentTTL)*time.Minute,
	)
	if err != nil {
		logger.Warnf("Redis unavailable, enrichment caching disabled: %v", err)
	}
	if enrichmentCache != nil {
		defer enrichmentCache.Close()
	}

	// Repositories
	userRepo := repositories.NewUserRepository(database.DB)
	hackathonRepo := repositories.NewHackathonRepository(database.DB)
	favoriteRepo := repositories.NewFavoriteRepository(database.DB)
	applicationRepo := repositories.NewApplicationRepository(database.DB)
	applicationFormRepo := repositories.NewApplicationFormRepository(database.DB)
	teamRepo := repositories.NewTeamRepository(database.DB)
	membershipRepo := repositories.NewTeamMembershipRepository(database.DB)
	invitationRepo := repositories.NewTeamInvitationRepository(database.DB)
	messageRepo := repositories.NewTeamMessageRepository(database.DB)

	// Services
	authService := services.NewAuthService(userRepo, config.AppConfig.JWT.Secret, config.AppConfig.JWT.ExpiryHours)
	oauthService := services.NewGitHubOAuthService(userRepo, authService)
	userService := services.NewUserService(userRepo)
	hackathonService := services.NewHackathonService(hackathonRepo, favoriteRepo)
	applicationService := services.NewApplicationService(applicationRepo, hackathonRepo, applicationFormRepo)
	teamService := services.NewTeamService(teamRepo, membershipRepo, messageRepo, hackathonRepo, userRepo)
	invitationService := services.NewTeamInvitationService(invitationRepo, teamRepo, membershipRepo, messageRepo, userRepo)
	messageService := services.NewTeamMessageService(messageRepo, membershipRepo, teamRepo)
	exportService := services.NewExportService(applicationRepo, hackathonRepo, userRepo)

	githubClient := github.NewClient(nil)
	enrichmentService := services.NewGitHubEnrichmentService(
		githubClient,
		enrichmentCache,
		metricsManager,
		time.Duration(config.AppConfig.GitHub.APITimeout)*time.Second,
	)
	matchingService := services.NewMatchingService(userRepo, applicationRepo, enrichmentService.Lookup, nil, metricsManager)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, oauthService)
	userHandler := handlers.NewUserHandler(userService)
	hackathonHandler := handlers.NewHackathonHandler(hackathonService, userService, exportService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	teamHandler := handlers.NewTeamHandler(teamService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	messageHandler := handlers.NewMessageHandler(messageService)
	matchHandler := handlers.NewMatchHandler(matchingService)
	healthHandler := handlers.NewHealthHandler(database.DB)

	// Workers
	workerManager := workers.NewWorkerManager()
	workerManager.Add(workers.NewExpiryWorker("expiry-1", invitationService, 10*time.Minute))
	workerManager.Add(workers.NewStatsWorker("stats-1", userRepo, applicationRepo, hackathonRepo, time.Hour))
	workerManager.StartAll()
	defer workerManager.StopAll()

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics(metricsManager))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.CORS.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	setupRoutes(router, authHandler, userHandler, hackathonHandler, applicationHandler,
		teamHandler, invitationHandler, messageHandler, matchHandler, healthHandler)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}

	logger.Info("Server stopped")
}

func setupRoutes(router *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	hackathonHandler *handlers.HackathonHandler,
	applicationHandler *handlers.ApplicationHandler,
	teamHandler *handlers.TeamHandler,
	invitationHandler *handlers.InvitationHandler,
	messageHandler *handlers.MessageHandler,
	matchHandler *handlers.MatchHandler,
	healthHandler *handlers.HealthHandler,
) {
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/github", authHandler.GitHubLogin)
		auth.GET("/github/callback", authHandler.GitHubCallback)
	}

	api.GET("/hackathons", hackathonHandler.ListHackathons)
	api.GET("/hackathons/:id", hackathonHandler.GetHackathon)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthRequired())
	{
		authed.GET("/me", userHandler.Me)
		authed.PUT("/me", userHandler.UpdateProfile)
		authed.GET("/users/:id", userHandler.GetUser)

		authed.POST("/hackathons", hackathonHandler.CreateHackathon)
		authed.PUT("/hackathons/:id", hackathonHandler.UpdateHackathon)
		authed.POST("/hackathons/:id/publish", hackathonHandler.PublishHackathon)
		authed.POST("/hackathons/:id/unpublish", hackathonHandler.UnpublishHackathon)

		authed.POST("/hackathons/:id/favorite", hackathonHandler.AddFavorite)
		authed.DELETE("/hackathons/:id/favorite", hackathonHandler.RemoveFavorite)
		authed.GET("/favorites", hackathonHandler.ListFavorites)

		authed.POST("/hackathons/:id/apply", applicationHandler.Apply)
		authed.GET("/hackathons/:id/applications", applicationHandler.ListForHackathon)
		authed.GET("/hackathons/:id/applications/stats", applicationHandler.Stats)
		authed.GET("/hackathons/:id/applications/export", hackathonHandler.ExportApplications)
		authed.GET("/hackathons/:id/form", applicationHandler.GetForm)
		authed.PUT("/hackathons/:id/form", applicationHandler.UpsertForm)
		authed.GET("/applications", applicationHandler.MyApplications)
		authed.GET("/applications/:id", applicationHandler.GetApplication)
		authed.GET("/applications/:id/responses", applicationHandler.GetResponses)
		authed.POST("/applications/:id/responses", applicationHandler.SubmitResponses)
		authed.PUT("/applications/:id/status", applicationHandler.ChangeStatus)

		authed.GET("/hackathons/:id/matches", matchHandler.FindMatches)

		authed.POST("/teams", teamHandler.CreateTeam)
		authed.GET("/teams", teamHandler.ListTeams)
		authed.GET("/teams/mine", teamHandler.MyTeams)
		authed.GET("/teams/:id", teamHandler.GetTeam)
		authed.PUT("/teams/:id", teamHandler.UpdateTeam)
		authed.DELETE("/teams/:id", teamHandler.DeleteTeam)

		authed.POST("/teams/:id/join", teamHandler.RequestToJoin)
		authed.GET("/teams/:id/requests", teamHandler.PendingRequests)
		authed.POST("/teams/:id/requests/:user_id/approve", teamHandler.ApproveJoinRequest)
		authed.POST("/teams/:id/requests/:user_id/reject", teamHandler.RejectJoinRequest)
		authed.DELETE("/teams/:id/members/:user_id", teamHandler.RemoveMember)
		authed.POST("/teams/:id/leave", teamHandler.LeaveTeam)

		authed.POST("/teams/:id/invitations", invitationHandler.Invite)
		authed.GET("/invitations/sent", invitationHandler.Sent)
		authed.GET("/invitations/received", invitationHandler.Received)
		authed.GET("/invitations/proposed", invitationHandler.Proposed)
		authed.POST("/invitations/:id/approve", invitationHandler.Approve)
		authed.POST("/invitations/:id/reject", invitationHandler.Reject)
		authed.POST("/invitations/:id/accept", invitationHandler.Accept)
		authed.POST("/invitations/:id/decline", invitationHandler.Decline)

		authed.GET("/teams/:id/messages", messageHandler.List)
		authed.POST("/teams/:id/messages", messageHandler.Post)
		authed.PUT("/teams/:id/messages/:message_id", messageHandler.Edit)
		authed.DELETE("/teams/:id/messages/:message_id", messageHandler.Delete)
	}
}
