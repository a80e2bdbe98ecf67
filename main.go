package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"USERS_COLLECTION",
		"GOALS_COLLECTION",
		"SESSIONS_COLLECTION",
		"ACHIEVEMENTS_COLLECTION",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"SESSION_DURATION",
		"PORT",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()

	initRedisServices()
}

// initRedisServices wires the Redis-backed caches and the token blacklist.
// Redis being down degrades features (no token revocation, no cached
// sessions or dashboards) but never blocks startup.
func initRedisServices() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set; token blacklist and caches disabled")
		return
	}

	if blacklist, err := services.NewTokenBlacklist(redisURL); err != nil {
		log.Printf("Warning: token blacklist unavailable: %v", err)
	} else {
		services.TokenBlacklist = blacklist
	}

	if cache, err := services.NewSessionCache(redisURL); err != nil {
		log.Printf("Warning: session cache unavailable: %v", err)
	} else {
		services.GlobalSessionCache = cache
	}

	if cache, err := services.NewDashboardCache(redisURL); err != nil {
		log.Printf("Warning: dashboard cache unavailable: %v", err)
	} else {
		services.GlobalDashboardCache = cache
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	goalsRepo := repository.GetGoalsRepo(utils.MongoClient)
	achievementsRepo := repository.GetAchievementsRepo(utils.MongoClient)

	goalsService := &usecase.GoalsService{GoalsRepo: goalsRepo}
	achievementService := usecase.NewAchievementService(achievementsRepo)
	coachService := services.NewCoachService(config.LoadCoachConfig())

	goalHandler := handler.NewGoalHandler(goalsService)
	checkinHandler := handler.NewCheckinHandler(goalsService, achievementService, coachService)
	milestoneHandler := handler.NewMilestoneHandler(goalsService)
	dashboardHandler := handler.NewDashboardHandler(goalsService)
	coachHandler := handler.NewCoachHandler(goalsService, coachService)
	achievementHandler := handler.NewAchievementHandler(achievementService)

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.SessionMiddleware(sessionRepo))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"cpu_usage": utils.GetCPUUsage(),
		})
	})

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", handler.RegistrationHandler)
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, sessionRepo)
			})
			auth.POST("/refresh", handler.RefreshTokenHandler)
			auth.POST("/recovery", func(c *gin.Context) {
				handler.UseRecoveryCodeHandler(c, sessionRepo)
			})
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", handler.GetUserProfileHandler)
			user.POST("/change-email", handler.ChangeEmailHandler)
			user.POST("/change-password", handler.ChangePasswordHandler)
			user.POST("/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, sessionRepo)
			})
			user.DELETE("/delete", func(c *gin.Context) {
				handler.DeleteUserHandler(c, sessionRepo)
			})

			twofa := user.Group("/2fa")
			{
				twofa.POST("/setup", handler.Generate2FASecretHandler)
				twofa.POST("/enable", handler.Enable2FAHandler)
				twofa.POST("/disable", handler.Disable2FAHandler)
			}
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessions(c, sessionRepo)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessions(c, sessionRepo)
			})
		}

		goals := protected.Group("/goals")
		{
			goals.GET("/", goalHandler.GetUserGoals)
			goals.POST("/", goalHandler.CreateGoal)
			goals.GET("/:id", goalHandler.GetGoal)
			goals.PUT("/:id", goalHandler.UpdateGoal)
			goals.DELETE("/:id", goalHandler.DeleteGoal)

			goals.GET("/:id/checkins", checkinHandler.GetCheckins)
			goals.POST("/:id/checkins", checkinHandler.AddCheckin)
			goals.DELETE("/:id/checkins/:checkinId", checkinHandler.DeleteCheckin)

			goals.POST("/:id/milestones", milestoneHandler.AddMilestone)
			goals.POST("/:id/milestones/:milestoneId/toggle", milestoneHandler.ToggleMilestone)
			goals.DELETE("/:id/milestones/:milestoneId", milestoneHandler.DeleteMilestone)

			goals.POST("/:id/encourage", coachHandler.Encourage)
		}

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/top-goals", dashboardHandler.GetTopGoals)
			dashboard.GET("/daily-focus", coachHandler.DailyFocus)
		}

		protected.GET("/achievements", achievementHandler.GetAchievements)
		protected.GET("/stats", func(c *gin.Context) {
			handler.GetUserStatsHandler(c, goalsService, achievementService, sessionRepo)
		})
	}

	return router
}

func main() {
	dbConfig := config.LoadDatabaseConfig()
	if err := repository.SetupGoalIndexes(utils.MongoClient.Database(dbConfig.DatabaseName)); err != nil {
		log.Printf("Warning: failed to create goal indexes: %v", err)
	}

	router := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	sig := <-signalChan
	log.Printf("Caught signal %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := utils.MongoClient.Disconnect(ctx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
	log.Println("Server shutdown complete")
}
