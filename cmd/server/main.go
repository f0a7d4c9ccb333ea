// @title           Infinite Flow Backend API
// @version         1.0.0
// @description     Backend API for the Infinite Flow fitness platform. Serves the admin CMS (classes, videos, recipes, lookup tables) and the consumer app (browse, profile, progress), with video intake through Mux direct uploads and asset status polling.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"infinite-flow-backend/docs"
	"infinite-flow-backend/internal/config"
	"infinite-flow-backend/internal/database"
	"infinite-flow-backend/internal/handlers"
	"infinite-flow-backend/internal/logger"
	"infinite-flow-backend/internal/middleware"
	"infinite-flow-backend/internal/mux"
	"infinite-flow-backend/internal/poller"
	"infinite-flow-backend/internal/services"
	"infinite-flow-backend/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("development").Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Environment)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Point the swagger UI at the deployed host.
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		log.Fatalf("Migration failed: %v", err)
	}
	migrator.Close()
	log.Info("Migrations completed successfully")

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}
	if err := storageClient.EnsureBucket(); err != nil {
		log.Warnf("Failed to ensure storage bucket: %v", err)
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	muxClient := mux.NewClient(cfg.MuxBaseURL, cfg.MuxTokenID, cfg.MuxTokenSecret)

	// Direct uploads are opened from the admin frontend, so the upload URL's
	// CORS origin is the first allowed origin.
	uploadOrigin := "*"
	if len(cfg.CORSAllowedOrigins) > 0 {
		uploadOrigin = cfg.CORSAllowedOrigins[0]
	}

	assetPoller := poller.New(cfg.PollInterval, cfg.PollMaxAttempts, log)
	videoService := services.NewVideoService(muxClient, dbClient, realtimeClient, assetPoller, uploadOrigin, log)
	defer videoService.Close()

	classService := services.NewClassService(dbClient, storageClient, services.PolicyContinue, log)

	videosHandler := handlers.NewVideosHandler(videoService, dbClient)
	classesHandler := handlers.NewClassesHandler(classService, dbClient)
	allergiesHandler := handlers.NewAllergiesHandler(dbClient)
	preferencesHandler := handlers.NewDietaryPreferencesHandler(dbClient)
	recipesHandler := handlers.NewRecipesHandler(dbClient, storageClient)
	instructorsHandler := handlers.NewInstructorsHandler(dbClient, storageClient)
	equipmentHandler := handlers.NewEquipmentHandler(dbClient)
	subscriptionsHandler := handlers.NewSubscriptionsHandler(dbClient)
	profilesHandler := handlers.NewProfilesHandler(dbClient)
	browseHandler := handlers.NewBrowseHandler(dbClient)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Consumer catalog
	api.GET("/classes", browseHandler.ListClasses)
	api.GET("/classes/:class_id", browseHandler.GetClass)
	api.GET("/recipes", browseHandler.ListRecipes)
	api.GET("/allergies", browseHandler.ListAllergies)
	api.GET("/dietary-preferences", browseHandler.ListDietaryPreferences)
	api.GET("/instructors", browseHandler.ListInstructors)
	api.GET("/subscription-plans", browseHandler.ListSubscriptionPlans)

	// Consumer profile and progress
	api.GET("/me/profile", profilesHandler.GetProfile)
	api.PATCH("/me/profile", profilesHandler.UpdateProfile)
	api.POST("/me/progress", profilesHandler.RecordProgress)
	api.GET("/me/progress", profilesHandler.ListProgress)

	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin())

	// Video library
	admin.POST("/videos/uploads", videosHandler.CreateUpload)
	admin.POST("/videos", videosHandler.CreateFromURL)
	admin.GET("/videos", videosHandler.ListVideos)
	admin.GET("/videos/:video_id", videosHandler.GetVideo)
	admin.GET("/uploads/:upload_id", videosHandler.GetVideoByUpload)
	admin.PATCH("/videos/:video_id", videosHandler.UpdateVideo)
	admin.DELETE("/videos/:video_id", videosHandler.DeleteVideo)

	// Classes
	admin.POST("/classes", classesHandler.CreateClass)
	admin.GET("/classes", classesHandler.ListClasses)
	admin.GET("/classes/:class_id", classesHandler.GetClass)
	admin.PATCH("/classes/:class_id", classesHandler.UpdateClass)
	admin.DELETE("/classes/:class_id", classesHandler.DeleteClass)
	admin.POST("/classes/:class_id/videos", classesHandler.AttachVideo)
	admin.DELETE("/classes/:class_id/videos/:video_id", classesHandler.DetachVideo)
	admin.PUT("/classes/:class_id/videos/order", classesHandler.ReorderVideos)

	// Orderable lookup tables
	admin.POST("/allergies", allergiesHandler.Create)
	admin.GET("/allergies", allergiesHandler.List)
	admin.PATCH("/allergies/:id", allergiesHandler.Update)
	admin.DELETE("/allergies/:id", allergiesHandler.Delete)
	admin.PUT("/allergies/order", allergiesHandler.Reorder)

	admin.POST("/dietary-preferences", preferencesHandler.Create)
	admin.GET("/dietary-preferences", preferencesHandler.List)
	admin.PATCH("/dietary-preferences/:id", preferencesHandler.Update)
	admin.DELETE("/dietary-preferences/:id", preferencesHandler.Delete)
	admin.PUT("/dietary-preferences/order", preferencesHandler.Reorder)

	// Recipes
	admin.POST("/recipes", recipesHandler.CreateRecipe)
	admin.GET("/recipes", recipesHandler.ListRecipes)
	admin.GET("/recipes/:recipe_id", recipesHandler.GetRecipe)
	admin.PATCH("/recipes/:recipe_id", recipesHandler.UpdateRecipe)
	admin.DELETE("/recipes/:recipe_id", recipesHandler.DeleteRecipe)
	admin.POST("/recipes/:recipe_id/image", recipesHandler.UploadImage)

	// Instructors, equipment, subscription plans
	admin.POST("/instructors", instructorsHandler.CreateInstructor)
	admin.GET("/instructors", instructorsHandler.ListInstructors)
	admin.POST("/instructors/:instructor_id/photo", instructorsHandler.UploadPhoto)
	admin.DELETE("/instructors/:instructor_id", instructorsHandler.DeleteInstructor)

	admin.POST("/equipment", equipmentHandler.CreateEquipment)
	admin.GET("/equipment", equipmentHandler.ListEquipment)
	admin.DELETE("/equipment/:equipment_id", equipmentHandler.DeleteEquipment)

	admin.POST("/subscription-plans", subscriptionsHandler.CreatePlan)
	admin.GET("/subscription-plans", subscriptionsHandler.ListPlans)
	admin.DELETE("/subscription-plans/:plan_id", subscriptionsHandler.DeletePlan)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server shutdown: %v", err)
	}
}
