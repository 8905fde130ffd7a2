package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"wayfarer/cmd/fx/auth_fx"
	"wayfarer/cmd/fx/catalog_fx"
	"wayfarer/cmd/fx/controllers_fx"
	"wayfarer/cmd/fx/db_fx"
	"wayfarer/cmd/fx/engine_fx"
	"wayfarer/cmd/fx/feedback_fx"
	"wayfarer/cmd/fx/itinerary_fx"
	"wayfarer/cmd/fx/semantic_fx"
	"wayfarer/internal/api/controllers"
	"wayfarer/internal/infra"
	"wayfarer/pkg/middleware"
	"wayfarer/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	app := fx.New(
		db_fx.Module,
		auth_fx.Module,
		engine_fx.Module,
		catalog_fx.Module,
		itinerary_fx.Module,
		feedback_fx.Module,
		semantic_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *utils.Config, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server on :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			infra.ClosePostgresql(db)
			return nil
		},
	})
}

func ProvideRouter(
	cfg *utils.Config,
	authController *controllers.AuthController,
	itineraryController *controllers.ItineraryController,
	feedbackController *controllers.FeedbackController,
	catalogController *controllers.CatalogController,
	semanticController *controllers.SemanticController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	limiter := middleware.NewSlidingWindowLimiter(cfg.RateLimitPerMin, time.Minute)
	r.Use(middleware.RateLimitMiddleware(limiter))

	RegisterRoutes(r, authController, itineraryController, feedbackController, catalogController, semanticController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	authController *controllers.AuthController,
	itineraryController *controllers.ItineraryController,
	feedbackController *controllers.FeedbackController,
	catalogController *controllers.CatalogController,
	semanticController *controllers.SemanticController) {

	r.GET("/healthz", catalogController.Healthz)

	v1 := r.Group("/v1")
	v1.POST("/auth/login", authController.Login)
	v1.POST("/itinerary", itineraryController.BuildItinerary)
	v1.POST("/itinerary/feedback", feedbackController.ApplyFeedback)
	v1.POST("/semantic/rerank", semanticController.Rerank)
	v1.GET("/catalog/pois", catalogController.ListPois)

	admin := v1.Group("")
	admin.Use(middleware.JWTAuthMiddleware())
	admin.Use(middleware.RoleMiddleware("admin"))
	admin.POST("/catalog/pois", catalogController.CreatePoi)
	admin.PUT("/catalog/pois/:poiId", catalogController.UpdatePoi)
	admin.DELETE("/catalog/pois/:poiId", catalogController.DeletePoi)
	admin.POST("/semantic/index", semanticController.IndexPoi)
	admin.POST("/auth/api-keys", authController.IssueAPIKey)
}
