package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"cogniverse/backend/config"
	"cogniverse/backend/middleware"
	"cogniverse/backend/pdf"
	"cogniverse/backend/repository"
	"cogniverse/backend/routes"
	"cogniverse/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Connect to the database and ensure indexes
	db, err := repository.Connect(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos := routes.Repositories{
		Users:   repository.NewUserMongoRepository(ctx, logger, db),
		Courses: repository.NewCourseMongoRepository(ctx, logger, db),
		Jobs:    repository.NewJobMongoRepository(ctx, logger, db),
		Resumes: repository.NewResumeMongoRepository(ctx, logger, db),
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, repos, pdf.NewChromeRenderer(cfg.ChromePath), cfg, logger)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
