// main.go
package main

import (
	"log"
	"os"
	"time"

	"mariofun/database"
	"mariofun/handlers"
	"mariofun/handlers/admin"
	"mariofun/middleware"
	"mariofun/services"
	"mariofun/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	// Pick the storage backend: PostgreSQL when configured, otherwise
	// the in-memory store (state is lost on restart).
	var store storage.Storage
	if os.Getenv("DATABASE_URL") != "" || os.Getenv("DB_HOST") != "" {
		database.InitDB()
		store = storage.NewDatabaseStorage(database.GetDB())
		defer database.CloseDB()
		log.Println("💾 Using PostgreSQL storage")
	} else {
		store = storage.NewMemStorage()
		log.Println("⚠️ Using in-memory storage: state is lost on restart")
	}

	hub := services.NewAnnouncementHub()
	youtube := services.NewYouTubeService()

	h := handlers.New(store, youtube, hub)
	adm := admin.New(store, hub)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	h.RegisterRoutes(app, adm)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("📺 YouTube API configured: %v", os.Getenv("YOUTUBE_API_KEY") != "")
	log.Printf("🔐 Admin access configured: %v", os.Getenv("ADMIN_PASSWORD_HASH") != "")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if os.Getenv("ADMIN_PASSWORD_HASH") != "" {
		if jwtSecret == "" {
			log.Fatal("FATAL: JWT_SECRET must be set when admin access is configured. Generate one with: openssl rand -base64 64")
		}
		if len(jwtSecret) < 32 {
			log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
		}
	}

	if os.Getenv("APP_ENV") == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
