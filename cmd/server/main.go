package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/skycast/backend/internal/delivery/http"
	"github.com/skycast/backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg := loadConfig()
	if cfg.OpenWeatherAPIKey == "" {
		log.Println("Warning: OPENWEATHER_API_KEY is not set, upstream calls will be rejected")
	}

	// Dependency Injection: Services
	owCfg := service.OpenWeatherConfig{
		APIKey:  cfg.OpenWeatherAPIKey,
		BaseURL: cfg.OpenWeatherBaseURL,
		Timeout: cfg.HTTPTimeout,
	}
	weatherSvc := service.NewWeatherService(owCfg)
	airQualitySvc := service.NewAirQualityService(owCfg)
	searchSvc := service.NewSearchService(weatherSvc, airQualitySvc)
	sessions := service.NewSessionRegistry(searchSvc)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "SkyCast API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.HTTPTimeout*2 + 5*time.Second,
		ErrorHandler: http.ErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + http.ClientIDHeader,
	}))

	// Routes
	http.SetupRoutes(app, http.NewHandler(weatherSvc, airQualitySvc, searchSvc, sessions))

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s (%s)", cfg.Port, cfg.Env)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}
