package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"skillcapital/config"
	"skillcapital/middleware"
	"skillcapital/routes"
	"skillcapital/utils"
)

func main() {
	logger := log.New(os.Stdout, "MAIN: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize error reporting
	if dsn := config.AppConfig.SentryDSN; dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         dsn,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Printf("Sentry initialization failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Build external collaborators
	cfg := config.AppConfig
	generator, err := utils.NewGeminiAssistant(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		logger.Fatalf("Failed to initialize assistant client: %v", err)
	}

	deps := routes.Dependencies{
		Directory: utils.NewSupabaseDirectory(cfg.Supabase.URL, cfg.Supabase.ServiceKey),
		Store:     utils.NewSupabaseStorage(cfg.Supabase.URL, cfg.Supabase.ServiceKey, cfg.Supabase.Bucket),
		Mail:      utils.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.FromEmail),
		Sender:    utils.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.SMSFrom, cfg.Twilio.WhatsappFrom),
		Meetings:  utils.NewZoomClient(cfg.Zoom.AccountID, cfg.Zoom.ClientID, cfg.Zoom.ClientSecret),
		Telephony: utils.NewTeleCMIClient(cfg.TeleCMI.AppID, cfg.TeleCMI.Secret),
		Generator: generator,
	}

	// Create Fiber app
	app := fiber.New()

	// Add CORS middleware
	app.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(app, config.DB, deps)

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "running",
			"version": "1.0.0",
		})
	})

	logger.Printf("Starting server on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}
