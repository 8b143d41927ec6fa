package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/salesapp/internal/config"
	"github.com/example/salesapp/internal/database"
	"github.com/example/salesapp/internal/routes"
	"github.com/example/salesapp/internal/services"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	app := fiber.New(fiber.Config{
		AppName: "Sales Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	otpService := routes.Register(app, db, cfg)

	go sweepExpiredOtps(otpService)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}

// sweepExpiredOtps periodically removes used and expired one-time codes.
// Purely storage hygiene; a missed sweep never affects correctness.
func sweepExpiredOtps(otp *services.OtpService) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		removed, err := otp.SweepExpired(context.Background())
		if err != nil {
			log.Printf("[Otp] sweep failed: %v", err)
			continue
		}
		if removed > 0 {
			log.Printf("[Otp] swept %d expired or used codes", removed)
		}
	}
}
