package main

import (
	"fmt"
	"log"

	"hris-attendance/config"
	"hris-attendance/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using system environment variables.")
	}

	config.ConnectDB()

	app := fiber.New()

	// Global middleware
	app.Use(cors.New())   // the web dashboard runs on another origin
	app.Use(logger.New()) // request log for debugging

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupAuthRoutes(app, config.DB)
	routes.SetupAttendanceRoutes(app, config.DB)
	routes.SetupDashboardRoutes(app, config.DB)

	port := config.GetEnv("PORT", "3000")
	fmt.Println("Server listening on port :" + port)
	log.Fatal(app.Listen(":" + port))
}
