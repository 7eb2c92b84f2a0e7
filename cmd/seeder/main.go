package main

import (
	"fmt"
	"log"

	"hris-attendance/config"
	"hris-attendance/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("Seeding database...")

	// Load .env manually since this is a separate script
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using system environment variables.")
	}

	config.ConnectDB()
	database.SeedAll(config.DB)

	fmt.Println("Seeding done.")
}
