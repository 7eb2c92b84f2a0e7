package routes

import (
	delivery "hris-attendance/internal/delivery/http"
	"hris-attendance/internal/repository"
	"hris-attendance/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	userRepo := repository.NewUserRepository(db)
	authUsecase := usecase.NewAuthUsecase(userRepo)
	hdl := delivery.NewAuthHandler(authUsecase)

	api := app.Group("/auth")
	api.Post("/register", hdl.Register)
	api.Post("/login", hdl.Login)
}
