package routes

import (
	"hris-attendance/internal/handler"
	"hris-attendance/internal/middleware"
	"hris-attendance/internal/model"
	"hris-attendance/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDashboardRoutes(app *fiber.App, db *gorm.DB) {
	userRepo := repository.NewUserRepository(db)
	attRepo := repository.NewAttendanceRepository(db)
	hdl := handler.NewDashboardHandler(userRepo, attRepo)

	api := app.Group("/admin", middleware.Auth, middleware.Role(model.RoleAdmin))

	api.Get("/dashboard", hdl.GetStats)
}
