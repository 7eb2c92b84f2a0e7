package routes

import (
	"hris-attendance/internal/handler"
	"hris-attendance/internal/middleware"
	"hris-attendance/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAttendanceRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewAttendanceRepository(db)
	hdl := handler.NewAttendanceHandler(repo)

	api := app.Group("/attendance", middleware.Auth)

	api.Get("/today", hdl.GetToday)
	api.Post("/clock-in", hdl.ClockIn)
	api.Post("/clock-out", hdl.ClockOut)
	api.Get("/history", hdl.GetHistory)
}
