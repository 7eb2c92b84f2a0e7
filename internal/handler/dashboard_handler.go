package handler

import (
	"time"

	"hris-attendance/internal/model"
	"hris-attendance/internal/repository"
	"hris-attendance/internal/timeutil"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	userRepo repository.UserRepository
	attRepo  repository.AttendanceRepository
}

func NewDashboardHandler(userRepo repository.UserRepository, attRepo repository.AttendanceRepository) *DashboardHandler {
	return &DashboardHandler{userRepo: userRepo, attRepo: attRepo}
}

// GetStats serves the admin dashboard headcount summary for today.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	today := time.Now().Format(timeutil.DateLayout)

	total, err := h.userRepo.CountActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "Failed to load dashboard stats",
		})
	}

	present, err := h.attRepo.CountByStatus(today, model.StatusPresent)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "Failed to load dashboard stats",
		})
	}

	late, err := h.attRepo.CountByStatus(today, model.StatusLate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "Failed to load dashboard stats",
		})
	}

	// Anyone with a record today attended, whatever its status ended up as.
	attended, err := h.attRepo.CountByDate(today)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "Failed to load dashboard stats",
		})
	}

	absent := total - attended
	if absent < 0 {
		absent = 0
	}

	return c.JSON(fiber.Map{
		"totalEmployees": total,
		"presentToday":   present,
		"lateToday":      late,
		"absentToday":    absent,
	})
}
