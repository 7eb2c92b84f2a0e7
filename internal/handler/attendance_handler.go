package handler

import (
	"errors"
	"fmt"
	"time"

	"hris-attendance/config"
	"hris-attendance/internal/model"
	"hris-attendance/internal/repository"
	"hris-attendance/internal/timeutil"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const historyLimit = 30

type AttendanceHandler struct {
	repo repository.AttendanceRepository

	// Workday boundaries ("15:04") used for status classification.
	workStart string
	workEnd   string
}

func NewAttendanceHandler(repo repository.AttendanceRepository) *AttendanceHandler {
	return &AttendanceHandler{
		repo:      repo,
		workStart: config.GetEnv("WORK_START", "09:00"),
		workEnd:   config.GetEnv("WORK_END", "17:00"),
	}
}

// GetToday returns today's record for the authenticated employee, or 404
// when there is none yet. The 404 is an expected answer for clients, not a
// failure.
func (h *AttendanceHandler) GetToday(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))
	today := time.Now().Format(timeutil.DateLayout)

	att, err := h.repo.GetByDate(userID, today)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": "No attendance record for today",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "Failed to load attendance record",
		})
	}

	return c.JSON(att)
}

func (h *AttendanceHandler) ClockIn(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))
	now := time.Now()
	today := now.Format(timeutil.DateLayout)

	existing, err := h.repo.GetByDate(userID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "Failed to load attendance record",
		})
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "conflict",
			"message": "Already clocked in today",
		})
	}

	att := model.Attendance{
		UserID:  userID,
		Date:    today,
		ClockIn: now.Format(timeutil.ClockLayout),
		Status:  classifyClockIn(now, h.workStart),
	}

	if err := h.repo.Create(&att); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "Failed to save attendance record",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(model.ClockResponse{
		Message:    fmt.Sprintf("Clocked in at %s", att.ClockIn),
		Attendance: att,
	})
}

func (h *AttendanceHandler) ClockOut(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))
	now := time.Now()
	today := now.Format(timeutil.DateLayout)

	att, err := h.repo.GetByDate(userID, today)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "You have not clocked in today",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "Failed to load attendance record",
		})
	}

	if att.ClockOut != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "Already clocked out today",
		})
	}

	clockIn, perr := timeutil.CombineDateClock(att.Date, att.ClockIn)
	if perr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "Corrupt attendance record",
		})
	}

	clockOut := now.Format(timeutil.ClockLayout)
	att.ClockOut = &clockOut
	att.TotalHours = fmt.Sprintf("%.2f", timeutil.HoursBetween(clockIn, now))
	att.Status = classifyClockOut(att.Status, now, h.workEnd)

	if err := h.repo.Update(att); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "Failed to save attendance record",
		})
	}

	return c.JSON(model.ClockResponse{
		Message:    fmt.Sprintf("Clocked out. Total hours: %s", att.TotalHours),
		Attendance: *att,
	})
}

func (h *AttendanceHandler) GetHistory(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	history, err := h.repo.GetHistory(userID, historyLimit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "Failed to load attendance history",
		})
	}

	return c.JSON(fiber.Map{"data": history})
}

// classifyClockIn marks the record late when the clock-in falls after the
// workday start on the same day.
func classifyClockIn(now time.Time, workStart string) string {
	start, err := timeutil.CombineDateClock(now.Format(timeutil.DateLayout), workStart)
	if err != nil {
		return model.StatusPresent
	}
	if now.After(start) {
		return model.StatusLate
	}
	return model.StatusPresent
}

// classifyClockOut downgrades to early_leave when leaving before the
// workday end, unless the record is already marked late.
func classifyClockOut(current string, now time.Time, workEnd string) string {
	if current == model.StatusLate {
		return current
	}
	end, err := timeutil.CombineDateClock(now.Format(timeutil.DateLayout), workEnd)
	if err != nil {
		return current
	}
	if now.Before(end) {
		return model.StatusEarlyLeave
	}
	return current
}
