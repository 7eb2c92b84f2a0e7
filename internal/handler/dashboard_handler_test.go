package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hris-attendance/internal/model"
)

type stubUserRepo struct {
	active int64
}

func (s *stubUserRepo) Create(*model.User) error { return nil }

func (s *stubUserRepo) GetByEmail(string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) GetByID(uint) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(uint, time.Time) error { return nil }

func (s *stubUserRepo) CountActive() (int64, error) { return s.active, nil }

// stubStatsRepo layers fixed per-status counts over the base stub.
type stubStatsRepo struct {
	*stubAttendanceRepo
	byStatus map[string]int64
}

func (s *stubStatsRepo) CountByStatus(_ string, status string) (int64, error) {
	return s.byStatus[status], nil
}

func (s *stubStatsRepo) CountByDate(string) (int64, error) {
	var total int64
	for _, n := range s.byStatus {
		total += n
	}
	return total, nil
}

type dashboardStats struct {
	TotalEmployees int64 `json:"totalEmployees"`
	PresentToday   int64 `json:"presentToday"`
	LateToday      int64 `json:"lateToday"`
	AbsentToday    int64 `json:"absentToday"`
}

func dashboardApp(users *stubUserRepo, att *stubStatsRepo) *fiber.App {
	h := NewDashboardHandler(users, att)

	app := fiber.New()
	app.Get("/admin/dashboard", h.GetStats)
	return app
}

func TestGetStats_Headcounts(t *testing.T) {
	app := dashboardApp(
		&stubUserRepo{active: 10},
		&stubStatsRepo{
			stubAttendanceRepo: newStubRepo(),
			byStatus: map[string]int64{
				model.StatusPresent: 5,
				model.StatusLate:    2,
			},
		},
	)

	status, body := doRequest(t, app, http.MethodGet, "/admin/dashboard")

	assert.Equal(t, http.StatusOK, status)
	var stats dashboardStats
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, int64(10), stats.TotalEmployees)
	assert.Equal(t, int64(5), stats.PresentToday)
	assert.Equal(t, int64(2), stats.LateToday)
	assert.Equal(t, int64(3), stats.AbsentToday)
}

func TestGetStats_EarlyLeaveStillAttended(t *testing.T) {
	app := dashboardApp(
		&stubUserRepo{active: 10},
		&stubStatsRepo{
			stubAttendanceRepo: newStubRepo(),
			byStatus: map[string]int64{
				model.StatusPresent:    5,
				model.StatusLate:       2,
				model.StatusEarlyLeave: 1,
			},
		},
	)

	status, body := doRequest(t, app, http.MethodGet, "/admin/dashboard")

	assert.Equal(t, http.StatusOK, status)
	var stats dashboardStats
	require.NoError(t, json.Unmarshal(body, &stats))
	// 8 employees have a record today, so 2 are absent, not 3.
	assert.Equal(t, int64(2), stats.AbsentToday)
}
