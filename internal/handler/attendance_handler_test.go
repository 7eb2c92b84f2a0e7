package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hris-attendance/internal/model"
	"hris-attendance/internal/timeutil"
)

type stubAttendanceRepo struct {
	byDate    map[string]*model.Attendance
	created   []*model.Attendance
	updated   []*model.Attendance
	history   []model.Attendance
	byDateErr error
}

func newStubRepo() *stubAttendanceRepo {
	return &stubAttendanceRepo{byDate: map[string]*model.Attendance{}}
}

func (s *stubAttendanceRepo) Create(att *model.Attendance) error {
	att.ID = uint(len(s.created) + 1)
	s.created = append(s.created, att)
	s.byDate[att.Date] = att
	return nil
}

func (s *stubAttendanceRepo) Update(att *model.Attendance) error {
	s.updated = append(s.updated, att)
	s.byDate[att.Date] = att
	return nil
}

func (s *stubAttendanceRepo) GetByDate(_ uint, date string) (*model.Attendance, error) {
	if s.byDateErr != nil {
		return nil, s.byDateErr
	}
	att, ok := s.byDate[date]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return att, nil
}

func (s *stubAttendanceRepo) GetHistory(uint, int) ([]model.Attendance, error) {
	return s.history, nil
}

func (s *stubAttendanceRepo) CountByStatus(string, string) (int64, error) { return 0, nil }

func (s *stubAttendanceRepo) CountByDate(string) (int64, error) { return 0, nil }

// attendanceApp wires the handler behind a stand-in for the auth middleware
// that injects the JWT claims the real one would set.
func attendanceApp(repo *stubAttendanceRepo) *fiber.App {
	h := NewAttendanceHandler(repo)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", float64(7))
		return c.Next()
	})
	app.Get("/attendance/today", h.GetToday)
	app.Post("/attendance/clock-in", h.ClockIn)
	app.Post("/attendance/clock-out", h.ClockOut)
	app.Get("/attendance/history", h.GetHistory)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestGetToday_NoRecordIs404(t *testing.T) {
	app := attendanceApp(newStubRepo())

	status, body := doRequest(t, app, http.MethodGet, "/attendance/today")

	assert.Equal(t, http.StatusNotFound, status)
	var apiErr model.APIError
	require.NoError(t, json.Unmarshal(body, &apiErr))
	assert.Equal(t, "not_found", apiErr.Error)
}

func TestClockIn_CreatesRecord(t *testing.T) {
	repo := newStubRepo()
	app := attendanceApp(repo)

	status, body := doRequest(t, app, http.MethodPost, "/attendance/clock-in")

	assert.Equal(t, http.StatusCreated, status)
	var resp model.ClockResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Contains(t, resp.Message, resp.Attendance.ClockIn)
	assert.Equal(t, time.Now().Format(timeutil.DateLayout), resp.Attendance.Date)
	assert.Nil(t, resp.Attendance.ClockOut)
	assert.Contains(t, []string{model.StatusPresent, model.StatusLate}, resp.Attendance.Status)
	require.Len(t, repo.created, 1)
}

func TestClockIn_TwiceIsConflict(t *testing.T) {
	repo := newStubRepo()
	app := attendanceApp(repo)

	status, _ := doRequest(t, app, http.MethodPost, "/attendance/clock-in")
	require.Equal(t, http.StatusCreated, status)

	status, body := doRequest(t, app, http.MethodPost, "/attendance/clock-in")
	assert.Equal(t, http.StatusConflict, status)
	var apiErr model.APIError
	require.NoError(t, json.Unmarshal(body, &apiErr))
	assert.Equal(t, "Already clocked in today", apiErr.Message)
	assert.Len(t, repo.created, 1)
}

func TestClockIn_LookupFailureIs500(t *testing.T) {
	repo := newStubRepo()
	repo.byDateErr = gorm.ErrInvalidTransaction
	app := attendanceApp(repo)

	status, body := doRequest(t, app, http.MethodPost, "/attendance/clock-in")

	assert.Equal(t, http.StatusInternalServerError, status)
	var apiErr model.APIError
	require.NoError(t, json.Unmarshal(body, &apiErr))
	assert.Equal(t, "internal", apiErr.Error)
	// A failed duplicate check must never reach the insert.
	assert.Empty(t, repo.created)
}

func TestClockOut_WithoutClockInIsBadRequest(t *testing.T) {
	app := attendanceApp(newStubRepo())

	status, body := doRequest(t, app, http.MethodPost, "/attendance/clock-out")

	assert.Equal(t, http.StatusBadRequest, status)
	var apiErr model.APIError
	require.NoError(t, json.Unmarshal(body, &apiErr))
	assert.Equal(t, "You have not clocked in today", apiErr.Message)
}

func TestClockOut_CompletesRecord(t *testing.T) {
	repo := newStubRepo()
	app := attendanceApp(repo)

	today := time.Now().Format(timeutil.DateLayout)
	repo.byDate[today] = &model.Attendance{
		ID: 1, UserID: 7, Date: today,
		ClockIn: "09:00:00", Status: model.StatusPresent,
	}

	status, body := doRequest(t, app, http.MethodPost, "/attendance/clock-out")

	assert.Equal(t, http.StatusOK, status)
	var resp model.ClockResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotNil(t, resp.Attendance.ClockOut)
	assert.NotEmpty(t, resp.Attendance.TotalHours)
	assert.Contains(t, resp.Message, resp.Attendance.TotalHours)
	require.Len(t, repo.updated, 1)

	// clockOut set implies clockIn and totalHours set
	assert.NotEmpty(t, resp.Attendance.ClockIn)
	assert.NotEmpty(t, resp.Attendance.TotalHours)
}

func TestClockOut_TwiceIsBadRequest(t *testing.T) {
	repo := newStubRepo()
	app := attendanceApp(repo)

	today := time.Now().Format(timeutil.DateLayout)
	out := "17:00:00"
	repo.byDate[today] = &model.Attendance{
		ID: 1, UserID: 7, Date: today,
		ClockIn: "09:00:00", ClockOut: &out,
		TotalHours: "8.00", Status: model.StatusPresent,
	}

	status, body := doRequest(t, app, http.MethodPost, "/attendance/clock-out")

	assert.Equal(t, http.StatusBadRequest, status)
	var apiErr model.APIError
	require.NoError(t, json.Unmarshal(body, &apiErr))
	assert.Equal(t, "Already clocked out today", apiErr.Message)
}

func TestClassifyClockIn(t *testing.T) {
	day := func(hour, minute int) time.Time {
		return time.Date(2024, 3, 1, hour, minute, 0, 0, time.Local)
	}

	assert.Equal(t, model.StatusPresent, classifyClockIn(day(8, 45), "09:00"))
	assert.Equal(t, model.StatusPresent, classifyClockIn(day(9, 0), "09:00"))
	assert.Equal(t, model.StatusLate, classifyClockIn(day(9, 3), "09:00"))
}

func TestClassifyClockOut(t *testing.T) {
	day := func(hour, minute int) time.Time {
		return time.Date(2024, 3, 1, hour, minute, 0, 0, time.Local)
	}

	assert.Equal(t, model.StatusEarlyLeave, classifyClockOut(model.StatusPresent, day(16, 30), "17:00"))
	assert.Equal(t, model.StatusPresent, classifyClockOut(model.StatusPresent, day(17, 30), "17:00"))
	// Late stays late even on an early departure.
	assert.Equal(t, model.StatusLate, classifyClockOut(model.StatusLate, day(16, 30), "17:00"))
}
