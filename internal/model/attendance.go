package model

import "time"

// Attendance statuses as stored and served by the backend.
const (
	StatusPresent    = "present"
	StatusLate       = "late"
	StatusAbsent     = "absent"
	StatusEarlyLeave = "early_leave"
)

// Attendance is one record per employee per calendar day. ClockOut stays
// null until the employee clocks out; when it is set, ClockIn and TotalHours
// are set too. Date is "2006-01-02", ClockIn/ClockOut are "15:04:05".
type Attendance struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	UserID     uint      `json:"-" gorm:"uniqueIndex:idx_user_date;not null"`
	Date       string    `json:"date" gorm:"uniqueIndex:idx_user_date;not null"`
	ClockIn    string    `json:"clockIn"`
	ClockOut   *string   `json:"clockOut"`
	TotalHours string    `json:"totalHours,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// ClockResponse is the body of POST /attendance/clock-in and
// POST /attendance/clock-out.
type ClockResponse struct {
	Message    string     `json:"message"`
	Attendance Attendance `json:"attendance"`
}

// APIError is the JSON body carried by non-2xx responses. Message, when
// present, is shown to the user verbatim.
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
