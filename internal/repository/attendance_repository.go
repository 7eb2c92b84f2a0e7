package repository

import (
	"hris-attendance/internal/model"

	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(att *model.Attendance) error
	Update(att *model.Attendance) error
	GetByDate(userID uint, date string) (*model.Attendance, error)
	GetHistory(userID uint, limit int) ([]model.Attendance, error)
	CountByStatus(date string, status string) (int64, error)
	CountByDate(date string) (int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) Create(att *model.Attendance) error {
	return r.db.Create(att).Error
}

func (r *attendanceRepository) Update(att *model.Attendance) error {
	return r.db.Save(att).Error
}

// GetByDate returns the single record for one employee on one calendar day,
// or gorm.ErrRecordNotFound.
func (r *attendanceRepository) GetByDate(userID uint, date string) (*model.Attendance, error) {
	var att model.Attendance
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&att).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepository) GetHistory(userID uint, limit int) ([]model.Attendance, error) {
	var history []model.Attendance
	err := r.db.Where("user_id = ?", userID).Order("date desc").Limit(limit).Find(&history).Error
	return history, err
}

func (r *attendanceRepository) CountByStatus(date string, status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Attendance{}).Where("date = ? AND status = ?", date, status).Count(&count).Error
	return count, err
}

// CountByDate counts every employee with any record on the given day,
// regardless of status.
func (r *attendanceRepository) CountByDate(date string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Attendance{}).Where("date = ?", date).Count(&count).Error
	return count, err
}
