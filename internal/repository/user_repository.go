package repository

import (
	"time"

	"hris-attendance/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	GetByEmail(email string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
	UpdateLastLogin(id uint, when time.Time) error
	CountActive() (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateLastLogin(id uint, when time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("last_login", when).Error
}

func (r *userRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("status = ?", "active").Count(&count).Error
	return count, err
}
