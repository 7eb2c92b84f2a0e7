package database

import (
	"log"

	"hris-attendance/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAll creates a first admin account and a demo employee so a fresh
// install can be logged into right away. Existing rows are left alone.
func SeedAll(db *gorm.DB) {
	seedUser(db, model.User{
		FullName: "System Administrator",
		Email:    "admin@company.com",
		Role:     model.RoleAdmin,
		Status:   "active",
	}, "admin123")

	seedUser(db, model.User{
		FullName: "Ayesha Rashid Khan",
		Email:    "ayesha@company.com",
		Role:     model.RoleEmployee,
		Status:   "active",
	}, "employee123")
}

func seedUser(db *gorm.DB, user model.User, password string) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seeder: could not hash password for %s: %v", user.Email, err)
		return
	}
	user.Password = string(hashedPassword)

	if err := db.FirstOrCreate(&user, model.User{Email: user.Email}).Error; err != nil {
		log.Printf("seeder: could not create %s: %v", user.Email, err)
		return
	}
	log.Printf("seeder: user %s ready", user.Email)
}
