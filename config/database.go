package config

import (
	"fmt"

	"hris-attendance/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	// Format: user:password@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local
	dsn := GetEnv("DB_DSN", "root:@tcp(127.0.0.1:3306)/hris_attendance?charset=utf8mb4&parseTime=True&loc=Local")

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}

	fmt.Println("Database connected!")

	// Auto migration based on the structs in internal/model
	db.AutoMigrate(&model.User{})
	db.AutoMigrate(&model.Attendance{})

	DB = db
}
