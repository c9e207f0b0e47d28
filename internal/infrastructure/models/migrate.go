package models

import "gorm.io/gorm"

// AutoMigrate creates or updates the users and payments tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Payment{})
}
