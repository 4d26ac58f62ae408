package repository

import (
	"gorm.io/gorm"

	"pethealth/internal/domain"
)

// AutoMigrate creates or updates the schema for every persisted model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.VetApplication{},
		&domain.Pet{},
		&domain.HealthRecord{},
		&domain.Vaccination{},
		&domain.Medication{},
		&domain.Appointment{},
		&domain.Article{},
		&domain.NutritionPlan{},
		&domain.Report{},
		&notificationModel{},
	)
}
