package database

import (
	"fmt"

	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Vehicle{},
		&models.Service{},
		&models.OperationalCost{},
		&models.CostPayment{},
		&models.BusinessHours{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
