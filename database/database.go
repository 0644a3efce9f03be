package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/captjay98/livestockai/config"
	"github.com/captjay98/livestockai/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
		&models.Farm{},
		&models.WorkerProfile{},
		&models.Geofence{},
		&models.AttendanceRecord{},
		&models.TaskAssignment{},
		&models.PayrollPeriod{},
		&models.Payment{},
		&models.EggRecord{},
		&models.FeedRecord{},
		&models.Region{},
		&models.District{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}

	// Early builds stored a plaintext pin on worker profiles; drop it if a
	// database migrated from that era still carries the column.
	if DB.Migrator().HasColumn(&models.WorkerProfile{}, "pin") {
		if err := DB.Migrator().DropColumn(&models.WorkerProfile{}, "pin"); err != nil {
			log.Printf("[migrate] warn: drop worker_profiles.pin failed: %v", err)
		} else {
			log.Printf("[migrate] dropped legacy column worker_profiles.pin")
		}
	}
}
