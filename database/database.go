package database

import (
	"fmt"
	"log"

	"metaads-dashboard/config"
	"metaads-dashboard/internal/domain/billing"
	"metaads-dashboard/internal/domain/plans"
	"metaads-dashboard/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	db, err := gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		&users.User{},
		&users.LoginToken{},
		&plans.Plan{},
		&billing.Payment{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
