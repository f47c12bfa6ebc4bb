package config

import (
	"time"

	"recommendations/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the Postgres connection and migrates the schema.
func InitDB(databaseURI string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURI), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.Recommendation{}); err != nil {
		return nil, err
	}

	return db, nil
}
