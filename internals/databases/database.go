package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schoolpay_dashboard/internals/configs"
)

// ErrNotConfigured is returned when DB_HOST is empty; callers fall back to
// in-memory preference storage.
var ErrNotConfigured = errors.New("database not configured")

func ConnectDB() (*gorm.DB, error) {
	host := configs.GetEnv("DB_HOST")
	if host == "" {
		return nil, ErrNotConfigured
	}
	log.Println("[DB] connecting to PostgreSQL...")

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=schoolpay_dashboard",
		configs.GetEnv("DB_USER"),
		configs.GetEnv("DB_PASSWORD"),
		host,
		configs.GetEnv("DB_PORT", "5432"),
		configs.GetEnv("DB_NAME"),
		configs.GetEnv("DB_SSLMODE", "disable"),
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: configs.NewGormLogger()})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	log.Println("[DB] connected")
	return db, nil
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("[DB] pool tune err: %v", err)
		return
	}
	// one operator, a handful of key/value rows
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
