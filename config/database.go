package config

import (
	"fmt"
	"os"
	"strings"

	"rentalsite/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// databaseURL ưu tiên DATABASE_URL, sau đó <ENV>_DB_* (dev, qc, prod), cuối cùng DB_*
func databaseURL(env string) string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	prefix := ""
	switch env {
	case "dev", "qc", "prod":
		prefix = strings.ToUpper(env) + "_"
	}
	get := func(name string) string {
		if v := os.Getenv(prefix + name); v != "" {
			return v
		}
		return os.Getenv(name)
	}

	host := get("DB_HOST")
	if host == "" {
		return ""
	}
	sslmode := get("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "require"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		host, get("DB_USER"), get("DB_PASSWORD"), get("DB_NAME"), get("DB_PORT"), sslmode)
}

// ConnectDB mở kết nối Postgres và migrate bảng rooms, settings
func ConnectDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database is not configured: set DATABASE_URL or DB_HOST")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Room{}, &models.Setting{}); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}
