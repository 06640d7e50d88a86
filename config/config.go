package config

import (
	"log"
	"os"
	"strings"
	"time"

	"rentalsite/constants"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
)

const (
	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Config là cấu hình đọc từ biến môi trường
type Config struct {
	Port              string
	Env               string
	StoreDriver       string
	DataDir           string
	DatabaseURL       string
	RedisAddr         string
	RedisUser         string
	RedisPassword     string
	CloudinaryURL     string
	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string
	CORSOrigins       []string
	ReloadSchedule    string
	SecondaryDelay    time.Duration
	LogLevel          string
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env not loaded, using process environment: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func getEnvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Load đọc Config từ môi trường, điền giá trị mặc định cho biến còn thiếu
func Load() Config {
	cfg := Config{
		Port:              getEnvDefault("PORT", "8083"),
		Env:               getEnvDefault("ENV", "dev"),
		StoreDriver:       strings.ToLower(getEnvDefault("STORE_DRIVER", StoreFile)),
		DataDir:           getEnvDefault("DATA_DIR", "data"),
		RedisAddr:         GetEnv("REDIS_ADDR"),
		RedisUser:         GetEnv("REDIS_USER"),
		RedisPassword:     GetEnv("REDIS_PASSWORD"),
		CloudinaryURL:     GetEnv("CLOUDINARY_URL"),
		JWTSecret:         GetEnv("JWT_SECRET"),
		AdminUsername:     GetEnv("ADMIN_USERNAME"),
		AdminPasswordHash: GetEnv("ADMIN_PASSWORD_HASH"),
		ReloadSchedule:    getEnvDefault("RELOAD_SCHEDULE", constants.DefaultReloadSchedule),
		SecondaryDelay:    constants.DefaultSecondaryDelay,
		LogLevel:          getEnvDefault("LOG_LEVEL", "info"),
	}
	cfg.DatabaseURL = databaseURL(cfg.Env)

	if v := GetEnv("WHATSAPP_SECONDARY_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.SecondaryDelay = d
		} else {
			log.Printf("Warning: invalid WHATSAPP_SECONDARY_DELAY %q, using %s", v, constants.DefaultSecondaryDelay)
		}
	}
	for _, origin := range strings.Split(GetEnv("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}
	return cfg
}

// ConnectCloudinary trả về nil khi CLOUDINARY_URL chưa được cấu hình
func ConnectCloudinary(cfg Config) (*cloudinary.Cloudinary, error) {
	if cfg.CloudinaryURL == "" {
		return nil, nil
	}
	return cloudinary.NewFromURL(cfg.CloudinaryURL)
}
