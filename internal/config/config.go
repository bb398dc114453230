package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	JWTSecret      string
	AccessTokenTTL time.Duration

	ClientsURL   string
	ProduitsURL  string
	CommandesURL string

	RequestTimeout time.Duration
	RetryAttempts  int

	SessionDir string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getEnvOrDefault("DB_NAME", "payetonkawa"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 60, time.Minute),

		ClientsURL:   getEnvOrDefault("CLIENTS_API_URL", "http://localhost:8081"),
		ProduitsURL:  getEnvOrDefault("PRODUITS_API_URL", "http://localhost:8082"),
		CommandesURL: getEnvOrDefault("COMMANDES_API_URL", "http://localhost:8083"),

		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 10, time.Second),
		RetryAttempts:  getIntEnv("RETRY_ATTEMPTS", 3),

		SessionDir: getEnvOrDefault("SESSION_DIR", defaultSessionDir()),
	}
}

func defaultSessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".payetonkawa"
	}
	return home + "/.payetonkawa"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return defaultValue
}
