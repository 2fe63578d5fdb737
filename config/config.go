package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port         string
	DBName       string // sqlite file backing the stub marketplace server
	ClientDBName string // sqlite file backing the client-side key-value store
	APIBaseURL   string
	JWTKey       string
	UploadDir    string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:         getEnv("PORT", "3000"),
		DBName:       getEnv("DB_NAME", "learnmart.db"),
		ClientDBName: getEnv("CLIENT_DB_NAME", "learnmart-client.db"),
		APIBaseURL:   getEnv("API_BASE_URL", "http://localhost:3000/api/v1"),
		JWTKey:       getEnv("JWT_SECRET_KEY", "defaultSecret"),
		UploadDir:    getEnv("UPLOAD_DIR", "./uploads"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
