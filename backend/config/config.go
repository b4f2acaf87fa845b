package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI     string
	DBName       string
	JWTSecret    string
	JWTExpiresIn time.Duration
	ServerPort   string
	ChromePath   string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		MongoURI:     getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:       getEnv("DB_NAME", "cogniverse"),
		JWTSecret:    getEnv("JWT_SECRET", "cogniverse_secret"),
		JWTExpiresIn: getDurationEnv("JWT_EXPIRES_IN", 72*time.Hour),
		ServerPort:   getEnv("SERVER_PORT", "5000"),
		ChromePath:   getEnv("CHROME_PATH", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration for %s, using default: %v", key, err)
		return defaultValue
	}
	return parsed
}
