package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisURL string

	ServerPort string

	// PasswordSaltRounds is the bcrypt cost; PasswordSecret is a server-side
	// pepper mixed into every password before hashing. Both are required:
	// a missing value is a fatal startup condition.
	PasswordSaltRounds int
	PasswordSecret     string

	WorkerCount int
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	saltRoundsStr := os.Getenv("PASSWORD_SALT_ROUNDS")
	if saltRoundsStr == "" {
		return nil, fmt.Errorf("PASSWORD_SALT_ROUNDS is not set")
	}
	saltRounds, err := strconv.Atoi(saltRoundsStr)
	if err != nil {
		return nil, fmt.Errorf("PASSWORD_SALT_ROUNDS must be an integer: %w", err)
	}

	passwordSecret := os.Getenv("PASSWORD_SECRET")
	if passwordSecret == "" {
		return nil, fmt.Errorf("PASSWORD_SECRET is not set")
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	workerCount, err := strconv.Atoi(os.Getenv("WORKER_COUNT"))
	if err != nil || workerCount <= 0 {
		workerCount = 2
	}

	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  sslMode,

		RedisURL: redisURL,

		ServerPort: serverPort,

		PasswordSaltRounds: saltRounds,
		PasswordSecret:     passwordSecret,

		WorkerCount: workerCount,
	}, nil
}
