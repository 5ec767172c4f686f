// config.go - Configuration loaded from environment variables

package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	// Gemini AI Configuration
	GEMINI_API_KEY string
	MODEL_NAME     string
	VISION_MODEL   string

	// Gemini Pricing Configuration (per 1M tokens in USD)
	GEMINI_INPUT_PRICE_PER_MILLION  float64
	GEMINI_OUTPUT_PRICE_PER_MILLION float64

	// Server Configuration
	PORT            string
	UPLOAD_DIR      string
	ALLOWED_ORIGINS string

	// MongoDB Configuration
	MONGO_URI     string
	MONGO_DB_NAME string

	// Weather API Configuration
	WEATHER_API_URL string
	FORECAST_DAYS   int
	WEATHER_TIMEOUT int // seconds

	// Image preprocessing settings
	ENABLE_IMAGE_PREPROCESSING bool
	MAX_IMAGE_DIMENSION        int

	// Timeouts for model calls (seconds)
	IDENTIFY_TIMEOUT int
	CHAT_TIMEOUT     int

	// Sampling parameters (static per call site)
	CHAT_TEMPERATURE     float64
	IDENTIFY_TEMPERATURE float64
	MAX_OUTPUT_TOKENS    int

	// Provider selection: "gemini" when an API key is present, otherwise
	// "mock" so the identifier keeps working without credentials
	AI_PROVIDER string
)

// LoadConfig loads configuration from environment variables
func LoadConfig() {
	// Load .env file if exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	GEMINI_API_KEY = getEnv("GEMINI_API_KEY", "")

	// API key presence selects live vs mock identification data
	if GEMINI_API_KEY != "" {
		AI_PROVIDER = getEnv("AI_PROVIDER", "gemini")
	} else {
		log.Println("GEMINI_API_KEY not set, using mock identification provider")
		AI_PROVIDER = "mock"
	}

	MODEL_NAME = getEnv("MODEL_NAME", "gemini-2.5-flash")
	VISION_MODEL = getEnv("VISION_MODEL", MODEL_NAME)

	// Gemini Pricing (default to Flash pricing)
	GEMINI_INPUT_PRICE_PER_MILLION = getEnvFloat("GEMINI_INPUT_PRICE_PER_MILLION", 0.30)
	GEMINI_OUTPUT_PRICE_PER_MILLION = getEnvFloat("GEMINI_OUTPUT_PRICE_PER_MILLION", 2.50)

	PORT = getEnv("PORT", "8080")
	UPLOAD_DIR = getEnv("UPLOAD_DIR", "uploads")
	ALLOWED_ORIGINS = getEnv("ALLOWED_ORIGINS", "*")

	// MongoDB Configuration
	MONGO_URI = getEnv("MONGO_URI", "mongodb://localhost:27017")
	MONGO_DB_NAME = getEnv("MONGO_DB_NAME", "farmassist")

	// Weather
	WEATHER_API_URL = getEnv("WEATHER_API_URL", "https://api.open-meteo.com/v1/forecast")
	FORECAST_DAYS = getEnvInt("FORECAST_DAYS", 5)
	WEATHER_TIMEOUT = getEnvInt("WEATHER_TIMEOUT", 10)

	// Image Processing
	ENABLE_IMAGE_PREPROCESSING = getEnvBool("ENABLE_IMAGE_PREPROCESSING", true)
	MAX_IMAGE_DIMENSION = getEnvInt("MAX_IMAGE_DIMENSION", 2000)

	// Timeouts
	IDENTIFY_TIMEOUT = getEnvInt("IDENTIFY_TIMEOUT", 60)
	CHAT_TIMEOUT = getEnvInt("CHAT_TIMEOUT", 45)

	// Sampling parameters
	CHAT_TEMPERATURE = getEnvFloat("CHAT_TEMPERATURE", 0.7)
	IDENTIFY_TEMPERATURE = getEnvFloat("IDENTIFY_TEMPERATURE", 0.4)
	MAX_OUTPUT_TOKENS = getEnvInt("MAX_OUTPUT_TOKENS", 8192)

	log.Println("✓ Configuration loaded successfully")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
