package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr    string
	DBPath        string
	PhotoPath     string
	LogMealToken  string
	LogMealAPIURL string
	GeminiAPIKey  string
	GeminiAPIURL  string
	SerpAPIKey    string
	SerpAPIURL    string
	LogLevel      string
	LogFile       string
	TestMode      bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		DBPath:        getEnv("DB_PATH", "/data/snapchef.db"),
		PhotoPath:     getEnv("PHOTO_LOCAL_PATH", "/data/scans"),
		LogMealToken:  getEnv("LOGMEAL_API_TOKEN", ""),
		LogMealAPIURL: getEnv("LOGMEAL_API_URL", ""),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiAPIURL:  getEnv("GEMINI_API_URL", ""),
		SerpAPIKey:    getEnv("SERPAPI_KEY", ""),
		SerpAPIURL:    getEnv("SERPAPI_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		TestMode:      os.Getenv("SNAPCHEF_TEST_MODE") == "1",
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
