package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr    string
	DBDriver      string
	DBPath        string
	DatabaseURL   string
	QRPath        string
	PublicBaseURL string
	LogLevel      string
	LogFormat     string
	LogFile       string
}

func Load() *Config {
	return &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBPath:        getEnv("DB_PATH", "/data/planttracker.db"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		QRPath:        getEnv("QR_PATH", "/data/qrcodes"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		LogFile:       getEnv("LOG_FILE", ""),
	}
}

// DBSource is the file path or connection URL for the configured driver.
func (c *Config) DBSource() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// LoadDotEnv copies variables from an env file into the process environment
// without overriding ones that are already set. A missing file is not an
// error.
func LoadDotEnv(path string) (bool, error) {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return true, nil
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
