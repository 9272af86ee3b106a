package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port        string
	DBPath      string
	DatasetPath string
	PalettePath string
	RateLimit   int // 每个 IP 在窗口内的最大请求数，0 表示不限
	RateWindow  time.Duration
	Palettes    *Palettes
}

// Load 加载配置
func Load() (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[Config] Failed to read .env: %v", err)
	}

	cfg := &Config{
		Port:        getEnv("PORT", ":8080"),
		DBPath:      getEnv("DB_PATH", "file:trips?mode=memory&cache=shared"),
		DatasetPath: getEnv("DATASET_PATH", "./data/trajetorias.geojson"),
		PalettePath: getEnv("PALETTE_PATH", "./config/palettes.yml"),
		RateLimit:   getEnvInt("RATE_LIMIT", 120),
		RateWindow:  getEnvDuration("RATE_WINDOW", time.Minute),
	}

	palettes, err := LoadPalettes(cfg.PalettePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load palettes: %w", err)
	}
	cfg.Palettes = palettes

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("[Config] Ignoring invalid %s=%q", key, value)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("[Config] Ignoring invalid %s=%q", key, value)
	}
	return defaultValue
}
