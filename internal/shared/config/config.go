package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        string
	Env         string
	LogLevel    string

	// Auth
	JWTSecret string

	// Reports
	CurrencyPrefix string
	BrandName      string
	ReportTimezone string

	// CORS
	CORSAllowedOrigins string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		Port:               os.Getenv("PORT"),
		Env:                os.Getenv("ENV"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		CurrencyPrefix:     os.Getenv("CURRENCY_PREFIX"),
		BrandName:          os.Getenv("BRAND_NAME"),
		ReportTimezone:     os.Getenv("REPORT_TIMEZONE"),
		CORSAllowedOrigins: os.Getenv("CORS_ALLOWED_ORIGINS"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.CurrencyPrefix == "" {
		cfg.CurrencyPrefix = "Bs."
	}
	if cfg.BrandName == "" {
		cfg.BrandName = "SmartSales365"
	}
	if cfg.ReportTimezone == "" {
		cfg.ReportTimezone = "America/La_Paz"
	}
	if cfg.CORSAllowedOrigins == "" {
		cfg.CORSAllowedOrigins = "http://localhost:5173,http://127.0.0.1:5173"
	}

	return cfg
}

// IsProduction reports whether the service runs with ENV=production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Location resolves ReportTimezone, falling back to UTC when the zone is unknown
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ReportTimezone)
	if err != nil {
		log.Printf("⚠️ Unknown REPORT_TIMEZONE %q, using UTC", c.ReportTimezone)
		return time.UTC
	}
	return loc
}
