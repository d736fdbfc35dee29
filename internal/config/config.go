package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server      ServerConfig
	SendGrid    SendGridConfig
	Sheets      SheetsConfig
	Render      RenderConfig
	Payment     PaymentConfig
	Contact     ContactConfig
	Environment string
	LogLevel    string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

type SheetsConfig struct {
	CredentialsJSON string // service-account credentials, raw JSON
	SpreadsheetID   string
	AppendRange     string
	BlankColumns    int // trailing columns reserved for back-office annotation
	Disabled        bool
}

type RenderConfig struct {
	Timeout  int // seconds; PDF generation must never hang the pipeline
	Disabled bool
}

type PaymentConfig struct {
	PlanDates [3]string // installment dates shown for the "plan" payment type
}

type ContactConfig struct {
	PayrollEmail string
	OrdersEmail  string
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 60),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		SendGrid: SendGridConfig{
			APIKey:    getEnv("SENDGRID_API_KEY", ""),
			FromEmail: getEnv("FROM_EMAIL", "orders@twoa.ac.nz"),
			FromName:  getEnv("FROM_NAME", "Te Mata Wānanga - Apakura"),
		},
		Sheets: SheetsConfig{
			CredentialsJSON: getEnv("GOOGLE_SHEETS_CREDENTIALS", ""),
			SpreadsheetID:   getEnv("GOOGLE_SHEETS_ID", ""),
			AppendRange:     getEnv("GOOGLE_SHEETS_RANGE", "Orders!A:O"),
			BlankColumns:    getEnvAsInt("GOOGLE_SHEETS_BLANK_COLUMNS", 3),
			Disabled:        getEnvAsBool("SHEETS_DISABLED", false),
		},
		Render: RenderConfig{
			Timeout:  getEnvAsInt("RENDER_TIMEOUT", 30),
			Disabled: getEnvAsBool("RENDER_DISABLED", false),
		},
		Payment: PaymentConfig{
			PlanDates: [3]string{
				getEnv("PLAN_DATE_1", "13/08/2025"),
				getEnv("PLAN_DATE_2", "27/08/2025"),
				getEnv("PLAN_DATE_3", "10/09/2025"),
			},
		},
		Contact: ContactConfig{
			PayrollEmail: getEnv("PAYROLL_EMAIL", "payroll@twoa.ac.nz"),
			OrdersEmail:  getEnv("ORDERS_EMAIL", "orders@twoa.ac.nz"),
		},
		Environment: getEnv("APP_ENV", "production"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.SendGrid.APIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is required")
	}

	if !c.Sheets.Disabled {
		if c.Sheets.CredentialsJSON == "" {
			return fmt.Errorf("GOOGLE_SHEETS_CREDENTIALS is required unless SHEETS_DISABLED is set")
		}
		if c.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("GOOGLE_SHEETS_ID is required unless SHEETS_DISABLED is set")
		}
	}

	if c.Render.Timeout <= 0 {
		return fmt.Errorf("RENDER_TIMEOUT must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// IsProduction reports whether error detail should be hidden from responses
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Environment) != "development"
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
