// Package config loads the static environment configuration and watches an
// optional settings file for runtime changes.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// CanvasDefaults holds the canvas settings new sessions start from
type CanvasDefaults struct {
	MinZoom     float64 `json:"minZoom" yaml:"minZoom" validate:"gt=0"`
	MaxZoom     float64 `json:"maxZoom" yaml:"maxZoom" validate:"gtfield=MinZoom"`
	GridSize    float64 `json:"gridSize" yaml:"gridSize" validate:"gt=0"`
	SnapToGrid  bool    `json:"snapToGrid" yaml:"snapToGrid"`
	ShowGrid    bool    `json:"showGrid" yaml:"showGrid"`
	ShowMinimap bool    `json:"showMinimap" yaml:"showMinimap"`
	Width       float64 `json:"width" yaml:"width" validate:"gt=0"`
	Height      float64 `json:"height" yaml:"height" validate:"gt=0"`
}

// WebSocketConfig holds session transport settings
type WebSocketConfig struct {
	MaxSessions      int `json:"maxSessions" yaml:"maxSessions" validate:"gt=0"`
	WriteBufferSize  int `json:"writeBufferSize" yaml:"writeBufferSize" validate:"gt=0"`
	ReadBufferSize   int `json:"readBufferSize" yaml:"readBufferSize" validate:"gt=0"`
	PingInterval     int `json:"pingInterval" yaml:"pingInterval" validate:"gt=0"` // seconds
	MessageQueueSize int `json:"messageQueueSize" yaml:"messageQueueSize" validate:"gt=0"`
}

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `validate:"required"`
	Environment   string `validate:"oneof=development staging production"`

	// Settings file for runtime-changeable canvas defaults. Empty disables
	// the watcher.
	SettingsPath string

	// Logging
	LogLevel string `validate:"oneof=debug info warn error"`

	// Feature flags
	EnableMetrics bool
	EnableCORS    bool

	Canvas    CanvasDefaults
	WebSocket WebSocketConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		SettingsPath:  getEnv("SETTINGS_PATH", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),

		Canvas: CanvasDefaults{
			MinZoom:     getEnvFloat("CANVAS_MIN_ZOOM", 0.1),
			MaxZoom:     getEnvFloat("CANVAS_MAX_ZOOM", 4.0),
			GridSize:    getEnvFloat("CANVAS_GRID_SIZE", 20),
			SnapToGrid:  getEnvBool("CANVAS_SNAP_TO_GRID", false),
			ShowGrid:    getEnvBool("CANVAS_SHOW_GRID", true),
			ShowMinimap: getEnvBool("CANVAS_SHOW_MINIMAP", false),
			Width:       getEnvFloat("CANVAS_WIDTH", 1280),
			Height:      getEnvFloat("CANVAS_HEIGHT", 800),
		},

		WebSocket: WebSocketConfig{
			MaxSessions:      getEnvInt("WS_MAX_SESSIONS", 256),
			WriteBufferSize:  getEnvInt("WS_WRITE_BUFFER", 1024),
			ReadBufferSize:   getEnvInt("WS_READ_BUFFER", 1024),
			PingInterval:     getEnvInt("WS_PING_INTERVAL", 30),
			MessageQueueSize: getEnvInt("WS_QUEUE_SIZE", 64),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
