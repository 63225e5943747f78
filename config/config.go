package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"cinema-booking-cli/model"
	"cinema-booking-cli/service"
)

type Config struct {
	// Hall limits
	MaxRows        int
	MaxSeatsPerRow int
	HallName       string

	// Bookings
	OrderPrefix string
	Show        string

	// Logging
	LogLevel string
	LogFile  string

	// Transport
	AMQPURL  string
	HTTPAddr string
}

// Load reads a .env file when present, then the environment. Out of range
// limits fall back to their defaults.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		MaxRows:        getEnvInt("CINEMA_MAX_ROWS", service.DefaultMaxRows),
		MaxSeatsPerRow: getEnvInt("CINEMA_MAX_SEATS_PER_ROW", service.DefaultMaxSeatsPerRow),
		HallName:       getEnv("CINEMA_HALL_NAME", model.DefaultHallName),

		OrderPrefix: getEnv("CINEMA_BOOKING_PREFIX", service.DefaultOrderPrefix),
		Show:        strings.TrimSpace(os.Getenv("CINEMA_SHOW")),

		LogLevel: getEnv("CINEMA_LOG_LEVEL", "info"),
		LogFile:  os.Getenv("CINEMA_LOG_FILE"),

		AMQPURL:  getEnv("CINEMA_AMQP_URL", os.Getenv("RABBITMQ_URL")),
		HTTPAddr: getEnv("CINEMA_HTTP_ADDR", ":8080"),
	}
	cfg.Clamp()
	return cfg
}

// Clamp resets limits that no hall could satisfy.
func (c *Config) Clamp() {
	if c.MaxRows < 1 || c.MaxRows > service.DefaultMaxRows {
		c.MaxRows = service.DefaultMaxRows
	}
	if c.MaxSeatsPerRow < 1 {
		c.MaxSeatsPerRow = service.DefaultMaxSeatsPerRow
	}
	if strings.TrimSpace(c.HallName) == "" {
		c.HallName = model.DefaultHallName
	}
}

func (c *Config) Limits() service.Limits {
	return service.Limits{MaxRows: c.MaxRows, MaxSeatsPerRow: c.MaxSeatsPerRow}
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
