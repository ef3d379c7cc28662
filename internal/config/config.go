package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the process configuration, read from the environment
// with an optional .env file.
type Config struct {
	TelegramToken string
	DBPath        string
	WeekStart     time.Weekday
}

var weekdays = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// LoadConfig reads configuration from the environment. A .env file is
// loaded first when present. WEEK_START defaults to Monday, the ISO
// convention the "This week" stats period follows.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	token := os.Getenv("TELEGRAM_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "shared/expenses.db"
	}

	weekStart := time.Monday
	if v := os.Getenv("WEEK_START"); v != "" {
		day, ok := weekdays[v]
		if !ok {
			return nil, fmt.Errorf("invalid WEEK_START %q", v)
		}
		weekStart = day
	}

	return &Config{
		TelegramToken: token,
		DBPath:        dbPath,
		WeekStart:     weekStart,
	}, nil
}
