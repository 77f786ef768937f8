package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the election console.
type Config struct {
	SQLiteDSN string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	SMSGatewayURL string
	SMSAccountSID string
	SMSAuthToken  string
	SMSFrom       string

	TallyInterval        time.Duration
	ReminderTick         time.Duration
	InitialReminderDelay time.Duration
	ThreeDayReminderAt   string
	VotingDayReminderAt  string

	// AdminPasswordHash gates the interactive console when set. Empty
	// disables the gate.
	AdminPasswordHash string
}

// Load parses configuration values from the current process environment. An
// optional .env file in the working directory is read first.
//
// All relay credentials default to empty; a send attempted without them fails
// at dispatch time and is logged, never fatal.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		SQLiteDSN:            "file:voting.db?_foreign_keys=on",
		SMTPHost:             "smtp.gmail.com",
		SMTPPort:             587,
		SMSGatewayURL:        "",
		TallyInterval:        time.Second,
		ReminderTick:         time.Second,
		InitialReminderDelay: time.Second,
		ThreeDayReminderAt:   "09:00",
		VotingDayReminderAt:  "07:00",
	}

	invalid := make([]string, 0, 2)

	if dsn := strings.TrimSpace(os.Getenv("VOTING_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if host := strings.TrimSpace(os.Getenv("VOTING_SMTP_HOST")); host != "" {
		cfg.SMTPHost = host
	}
	if portValue := strings.TrimSpace(os.Getenv("VOTING_SMTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "VOTING_SMTP_PORT")
		} else {
			cfg.SMTPPort = port
		}
	}
	cfg.SMTPUsername = strings.TrimSpace(os.Getenv("VOTING_SMTP_USERNAME"))
	cfg.SMTPPassword = os.Getenv("VOTING_SMTP_PASSWORD")
	cfg.SMTPFrom = strings.TrimSpace(os.Getenv("VOTING_SMTP_FROM"))
	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUsername
	}

	if gatewayURL := strings.TrimSpace(os.Getenv("VOTING_SMS_GATEWAY_URL")); gatewayURL != "" {
		cfg.SMSGatewayURL = gatewayURL
	}
	cfg.SMSAccountSID = strings.TrimSpace(os.Getenv("VOTING_SMS_ACCOUNT_SID"))
	cfg.SMSAuthToken = os.Getenv("VOTING_SMS_AUTH_TOKEN")
	cfg.SMSFrom = strings.TrimSpace(os.Getenv("VOTING_SMS_FROM"))

	if value := strings.TrimSpace(os.Getenv("VOTING_TALLY_INTERVAL")); value != "" {
		interval, err := time.ParseDuration(value)
		if err != nil || interval <= 0 {
			invalid = append(invalid, "VOTING_TALLY_INTERVAL")
		} else {
			cfg.TallyInterval = interval
		}
	}
	if value := strings.TrimSpace(os.Getenv("VOTING_REMINDER_TICK")); value != "" {
		tick, err := time.ParseDuration(value)
		if err != nil || tick <= 0 {
			invalid = append(invalid, "VOTING_REMINDER_TICK")
		} else {
			cfg.ReminderTick = tick
		}
	}
	if value := strings.TrimSpace(os.Getenv("VOTING_INITIAL_REMINDER_DELAY")); value != "" {
		delay, err := time.ParseDuration(value)
		if err != nil || delay <= 0 {
			invalid = append(invalid, "VOTING_INITIAL_REMINDER_DELAY")
		} else {
			cfg.InitialReminderDelay = delay
		}
	}
	if value := strings.TrimSpace(os.Getenv("VOTING_THREE_DAY_REMINDER_AT")); value != "" {
		if _, _, err := ParseTimeOfDay(value); err != nil {
			invalid = append(invalid, "VOTING_THREE_DAY_REMINDER_AT")
		} else {
			cfg.ThreeDayReminderAt = value
		}
	}
	if value := strings.TrimSpace(os.Getenv("VOTING_VOTING_DAY_REMINDER_AT")); value != "" {
		if _, _, err := ParseTimeOfDay(value); err != nil {
			invalid = append(invalid, "VOTING_VOTING_DAY_REMINDER_AT")
		} else {
			cfg.VotingDayReminderAt = value
		}
	}

	cfg.AdminPasswordHash = strings.TrimSpace(os.Getenv("VOTING_ADMIN_PASSWORD_HASH"))

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// ParseTimeOfDay parses an "HH:MM" wall-clock trigger time.
func ParseTimeOfDay(value string) (hour, minute int, err error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("time of day must be HH:MM, got %q", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour, minute, nil
}
