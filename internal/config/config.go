package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/edvin/trafficbot/internal/model"
)

var validate = validator.New()

type Config struct {
	ServiceName     string
	BotToken        string
	Credentials     []model.Credential
	Recipients      []int64
	ReportHours     []int `validate:"dive,gte=0,lte=23"`
	DisplayTimezone string
	BWHAPIURL       string `validate:"url"`
	HTTPTimeout     time.Duration
	HTTPListenAddr  string
	LogLevel        string
}

func Load() (*Config, error) {
	creds, err := model.ParseCredentials(getEnv("BWH_CREDENTIALS", ""))
	if err != nil {
		return nil, fmt.Errorf("parse BWH_CREDENTIALS: %w", err)
	}

	// A YAML credentials file supplements the env list; file entries are
	// appended after env entries so the display order stays stable.
	if path := getEnv("CREDENTIALS_FILE", ""); path != "" {
		fileCreds, err := loadCredentialsFile(path)
		if err != nil {
			return nil, err
		}
		creds = append(creds, fileCreds...)
	}

	recipients, err := parseInt64List(getEnv("TELEGRAM_CHAT_IDS", ""))
	if err != nil {
		return nil, fmt.Errorf("parse TELEGRAM_CHAT_IDS: %w", err)
	}

	hours, err := parseIntList(getEnv("REPORT_HOURS", "10"))
	if err != nil {
		return nil, fmt.Errorf("parse REPORT_HOURS: %w", err)
	}

	timeoutSecs, err := strconv.Atoi(getEnv("HTTP_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("parse HTTP_TIMEOUT: %w", err)
	}

	cfg := &Config{
		ServiceName:     getEnv("SERVICE_NAME", "trafficbot"),
		BotToken:        getEnv("TELEGRAM_BOT_TOKEN", ""),
		Credentials:     creds,
		Recipients:      recipients,
		ReportHours:     hours,
		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", "Asia/Shanghai"),
		BWHAPIURL:       getEnv("BWH_API_URL", "https://api.64clouds.com"),
		HTTPTimeout:     time.Duration(timeoutSecs) * time.Second,
		HTTPListenAddr:  getEnv("HTTP_LISTEN_ADDR", ":8090"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	if c.BotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if len(c.Credentials) == 0 {
		missing = append(missing, "BWH_CREDENTIALS")
	}
	if len(c.Recipients) == 0 {
		missing = append(missing, "TELEGRAM_CHAT_IDS")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if _, err := time.LoadLocation(c.DisplayTimezone); err != nil {
		return fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", c.DisplayTimezone, err)
	}

	return nil
}

// Location returns the display timezone. Call Validate first; an
// unloadable timezone falls back to UTC here.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func loadCredentialsFile(path string) ([]model.Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	var creds []model.Credential
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials file %s: %w", path, err)
	}
	for _, c := range creds {
		if c.VEID == "" || c.APIKey == "" {
			return nil, fmt.Errorf("credentials file %s: entry missing veid or api_key", path)
		}
	}
	return creds, nil
}

func parseIntList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseInt64List(s string) ([]int64, error) {
	var out []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
