// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the variable is unset or empty.
const (
	DefaultAddr        = ":5000"
	DefaultSMTPHost    = "smtp.gmail.com"
	DefaultSMTPPort    = 587
	DefaultSMTPTimeout = 15 * time.Second
	DefaultCompanyName = "Samrat Tech IT Solutions"
)

// Config holds everything the server needs at start-up.
type Config struct {
	Addr     string
	LogLevel string

	DatabaseURI string
	CompanyURI  string
	CompanyName string

	SMTPHost       string
	SMTPPort       int
	SMTPTimeout    time.Duration
	SenderMail     string
	SenderPassword string
	ReceiverMail   string
}

// Load reads .env files if present, then the environment.
// Every missing required variable is reported in the returned error.
func Load(envFiles ...string) (*Config, error) {
	// .env files are optional
	_ = godotenv.Load(envFiles...)
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, which has the signature of os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	var errs []error
	required := func(key string) string {
		v := get(key)
		if v == "" {
			errs = append(errs, fmt.Errorf("%s is required", key))
		}
		return v
	}

	cfg := &Config{
		Addr:           withDefault(get("ADDR"), DefaultAddr),
		LogLevel:       get("LOG_LEVEL"),
		DatabaseURI:    required("DATABASE_URI"),
		CompanyURI:     required("COMPANY_URI"),
		CompanyName:    withDefault(get("COMPANY_NAME"), DefaultCompanyName),
		SMTPHost:       withDefault(get("SMTP_HOST"), DefaultSMTPHost),
		SMTPPort:       DefaultSMTPPort,
		SMTPTimeout:    DefaultSMTPTimeout,
		SenderMail:     required("SENDER_MAIL"),
		SenderPassword: required("SENDER_PASSWORD"),
		// the variable name is misspelled in existing deployments
		ReceiverMail: required("RECIEVER_MAIL"),
	}

	if v := get("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			errs = append(errs, fmt.Errorf("SMTP_PORT: invalid port %q", v))
		} else {
			cfg.SMTPPort = port
		}
	}

	if v := get("SMTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("SMTP_TIMEOUT: invalid duration %q", v))
		} else {
			cfg.SMTPTimeout = d
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
