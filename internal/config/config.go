package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds one run's settings. Built once, never mutated.
type Config struct {
	SiteURL         string
	APIKey          string
	APIUsername     string
	Timeout         time.Duration
	Active          bool
	Approved        bool
	SuppressWelcome bool
	DryRun          bool
}

// Env carries the environment fallbacks for credentials. Flag values take
// precedence; these fill in whatever the command line leaves blank.
type Env struct {
	SiteURL     string `envconfig:"DISCOURSE_SITE_URL"`
	APIKey      string `envconfig:"DISCOURSE_API_KEY"`
	APIUsername string `envconfig:"DISCOURSE_API_USERNAME"`
}

// FromEnv reads the credential fallbacks from the environment.
func FromEnv() (Env, error) {
	var e Env
	if err := envconfig.Process("", &e); err != nil {
		return Env{}, err
	}
	e.SiteURL = strings.TrimSpace(e.SiteURL)
	e.APIKey = strings.TrimSpace(e.APIKey)
	e.APIUsername = strings.TrimSpace(e.APIUsername)
	return e, nil
}

// MissingCredentialsError lists every required credential left empty.
type MissingCredentialsError struct {
	Missing []string
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf("missing required credentials/options: %s", strings.Join(e.Missing, ", "))
}

// New normalizes the raw flag values into a Config. The site URL loses any
// trailing slashes so request paths can be appended verbatim.
func New(siteURL, apiKey, apiUsername string, timeout time.Duration, active, approved, suppressWelcome, dryRun bool) Config {
	return Config{
		SiteURL:         strings.TrimRight(strings.TrimSpace(siteURL), "/"),
		APIKey:          strings.TrimSpace(apiKey),
		APIUsername:     strings.TrimSpace(apiUsername),
		Timeout:         timeout,
		Active:          active,
		Approved:        approved,
		SuppressWelcome: suppressWelcome,
		DryRun:          dryRun,
	}
}

// Validate checks the required credentials. Dry runs never reach the API, so
// they pass regardless of what is missing.
func (c Config) Validate() error {
	if c.DryRun {
		return nil
	}
	var missing []string
	for _, cred := range []struct{ name, value string }{
		{"site-url", c.SiteURL},
		{"api-key", c.APIKey},
		{"api-username", c.APIUsername},
	} {
		if cred.value == "" {
			missing = append(missing, cred.name)
		}
	}
	if len(missing) > 0 {
		return &MissingCredentialsError{Missing: missing}
	}
	return nil
}
