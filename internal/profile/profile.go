package profile

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start a scheduling session.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Version is the current version of the binary
	Version string

	// Planner Configuration
	PlannerBaseURL    string        // DAYPLAN_PLANNER_BASE_URL (default: https://api.openai.com/v1)
	PlannerAPIKey     string        // DAYPLAN_PLANNER_API_KEY
	PlannerModel      string        // DAYPLAN_PLANNER_MODEL (default: gpt-4o-mini)
	PlannerMaxRetries int           // DAYPLAN_PLANNER_MAX_RETRIES (default: 3)
	PlannerTimeout    time.Duration // DAYPLAN_PLANNER_TIMEOUT (default: 30s)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsPlannerEnabled returns true if the planner collaborator is configured.
func (p *Profile) IsPlannerEnabled() bool {
	return p.PlannerAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from DAYPLAN_* environment variables.
func (p *Profile) FromEnv() {
	p.Mode = getEnvOrDefault("DAYPLAN_MODE", p.Mode)
	p.PlannerBaseURL = getEnvOrDefault("DAYPLAN_PLANNER_BASE_URL", "https://api.openai.com/v1")
	p.PlannerAPIKey = os.Getenv("DAYPLAN_PLANNER_API_KEY")
	p.PlannerModel = getEnvOrDefault("DAYPLAN_PLANNER_MODEL", "gpt-4o-mini")

	if v := os.Getenv("DAYPLAN_PLANNER_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.PlannerMaxRetries = n
		}
	}
	if v := os.Getenv("DAYPLAN_PLANNER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			p.PlannerTimeout = d
		}
	}
}

// Validate normalizes the profile and reports unusable configuration.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.PlannerMaxRetries <= 0 {
		p.PlannerMaxRetries = 3
	}
	if p.PlannerTimeout <= 0 {
		p.PlannerTimeout = 30 * time.Second
	}
	if p.PlannerModel == "" {
		p.PlannerModel = "gpt-4o-mini"
	}

	if p.PlannerBaseURL == "" {
		return errors.New("planner base URL must not be empty")
	}
	if p.Mode == "prod" && p.PlannerAPIKey == "" {
		return errors.Errorf("planner API key is required in %s mode, set DAYPLAN_PLANNER_API_KEY", p.Mode)
	}

	return nil
}
