package speechall

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Nephrolytics-ai/speechall-go/pkg/utils"
	"github.com/joho/godotenv"
)

const (
	envAPIKey  = "SPEECHALL_API_KEY"
	envBaseURL = "SPEECHALL_BASE_URL"
	envTimeout = "SPEECHALL_TIMEOUT"
)

// ConfigFromEnv starts from DefaultConfig and applies SPEECHALL_API_KEY,
// SPEECHALL_BASE_URL and SPEECHALL_TIMEOUT (a Go duration such as "30m").
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	cfg.APIKey = strings.TrimSpace(os.Getenv(envAPIKey))

	if baseURL := strings.TrimSpace(os.Getenv(envBaseURL)); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if raw := strings.TrimSpace(os.Getenv(envTimeout)); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, utils.WrapIfNotNil(fmt.Errorf("invalid %s: %w", envTimeout, err))
		}
		cfg.Timeout = timeout
	}

	return cfg, nil
}

// NewClientFromEnv loads the given dotenv files that exist (already set
// variables win) and builds a client from the environment.
func NewClientFromEnv(envFiles ...string) (*Client, error) {
	present := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, utils.WrapIfNotNil(err)
		}
		present = append(present, file)
	}
	if len(present) > 0 {
		if err := godotenv.Load(present...); err != nil {
			return nil, utils.WrapIfNotNil(err)
		}
	}

	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return NewClient(cfg)
}
