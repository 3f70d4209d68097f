// Package speechall is a client for the Speechall speech-to-text API.
package speechall

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Nephrolytics-ai/speechall-go/pkg/media"
	"github.com/Nephrolytics-ai/speechall-go/pkg/upload"
	"github.com/Nephrolytics-ai/speechall-go/pkg/utils"
)

const (
	DefaultBaseURL          = "https://api.speechall.com/v1"
	DefaultTimeout          = 20 * time.Minute
	DefaultMaxResponseBytes = 100 * 1024 * 1024

	transcribePath = "/transcribe"
	// maxErrorBodyBytes bounds how much of a failed response is read for its message.
	maxErrorBodyBytes = 64 * 1024
)

var ErrMissingAPIKey = errors.New("speechall API key is required (set Config.APIKey or SPEECHALL_API_KEY)")

// Config is passed to NewClient. Zero fields take the documented defaults.
type Config struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	APIKey  string
	// Timeout bounds a whole request including upload. Defaults to DefaultTimeout.
	Timeout time.Duration
	// MaxResponseBytes caps buffered response bodies. Defaults to DefaultMaxResponseBytes.
	MaxResponseBytes int64
	// TempDir receives audio extracted from video. Defaults to os.TempDir().
	TempDir string
	// HTTPClient is cloned; its transport gets the bearer middleware.
	HTTPClient *http.Client
	// Extractor overrides the ffmpeg-backed audio extractor.
	Extractor upload.AudioExtractor
}

func DefaultConfig() Config {
	return Config{
		BaseURL:          DefaultBaseURL,
		Timeout:          DefaultTimeout,
		MaxResponseBytes: DefaultMaxResponseBytes,
	}
}

type Client struct {
	baseURL          string
	maxResponseBytes int64
	httpClient       *http.Client
	builder          *upload.Builder
}

func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, utils.WrapIfNotNil(ErrMissingAPIKey)
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	maxResponseBytes := cfg.MaxResponseBytes
	if maxResponseBytes <= 0 {
		maxResponseBytes = DefaultMaxResponseBytes
	}

	extractor := cfg.Extractor
	if extractor == nil {
		extractor = media.NewExtractor(nil, cfg.TempDir)
	}

	return &Client{
		baseURL:          baseURL,
		maxResponseBytes: maxResponseBytes,
		httpClient:       newHTTPClient(cfg, apiKey),
		builder:          upload.NewBuilder(extractor),
	}, nil
}

func newHTTPClient(cfg Config, apiKey string) *http.Client {
	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		clone := *cfg.HTTPClient
		httpClient = &clone
	}

	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	} else if httpClient.Timeout == 0 {
		httpClient.Timeout = DefaultTimeout
	}

	httpClient.Transport = &bearerAuth{next: httpClient.Transport, apiKey: apiKey}
	return httpClient
}
