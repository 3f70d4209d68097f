package model

import "strings"

type RequestOption interface {
	apply(*RequestConfig)
}

type requestOptionFunc func(*RequestConfig)

func (f requestOptionFunc) apply(cfg *RequestConfig) {
	f(cfg)
}

// RequestConfig holds the per-request query parameters besides model and
// output format.
type RequestConfig struct {
	Language      LanguageCode
	Punctuation   bool
	InitialPrompt *string
}

// ResolveRequestOptions applies opts over the defaults: language "auto" and
// punctuation on.
func ResolveRequestOptions(opts ...RequestOption) RequestConfig {
	cfg := RequestConfig{
		Language:    LanguageAuto,
		Punctuation: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}
	if strings.TrimSpace(string(cfg.Language)) == "" {
		cfg.Language = LanguageAuto
	}
	return cfg
}

func WithLanguage(language LanguageCode) RequestOption {
	return requestOptionFunc(func(cfg *RequestConfig) {
		cfg.Language = language
	})
}

// WithInitialPrompt forwards a recognition hint. Blank prompts are dropped.
func WithInitialPrompt(prompt string) RequestOption {
	return requestOptionFunc(func(cfg *RequestConfig) {
		prompt = strings.TrimSpace(prompt)
		if prompt == "" {
			cfg.InitialPrompt = nil
			return
		}
		cfg.InitialPrompt = &prompt
	})
}

func WithPunctuation(enabled bool) RequestOption {
	return requestOptionFunc(func(cfg *RequestConfig) {
		cfg.Punctuation = enabled
	})
}
