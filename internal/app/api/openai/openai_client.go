package openai

import (
	"github.com/sashabaranov/go-openai"
)

// NewClient returns an API client for apiKey; baseURL overrides the default
// endpoint when set (proxies, compatible servers, tests).
func NewClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}
