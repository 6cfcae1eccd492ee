package brain

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// defaultOpenAIEndpoint is the OpenAI chat completions API.
const defaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"

// OpenAIProvider implements Provider for OpenAI's GPT models. Used as the
// fallback when no GLM key is configured.
type OpenAIProvider struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewOpenAIProvider creates an OpenAI provider.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		apiKey:   apiKey,
		model:    model,
		endpoint: defaultOpenAIEndpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (o *OpenAIProvider) Name() string {
	return "openai"
}

func (o *OpenAIProvider) Available() bool {
	return o.apiKey != ""
}

func (o *OpenAIProvider) Generate(ctx context.Context, req Request) (Response, error) {
	if !o.Available() {
		return Response{}, fmt.Errorf("openai provider not configured")
	}
	return chatCompletion(ctx, o.client, o.endpoint, o.apiKey, o.model, req)
}
