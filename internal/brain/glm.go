package brain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"finlens/internal/logging"
)

// defaultGLMEndpoint is Zhipu's OpenAI-compatible chat completions API.
const defaultGLMEndpoint = "https://open.bigmodel.cn/api/paas/v4/chat/completions"

// GLMProvider implements Provider for Zhipu's GLM models.
type GLMProvider struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewGLMProvider creates a GLM provider. An empty endpoint uses the public
// API; an empty model defaults to glm-4-flash.
func NewGLMProvider(apiKey, model, endpoint string) *GLMProvider {
	if model == "" {
		model = "glm-4-flash"
	}
	if endpoint == "" {
		endpoint = defaultGLMEndpoint
	}
	return &GLMProvider{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *GLMProvider) Name() string {
	return "glm"
}

func (g *GLMProvider) Available() bool {
	return g.apiKey != ""
}

// chatRequest is the OpenAI-compatible request body shared by GLM and
// OpenAI.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the OpenAI-compatible response body.
type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (g *GLMProvider) Generate(ctx context.Context, req Request) (Response, error) {
	if !g.Available() {
		return Response{}, fmt.Errorf("glm provider not configured")
	}
	return chatCompletion(ctx, g.client, g.endpoint, g.apiKey, g.model, req)
}

// chatCompletion performs a single OpenAI-compatible chat call.
func chatCompletion(ctx context.Context, client *http.Client, endpoint, apiKey, model string, req Request) (Response, error) {
	logging.Debug("completion request starting", "model", model)

	messages := []chatMessage{}
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.UserPrompt})

	body := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: 0.3,
		MaxTokens:   req.MaxTokens,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return Response{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logging.Error("completion API error", "status", resp.StatusCode, "body", string(respBody))
		return Response{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return Response{}, fmt.Errorf("parse response: %w", err)
	}

	content := ""
	finishReason := ""
	if len(result.Choices) > 0 {
		content = result.Choices[0].Message.Content
		finishReason = result.Choices[0].FinishReason
	}

	if finishReason == "length" {
		logging.Warn("completion truncated at max tokens", "model", result.Model, "content_length", len(content))
	}
	logging.Info("completion response", "model", result.Model, "content_length", len(content))

	return Response{Content: content, Model: result.Model}, nil
}
