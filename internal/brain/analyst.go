package brain

import (
	"context"
	"fmt"
	"strings"

	"finlens/internal/news"
)

// systemPrompt is the fixed analysis instruction. Every analysis request -
// item or manual free text - goes through this same template; there is no
// conversation memory between requests.
const systemPrompt = `You are a professional A-share/HK equity research analyst.
Analyze strictly from the news below:
1. Extract the 1-3 most central market concepts (strongest themes first)
2. List 3-6 equities most likely to benefit short-term (with tickers, A-share leaders first)
3. Give a 1-2 sentence rationale per equity
Format the output as clean Markdown.`

// maxAnalysisTokens bounds the completion length for a single analysis.
const maxAnalysisTokens = 1024

// Analyst sends news items to a completion provider and returns the
// Markdown analysis. Stateless between calls.
type Analyst struct {
	manager *Manager
}

// NewAnalyst creates an Analyst over the given provider manager.
func NewAnalyst(m *Manager) *Analyst {
	return &Analyst{manager: m}
}

// Available reports whether any completion provider is configured. When
// false, Analyze fails fast with a clear message while the rest of the
// dashboard keeps working.
func (a *Analyst) Available() bool {
	return a.manager.Active() != nil
}

// Analyze sends one item through the analysis template. No retries: a
// failed call is reported to the caller and nothing else changes.
func (a *Analyst) Analyze(ctx context.Context, item news.Item) (string, error) {
	return a.analyze(ctx, item.Title, item.Body)
}

// AnalyzeText runs the identical template over manually entered text.
func (a *Analyst) AnalyzeText(ctx context.Context, title, body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", fmt.Errorf("nothing to analyze")
	}
	return a.analyze(ctx, title, body)
}

func (a *Analyst) analyze(ctx context.Context, title, body string) (string, error) {
	provider := a.manager.Active()
	if provider == nil {
		return "", fmt.Errorf("no completion provider configured (set an API key)")
	}

	resp, err := provider.Generate(ctx, Request{
		SystemPrompt: systemPrompt,
		UserPrompt:   UserPrompt(title, body),
		MaxTokens:    maxAnalysisTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%s analysis failed: %w", provider.Name(), err)
	}
	return resp.Content, nil
}

// UserPrompt builds the user-role content for an analysis request. The
// item's title and body are forwarded verbatim.
func UserPrompt(title, body string) string {
	return fmt.Sprintf("Title: %s\nContent: %s\nBegin the analysis.", title, body)
}
