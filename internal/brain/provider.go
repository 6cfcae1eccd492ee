// Package brain talks to hosted language models for news analysis.
package brain

import "context"

// Provider is the interface for completion providers.
type Provider interface {
	// Name returns the provider name (e.g. "glm", "openai")
	Name() string

	// Available returns true if the provider is configured and ready
	Available() bool

	// Generate sends a prompt and returns the response
	Generate(ctx context.Context, req Request) (Response, error)
}

// Request is a single completion request. Providers carry no conversation
// state between requests.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
}

// Response is the provider's completion.
type Response struct {
	Content string
	Model   string
}

// Manager holds the configured providers and picks the first available one,
// preferring the named favorite.
type Manager struct {
	providers []Provider
	preferred string
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add registers a provider.
func (m *Manager) Add(p Provider) {
	m.providers = append(m.providers, p)
}

// SetPreferred sets the preferred provider by name.
func (m *Manager) SetPreferred(name string) {
	m.preferred = name
}

// Active returns the first available provider, preferring the preferred
// one, or nil when nothing is configured.
func (m *Manager) Active() Provider {
	if m.preferred != "" {
		for _, p := range m.providers {
			if p.Name() == m.preferred && p.Available() {
				return p
			}
		}
	}
	for _, p := range m.providers {
		if p.Available() {
			return p
		}
	}
	return nil
}
