package llm

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/careergenie/careergenie-api/internal/config"
)

// Registry resolves provider identities to credentialed adapters.
// Credentials are read from the LLM configuration at most once per
// provider per process: the first Resolve for an identity constructs the
// adapter behind a sync.Once and every later call returns the cached
// result, including a cached "not configured" failure. A provider with no
// credential therefore stays unusable until the process restarts.
type Registry struct {
	cfg        config.LLMConfig
	httpClient *http.Client
	entries    map[ProviderID]*registryEntry
}

type registryEntry struct {
	once     sync.Once
	provider Provider
	err      error
}

// NewRegistry creates a Registry over the given LLM configuration.
// No credentials are read and no clients are constructed until first use.
func NewRegistry(cfg config.LLMConfig) *Registry {
	entries := make(map[ProviderID]*registryEntry, len(modelAliases))
	for id := range modelAliases {
		entries[id] = &registryEntry{}
	}
	return &Registry{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // hard transport ceiling; per-attempt timeouts are the gateway's job
		},
		entries: entries,
	}
}

// Resolve implements ProviderResolver. It is safe for concurrent use;
// concurrent first use of the same provider constructs its client exactly
// once.
func (r *Registry) Resolve(id ProviderID) (Provider, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", id)
	}
	entry.once.Do(func() {
		entry.provider, entry.err = r.build(id)
	})
	return entry.provider, entry.err
}

// build constructs the adapter for one provider identity, failing with
// ErrNotConfigured when the required credential is absent. This is the
// only place that branches on the provider tag; everything downstream
// works through the Provider interface.
func (r *Registry) build(id ProviderID) (Provider, error) {
	switch id {
	case ProviderGemini:
		if r.cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("%w: gemini API key is not set", ErrNotConfigured)
		}
		return newGeminiProvider(context.Background(), r.cfg.GeminiAPIKey)

	case ProviderGroq:
		if r.cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("%w: groq API key is not set", ErrNotConfigured)
		}
		return newOpenAICompatProvider(ProviderGroq, groqBaseURL, r.cfg.GroqAPIKey, r.httpClient), nil

	case ProviderTogether:
		if r.cfg.TogetherAPIKey == "" {
			return nil, fmt.Errorf("%w: together API key is not set", ErrNotConfigured)
		}
		return newOpenAICompatProvider(ProviderTogether, togetherBaseURL, r.cfg.TogetherAPIKey, r.httpClient), nil

	case ProviderHuggingFace:
		if r.cfg.HuggingFaceAPIKey == "" {
			return nil, fmt.Errorf("%w: huggingface API key is not set", ErrNotConfigured)
		}
		return newHuggingFaceProvider(r.cfg.HuggingFaceAPIKey, r.httpClient), nil

	case ProviderOllama:
		if r.cfg.OllamaHost == "" {
			return nil, fmt.Errorf("%w: ollama host is not set", ErrNotConfigured)
		}
		return newOllamaProvider(r.cfg.OllamaHost, r.httpClient), nil

	default:
		return nil, fmt.Errorf("unknown provider %q", id)
	}
}

// ChainFromConfig converts the configured chain of provider names to
// ProviderIDs. Returns an error for unknown names so a typo fails at
// startup rather than at request time.
func ChainFromConfig(names []string) ([]ProviderID, error) {
	chain := make([]ProviderID, 0, len(names))
	for _, name := range names {
		id := ProviderID(name)
		if !id.Known() {
			return nil, fmt.Errorf("unknown provider %q in configured chain", name)
		}
		chain = append(chain, id)
	}
	return chain, nil
}
