package llm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careergenie/careergenie-api/internal/config"
)

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()
		registry := NewRegistry(config.LLMConfig{})
		_, err := registry.Resolve("openai")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown provider")
	})

	t.Run("missing credential yields ErrNotConfigured", func(t *testing.T) {
		t.Parallel()
		registry := NewRegistry(config.LLMConfig{})

		for _, id := range []ProviderID{ProviderGroq, ProviderTogether, ProviderHuggingFace, ProviderGemini, ProviderOllama} {
			provider, err := registry.Resolve(id)
			assert.Nil(t, provider, "provider %s", id)
			assert.ErrorIs(t, err, ErrNotConfigured, "provider %s", id)
		}
	})

	t.Run("missing credential is cached for the process lifetime", func(t *testing.T) {
		t.Parallel()
		registry := NewRegistry(config.LLMConfig{})

		_, first := registry.Resolve(ProviderGroq)
		require.ErrorIs(t, first, ErrNotConfigured)

		// Mutating the config after first use must not matter; the
		// resolution result is frozen.
		registry.cfg.GroqAPIKey = "late-key"
		provider, second := registry.Resolve(ProviderGroq)
		assert.Nil(t, provider)
		assert.Equal(t, first, second)
	})

	t.Run("configured providers resolve to adapters", func(t *testing.T) {
		t.Parallel()
		registry := NewRegistry(config.LLMConfig{
			GroqAPIKey:        "gk",
			TogetherAPIKey:    "tk",
			HuggingFaceAPIKey: "hk",
			OllamaHost:        "http://localhost:11434",
		})

		for _, id := range []ProviderID{ProviderGroq, ProviderTogether, ProviderHuggingFace, ProviderOllama} {
			provider, err := registry.Resolve(id)
			require.NoError(t, err, "provider %s", id)
			assert.Equal(t, id, provider.ID())
		}
	})

	t.Run("repeated resolution returns the same adapter", func(t *testing.T) {
		t.Parallel()
		registry := NewRegistry(config.LLMConfig{GroqAPIKey: "gk"})

		first, err := registry.Resolve(ProviderGroq)
		require.NoError(t, err)
		second, err := registry.Resolve(ProviderGroq)
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("concurrent first use constructs once", func(t *testing.T) {
		t.Parallel()
		registry := NewRegistry(config.LLMConfig{GroqAPIKey: "gk"})

		const goroutines = 16
		providers := make([]Provider, goroutines)
		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				providers[i], _ = registry.Resolve(ProviderGroq)
			}(i)
		}
		wg.Wait()

		for i := 1; i < goroutines; i++ {
			assert.Same(t, providers[0], providers[i])
		}
	})
}

func TestChainFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("valid names", func(t *testing.T) {
		t.Parallel()
		chain, err := ChainFromConfig([]string{"gemini", "groq", "ollama"})
		require.NoError(t, err)
		assert.Equal(t, []ProviderID{ProviderGemini, ProviderGroq, ProviderOllama}, chain)
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		_, err := ChainFromConfig([]string{"gemini", "anthropic"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "anthropic")
	})
}

func TestResolveModel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider ProviderID
		alias    string
		want     string
	}{
		{"empty alias falls back to default", ProviderGemini, "", "gemini-2.0-flash"},
		{"default alias", ProviderGroq, "default", "llama-3.3-70b-versatile"},
		{"fast alias", ProviderOllama, "fast", "llama3.2:1b"},
		{"pro alias", ProviderTogether, "pro", "meta-llama/Llama-3.3-70B-Instruct-Turbo"},
		{"unknown alias falls back to default", ProviderHuggingFace, "gpt-4o", "mistralai/Mistral-7B-Instruct-v0.3"},
		{"concrete name of another provider is still an alias", ProviderGroq, "gemini-2.0-flash", "llama-3.3-70b-versatile"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.provider.ResolveModel(tc.alias))
		})
	}
}
