package llm

import "context"

// ProviderID identifies one of the supported remote text-generation
// services. The set is fixed at compile time.
type ProviderID string

// Supported provider identities.
const (
	ProviderGemini      ProviderID = "gemini"
	ProviderGroq        ProviderID = "groq"
	ProviderHuggingFace ProviderID = "huggingface"
	ProviderTogether    ProviderID = "together"
	ProviderOllama      ProviderID = "ollama"
)

// DefaultAlias is the model alias every provider must map. Unknown or empty
// aliases resolve to it.
const DefaultAlias = "default"

// modelAliases maps each provider's model aliases to concrete model names.
// This is static data; it is never computed or mutated at runtime.
var modelAliases = map[ProviderID]map[string]string{
	ProviderGemini: {
		DefaultAlias: "gemini-2.0-flash",
		"fast":       "gemini-2.0-flash-lite",
		"pro":        "gemini-2.5-pro",
	},
	ProviderGroq: {
		DefaultAlias: "llama-3.3-70b-versatile",
		"fast":       "llama-3.1-8b-instant",
		"pro":        "llama-3.3-70b-versatile",
	},
	ProviderHuggingFace: {
		DefaultAlias: "mistralai/Mistral-7B-Instruct-v0.3",
		"fast":       "microsoft/Phi-3-mini-4k-instruct",
		"pro":        "mistralai/Mixtral-8x7B-Instruct-v0.1",
	},
	ProviderTogether: {
		DefaultAlias: "meta-llama/Llama-3.3-70B-Instruct-Turbo",
		"fast":       "meta-llama/Llama-3.2-3B-Instruct-Turbo",
		"pro":        "meta-llama/Llama-3.3-70B-Instruct-Turbo",
	},
	ProviderOllama: {
		DefaultAlias: "llama3.2",
		"fast":       "llama3.2:1b",
		"pro":        "llama3.1:8b",
	},
}

// Known reports whether id names a supported provider.
func (id ProviderID) Known() bool {
	_, ok := modelAliases[id]
	return ok
}

// ResolveModel resolves a model alias to this provider's concrete model
// name, falling back to the provider's default model for unknown or empty
// aliases. An alias that is already a concrete model name for another
// provider still falls back to the default; callers pass aliases, not
// model names.
func (id ProviderID) ResolveModel(alias string) string {
	aliases, ok := modelAliases[id]
	if !ok {
		return ""
	}
	if model, ok := aliases[alias]; ok {
		return model
	}
	return aliases[DefaultAlias]
}

// Request carries the fully-resolved parameters for one provider attempt:
// the concrete model name and the sampling settings with defaults already
// applied.
type Request struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Provider is the uniform capability every provider adapter implements.
// Generate issues one provider-specific call and returns the plain
// generated text with the provider envelope stripped (choice/candidate
// arrays unwrapped, echoed prompt prefixes removed).
//
// Implementations must respect context cancellation and return an error
// whose message includes the underlying cause: a missing credential, a
// non-success transport status, or a malformed payload are all surfaced as
// ordinary errors so the gateway can fall through to the next provider.
type Provider interface {
	ID() ProviderID
	Generate(ctx context.Context, prompt string, req Request) (string, error)
}
