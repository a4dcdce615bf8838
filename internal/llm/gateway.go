package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ProviderResolver resolves a provider identity to a usable provider
// adapter. Resolution may fail when the provider has no credential; the
// gateway treats that exactly like a remote failure and falls through.
// The Registry is the production implementation.
type ProviderResolver interface {
	Resolve(id ProviderID) (Provider, error)
}

// Gateway attempts generation against an ordered fallback chain of
// providers and returns the first success. A Gateway is stateless across
// calls and safe for concurrent use; each Generate call iterates the chain
// independently.
type Gateway struct {
	resolver       ProviderResolver
	chain          []ProviderID
	attemptTimeout time.Duration
	logger         *slog.Logger
}

// GatewayOption customizes a Gateway at construction.
type GatewayOption func(*Gateway)

// WithAttemptTimeout bounds each individual provider attempt. Zero
// disables the per-attempt timeout; the request context still applies.
func WithAttemptTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) { g.attemptTimeout = d }
}

// WithLogger sets the logger used to record per-provider fallthroughs.
// Intermediate failures are a diagnostic concern only; they are always
// aggregated into the final error regardless of logging.
func WithLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) { g.logger = logger }
}

// NewGateway creates a Gateway over the given resolver and fallback chain.
// The chain is attempted in exactly the order given, on every call, with
// no reordering based on prior success or failure. Returns an error if the
// chain is empty or names an unknown provider.
func NewGateway(resolver ProviderResolver, chain []ProviderID, opts ...GatewayOption) (*Gateway, error) {
	if resolver == nil {
		return nil, fmt.Errorf("provider resolver cannot be nil")
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("fallback chain cannot be empty")
	}
	for _, id := range chain {
		if !id.Known() {
			return nil, fmt.Errorf("unknown provider %q in fallback chain", id)
		}
	}

	g := &Gateway{
		resolver: resolver,
		chain:    append([]ProviderID(nil), chain...),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Chain returns a copy of the configured fallback chain.
func (g *Gateway) Chain() []ProviderID {
	return append([]ProviderID(nil), g.chain...)
}

// Generate produces text from the first provider in the chain that can
// answer. Omitted options default to temperature 0.7 and a 1024-token cap;
// the model alias resolves per provider, falling back to "default".
//
// Each provider gets exactly one attempt. Provider N+1 is never attempted
// before provider N's attempt has definitively failed; the first success
// wins and remaining providers are not consulted. When every provider
// fails, Generate returns a *ChainError aggregating each failure as
// "<providerName>: <message>" in attempt order.
func (g *Gateway) Generate(ctx context.Context, prompt string, opts Options) (*Result, error) {
	temperature, maxTokens := opts.withDefaults()

	attempts := make([]*AttemptError, 0, len(g.chain))
	for _, id := range g.chain {
		model := id.ResolveModel(opts.Model)

		provider, err := g.resolver.Resolve(id)
		if err != nil {
			attempts = g.recordFailure(ctx, attempts, id, err)
			continue
		}

		text, err := g.attempt(ctx, provider, prompt, Request{
			Model:       model,
			Temperature: temperature,
			MaxTokens:   maxTokens,
		})
		if err != nil {
			attempts = g.recordFailure(ctx, attempts, id, err)
			continue
		}

		return &Result{Text: text, Provider: id, Model: model}, nil
	}

	return nil, &ChainError{Attempts: attempts}
}

// attempt runs a single provider call under the configured per-attempt
// timeout.
func (g *Gateway) attempt(ctx context.Context, provider Provider, prompt string, req Request) (string, error) {
	if g.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.attemptTimeout)
		defer cancel()
	}
	return provider.Generate(ctx, prompt, req)
}

// recordFailure appends an attempt failure and logs the fallthrough.
func (g *Gateway) recordFailure(ctx context.Context, attempts []*AttemptError, id ProviderID, err error) []*AttemptError {
	attempt := &AttemptError{Provider: id, Err: err}
	g.logger.WarnContext(ctx, "provider attempt failed, falling through",
		"provider", string(id),
		"error", err.Error(),
		"attempt", len(attempts)+1)
	return append(attempts, attempt)
}
