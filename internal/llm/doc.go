// Package llm implements the multi-provider text-generation gateway.
//
// A Gateway holds an ordered fallback chain of provider identities. Each
// Generate call walks the chain sequentially, makes exactly one attempt per
// provider, and returns the first successful result together with the
// provider and model that produced it. When every provider fails, the call
// fails with a ChainError aggregating every per-provider failure in attempt
// order. The gateway never reorders the chain, never retries a provider,
// and never substitutes content on failure.
//
// Provider clients are resolved lazily: credentials are read from
// configuration on first use of each provider and the constructed client is
// cached for the process lifetime behind a sync.Once, so concurrent first
// use is safe.
package llm
