package llm

// Default sampling settings applied per call when the caller omits them.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1024
)

// Options is the caller-facing options bag for a generation request.
// Nil fields fall back to the package defaults; Model is a model alias
// (e.g. "default", "fast", "pro") resolved per provider.
type Options struct {
	Temperature *float64
	MaxTokens   *int
	Model       string
}

// Float64 returns a pointer to v, for building Options literals.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v, for building Options literals.
func Int(v int) *int { return &v }

// withDefaults returns the effective temperature and max-token cap for
// this options bag. Values present in the bag are used verbatim.
func (o Options) withDefaults() (temperature float64, maxTokens int) {
	temperature = DefaultTemperature
	if o.Temperature != nil {
		temperature = *o.Temperature
	}
	maxTokens = DefaultMaxTokens
	if o.MaxTokens != nil {
		maxTokens = *o.MaxTokens
	}
	return temperature, maxTokens
}

// Result is the normalized output of a successful generation attempt.
// It is immutable after construction and not retained by the gateway.
type Result struct {
	// Text is the generated text with the provider envelope stripped.
	Text string

	// Provider identifies which provider in the chain produced the text.
	Provider ProviderID

	// Model is the resolved concrete model name that was used.
	Model string
}
