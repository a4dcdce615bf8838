// Package generation turns career-coaching requests into language-model
// prompts and parses the model output back into domain objects. It sits
// between the application services and the llm fallback gateway: services
// ask for interview questions, answer evaluations, career recommendations,
// resume analyses, or coaching replies, and this package owns the prompt
// wording, the JSON response contracts, and the tolerant decoding of
// model output.
package generation
