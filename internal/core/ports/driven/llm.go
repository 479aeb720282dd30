package driven

import "context"

// CompletionService is one chat-completion provider.
//
// Providers are interchangeable: the answer generator holds an ordered
// list and tries each in turn until one succeeds. Implementations run
// at zero sampling temperature so answers are deterministic.
//
// Implementations may include:
//   - Groq (OpenAI-compatible chat completions)
//   - Google Gemini (generateContent)
type CompletionService interface {
	// Complete produces a completion for the prompt.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider in logs and errors.
	Name() string
}
