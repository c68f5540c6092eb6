package llm

import "context"

// Provider does one-shot text generation. Callers build the full prompt;
// the provider adds nothing besides the system instruction it was
// constructed with.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
