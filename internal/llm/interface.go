package llm

import "context"

// Generator produces text from an instruction prompt and a content payload.
type Generator interface {
	Generate(ctx context.Context, prompt, content string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt, content string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt, content string) (string, error) {
	return f(ctx, prompt, content)
}
