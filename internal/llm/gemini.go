package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/playlist-digest/internal/logger"
	"google.golang.org/genai"
)

// ErrEmptyResponse is returned when Gemini answers without any text.
var ErrEmptyResponse = errors.New("empty response from Gemini")

type geminiGenerator struct {
	clients    []*genai.Client
	model      string
	logger     logger.Logger
	mu         sync.Mutex
	currentKey int
}

// NewGemini creates a Generator backed by the Gemini API. With several keys
// the generator moves to the next key whenever the current one is rate limited.
func NewGemini(ctx context.Context, apiKeys []string, model string, log logger.Logger) (Generator, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("at least one Gemini API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clients := make([]*genai.Client, 0, len(apiKeys))
	for i, key := range apiKeys {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create client for key %d: %w", i+1, err)
		}
		clients = append(clients, client)
	}

	return &geminiGenerator{
		clients: clients,
		model:   model,
		logger:  log,
	}, nil
}

// Generate sends prompt and content as two text parts of one user turn.
func (g *geminiGenerator) Generate(ctx context.Context, prompt, content string) (string, error) {
	client, idx := g.client()

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromText(content),
		}, genai.RoleUser),
	}

	result, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		if isQuotaError(err) && len(g.clients) > 1 {
			g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
			g.rotateKey(idx)
		}
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := responseText(result)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (g *geminiGenerator) client() (*genai.Client, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.clients[g.currentKey], g.currentKey
}

// rotateKey advances past failed unless another call already did.
func (g *geminiGenerator) rotateKey(failed int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == failed {
		g.currentKey = (g.currentKey + 1) % len(g.clients)
	}
}

// responseText concatenates the text parts of the first candidate.
func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	return text.String()
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
