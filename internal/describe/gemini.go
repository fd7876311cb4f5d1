package describe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"

	"github.com/jmylchreest/swatch/internal/colour"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// ErrMissingAPIKey is returned when the Gemini describer has no API key.
var ErrMissingAPIKey = errors.New("GOOGLE_API_KEY is required for the gemini describer\nGet one at: https://aistudio.google.com/api-keys")

// generateFunc sends a prompt to a model and returns the text reply.
type generateFunc func(ctx context.Context, model, prompt string) (string, error)

// Gemini asks a Gemini model to describe the palette.
type Gemini struct {
	apiKey   string
	model    string
	logger   hclog.Logger
	generate generateFunc
}

// NewGemini creates a Gemini describer.
func NewGemini(apiKey, model string, logger hclog.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	g := &Gemini{apiKey: apiKey, model: model, logger: logger}
	g.generate = g.generateContent
	return g, nil
}

// Name returns the describer name.
func (g *Gemini) Name() string { return NameGemini }

// Describe implements Describer.
func (g *Gemini) Describe(ctx context.Context, p colour.Palette) (colour.Personality, error) {
	if p.IsEmpty() {
		return colour.Personality{}, ErrEmptyPalette
	}

	prompt := buildPrompt(p)
	g.logger.Debug("requesting palette description", "model", g.model, "colours", p.Len())

	reply, err := g.generate(ctx, g.model, prompt)
	if err != nil {
		return colour.Personality{}, fmt.Errorf("gemini description failed: %w", err)
	}

	personality, err := parsePersonality(reply)
	if err != nil {
		return colour.Personality{}, err
	}
	// The hue family stays deterministic so output can be grouped.
	personality.Family = colour.Describe(p.Entries[0].RGB).Family
	return personality, nil
}

func (g *Gemini) generateContent(ctx context.Context, model, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gen AI client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	response, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}

	text := response.Text()
	if text == "" {
		return "", fmt.Errorf("no text in response")
	}
	return text, nil
}

func buildPrompt(p colour.Palette) string {
	var sb strings.Builder
	sb.WriteString("You are a colour psychologist. Describe the mood of this palette, ")
	sb.WriteString("focusing on the first (dominant) colour.\n\nPalette:\n")
	for i, e := range p.Entries {
		fmt.Fprintf(&sb, "%d. %s (%.1f%%)\n", i+1, e.Hex, e.Percentage)
	}
	sb.WriteString("\nReply with a JSON object with the keys ")
	sb.WriteString(`"name" (a short evocative title), "description" (one or two sentences), `)
	sb.WriteString(`"traits" (exactly five single-word traits) and "recommendations" (one sentence on where to use it).`)
	return sb.String()
}

// parsePersonality decodes a model reply, tolerating markdown code fences.
func parsePersonality(reply string) (colour.Personality, error) {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")

	var personality colour.Personality
	if err := json.Unmarshal([]byte(strings.TrimSpace(reply)), &personality); err != nil {
		return colour.Personality{}, fmt.Errorf("failed to parse gemini reply: %w", err)
	}
	if personality.Name == "" || personality.Description == "" {
		return colour.Personality{}, fmt.Errorf("gemini reply is missing name or description")
	}
	return personality, nil
}
