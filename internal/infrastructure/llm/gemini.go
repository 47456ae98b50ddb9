package llm

import (
	"context"
	"log/slog"
	"sync"

	"google.golang.org/genai"

	"HiddenLight/internal/ports"
)

const defaultModel = "gemini-2.5-flash"

const systemInstruction = `
You are a knowledgeable, respectful, and spiritual assistant dedicated to the "Hidden Light" project.
Your purpose is to provide accurate information about the life, teachings, and character of Prophet Muhammad ﷺ.
Always maintain a tone of high respect. Use "ﷺ" (Peace Be Upon Him) after mentioning the Prophet's name.
Base your answers on authentic sources (Quran and Sahih Hadith) where possible.
If asked about controversial topics, answer with wisdom, historical context, and balance.
Your responses should be concise but profound, suitable for a general audience including non-Muslims.
Do not engage in political debates or sectarian arguments. Focus on the universal values of mercy, ethics, and spirituality.
`

// User-facing fallbacks. Assistant failures degrade to text, never errors.
const (
	msgMissingKey = "Please configure the GEMINI_API_KEY in your environment to use the AI features."
	msgAPIError   = "An error occurred while connecting to the knowledge base. Please try again later."
	msgEmpty      = "I could not generate a response at this time."
)

// Gemini answers free-form questions about the corpus through the Gemini
// API. The client is created lazily on the first prompt.
type Gemini struct {
	apiKey      string
	model       string
	temperature float32
	log         *slog.Logger

	once   sync.Once
	client *genai.Client
}

var _ ports.Assistant = (*Gemini)(nil)

// Config carries the assistant settings.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
}

// New builds the Gemini assistant. A missing API key is tolerated; prompts
// then return a configuration hint instead of answers.
func New(cfg Config, log *slog.Logger) *Gemini {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.7
	}
	return &Gemini{
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: temperature,
		log:         log,
	}
}

func (g *Gemini) getClient(ctx context.Context) (*genai.Client, error) {
	var err error
	g.once.Do(func() {
		g.client, err = genai.NewClient(ctx, &genai.ClientConfig{APIKey: g.apiKey})
	})
	return g.client, err
}

// GenerateResponse asks the model and returns its text. Every failure mode
// maps to a fallback string; the caller never sees an error.
func (g *Gemini) GenerateResponse(ctx context.Context, prompt string) string {
	if g.apiKey == "" {
		return msgMissingKey
	}

	client, err := g.getClient(ctx)
	if err != nil || client == nil {
		g.log.Error("assistant client init failed", "error", err)
		return msgAPIError
	}

	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature: genai.Ptr[float32](g.temperature),
	})
	if err != nil {
		g.log.Error("assistant request failed", "model", g.model, "error", err)
		return msgAPIError
	}

	if len(result.Candidates) == 0 ||
		result.Candidates[0].Content == nil ||
		len(result.Candidates[0].Content.Parts) == 0 ||
		result.Candidates[0].Content.Parts[0].Text == "" {
		return msgEmpty
	}
	return result.Candidates[0].Content.Parts[0].Text
}
