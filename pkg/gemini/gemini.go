package gemini

import (
	"LeadReceptionist/pkg/extraction"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type geminiClient struct {
	modelName string
	client    *genai.Client
}

// NewGeminiClient builds the Gemini extractor. A missing API key is not an
// error here; Extract reports it on first use.
func NewGeminiClient() (extraction.IExtractor, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")

	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	if apiKey == "" {
		return &geminiClient{modelName: modelName}, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &geminiClient{
		modelName: modelName,
		client:    client,
	}, nil
}

func (g *geminiClient) Extract(ctx context.Context, req extraction.Request) (*extraction.Proposal, error) {
	if g.client == nil {
		return nil, fmt.Errorf("gemini: %w", extraction.ErrNotConfigured)
	}

	userPrompt, err := extraction.UserPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("failed to render extraction prompt: %w", err)
	}

	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = genai.NewUserContent(genai.Text(extraction.SystemPrompt))
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.2)

	res, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return nil, err
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return nil, extraction.ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		text, ok := part.(genai.Text)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected Gemini part %T", extraction.ErrMalformedProposal, part)
		}
		b.WriteString(string(text))
	}

	return extraction.ParseProposal(b.String())
}

func (g *geminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}
