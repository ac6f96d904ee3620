package openai

import (
	"LeadReceptionist/pkg/extraction"
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
)

type chatGPTService struct {
	client *openai.Client
	model  string
}

func NewChatGPT() extraction.IExtractor {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_CHAT_MODEL")

	if model == "" {
		model = openai.GPT4oMini
	}

	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}

	return &chatGPTService{
		client: client,
		model:  model,
	}
}

func (c *chatGPTService) Extract(ctx context.Context, req extraction.Request) (*extraction.Proposal, error) {
	if c.client == nil {
		return nil, fmt.Errorf("openai: %w", extraction.ErrNotConfigured)
	}

	userPrompt, err := extraction.UserPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("failed to render extraction prompt: %w", err)
	}

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: extraction.SystemPrompt,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: userPrompt,
		},
	}

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: 0.2,
			MaxTokens:   300,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("ChatGPT API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, extraction.ErrEmptyResponse
	}

	return extraction.ParseProposal(resp.Choices[0].Message.Content)
}
