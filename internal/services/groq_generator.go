package services

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"
	groqModel   = "llama-3.3-70b-versatile"
)

var errNoAPIKey = errors.New("no API key configured")

// GroqGenerator talks to Groq's OpenAI-compatible chat endpoint. With an
// empty API key it stays usable and simply fails every call, which the
// assistant degrades to its offline reply.
type GroqGenerator struct {
	client *openai.Client
}

func NewGroqGenerator(apiKey string) *GroqGenerator {
	if apiKey == "" {
		return &GroqGenerator{}
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	return &GroqGenerator{client: openai.NewClientWithConfig(cfg)}
}

func (g *GroqGenerator) Generate(ctx context.Context, systemPrompt, userQuery string) (string, error) {
	if g.client == nil {
		return "", errNoAPIKey
	}
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: groqModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userQuery},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}
