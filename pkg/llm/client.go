// Package llm implements the extraction boundary against an
// OpenAI-compatible chat completion service.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"

	"offerflow/domain"
	"offerflow/extraction"
)

type Client struct {
	model  llms.Model
	logger *zap.Logger
}

func NewClient(modelName, apiKey string, logger *zap.Logger) (*Client, error) {
	model, err := openai.New(
		openai.WithModel(modelName),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}
	return &Client{model: model, logger: logger}, nil
}

// Extract sends one chunk (or image payload) to the service and decodes the
// structured rows out of its reply.
func (c *Client) Extract(ctx context.Context, req extraction.Request) ([]domain.Row, error) {
	prompt, err := extraction.BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	userParts := []llms.ContentPart{llms.TextPart(prompt)}
	if req.Mode == extraction.ModeImage {
		userParts = append(userParts, llms.ImageURLPart(req.ImageURL))
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, extraction.SystemPrompt),
		{Role: schema.ChatMessageTypeHuman, Parts: userParts},
	}

	resp, err := c.model.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", extraction.ErrBadResponse)
	}

	content := resp.Choices[0].Content
	c.logger.Debug("extraction response received",
		zap.String("mode", string(req.Mode)),
		zap.Int("rows_sent", len(req.Rows)),
		zap.Int("response_bytes", len(content)))

	return extraction.DecodeRows(content)
}

// Translate renders a description in English, preserving brand names.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman,
			fmt.Sprintf(extraction.TranslatePrompt, text)),
	}

	resp, err := c.model.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("translation call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("translation returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}
