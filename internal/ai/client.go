// Package ai talks to the thematic inference provider over an
// OpenAI-compatible chat-completion API. All of its output is treated as
// untrusted text and validated before it reaches the correlation engine.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/SBleeyouk/deepfake-daily/internal/correlation"
	"github.com/SBleeyouk/deepfake-daily/internal/entry"
	"github.com/SBleeyouk/deepfake-daily/pkg/errors"
	"github.com/SBleeyouk/deepfake-daily/pkg/logger"
)

// MinLinkStrength is the confidence floor for inferred links. Tunable
// policy, not a protocol requirement.
const MinLinkStrength = 0.3

// Client is the inference provider adapter.
type Client struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewClient creates an adapter against an OpenAI-compatible endpoint.
// A dummy key is substituted when none is configured, for local gateways
// that don't check it.
func NewClient(baseURL, apiKey, model string) *Client {
	if apiKey == "" {
		apiKey = "dummy-key"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = strings.TrimRight(baseURL, "/") + "/v1"

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
		logger: logger.Get(),
	}
}

// HeadlineInput carries the entry fields a headline is generated from.
type HeadlineInput struct {
	Comments      string
	AttachmentURL string
	Category      entry.Category
	Tags          []string
}

// GenerateHeadline produces a short title for an entry being logged.
func (c *Client) GenerateHeadline(ctx context.Context, in HeadlineInput) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a concise summary headline (max 15 words) for a research log entry about deepfakes.\n\n")
	fmt.Fprintf(&b, "Category: %s\n", in.Category)
	fmt.Fprintf(&b, "Tags: %s\n", strings.Join(in.Tags, ", "))
	if in.Comments != "" {
		fmt.Fprintf(&b, "Notes: %s\n", in.Comments)
	}
	if in.AttachmentURL != "" {
		fmt.Fprintf(&b, "Source URL: %s\n", in.AttachmentURL)
	}
	b.WriteString("\nReturn ONLY the headline text, nothing else.")

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: 100,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: b.String()},
		},
	})
	if err != nil {
		return "", errors.NewInferenceFailed(c.model, err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.ErrInferenceEmpty
	}

	headline := strings.TrimSpace(resp.Choices[0].Message.Content)
	if headline == "" {
		return "", errors.ErrInferenceEmpty
	}
	return headline, nil
}

// InferLinks asks the provider for thematic connections across the working
// set. Fewer than two entries short-circuits to nil without an outbound
// call. The provider gets exactly one attempt per invocation; retrying a
// metered API on every cache miss would amplify load, and a failed call just
// degrades the view to manual links.
func (c *Client) InferLinks(ctx context.Context, entries []entry.Entry) ([]correlation.Link, error) {
	if len(entries) < 2 {
		return nil, nil
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: 4096,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: correlationPrompt(entries)},
		},
	})
	if err != nil {
		return nil, errors.NewInferenceFailed(c.model, err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.ErrInferenceEmpty
	}

	links, err := decodeLinks(resp.Choices[0].Message.Content)
	if err != nil {
		// Malformed output is expected noise from a language model, not a
		// pipeline failure.
		c.logger.Warn("Failed to parse correlation response",
			zap.Error(err),
			zap.String("model", c.model),
		)
		return nil, nil
	}

	c.logger.Debug("Inferred thematic links",
		zap.Int("entries", len(entries)),
		zap.Int("links", len(links)),
	)
	return links, nil
}

func correlationPrompt(entries []entry.Entry) string {
	var summaries strings.Builder
	for i, e := range entries {
		comments := e.Comments
		if comments == "" {
			comments = "none"
		}
		fmt.Fprintf(&summaries, "[%d] ID: %s | Title: %s | Category: %s | Tags: %s | Comments: %s\n",
			i, e.ID, e.Title, e.Category, strings.Join(e.Tags, ", "), comments)
	}

	return fmt.Sprintf(`You are analyzing a research database about deepfakes. Each entry has an ID, headline, category, tags, and comments. Identify pairs of entries that are thematically connected.

Return ONLY a JSON array of objects with these fields:
- sourceId (string): the entry ID of the source entry
- targetId (string): the entry ID of the target entry
- label (string): brief description of connection (3-6 words)
- strength (number): 0.0 to 1.0

Only include connections with strength >= %.1f. Be selective - focus on meaningful thematic connections, not just shared categories.

Entries:
%s
Return ONLY the JSON array, no markdown fences or extra text.`, MinLinkStrength, summaries.String())
}
