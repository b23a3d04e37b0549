package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const jsonSystemPrompt = "Respond with a single JSON value only. Do not wrap it in markdown."

// OpenAIClient implements Client using the openai-go chat completions API.
type OpenAIClient struct {
	client openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI client. config.BaseURL selects an
// OpenAI-compatible endpoint.
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, missingKeyError(ProviderOpenAI)
	}
	if config == nil {
		config = DefaultOpenAIConfig()
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		config: config,
	}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.complete(ctx, tier, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	})
}

// GenerateJSON generates JSON content using the specified model tier
func (c *OpenAIClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.complete(ctx, tier, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(jsonSystemPrompt),
		openai.UserMessage(prompt),
	})
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *OpenAIClient) complete(ctx context.Context, tier ModelTier, msgs []openai.ChatCompletionMessageParamUnion) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", &ServiceError{
			Kind:     KindConfiguration,
			Provider: ProviderOpenAI,
			Message:  fmt.Sprintf("no model configured for tier %s", tier),
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(modelName),
		Messages: msgs,
	})
	if err != nil {
		return "", Classify(ProviderOpenAI, fmt.Errorf("chat completion failed: %w", err))
	}
	if len(resp.Choices) == 0 {
		return "", &ServiceError{Kind: KindUnknown, Provider: ProviderOpenAI, Message: "empty choices"}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the HTTP client holds no resources.
func (c *OpenAIClient) Close() error {
	return nil
}
