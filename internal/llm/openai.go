package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	openaioption "github.com/openai/openai-go/v3/option"
)

const (
	openAIMaxTokens   = 2048
	openAITemperature = 0.1
	jsonOnlyMessage   = "You must respond with valid JSON only. Do not include any text outside the JSON object."
)

// OpenAIClient implements Client for the OpenAI chat completions API
type OpenAIClient struct {
	client *openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultOpenAIConfig()
	}

	client := openai.NewClient(openaioption.WithAPIKey(apiKey))
	return &OpenAIClient{
		client: &client,
		config: config,
	}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.generate(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	}, tier)
}

// GenerateJSON generates JSON content using the specified model tier
func (c *OpenAIClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.generate(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(jsonOnlyMessage),
		openai.UserMessage(prompt),
	}, tier)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *OpenAIClient) generate(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", &BackendError{Provider: ProviderOpenAI, Message: fmt.Sprintf("no model configured for tier %s", tier)}
	}

	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(modelName),
		Messages:            messages,
		MaxCompletionTokens: openai.Int(openAIMaxTokens),
	}
	// gpt-5 family rejects sampling parameters
	if !strings.HasPrefix(modelName, "gpt-5") {
		params.Temperature = openai.Float(openAITemperature)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", &BackendError{Provider: ProviderOpenAI, Model: modelName, Message: "failed to generate content", Cause: err}
	}
	return completionText(resp, modelName)
}

func completionText(resp *openai.ChatCompletion, model string) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", &BackendError{Provider: ProviderOpenAI, Model: model, Message: "no choices in response"}
	}
	return nonEmpty(ProviderOpenAI, model, resp.Choices[0].Message.Content)
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client. The HTTP client needs no teardown.
func (c *OpenAIClient) Close() error {
	return nil
}
