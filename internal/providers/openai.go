package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAI talks to the OpenAI chat completions API through go-openai.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI provider from OPENAI_API_KEY.
// OHMYFIX_OPENAI_BASE_URL points it at a compatible endpoint.
func NewOpenAI(model string) (*OpenAI, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, &authError{message: "OPENAI_API_KEY environment variable is not set"}
	}
	return newOpenAIWithConfig(key, model, os.Getenv("OHMYFIX_OPENAI_BASE_URL"), &http.Client{Timeout: 120 * time.Second}), nil
}

func newOpenAIWithConfig(key, model, baseURL string, httpClient *http.Client) *OpenAI {
	cfg := openai.DefaultConfig(key)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = httpClient
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Generate(ctx context.Context, req Request) (Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	chatReq := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: float32(req.Temperature),
	}

	var resp Response
	err := retryWithBackoff(ctx, 3, func() error {
		out, err := o.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return classifyOpenAIError(err)
		}
		if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
			return fmt.Errorf("no content in response")
		}
		resp = Response{
			Content:    out.Choices[0].Message.Content,
			TokensUsed: out.Usage.TotalTokens,
		}
		return nil
	})
	return resp, err
}

// classifyOpenAIError maps go-openai errors onto the package's typed errors.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode, reqErr.Error())
	}
	return fmt.Errorf("sending request: %w", err)
}
