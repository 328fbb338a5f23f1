package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/ai-resume/internal/config"
	"github.com/fadilmartias/ai-resume/internal/schema"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// MaxCompletionTokens caps the size of the tailored resume.
const MaxCompletionTokens = 2048

// CompletionServiceInterface turns a prompt pair into the model's JSON text.
type CompletionServiceInterface interface {
	Complete(ctx context.Context, userPrompt, systemPrompt string) (string, error)
}

type OpenAIService struct {
	APIKey  string
	BaseURL string
	Model   string
	client  *resty.Client
}

func NewOpenAIService(client *resty.Client) *OpenAIService {
	cfg := config.LoadOpenAIConfig()
	return &OpenAIService{
		APIKey:  cfg.APIKey,
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		Model:   cfg.Model,
		client:  client,
	}
}

type textPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type chatMessage struct {
	Role    string     `json:"role"`
	Content []textPart `json:"content"`
}

type jsonSchemaFormat struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type responseFormat struct {
	Type       string           `json:"type"`
	JSONSchema jsonSchemaFormat `json:"json_schema"`
}

type chatCompletionRequest struct {
	Model               string         `json:"model"`
	Messages            []chatMessage  `json:"messages"`
	ResponseFormat      responseFormat `json:"response_format"`
	Temperature         float64        `json:"temperature"`
	TopP                float64        `json:"top_p"`
	FrequencyPenalty    float64        `json:"frequency_penalty"`
	PresencePenalty     float64        `json:"presence_penalty"`
	MaxCompletionTokens int            `json:"max_completion_tokens"`
}

// Complete sends one strict structured-output chat completion request. There is no retry.
func (s *OpenAIService) Complete(ctx context.Context, userPrompt, systemPrompt string) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	resumeSchema, err := schema.Document()
	if err != nil {
		return "", fmt.Errorf("load output schema: %w", err)
	}

	payload := chatCompletionRequest{
		Model: s.Model,
		Messages: []chatMessage{
			{Role: "system", Content: []textPart{{Type: "text", Text: systemPrompt}}},
			{Role: "user", Content: []textPart{{Type: "text", Text: userPrompt}}},
		},
		ResponseFormat: responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchemaFormat{
				Name:   schema.Name,
				Strict: true,
				Schema: resumeSchema,
			},
		},
		Temperature:         1,
		TopP:                1,
		FrequencyPenalty:    0,
		PresencePenalty:     0,
		MaxCompletionTokens: MaxCompletionTokens,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.BaseURL + "/chat/completions")
	if err != nil {
		return "", &UpstreamError{Service: "openai", Err: err}
	}
	if resp.IsError() {
		return "", &UpstreamError{Service: "openai", StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	body := resp.String()
	if refusal := gjson.Get(body, "choices.0.message.refusal"); refusal.Exists() && refusal.String() != "" {
		return "", &UpstreamError{Service: "openai", StatusCode: resp.StatusCode(), Err: fmt.Errorf("model refused: %s", refusal.String())}
	}
	content := gjson.Get(body, "choices.0.message.content")
	if !content.Exists() || content.String() == "" {
		return "", &UpstreamError{Service: "openai", StatusCode: resp.StatusCode(), Err: fmt.Errorf("no content in completion response")}
	}
	return content.String(), nil
}
