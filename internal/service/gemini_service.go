package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/ai-resume/internal/config"
	"github.com/fadilmartias/ai-resume/internal/schema"
	"google.golang.org/genai"
)

type GeminiService struct {
	Client *genai.Client
	Model  string
}

func NewGeminiService(ctx context.Context) (*GeminiService, error) {
	geminiConfig := config.LoadGeminiConfig()
	if geminiConfig.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_AUTH not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return NewGeminiServiceWithClient(client, geminiConfig.Model), nil
}

func NewGeminiServiceWithClient(client *genai.Client, model string) *GeminiService {
	return &GeminiService{Client: client, Model: model}
}

// Complete asks Gemini for a response constrained to the resume schema. Single attempt.
func (s *GeminiService) Complete(ctx context.Context, userPrompt, systemPrompt string) (string, error) {
	if s.Model == "" {
		return "", fmt.Errorf("model name cannot be empty")
	}
	if strings.TrimSpace(userPrompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	resumeSchema, err := schema.Document()
	if err != nil {
		return "", fmt.Errorf("load output schema: %w", err)
	}

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction:  genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:        genai.Ptr(float32(1)),
		TopP:               genai.Ptr(float32(1)),
		FrequencyPenalty:   genai.Ptr(float32(0)),
		PresencePenalty:    genai.Ptr(float32(0)),
		MaxOutputTokens:    MaxCompletionTokens,
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: resumeSchema,
	}

	result, err := s.Client.Models.GenerateContent(ctx, s.Model, genai.Text(userPrompt), genConfig)
	if err != nil {
		upstream := &UpstreamError{Service: "gemini", Err: err}
		var apiErr genai.APIError
		var apiErrPtr *genai.APIError
		switch {
		case errors.As(err, &apiErr):
			upstream.StatusCode = apiErr.Code
		case errors.As(err, &apiErrPtr):
			upstream.StatusCode = apiErrPtr.Code
		}
		return "", upstream
	}

	if err := validateGenerateResponse(result); err != nil {
		return "", &UpstreamError{Service: "gemini", Err: fmt.Errorf("invalid response: %w", err)}
	}
	return result.Text(), nil
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}
