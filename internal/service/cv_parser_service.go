package service

import (
	"context"
	"fmt"

	"github.com/fadilmartias/ai-resume/internal/config"
	"github.com/go-resty/resty/v2"
)

type CVParserServiceInterface interface {
	Parse(ctx context.Context, resumeURL string) ([]byte, error)
}

type CVParserService struct {
	URL    string
	APIKey string
	client *resty.Client
}

func NewCVParserService(client *resty.Client) *CVParserService {
	cfg := config.LoadCVParserConfig()
	return &CVParserService{
		URL:    cfg.URL,
		APIKey: cfg.APIKey,
		client: client,
	}
}

// Parse asks the parsing service to parse the resume at resumeURL and returns the raw
// JSON response body.
func (s *CVParserService) Parse(ctx context.Context, resumeURL string) ([]byte, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "insomnia/2023.5.8").
		SetBody(map[string]string{"resumeUrl": resumeURL}).
		Post(s.URL)
	if err != nil {
		return nil, &UpstreamError{Service: "cv parser", Err: err}
	}
	if resp.IsError() {
		return nil, &UpstreamError{Service: "cv parser", StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	if len(resp.Body()) == 0 {
		return nil, &UpstreamError{Service: "cv parser", StatusCode: resp.StatusCode(), Err: fmt.Errorf("empty response body")}
	}
	return resp.Body(), nil
}
