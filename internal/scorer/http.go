package scorer

import (
	"context"
	"fmt"
	"time"

	"health_guardian/internal/domain"

	"github.com/go-resty/resty/v2"
)

// HTTPScorer posts the CSV to a remote scorer service
type HTTPScorer struct {
	client *resty.Client
}

// NewHTTPScorer creates an HTTPScorer for the service at baseURL
func NewHTTPScorer(baseURL string, timeout time.Duration) *HTTPScorer {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Accept", "application/json")
	return &HTTPScorer{client: client}
}

// Score uploads the file and decodes the predictions in the response body
func (s *HTTPScorer) Score(ctx context.Context, path string) ([]domain.Prediction, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetFile("file", path).
		Post("/predict")
	if err != nil {
		return nil, fmt.Errorf("call scorer: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("scorer returned status %d", resp.StatusCode())
	}
	return ParseOutput(resp.Body())
}
