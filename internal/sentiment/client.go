// Package sentiment calls the external sentiment classification service to
// tag a journal entry at ingestion time. The call is best effort: a failure
// leaves the entry untagged and never blocks saving it.
package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"innerlog/internal/mood"
)

// Result is the classifier's verdict for one text.
type Result struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	RawLabel   string  `json:"raw_label"`
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// Analyze posts the entry text to the classifier and returns its label and
// confidence.
func (c *Client) Analyze(ctx context.Context, text string) (*Result, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sentiment service returned %d", resp.StatusCode)
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	if res.Sentiment == "" {
		return nil, fmt.Errorf("sentiment service returned no label")
	}
	return &res, nil
}

// TagFor collapses the classifier's five-way label into the coarse mood tag
// stored on a journal entry. Unknown labels count as neutral.
func TagFor(label string) string {
	switch label {
	case "Very Positive", "Positive":
		return mood.TagPositive
	case "Very Negative", "Negative":
		return mood.TagNegative
	default:
		return mood.TagNeutral
	}
}
