package scores

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a score server started with NewHandler.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) AddScore(ctx context.Context, initials string, score int) error {
	if err := Validate(initials, score); err != nil {
		return err
	}
	body, err := json.Marshal(HighScore{Initials: initials, Score: score})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/scores", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("post score: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s", ErrInvalidEntry, strings.TrimSpace(string(msg)))
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("post score: unexpected status %s", resp.Status)
	}
	return nil
}

func (c *Client) TopScores(ctx context.Context) ([]HighScore, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/scores", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get scores: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get scores: unexpected status %s", resp.Status)
	}
	var top []HighScore
	if err := json.NewDecoder(resp.Body).Decode(&top); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	return top, nil
}
