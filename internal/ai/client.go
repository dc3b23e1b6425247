package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client talks to the external AI service used for content moderation,
// embeddings and category suggestion. The service itself is an opaque
// collaborator; only the request/response contract lives here.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type ModerationInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	City        string `json:"city,omitempty"`
}

type ModerationVerdict struct {
	Status  string   `json:"status"` // approved | flagged | rejected
	Reasons []string `json:"reasons,omitempty"`
}

func (c *Client) Moderate(ctx context.Context, in ModerationInput) (*ModerationVerdict, error) {
	var out ModerationVerdict
	if err := c.post(ctx, "/v1/moderate", in, &out); err != nil {
		return nil, err
	}
	switch out.Status {
	case "approved", "flagged", "rejected":
		return &out, nil
	}
	return nil, fmt.Errorf("ai: unexpected moderation status %q", out.Status)
}

type embeddingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	City        string `json:"city,omitempty"`
}

type embeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}

func (c *Client) GenerateEmbedding(ctx context.Context, in ModerationInput) ([]float64, error) {
	var out embeddingResponse
	req := embeddingRequest{Title: in.Title, Description: in.Description, Category: in.Category, City: in.City}
	if err := c.post(ctx, "/v1/embeddings", req, &out); err != nil {
		return nil, err
	}
	if len(out.Embedding) == 0 {
		return nil, fmt.Errorf("ai: empty embedding")
	}
	return out.Embedding, nil
}

type suggestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type suggestResponse struct {
	Category string `json:"category"`
}

// SuggestCategory returns a suggested category slug path for a draft.
func (c *Client) SuggestCategory(ctx context.Context, title, description string) (string, error) {
	var out suggestResponse
	if err := c.post(ctx, "/v1/suggest-category", suggestRequest{Title: title, Description: description}, &out); err != nil {
		return "", err
	}
	return out.Category, nil
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	if c.baseURL == "" {
		return fmt.Errorf("ai: base URL not configured")
	}

	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ai: %s returned %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FormatVector renders an embedding as the store's vector literal, e.g.
// "[0.12,0.34]".
func FormatVector(v []float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
	}
	b.WriteByte(']')
	return b.String()
}
