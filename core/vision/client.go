package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// recognitionPrompt instructs the model to emit nothing but the detection array.
const recognitionPrompt = `Analyze the provided image, which shows various packaged products.
Identify each distinct product and count how many units of each are visible.
Respond ONLY with a JSON array of objects in the following format:
[{"product": <product_name>, "quantity": <integer count>}]
Strictly follow the format.
Do not include any extra text, comments, or formatting. Only output valid JSON.`

// ErrNoChoices is returned when the provider answers 200 but with an empty choice list.
var ErrNoChoices = errors.New("vision response contained no choices")

// Classifier labels packaged products on a photo.
type Classifier interface {
	// Classify returns the detections for the given image bytes.
	// A returned error means the upstream call or its payload failed as a
	// whole; individual malformed detections degrade to zero values instead.
	Classify(ctx context.Context, image []byte) ([]Detection, error)
}

// Client is an OpenAI-compatible chat-completions classifier.
type Client struct {
	baseURL string
	model   string
	apiKey  string
	http    *http.Client
}

// NewClient creates a classifier client from the configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		model:   cfg.Model,
		apiKey:  cfg.ApiKey,
		http:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Classify sends the image to the vision endpoint and parses the detections.
func (c *Client) Classify(ctx context.Context, image []byte) ([]Detection, error) {
	if c.apiKey == "" {
		return nil, errors.New("vision api key is not configured")
	}

	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: recognitionPrompt},
					{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
				},
			},
		},
		Temperature: 0.6,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vision request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create vision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vision request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read vision response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision api error (status %d): %s", resp.StatusCode, string(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse vision response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, ErrNoChoices
	}

	return ParseDetections([]byte(parsed.Choices[0].Message.Content))
}
