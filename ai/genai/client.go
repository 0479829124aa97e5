// Package genai is the single call boundary to the external generation
// provider. It issues one attempt per call and classifies every failure as
// either a transport fault (ErrUnavailable) or an explicit provider
// rejection (RejectedError); retry policy belongs to the caller.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Generator is the provider gateway interface.
type Generator interface {
	Generate(ctx context.Context, req *Request) (*Envelope, error)
}

// Config represents gateway configuration.
type Config struct {
	Provider string // gemini, openai, deepseek, siliconflow, ollama
	APIKey   string
	BaseURL  string
	Timeout  int // Request timeout in seconds (default: 120)
}

// Client calls the generation provider. Text requests go through the
// OpenAI-compatible chat API; image requests go through the provider's
// native generateContent endpoint, which is the only one that carries
// inline binary parts.
type Client struct {
	chat       *openai.Client
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
}

// NewClient creates a new provider gateway client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120
	}

	httpClient := &http.Client{
		Timeout: time.Duration(timeout) * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		},
	}

	chatBaseURL := strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Provider == "gemini" {
		// Gemini exposes its OpenAI-compatible surface under /openai.
		chatBaseURL += "/openai"
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if chatBaseURL != "" {
		clientConfig.BaseURL = chatBaseURL
	}
	clientConfig.HTTPClient = httpClient

	return &Client{
		chat:       openai.NewClientWithConfig(clientConfig),
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		timeout:    time.Duration(timeout) * time.Second,
	}
}

// Generate performs a single generation attempt and returns the raw
// response envelope. It never interprets the payload beyond decoding it.
func (c *Client) Generate(ctx context.Context, req *Request) (*Envelope, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if req.IsImage() {
		return c.generateContent(ctx, req)
	}
	return c.generateText(ctx, req)
}

func (c *Client) generateText(ctx context.Context, req *Request) (*Envelope, error) {
	slog.Debug("genai: text request", "model", req.Model, "prompt_length", len(req.Prompt))

	start := time.Now()
	resp, err := c.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			slog.Warn("genai: provider rejected request", "model", req.Model, "status", apiErr.HTTPStatusCode, "error", apiErr.Message)
			return nil, &RejectedError{Code: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		slog.Error("genai: text request failed", "model", req.Model, "error", err)
		return nil, unavailable(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &RejectedError{Message: "empty response from provider"}
	}

	slog.Debug("genai: text response received",
		"model", req.Model,
		"content_length", len(resp.Choices[0].Message.Content),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Envelope{Text: resp.Choices[0].Message.Content}, nil
}

// generateContentRequest mirrors the provider's native request body.
type generateContentRequest struct {
	Contents         []requestContent        `json:"contents"`
	GenerationConfig requestGenerationConfig `json:"generationConfig"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type requestGenerationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

// generateContentResponse decodes only the fields the pipeline probes;
// everything else in the payload is ignored on purpose.
type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []Part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	Data  string `json:"data"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *Client) generateContent(ctx context.Context, req *Request) (*Envelope, error) {
	slog.Debug("genai: image request", "model", req.Model, "mime_type", req.ResponseMIMEType)

	body := generateContentRequest{
		Contents: []requestContent{
			{Parts: []requestPart{{Text: req.Prompt}}},
		},
		GenerationConfig: requestGenerationConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	}

	payload, err := json.Marshal(&body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, req.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		slog.Error("genai: image request failed", "model", req.Model, "error", err)
		return nil, unavailable(err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, unavailable(err)
	}

	if httpResp.StatusCode >= http.StatusInternalServerError {
		return nil, unavailable(fmt.Errorf("provider returned status %d", httpResp.StatusCode))
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// A non-JSON body from a 4xx is still an explicit refusal.
		if httpResp.StatusCode != http.StatusOK {
			return nil, &RejectedError{Code: httpResp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return nil, unavailable(fmt.Errorf("decode response: %v", err))
	}

	if decoded.Error != nil {
		slog.Warn("genai: provider rejected request",
			"model", req.Model,
			"status", decoded.Error.Status,
			"error", decoded.Error.Message,
		)
		return nil, &RejectedError{
			Code:    decoded.Error.Code,
			Status:  decoded.Error.Status,
			Message: decoded.Error.Message,
		}
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, &RejectedError{Code: httpResp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	if decoded.PromptFeedback != nil && decoded.PromptFeedback.BlockReason != "" {
		return nil, &RejectedError{
			Status:  decoded.PromptFeedback.BlockReason,
			Message: "prompt blocked by provider",
		}
	}

	env := &Envelope{Data: decoded.Data}
	var texts []string
	for _, cand := range decoded.Candidates {
		for _, part := range cand.Content.Parts {
			env.Parts = append(env.Parts, part)
			if part.Text != "" {
				texts = append(texts, part.Text)
			}
		}
	}
	env.Text = strings.Join(texts, "\n")

	slog.Debug("genai: image response received",
		"model", req.Model,
		"parts", len(env.Parts),
		"text_length", len(env.Text),
	)

	return env, nil
}
