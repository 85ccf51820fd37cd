package openaichat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-usecase-explorer-be/pkg/apperror"
	"ai-usecase-explorer-be/pkg/llm"
	"ai-usecase-explorer-be/pkg/llm/token"
)

// NoResponseFallback is returned when the payload is well formed but the
// expected content path is missing. An empty bubble is preferable to
// crashing an open conversation, so this is not an error.
const NoResponseFallback = "No response received"

// Provider talks to an OpenAI-compatible /chat/completions endpoint. The
// bearer token is suffixed with a client tag ("<token>:<tag>") so the
// gateway can attribute usage per application.
type Provider struct {
	baseURL   string
	model     string
	clientTag string
	tokens    token.Source
	client    *http.Client
}

// Ensure Provider implements llm.Provider
var _ llm.Provider = &Provider{}

func NewProvider(baseURL, model, clientTag string, tokens token.Source) *Provider {
	return &Provider{
		baseURL:   baseURL,
		model:     model,
		clientTag: clientTag,
		tokens:    tokens,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Request/Response structs (OpenAI compatible)

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []llm.Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := &llm.Options{
		Model: p.model,
	}
	for _, o := range options {
		o(opts)
	}

	tok, err := p.tokens.Token(ctx)
	if err != nil {
		return "", apperror.NewRequest("API call failed: %v", err)
	}

	reqBody := chatRequest{
		Model:    opts.Model,
		Messages: history,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s:%s", tok, p.clientTag))

	resp, err := p.client.Do(req)
	if err != nil {
		return "", apperror.NewRequest("API call failed: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperror.NewRequest("API call failed: %v", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", apperror.NewRequest("API call failed: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	// The error field takes priority over HTTP status; the backend message
	// is propagated verbatim.
	if chatResp.Error != nil {
		msg := chatResp.Error.Message
		if msg == "" {
			msg = "API error occurred"
		}
		return "", apperror.NewRequest("%s", msg)
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return NoResponseFallback, nil
	}

	return chatResp.Choices[0].Message.Content, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleUser, Content: prompt},
	}
	return p.Chat(ctx, messages, options...)
}
