// Package llm is a thin client for OpenAI-compatible chat completion backends.
// The backend is treated as an opaque capability: prompts go in, raw text
// comes out; any transport failure or empty response is an Unavailable error.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lordvidex/errs/v2"
)

const (
	completionsPath = "/chat/completions"

	// DefaultTimeout bounds a single backend round-trip.
	DefaultTimeout = time.Minute
)

type Client struct {
	baseURL string
	apiKey  string
	model   string
	hc      *http.Client
}

func New(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		hc:      &http.Client{Timeout: DefaultTimeout},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatComplete sends the system prompt together with the JSON-encoded payload
// as the user message and returns the raw content of the first choice.
// When requireJSON is set the backend is asked for a json_object response,
// but the returned content is still free text as far as callers are concerned.
func (c *Client) ChatComplete(ctx context.Context, system string, payload any, requireJSON bool, temperature float64) (string, error) {
	user, err := json.Marshal(payload)
	if err != nil {
		return "", errs.WrapCode(err, errs.InvalidArgument, "payload is not serializable")
	}

	body := chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: string(user)},
		},
		Temperature: temperature,
	}
	if requireJSON {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", errs.WrapCode(err, errs.Internal, "error encoding backend request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(b))
	if err != nil {
		return "", errs.WrapCode(err, errs.Internal, "error creating backend request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.hc.Do(req)
	if err != nil {
		return "", errs.WrapCode(err, errs.Unavailable, "backend request failed")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return "", errs.B().Code(errs.Unavailable).
			Msg(fmt.Sprintf("backend returned status %d: %s", res.StatusCode, string(snippet))).Err()
	}

	var parsed chatResponse
	if err = json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", errs.WrapCode(err, errs.Unavailable, "error decoding backend response")
	}
	if len(parsed.Choices) == 0 {
		return "", errs.B().Code(errs.Unavailable).Msg("backend returned no choices").Err()
	}
	content := parsed.Choices[0].Message.Content
	if content == "" {
		return "", errs.B().Code(errs.Unavailable).Msg("backend returned empty content").Err()
	}
	return content, nil
}
