// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package annotate

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/scout-engine/internal/httputil"
	"github.com/pdiddy/scout-engine/pkg/types"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// geminiBaseURL is the Generative Language API endpoint. Package-level
// var for test substitution.
var geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiBackend calls the Gemini generateContent API. It supports
// text-only and text-plus-image (multimodal) requests.
type GeminiBackend struct {
	APIKey string
	Model  string
	Client *http.Client
}

// NewGeminiBackend builds a backend from AI configuration. The API key
// must already be resolved; an empty key is a setup error the caller
// reports before any work starts.
func NewGeminiBackend(cfg types.AIConfig) (*GeminiBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing Gemini API key")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &GeminiBackend{
		APIKey: cfg.APIKey,
		Model:  model,
		Client: httputil.NewClient(cfg.HTTPConfig),
	}, nil
}

// geminiRequest is the generateContent request body.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

// geminiContent is one conversation turn.
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

// geminiPart is a text or inline-data part of a turn.
type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *geminiBlob `json:"inline_data,omitempty"`
}

// geminiBlob is base64-encoded media sent inline with the request.
type geminiBlob struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

// geminiResponse is the subset of the generateContent response we read.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Annotate sends one prompt (and optional PNG image) to the model and
// returns the first candidate's text. HTTP 429 responses are wrapped
// with ErrRateLimited so the runner applies its cooldown-and-retry
// policy.
func (g *GeminiBackend) Annotate(ctx context.Context, r Request) (string, error) {
	parts := []geminiPart{{Text: r.Prompt}}
	if len(r.Image) > 0 {
		parts = append(parts, geminiPart{InlineData: &geminiBlob{
			MIMEType: "image/png",
			Data:     base64.StdEncoding.EncodeToString(r.Image),
		}})
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", geminiBaseURL, url.PathEscape(g.Model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.APIKey)

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}
	defer httputil.Drain(resp)

	if httputil.IsRateLimited(resp) {
		preview := httputil.BodyPreview(resp, 512)
		return "", fmt.Errorf("Gemini API returned 429: %s: %w", preview, ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini API returned %d: %s", resp.StatusCode, httputil.BodyPreview(resp, 512))
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("decoding Gemini response: %w", err)
	}

	for _, cand := range gResp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}

	return "", fmt.Errorf("Gemini API returned no text content")
}
