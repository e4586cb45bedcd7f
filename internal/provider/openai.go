package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	apperrors "go-coin-analyzer/internal/errors"
	"go-coin-analyzer/internal/intake"
)

// OpenAIEngine calls an OpenAI-compatible chat completions endpoint with the
// image attached as a base64 data URL, requesting a JSON-only reply.
type OpenAIEngine struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
}

// NewOpenAIEngine creates an engine against the given base URL, e.g.
// "https://api.openai.com/v1". The overall deadline comes from the request
// context, so the client itself only bounds connection setup and headers.
func NewOpenAIEngine(apiKey, model, baseURL string) *OpenAIEngine {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 120 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
	}

	return &OpenAIEngine{
		apiKey:  strings.TrimSpace(apiKey),
		model:   strings.TrimSpace(model),
		baseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		httpc:   &http.Client{Timeout: 0, Transport: tr},
	}
}

// WithHTTPClient overrides the internal HTTP client (e.g., for tests)
func (e *OpenAIEngine) WithHTTPClient(c *http.Client) *OpenAIEngine {
	if c != nil {
		e.httpc = c
	}
	return e
}

func (e *OpenAIEngine) Name() string { return "openai" }

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (e *OpenAIEngine) AnalyzeImage(ctx context.Context, img *intake.UploadedImage) (string, error) {
	if e.apiKey == "" {
		return "", apperrors.NewProviderUnavailableError("openai api key is not configured", nil)
	}

	dataURL := "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)

	body := map[string]any{
		"model": e.model,
		"messages": []any{
			map[string]any{
				"role":    "system",
				"content": SystemPrompt,
			},
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "text", "text": UserPrompt},
					map[string]any{
						"type":      "image_url",
						"image_url": map[string]any{"url": dataURL},
					},
				},
			},
		},
		"response_format": map[string]any{"type": "json_object"},
		"max_tokens":      2048,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", apperrors.NewInternalError("failed to encode provider request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.NewInternalError("failed to build provider request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", apperrors.NewProviderUnavailableError("openai request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewProviderUnavailableError("failed to read openai response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewProviderUnavailableError(
			fmt.Sprintf("openai returned status %d: %s", resp.StatusCode, truncate(raw, 512)), nil)
	}

	var cr chatCompletionResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return "", apperrors.NewProviderUnavailableError("failed to decode openai envelope", err)
	}
	if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
		return "", apperrors.NewEmptyResponseError("openai returned no content", nil)
	}

	return stripCodeFences(cr.Choices[0].Message.Content), nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
