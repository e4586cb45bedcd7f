package provider

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	apperrors "go-coin-analyzer/internal/errors"
	"go-coin-analyzer/internal/intake"
)

// GeminiEngine calls the Gemini API through the official SDK, asking for a
// JSON-only reply via the response MIME type.
type GeminiEngine struct {
	apiKey string
	model  string
}

func NewGeminiEngine(apiKey, model string) *GeminiEngine {
	return &GeminiEngine{
		apiKey: strings.TrimSpace(apiKey),
		model:  strings.TrimSpace(model),
	}
}

func (e *GeminiEngine) Name() string { return "gemini" }

func (e *GeminiEngine) AnalyzeImage(ctx context.Context, img *intake.UploadedImage) (string, error) {
	if e.apiKey == "" {
		return "", apperrors.NewProviderUnavailableError("gemini api key is not configured", nil)
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.apiKey))
	if err != nil {
		return "", apperrors.NewProviderUnavailableError("failed to create gemini client", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(SystemPrompt)},
	}

	parts := []genai.Part{
		genai.Text(UserPrompt),
		&genai.Blob{MIMEType: img.MIMEType, Data: img.Data},
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", apperrors.NewProviderUnavailableError("gemini request failed", err)
	}

	txt := firstText(resp)
	if txt == "" {
		return "", apperrors.NewEmptyResponseError("gemini returned no content", nil)
	}

	return stripCodeFences(txt), nil
}

// firstText returns the first non-empty text part from any candidate
func firstText(resp *genai.GenerateContentResponse) string {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok && strings.TrimSpace(string(t)) != "" {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
