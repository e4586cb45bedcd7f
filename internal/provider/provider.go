package provider

import (
	"context"
	"strings"

	"go-coin-analyzer/internal/intake"
)

// RecognitionProvider submits an uploaded coin image to an external
// vision-capable completion service and returns the raw JSON text it produced.
// Implementations classify their own failures (provider_unavailable,
// empty_response); they do not parse or validate the payload.
type RecognitionProvider interface {
	AnalyzeImage(ctx context.Context, img *intake.UploadedImage) (string, error)
	Name() string
}

// stripCodeFences removes a markdown code fence some models wrap around JSON
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
