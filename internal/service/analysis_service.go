package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "go-coin-analyzer/internal/errors"
	"go-coin-analyzer/internal/intake"
	"go-coin-analyzer/internal/logger"
	"go-coin-analyzer/internal/provider"
	"go-coin-analyzer/internal/schema"
)

// CoinAnalysisService runs the analysis pipeline: provider call, then
// validation/normalization of the provider's JSON into the canonical record.
type CoinAnalysisService interface {
	AnalyzeCoin(ctx context.Context, img *intake.UploadedImage) (*schema.CoinAnalysis, error)
}

type coinAnalysisService struct {
	provider provider.RecognitionProvider
	timeout  time.Duration
}

// NewCoinAnalysisService creates a service around the given provider. The
// timeout bounds the external call; exceeding it reports as
// provider_unavailable.
func NewCoinAnalysisService(p provider.RecognitionProvider, timeout time.Duration) CoinAnalysisService {
	return &coinAnalysisService{
		provider: p,
		timeout:  timeout,
	}
}

func (s *coinAnalysisService) AnalyzeCoin(ctx context.Context, img *intake.UploadedImage) (*schema.CoinAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.provider.AnalyzeImage(ctx, img)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewProviderUnavailableError("provider call timed out", err)
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.NewProviderUnavailableError("provider call failed", err)
	}

	result, err := schema.ParseAnalysis(raw)
	if err != nil {
		// Schema drift is a contract problem with the provider, keep the
		// offending payload in the logs for diagnosis
		if apperrors.IsKind(err, apperrors.KindSchemaViolation) {
			logger.WithError(err).WithFields(logrus.Fields{
				"provider": s.provider.Name(),
				"payload":  truncatePayload(raw, 2048),
			}).Error("Provider payload failed schema validation")
		}
		return nil, err
	}

	return result, nil
}

func truncatePayload(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
