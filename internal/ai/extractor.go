package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/viniciusalbino/autoAtendeAI/internal/metrics"
)

// ExtractorConfig bounds every model call.
type ExtractorConfig struct {
	Timeout time.Duration
	// Retries is the number of extra attempts after a failed call. Zero means one attempt.
	Retries int
}

// Extractor turns customer utterances into FilterSpecs through an LLMProvider.
// All provider failures surface as *ExtractionError.
type Extractor struct {
	provider LLMProvider
	cfg      ExtractorConfig
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

func NewExtractor(provider LLMProvider, cfg ExtractorConfig, logger *zap.Logger, m *metrics.Metrics) *Extractor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	return &Extractor{provider: provider, cfg: cfg, logger: logger, metrics: m}
}

// Extract asks the model for the search parameters in utterance.
func (e *Extractor) Extract(ctx context.Context, dealershipName, utterance string) (FilterSpec, error) {
	raw, err := e.call(ctx, e.provider.GenerateJSON, buildExtractionPrompt(dealershipName, utterance))
	if err != nil {
		return FilterSpec{}, err
	}

	spec, err := ParseFilterSpec(raw)
	if err != nil {
		e.metrics.ObserveExtractionFailure("parse")
		e.logger.Warn("unparseable model output", zap.String("raw", raw), zap.Error(err))
		return FilterSpec{}, &ExtractionError{Raw: raw, Err: err}
	}
	e.logger.Debug("filter extracted", zap.String("raw", raw), zap.Any("spec", spec))
	return spec, nil
}

// Compose asks the model for a conversational reply following directive.
func (e *Extractor) Compose(ctx context.Context, dealershipName, directive string) (string, error) {
	raw, err := e.call(ctx, e.provider.GenerateText, buildComposePrompt(dealershipName, directive))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.ReplaceAll(raw, "`", "")), nil
}

func (e *Extractor) call(ctx context.Context, fn func(context.Context, string) (string, error), prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= e.cfg.Retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", e.fail(ctx.Err())
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
		start := time.Now()
		raw, err := fn(callCtx, prompt)
		cancel()
		e.metrics.ObserveLLM(time.Since(start))

		if err == nil && strings.TrimSpace(raw) == "" {
			err = ErrEmptyResponse
		}
		if err == nil {
			return raw, nil
		}
		lastErr = err
		e.logger.Warn("model call failed", zap.Int("attempt", attempt+1), zap.Error(err))
		if ctx.Err() != nil {
			break
		}
	}
	return "", e.fail(lastErr)
}

func (e *Extractor) fail(err error) error {
	reason := "model"
	if errors.Is(err, context.DeadlineExceeded) {
		reason = "timeout"
	}
	e.metrics.ObserveExtractionFailure(reason)
	return &ExtractionError{Err: err}
}
