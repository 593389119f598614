// Package quality fronts the external image-quality and OCR services. The
// gate rejects unreadable images before OCR is attempted, and OCR calls run
// through a circuit breaker so a degraded OCR backend cannot stall
// ingestion.
package quality

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meditrack/rxpipeline/pkg/circuitbreaker"
)

// Assessment is the image-quality report from the external assessor.
// Overall is in [0,1]; IsProcessable is the assessor's own verdict and the
// gate takes it as final.
type Assessment struct {
	Brightness      float64  `json:"brightness"`
	Contrast        float64  `json:"contrast"`
	Sharpness       float64  `json:"sharpness"`
	Noise           float64  `json:"noise"`
	Skew            float64  `json:"skew"`
	Overall         float64  `json:"overall"`
	IsProcessable   bool     `json:"isProcessable"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// Assessor is the external image-quality service.
type Assessor interface {
	AssessQuality(ctx context.Context, image []byte) (Assessment, error)
}

// OCRResult is the raw text recognised from an image. Text is untrusted
// free-form input for the parser.
type OCRResult struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Recognizer is the external OCR engine.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (OCRResult, error)
}

// NotProcessableError reports an image the quality gate refused, carrying
// the assessment so callers can surface the recommendations.
type NotProcessableError struct {
	Assessment Assessment
}

func (e *NotProcessableError) Error() string {
	return fmt.Sprintf("image quality too low for processing (overall %.2f)", e.Assessment.Overall)
}

// Gate runs the assess-then-recognise flow for one image.
type Gate struct {
	assessor   Assessor
	recognizer Recognizer
	breaker    *circuitbreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewGate builds a gate over the external services. The OCR breaker uses
// the default thresholds.
func NewGate(assessor Assessor, recognizer Recognizer, logger *zap.Logger) (*Gate, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	breaker, err := circuitbreaker.New(circuitbreaker.DefaultConfig("ocr"), logger)
	if err != nil {
		return nil, fmt.Errorf("create ocr breaker: %w", err)
	}
	return &Gate{
		assessor:   assessor,
		recognizer: recognizer,
		breaker:    breaker,
		logger:     logger,
	}, nil
}

// Process assesses the image and, when processable, recognises its text.
// A refused image returns *NotProcessableError with the full assessment.
func (g *Gate) Process(ctx context.Context, image []byte) (OCRResult, Assessment, error) {
	assessment, err := g.assessor.AssessQuality(ctx, image)
	if err != nil {
		return OCRResult{}, Assessment{}, fmt.Errorf("assess image quality: %w", err)
	}
	if !assessment.IsProcessable {
		g.logger.Info("image rejected by quality gate",
			zap.Float64("overall", assessment.Overall),
			zap.Strings("recommendations", assessment.Recommendations))
		return OCRResult{}, assessment, &NotProcessableError{Assessment: assessment}
	}

	result, err := g.breaker.Execute(ctx, func() (interface{}, error) {
		return g.recognizer.Recognize(ctx, image)
	})
	if err != nil {
		return OCRResult{}, assessment, fmt.Errorf("recognize text: %w", err)
	}
	return result.(OCRResult), assessment, nil
}
