// Package summary asks a text generation service for a prose report of a trip's anomalies.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jbonatakis/cabinlog/internal/trip"
	"go.uber.org/zap"
)

const (
	NoAnomaliesMessage = "No anomalies were recorded on this trip."
	FailureMessage     = "Error generating AI summary. Please check the log for details."

	DefaultTimeout = 60 * time.Second
)

// ErrNotConfigured is reported when no generator is available, typically a missing API key.
var ErrNotConfigured = errors.New("ai summary service is not configured")

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Requester produces summaries. Failures never escape: they are logged and the
// caller receives FailureMessage as the summary text.
type Requester struct {
	gen     Generator
	timeout time.Duration
	logger  *zap.Logger
}

// NewRequester builds a Requester. A nil gen yields FailureMessage for every non-empty trip.
func NewRequester(gen Generator, timeout time.Duration, logger *zap.Logger) *Requester {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Requester{gen: gen, timeout: timeout, logger: logger}
}

// Summarize returns the generated text verbatim. An empty list short-circuits to
// NoAnomaliesMessage without contacting the service.
func (r *Requester) Summarize(ctx context.Context, anomalies []trip.Anomaly) string {
	if len(anomalies) == 0 {
		return NoAnomaliesMessage
	}
	text, err := r.generate(ctx, BuildPrompt(anomalies))
	if err != nil {
		r.logger.Warn("ai summary failed", zap.Error(err), zap.Int("anomalies", len(anomalies)))
		return FailureMessage
	}
	r.logger.Info("ai summary generated", zap.Int("anomalies", len(anomalies)), zap.Int("chars", len(text)))
	return text
}

func (r *Requester) generate(ctx context.Context, prompt string) (string, error) {
	if r.gen == nil {
		return "", ErrNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	text, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("generate summary: empty response")
	}
	return text, nil
}

// BuildPrompt renders the instruction and one entry per anomaly, in list order.
func BuildPrompt(anomalies []trip.Anomaly) string {
	var b strings.Builder
	b.WriteString("You are a railway maintenance supervisor's assistant.\n")
	b.WriteString("Based on the following list of anomalies recorded during a train cabin inspection, write a concise summary report.\n")
	b.WriteString("The report should be in Spanish.\n")
	b.WriteString("Start with a brief overview, then highlight the most severe issues (IAL level) first.\n")
	b.WriteString("The tone should be professional and direct.\n\n")
	b.WriteString("Anomalies recorded:\n")
	for _, a := range anomalies {
		fmt.Fprintf(&b, "- Anomaly: %s (%s)\n", a.Defect, a.Element)
		fmt.Fprintf(&b, "  Severity: %s\n", a.Level)
		fmt.Fprintf(&b, "  Location: PK %s\n", a.PK)
		if a.Location != nil {
			fmt.Fprintf(&b, "  Coordinates: %.6f, %.6f\n", a.Location.Lat, a.Location.Lng)
		}
		fmt.Fprintf(&b, "  Notes: %s\n", a.Notes)
	}
	b.WriteString("\nGenerate the summary report now.\n")
	return b.String()
}
