package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jbonatakis/cabinlog/internal/catalog"
	"github.com/jbonatakis/cabinlog/internal/trip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeGenerator struct {
	prompts []string
	text    string
	err     error
	block   bool
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.text, f.err
}

func sampleAnomalies() []trip.Anomaly {
	return []trip.Anomaly{
		{ID: "1", Element: "Cerramientos", Defect: "Mal estado puntual", Level: catalog.SeverityIL, PK: "102.7", Notes: "Malla rota"},
		{ID: "2", Element: "Balasto", Defect: "Insuficiencia de balasto", Level: catalog.SeverityIAL, PK: "45.2", Location: &trip.Location{Lat: 40.0712, Lng: -2.1354}},
	}
}

func TestSummarizeEmptyDoesNotCallService(t *testing.T) {
	gen := &fakeGenerator{text: "should not be used"}
	r := NewRequester(gen, time.Second, nil)

	got := r.Summarize(context.Background(), nil)

	assert.Equal(t, NoAnomaliesMessage, got)
	assert.Empty(t, gen.prompts)
}

func TestSummarizeReturnsTextVerbatim(t *testing.T) {
	gen := &fakeGenerator{text: "  **Resumen**\nTodo bien.\n"}
	r := NewRequester(gen, time.Second, nil)

	got := r.Summarize(context.Background(), sampleAnomalies())

	assert.Equal(t, gen.text, got)
	require.Len(t, gen.prompts, 1)
}

func TestSummarizeFailuresDegradeToMessage(t *testing.T) {
	tests := []struct {
		name string
		gen  Generator
	}{
		{name: "not configured", gen: nil},
		{name: "service error", gen: &fakeGenerator{err: errors.New("quota exceeded")}},
		{name: "empty answer", gen: &fakeGenerator{text: "  \n"}},
		{name: "timeout", gen: &fakeGenerator{block: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRequester(tt.gen, 20*time.Millisecond, nil)
			assert.Equal(t, FailureMessage, r.Summarize(context.Background(), sampleAnomalies()))
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(sampleAnomalies())

	assert.Contains(t, p, "Spanish")
	assert.Contains(t, p, "(IAL level) first")
	assert.Contains(t, p, "- Anomaly: Mal estado puntual (Cerramientos)\n  Severity: IL\n  Location: PK 102.7\n  Notes: Malla rota\n")
	assert.Contains(t, p, "  Coordinates: 40.071200, -2.135400\n")

	first := strings.Index(p, "Mal estado puntual")
	second := strings.Index(p, "Insuficiencia de balasto")
	assert.Less(t, first, second, "anomalies must keep list order")
	assert.Equal(t, 1, strings.Count(p, "Coordinates:"), "only located anomalies carry coordinates")
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "")
	require.ErrorIs(t, err, ErrNotConfigured)
}
