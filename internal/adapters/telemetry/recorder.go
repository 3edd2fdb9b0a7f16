package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/ormwire/internal/core/domain"
)

// ServicesCountKey is the span attribute carrying the number of definitions in the
// graph when the span ended.
const ServicesCountKey = domain.SpanAttrServicesCount

var _ sdktrace.SpanProcessor = (*Recorder)(nil)

// Recorder implements sdktrace.SpanProcessor and keeps a summary of every ended span
// in the order the spans ended.
type Recorder struct {
	mu        sync.Mutex
	summaries []domain.SpanSummary
}

// NewRecorder returns a new Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// OnStart does nothing.
func (r *Recorder) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd records the finished span.
func (r *Recorder) OnEnd(s sdktrace.ReadOnlySpan) {
	summary := domain.SpanSummary{
		Name:     s.Name(),
		Duration: s.EndTime().Sub(s.StartTime()),
	}
	for _, kv := range s.Attributes() {
		if string(kv.Key) == ServicesCountKey {
			summary.Services = int(kv.Value.AsInt64())
		}
	}
	if s.Status().Code == codes.Error {
		summary.Err = s.Status().Description
	}

	r.mu.Lock()
	r.summaries = append(r.summaries, summary)
	r.mu.Unlock()
}

// Summaries returns a copy of the recorded span summaries.
func (r *Recorder) Summaries() []domain.SpanSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.SpanSummary, len(r.summaries))
	copy(out, r.summaries)
	return out
}

// Reset drops all recorded summaries.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.summaries = nil
	r.mu.Unlock()
}

// ForceFlush does nothing.
func (r *Recorder) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Provider owns an SDK tracer provider that feeds a Recorder.
type Provider struct {
	*OTelTracer
	tp       *sdktrace.TracerProvider
	recorder *Recorder
}

// NewProvider creates a tracer provider whose spans are summarized by a Recorder.
func NewProvider(name string) *Provider {
	recorder := NewRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return &Provider{
		OTelTracer: NewOTelTracerWithProvider(tp, name),
		tp:         tp,
		recorder:   recorder,
	}
}

// Recorder returns the recorder attached to the provider.
func (p *Provider) Recorder() *Recorder {
	return p.recorder
}

// Shutdown flushes and stops the tracer provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
