package domain

import "time"

// Span attribute keys set by the extension and the compiler.
const (
	SpanAttrPassName      = "pass.name"
	SpanAttrServicesCount = "services.count"
)

// SpanSummary is a finished span as reported after a compilation.
type SpanSummary struct {
	Name     string
	Duration time.Duration
	Services int
	Err      string
}
