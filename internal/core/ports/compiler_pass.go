package ports

import (
	"context"

	"go.trai.ch/ormwire/internal/core/domain"
)

// CompilerPass rewrites the service graph based on the tags it finds.
// A pass must contribute nothing when its tags are absent and must not duplicate
// calls when it runs again over its own output.
//
//go:generate mockgen -source=compiler_pass.go -destination=mocks/mock_compiler_pass.go -package=mocks
type CompilerPass interface {
	// Name identifies the pass in traces and errors.
	Name() string
	// Process mutates c. tags is a snapshot taken right before the pass runs.
	Process(ctx context.Context, c *domain.Container, tags domain.TagIndex) error
}
