// Package compiler runs compiler passes over a service graph and freezes the result.
package compiler

import (
	"context"

	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/core/ports"
	"go.trai.ch/zerr"
)

// Compiler runs passes and resolves the graph they leave behind.
type Compiler struct {
	tracer ports.Tracer
}

// New creates a new Compiler.
func New(tracer ports.Tracer) *Compiler {
	return &Compiler{tracer: tracer}
}

// Compile runs passes in the given order, each on a fresh tag index, then flattens
// child definitions, resolves aliases, validates references and drops the abstract
// templates. The first error aborts compilation.
func (c *Compiler) Compile(ctx context.Context, graph *domain.Container, passes ...ports.CompilerPass) error {
	for _, pass := range passes {
		if err := c.runPass(ctx, graph, pass); err != nil {
			return err
		}
	}

	_, span := c.tracer.Start(ctx, "compile")
	defer span.End()

	steps := []func(*domain.Container) error{
		resolveChildren,
		resolveAliases,
		validateReferences,
	}
	for _, step := range steps {
		if err := step(graph); err != nil {
			span.RecordError(err)
			return err
		}
	}

	removeAbstract(graph)
	span.SetAttribute(domain.SpanAttrServicesCount, graph.Len())
	return nil
}

func (c *Compiler) runPass(ctx context.Context, graph *domain.Container, pass ports.CompilerPass) error {
	ctx, span := c.tracer.Start(ctx, "pass."+pass.Name())
	defer span.End()
	span.SetAttribute(domain.SpanAttrPassName, pass.Name())

	if err := pass.Process(ctx, graph, domain.BuildTagIndex(graph)); err != nil {
		span.RecordError(err)
		return zerr.With(zerr.Wrap(err, domain.ErrPassFailed.Error()), "pass", pass.Name())
	}
	span.SetAttribute(domain.SpanAttrServicesCount, graph.Len())
	return nil
}

// resolveAliases points every alias directly at the definition it reaches.
func resolveAliases(graph *domain.Container) error {
	if err := graph.ResolveAliases(); err != nil {
		return err
	}
	for name, alias := range graph.Aliases() {
		target, err := graph.Resolve(name)
		if err != nil {
			return err
		}
		if target == alias.Target {
			continue
		}
		if alias.Public {
			graph.SetPublicAlias(name, target)
		} else {
			graph.SetAlias(name, target)
		}
	}
	return nil
}

func removeAbstract(graph *domain.Container) {
	for id, def := range graph.Definitions() {
		if def.Abstract {
			graph.RemoveDefinition(id)
		}
	}
}
