package compiler

import (
	"iter"

	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/zerr"
)

// validateReferences checks that every required reference of a concrete definition
// reaches a concrete definition.
func validateReferences(graph *domain.Container) error {
	for id, def := range graph.Definitions() {
		if def.Abstract {
			continue
		}
		for ref := range definitionReferences(def) {
			if err := checkReference(graph, id, ref); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkReference(graph *domain.Container, from string, ref domain.Reference) error {
	if !graph.Has(ref.ID) {
		if ref.Optional {
			return nil
		}
		err := zerr.With(domain.ErrServiceNotFound, "service_id", ref.ID)
		return zerr.With(err, "referenced_by", from)
	}

	target, err := graph.FindDefinition(ref.ID)
	if err != nil {
		return zerr.With(err, "referenced_by", from)
	}
	if target.Abstract {
		err := zerr.With(domain.ErrAbstractReference, "service_id", ref.ID)
		return zerr.With(err, "referenced_by", from)
	}
	return nil
}

// definitionReferences yields the references of every argument, call, factory and
// configurator of def.
func definitionReferences(def *domain.Definition) iter.Seq[domain.Reference] {
	return func(yield func(domain.Reference) bool) {
		values := []any{def.Arguments}
		for _, call := range def.Calls {
			values = append(values, call.Args)
		}
		for _, callable := range []*domain.Callable{def.Factory, def.Configurator} {
			if callable != nil && callable.Service != nil {
				values = append(values, *callable.Service)
			}
		}
		for _, v := range values {
			for ref := range domain.References(v) {
				if !yield(ref) {
					return
				}
			}
		}
	}
}
