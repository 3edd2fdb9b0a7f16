package compiler

import (
	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/zerr"
)

// resolveChildren replaces every child definition with the merge of its parent chain.
func resolveChildren(graph *domain.Container) error {
	resolved := make(map[string]*domain.Definition)
	for id, def := range graph.Definitions() {
		if def.Parent == "" {
			continue
		}
		flat, err := flatten(graph, id, resolved, nil)
		if err != nil {
			return err
		}
		graph.SetDefinition(id, flat)
	}
	return nil
}

func flatten(graph *domain.Container, id string, resolved map[string]*domain.Definition, path []string) (*domain.Definition, error) {
	if flat, ok := resolved[id]; ok {
		return flat, nil
	}
	def, ok := graph.Definition(id)
	if !ok {
		return nil, zerr.With(domain.ErrParentNotFound, "parent", id)
	}
	if def.Parent == "" {
		return def, nil
	}
	for _, seen := range path {
		if seen == id {
			return nil, zerr.With(domain.ErrParentCycle, "service_id", id)
		}
	}

	parent, err := flatten(graph, def.Parent, resolved, append(path, id))
	if err != nil {
		return nil, zerr.With(err, "service_id", id)
	}

	flat := merge(parent, def)
	resolved[id] = flat
	return flat, nil
}

// merge applies child over parent: class, factory and configurator fall back to the
// parent, arguments override by index, parent calls come first, and tags and flags
// come from the child alone.
func merge(parent, child *domain.Definition) *domain.Definition {
	out := parent.Clone()
	out.Parent = ""
	out.Tags = nil

	if child.Class != "" {
		out.Class = child.Class
	}
	if child.Factory != nil {
		factory := *child.Factory
		out.Factory = &factory
	}
	if child.Configurator != nil {
		configurator := *child.Configurator
		out.Configurator = &configurator
	}

	for i, arg := range child.Arguments {
		out.SetArgument(i, domain.CloneValue(arg))
	}
	for _, call := range child.Calls {
		out.AddMethodCall(call.Method, call.Args...)
	}
	for _, tag := range child.Tags {
		out.AddTag(tag.Name, tag.Attributes)
	}

	out.Public = child.Public
	out.Abstract = child.Abstract
	out.Lazy = child.Lazy
	out.Synthetic = child.Synthetic
	return out
}
