// Package domain contains the service graph model and the semantic configuration records.
package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// Alias indirects a name to another service id or alias.
type Alias struct {
	Target string
	Public bool
}

// Container holds service definitions, aliases, parameters and the class catalog.
// Iteration follows registration order so that passes and dumps are deterministic.
type Container struct {
	definitions map[string]*Definition
	order       []string
	aliases     map[string]Alias
	aliasOrder  []string
	parameters  map[string]any
	paramOrder  []string
	classes     map[string]ClassInfo
}

// NewContainer creates an empty Container.
func NewContainer() *Container {
	return &Container{
		definitions: make(map[string]*Definition),
		aliases:     make(map[string]Alias),
		parameters:  make(map[string]any),
		classes:     make(map[string]ClassInfo),
	}
}

// SetDefinition registers def under id, replacing any definition or alias with that id.
// A replaced definition keeps its original position.
func (c *Container) SetDefinition(id string, def *Definition) *Definition {
	c.removeAlias(id)
	if _, exists := c.definitions[id]; !exists {
		c.order = append(c.order, id)
	}
	c.definitions[id] = def
	return def
}

// Register creates a definition for class and registers it under id.
func (c *Container) Register(id, class string, args ...any) *Definition {
	return c.SetDefinition(id, NewDefinition(class, args...))
}

// RemoveDefinition drops the definition registered under id.
func (c *Container) RemoveDefinition(id string) {
	if _, exists := c.definitions[id]; !exists {
		return
	}
	delete(c.definitions, id)
	c.order = slices.DeleteFunc(c.order, func(s string) bool { return s == id })
}

// Definition returns the definition registered directly under id.
func (c *Container) Definition(id string) (*Definition, bool) {
	def, ok := c.definitions[id]
	return def, ok
}

// HasDefinition reports whether a definition is registered directly under id.
func (c *Container) HasDefinition(id string) bool {
	_, ok := c.definitions[id]
	return ok
}

// Has reports whether id names a definition or an alias.
func (c *Container) Has(id string) bool {
	if _, ok := c.definitions[id]; ok {
		return true
	}
	_, ok := c.aliases[id]
	return ok
}

// FindDefinition resolves id through aliases and returns the definition behind it.
func (c *Container) FindDefinition(id string) (*Definition, error) {
	target, err := c.Resolve(id)
	if err != nil {
		return nil, err
	}
	def, ok := c.definitions[target]
	if !ok {
		return nil, zerr.With(ErrServiceNotFound, "service_id", id)
	}
	return def, nil
}

// Definitions yields every definition in registration order.
func (c *Container) Definitions() iter.Seq2[string, *Definition] {
	return func(yield func(string, *Definition) bool) {
		for _, id := range slices.Clone(c.order) {
			def, ok := c.definitions[id]
			if !ok {
				continue
			}
			if !yield(id, def) {
				return
			}
		}
	}
}

// Len returns the number of registered definitions.
func (c *Container) Len() int {
	return len(c.definitions)
}

// SetAlias points name at target, replacing any definition registered under name.
func (c *Container) SetAlias(name, target string) *Container {
	return c.setAlias(name, Alias{Target: target})
}

// SetPublicAlias points name at target and marks the alias public.
func (c *Container) SetPublicAlias(name, target string) *Container {
	return c.setAlias(name, Alias{Target: target, Public: true})
}

func (c *Container) setAlias(name string, alias Alias) *Container {
	c.RemoveDefinition(name)
	if _, exists := c.aliases[name]; !exists {
		c.aliasOrder = append(c.aliasOrder, name)
	}
	c.aliases[name] = alias
	return c
}

func (c *Container) removeAlias(name string) {
	if _, exists := c.aliases[name]; !exists {
		return
	}
	delete(c.aliases, name)
	c.aliasOrder = slices.DeleteFunc(c.aliasOrder, func(s string) bool { return s == name })
}

// Alias returns the alias registered under name.
func (c *Container) Alias(name string) (Alias, bool) {
	a, ok := c.aliases[name]
	return a, ok
}

// Aliases yields every alias in registration order.
func (c *Container) Aliases() iter.Seq2[string, Alias] {
	return func(yield func(string, Alias) bool) {
		for _, name := range slices.Clone(c.aliasOrder) {
			a, ok := c.aliases[name]
			if !ok {
				continue
			}
			if !yield(name, a) {
				return
			}
		}
	}
}

// SetParameter stores a parameter value.
func (c *Container) SetParameter(name string, value any) {
	if _, exists := c.parameters[name]; !exists {
		c.paramOrder = append(c.paramOrder, name)
	}
	c.parameters[name] = value
}

// Parameter returns a parameter value.
func (c *Container) Parameter(name string) (any, bool) {
	v, ok := c.parameters[name]
	return v, ok
}

// Parameters yields every parameter in registration order.
func (c *Container) Parameters() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, name := range c.paramOrder {
			if !yield(name, c.parameters[name]) {
				return
			}
		}
	}
}
