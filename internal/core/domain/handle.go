package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// HandleKind tells whether a service name is a definition or an alias.
type HandleKind uint8

const (
	// HandleDirect names a registered definition.
	HandleDirect HandleKind = iota
	// HandleAlias names an alias that has to be followed.
	HandleAlias
)

// Handle is what a service name denotes inside a container.
type Handle struct {
	Kind HandleKind
	ID   string
}

// Handle looks up id without following aliases.
func (c *Container) Handle(id string) (Handle, bool) {
	if _, ok := c.definitions[id]; ok {
		return Handle{Kind: HandleDirect, ID: id}, true
	}
	if _, ok := c.aliases[id]; ok {
		return Handle{Kind: HandleAlias, ID: id}, true
	}
	return Handle{}, false
}

// Resolve follows aliases from id until it reaches a definition and returns its id.
func (c *Container) Resolve(id string) (string, error) {
	var path []string
	current := id
	for {
		h, ok := c.Handle(current)
		if !ok {
			err := zerr.With(ErrServiceNotFound, "service_id", current)
			if current != id {
				err = zerr.With(err, "alias", id)
			}
			return "", err
		}
		if h.Kind == HandleDirect {
			return h.ID, nil
		}
		for i, seen := range path {
			if seen == current {
				cycle := strings.Join(append(path[i:], current), " -> ")
				return "", zerr.With(ErrAliasCycle, "cycle", cycle)
			}
		}
		path = append(path, current)
		current = c.aliases[current].Target
	}
}

// ResolveAliases checks that every alias reaches a definition.
func (c *Container) ResolveAliases() error {
	for name := range c.Aliases() {
		if _, err := c.Resolve(name); err != nil {
			return err
		}
	}
	return nil
}
