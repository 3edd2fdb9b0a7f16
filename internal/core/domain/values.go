package domain

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Reference points from an argument slot to another service by id or alias.
type Reference struct {
	ID       string
	Optional bool
}

// Ref returns a required reference to id.
func Ref(id string) Reference {
	return Reference{ID: id}
}

// OptionalRef returns a reference that may be left dangling.
func OptionalRef(id string) Reference {
	return Reference{ID: id, Optional: true}
}

// String renders the reference the way it is written in config files.
func (r Reference) String() string {
	if r.Optional {
		return "@?" + r.ID
	}
	return "@" + r.ID
}

// Parameter is a placeholder resolved against the container parameters.
type Parameter struct {
	Name string
}

// Param returns a placeholder for the named parameter.
func Param(name string) Parameter {
	return Parameter{Name: name}
}

func (p Parameter) String() string {
	return "%" + p.Name + "%"
}

// TaggedIterator injects every service carrying Tag.
type TaggedIterator struct {
	Tag string
}

// LocatorEntry is one key of a ServiceLocator.
type LocatorEntry struct {
	Key string
	Ref Reference
}

// ServiceLocator is an ordered map of lazily resolved references.
type ServiceLocator struct {
	Entries []LocatorEntry
}

// Set adds or replaces the entry for key, keeping first-insertion order.
func (l *ServiceLocator) Set(key string, ref Reference) {
	for i := range l.Entries {
		if l.Entries[i].Key == key {
			l.Entries[i].Ref = ref
			return
		}
	}
	l.Entries = append(l.Entries, LocatorEntry{Key: key, Ref: ref})
}

// Keys returns the locator keys in order.
func (l *ServiceLocator) Keys() []string {
	keys := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		keys[i] = e.Key
	}
	return keys
}

// MethodCall is a setter invocation recorded on a definition.
type MethodCall struct {
	Method string
	Args   []any
}

// Callable is a factory or configurator: either a static class method or a method on a service.
type Callable struct {
	Class   string
	Service *Reference
	Method  string
}

// References yields every Reference found in v, descending into lists, maps and locators.
func References(v any) iter.Seq[Reference] {
	return func(yield func(Reference) bool) {
		walkReferences(v, yield)
	}
}

func walkReferences(v any, yield func(Reference) bool) bool {
	switch val := v.(type) {
	case Reference:
		return yield(val)
	case *Reference:
		if val != nil {
			return yield(*val)
		}
	case []any:
		for _, item := range val {
			if !walkReferences(item, yield) {
				return false
			}
		}
	case map[string]any:
		for _, key := range slices.Sorted(maps.Keys(val)) {
			if !walkReferences(val[key], yield) {
				return false
			}
		}
	case ServiceLocator:
		for _, e := range val.Entries {
			if !yield(e.Ref) {
				return false
			}
		}
	case *ServiceLocator:
		if val != nil {
			return walkReferences(*val, yield)
		}
	}
	return true
}

// CloneValue deep-copies the containers inside an argument value.
func CloneValue(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CloneValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = CloneValue(item)
		}
		return out
	case ServiceLocator:
		return ServiceLocator{Entries: slices.Clone(val.Entries)}
	default:
		return v
	}
}

// ParameterName reports whether s is a whole-string placeholder such as "%foo.bar%"
// and returns the parameter name.
func ParameterName(s string) (string, bool) {
	if len(s) < 3 || s[0] != '%' || s[len(s)-1] != '%' {
		return "", false
	}
	name := s[1 : len(s)-1]
	if strings.ContainsAny(name, "% ") {
		return "", false
	}
	return name, true
}
