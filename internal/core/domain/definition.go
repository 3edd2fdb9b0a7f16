package domain

import (
	"reflect"
	"slices"
)

// Attributes are the key/value pairs attached to one tag occurrence.
type Attributes map[string]any

// String returns the attribute as a string when it is set to one.
func (a Attributes) String(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok && s != ""
}

// Bool returns the attribute as a bool when it is set to one.
func (a Attributes) Bool(key string) (value, ok bool) {
	value, ok = a[key].(bool)
	return value, ok
}

// Int returns the attribute as an int, defaulting to zero.
func (a Attributes) Int(key string) int {
	switch v := a[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Tag is one occurrence of a tag on a definition.
type Tag struct {
	Name       string
	Attributes Attributes
}

// Definition describes how a service is built and wired.
// It never builds anything itself.
type Definition struct {
	Class        string
	Factory      *Callable
	Configurator *Callable
	Arguments    []any
	Calls        []MethodCall
	Tags         []Tag
	Public       bool
	Abstract     bool
	Lazy         bool
	Synthetic    bool

	// Parent makes this a child definition inheriting from the named definition.
	Parent string
}

// NewDefinition creates a private definition for class with the given arguments.
func NewDefinition(class string, args ...any) *Definition {
	return &Definition{Class: class, Arguments: args}
}

// NewChildDefinition creates a definition inheriting from parent.
func NewChildDefinition(parent string, args ...any) *Definition {
	return &Definition{Parent: parent, Arguments: args}
}

// SetArgument replaces the argument at index i, growing the list with nils if needed.
func (d *Definition) SetArgument(i int, v any) *Definition {
	for len(d.Arguments) <= i {
		d.Arguments = append(d.Arguments, nil)
	}
	d.Arguments[i] = v
	return d
}

// Argument returns the argument at index i.
func (d *Definition) Argument(i int) (any, bool) {
	if i < 0 || i >= len(d.Arguments) {
		return nil, false
	}
	return d.Arguments[i], true
}

// AddMethodCall appends a call.
func (d *Definition) AddMethodCall(method string, args ...any) *Definition {
	if args == nil {
		args = []any{}
	}
	d.Calls = append(d.Calls, MethodCall{Method: method, Args: args})
	return d
}

// AddMethodCallOnce appends a call unless an identical one is already recorded.
// It reports whether the call was added.
func (d *Definition) AddMethodCallOnce(method string, args ...any) bool {
	if args == nil {
		args = []any{}
	}
	for _, call := range d.Calls {
		if call.Method == method && reflect.DeepEqual(call.Args, args) {
			return false
		}
	}
	d.Calls = append(d.Calls, MethodCall{Method: method, Args: args})
	return true
}

// HasMethodCall reports whether at least one call to method is recorded.
func (d *Definition) HasMethodCall(method string) bool {
	return slices.ContainsFunc(d.Calls, func(c MethodCall) bool { return c.Method == method })
}

// MethodCalls returns the recorded calls to method in order.
func (d *Definition) MethodCalls(method string) []MethodCall {
	var calls []MethodCall
	for _, c := range d.Calls {
		if c.Method == method {
			calls = append(calls, c)
		}
	}
	return calls
}

// RemoveMethodCalls drops every call to method.
func (d *Definition) RemoveMethodCalls(method string) {
	d.Calls = slices.DeleteFunc(d.Calls, func(c MethodCall) bool { return c.Method == method })
}

// AddTag attaches a tag occurrence.
func (d *Definition) AddTag(name string, attrs Attributes) *Definition {
	if attrs == nil {
		attrs = Attributes{}
	}
	d.Tags = append(d.Tags, Tag{Name: name, Attributes: attrs})
	return d
}

// AddTagOnce attaches a tag occurrence unless an identical one exists.
func (d *Definition) AddTagOnce(name string, attrs Attributes) bool {
	if attrs == nil {
		attrs = Attributes{}
	}
	for _, t := range d.Tags {
		if t.Name == name && reflect.DeepEqual(t.Attributes, attrs) {
			return false
		}
	}
	d.Tags = append(d.Tags, Tag{Name: name, Attributes: attrs})
	return true
}

// Tag returns the attribute sets of every occurrence of name.
func (d *Definition) Tag(name string) []Attributes {
	var out []Attributes
	for _, t := range d.Tags {
		if t.Name == name {
			out = append(out, t.Attributes)
		}
	}
	return out
}

// HasTag reports whether the definition carries name.
func (d *Definition) HasTag(name string) bool {
	return slices.ContainsFunc(d.Tags, func(t Tag) bool { return t.Name == name })
}

// ClearTag removes every occurrence of name.
func (d *Definition) ClearTag(name string) {
	d.Tags = slices.DeleteFunc(d.Tags, func(t Tag) bool { return t.Name == name })
}

// Clone returns a deep copy.
func (d *Definition) Clone() *Definition {
	out := *d
	if d.Factory != nil {
		f := *d.Factory
		out.Factory = &f
	}
	if d.Configurator != nil {
		c := *d.Configurator
		out.Configurator = &c
	}
	out.Arguments = cloneArgs(d.Arguments)
	out.Calls = make([]MethodCall, len(d.Calls))
	for i, c := range d.Calls {
		out.Calls[i] = MethodCall{Method: c.Method, Args: cloneArgs(c.Args)}
	}
	out.Tags = make([]Tag, len(d.Tags))
	for i, t := range d.Tags {
		attrs := make(Attributes, len(t.Attributes))
		for k, v := range t.Attributes {
			attrs[k] = v
		}
		out.Tags[i] = Tag{Name: t.Name, Attributes: attrs}
	}
	return &out
}

func cloneArgs(args []any) []any {
	if args == nil {
		return nil
	}
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = CloneValue(a)
	}
	return out
}
