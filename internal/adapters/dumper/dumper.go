// Package dumper renders compiled service graphs as YAML and as human readable
// service descriptions.
package dumper

import (
	"bytes"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	tagIterator = "!tagged_iterator"
	tagLocator  = "!service_locator"
)

var _ ports.GraphDumper = (*YAML)(nil)

// YAML implements ports.GraphDumper. Services and aliases are written in registration
// order and map keys are sorted, so equal graphs produce identical bytes.
type YAML struct{}

// New creates a YAML dumper.
func New() *YAML {
	return &YAML{}
}

// Dump serializes parameters, services and aliases of c.
func (d *YAML) Dump(c *domain.Container) ([]byte, error) {
	params := mapping()
	for name, value := range c.Parameters() {
		v, err := valueNode(value)
		if err != nil {
			return nil, zerr.With(err, "parameter", name)
		}
		appendPair(params, name, v)
	}

	services := mapping()
	for id, def := range c.Definitions() {
		n, err := definitionNode(def)
		if err != nil {
			return nil, zerr.With(err, "service_id", id)
		}
		appendPair(services, id, n)
	}
	for name, alias := range c.Aliases() {
		n := mapping()
		appendPair(n, "alias", scalar(alias.Target))
		if alias.Public {
			appendPair(n, "public", boolNode(true))
		}
		appendPair(services, name, n)
	}

	root := mapping()
	appendPair(root, "parameters", params)
	appendPair(root, "services", services)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, zerr.Wrap(err, domain.ErrDumpFailed.Error())
	}
	if err := enc.Close(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrDumpFailed.Error())
	}
	return buf.Bytes(), nil
}

func definitionNode(def *domain.Definition) (*yaml.Node, error) {
	n := mapping()
	if def.Parent != "" {
		appendPair(n, "parent", scalar(def.Parent))
	}
	if def.Class != "" {
		appendPair(n, "class", scalar(def.Class))
	}
	flags := []struct {
		key string
		set bool
	}{
		{"public", def.Public},
		{"abstract", def.Abstract},
		{"lazy", def.Lazy},
		{"synthetic", def.Synthetic},
	}
	for _, f := range flags {
		if f.set {
			appendPair(n, f.key, boolNode(true))
		}
	}
	if def.Factory != nil {
		appendPair(n, "factory", callableNode(*def.Factory))
	}
	if def.Configurator != nil {
		appendPair(n, "configurator", callableNode(*def.Configurator))
	}

	if len(def.Arguments) > 0 {
		args, err := valueNode(def.Arguments)
		if err != nil {
			return nil, err
		}
		appendPair(n, "arguments", args)
	}

	if len(def.Calls) > 0 {
		calls := sequence()
		for _, call := range def.Calls {
			args, err := valueNode(call.Args)
			if err != nil {
				return nil, zerr.With(err, "method", call.Method)
			}
			entry := sequence()
			entry.Style = yaml.FlowStyle
			entry.Content = append(entry.Content, scalar(call.Method), args)
			calls.Content = append(calls.Content, entry)
		}
		appendPair(n, "calls", calls)
	}

	if len(def.Tags) > 0 {
		tags := sequence()
		for _, tag := range def.Tags {
			t := mapping()
			t.Style = yaml.FlowStyle
			appendPair(t, "name", scalar(tag.Name))
			for _, key := range slices.Sorted(maps.Keys(tag.Attributes)) {
				v, err := valueNode(tag.Attributes[key])
				if err != nil {
					return nil, zerr.With(err, "tag", tag.Name)
				}
				appendPair(t, key, v)
			}
			tags.Content = append(tags.Content, t)
		}
		appendPair(n, "tags", tags)
	}
	return n, nil
}

func callableNode(c domain.Callable) *yaml.Node {
	n := sequence()
	n.Style = yaml.FlowStyle
	target := c.Class
	if c.Service != nil {
		target = c.Service.String()
	}
	n.Content = append(n.Content, scalar(target), scalar(c.Method))
	return n
}

// valueNode converts an argument or parameter value. References are written with
// their "@" prefix and parameters as "%name%" placeholders. Literal strings starting
// with "@" are escaped as "@@".
func valueNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case string:
		if strings.HasPrefix(val, "@") {
			val = "@" + val
		}
		return scalar(val), nil
	case domain.Reference:
		return scalar(val.String()), nil
	case *domain.Reference:
		if val == nil {
			return valueNode(nil)
		}
		return scalar(val.String()), nil
	case domain.Parameter:
		return scalar(val.String()), nil
	case domain.TaggedIterator:
		n := scalar(val.Tag)
		n.Tag = tagIterator
		return n, nil
	case domain.ServiceLocator:
		n := mapping()
		n.Tag = tagLocator
		for _, e := range val.Entries {
			appendPair(n, e.Key, scalar(e.Ref.String()))
		}
		return n, nil
	case *domain.ServiceLocator:
		if val == nil {
			return valueNode(nil)
		}
		return valueNode(*val)
	case []any:
		n := sequence()
		for _, item := range val {
			child, err := valueNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	case map[string]any:
		n := mapping()
		for _, key := range slices.Sorted(maps.Keys(val)) {
			child, err := valueNode(val[key])
			if err != nil {
				return nil, err
			}
			appendPair(n, key, child)
		}
		return n, nil
	case domain.Attributes:
		return valueNode(map[string]any(val))
	case bool:
		return boolNode(val), nil
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(val)}, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(val); err != nil {
			return nil, zerr.Wrap(err, domain.ErrDumpFailed.Error())
		}
		return n, nil
	}
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func sequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func boolNode(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, scalar(key), value)
}
