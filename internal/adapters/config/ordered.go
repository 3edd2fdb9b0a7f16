package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Entry is one key of an Ordered mapping.
type Entry[T any] struct {
	Key   string
	Value T
}

// Ordered decodes a YAML mapping while keeping the declaration order of its keys.
type Ordered[T any] []Entry[T]

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Ordered[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}

	out := make(Ordered[T], 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var v T
		if err := decodeValue(node.Content[i+1], &v); err != nil {
			return err
		}
		out = append(out, Entry[T]{Key: node.Content[i].Value, Value: v})
	}
	*o = out
	return nil
}

// Keys returns the keys in declaration order.
func (o Ordered[T]) Keys() []string {
	keys := make([]string, len(o))
	for i, e := range o {
		keys[i] = e.Key
	}
	return keys
}

func decodeValue[T any](node *yaml.Node, v *T) error {
	if raw, ok := any(v).(*yaml.Node); ok {
		*raw = *node
		return nil
	}
	return decodeStrict(node, v)
}

// decodeStrict decodes node into out, rejecting keys that out does not declare.
func decodeStrict(node *yaml.Node, out any) error {
	data, err := yaml.Marshal(node)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
