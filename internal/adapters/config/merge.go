package config

import (
	"slices"

	"gopkg.in/yaml.v3"
)

// mergeNodes overlays src onto dst and returns the result.
// Mappings merge key by key keeping the first-seen key order. Scalars and
// sequences from src replace those of dst. A null src leaves dst untouched.
func mergeNodes(dst, src *yaml.Node) *yaml.Node {
	switch {
	case src == nil || isNull(src):
		return dst
	case dst == nil || isNull(dst):
		return copyNode(src)
	case dst.Kind != yaml.MappingNode || src.Kind != yaml.MappingNode:
		return copyNode(src)
	}

	out := copyNode(dst)
	for i := 0; i+1 < len(src.Content); i += 2 {
		key, value := src.Content[i], src.Content[i+1]
		if idx := mappingIndex(out, key.Value); idx >= 0 {
			out.Content[idx+1] = mergeNodes(out.Content[idx+1], value)
			continue
		}
		out.Content = append(out.Content, key, copyNode(value))
	}
	return out
}

// copyNode returns a shallow copy of n whose Content slice is not shared.
func copyNode(n *yaml.Node) *yaml.Node {
	out := *n
	out.Content = slices.Clone(n.Content)
	return &out
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// mappingIndex returns the index of the key node named key, or -1.
func mappingIndex(n *yaml.Node, key string) int {
	if n == nil || n.Kind != yaml.MappingNode {
		return -1
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return i
		}
	}
	return -1
}

// mappingValue returns the value node stored under key.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if idx := mappingIndex(n, key); idx >= 0 {
		return n.Content[idx+1]
	}
	return nil
}

// removeKey deletes key from the mapping n and returns its value.
func removeKey(n *yaml.Node, key string) *yaml.Node {
	idx := mappingIndex(n, key)
	if idx < 0 {
		return nil
	}
	value := n.Content[idx+1]
	n.Content = slices.Delete(n.Content, idx, idx+2)
	return value
}

// renameKey renames key to name in place. It reports whether key was present.
func renameKey(n *yaml.Node, key, name string) bool {
	idx := mappingIndex(n, key)
	if idx < 0 {
		return false
	}
	if existing := mappingIndex(n, name); existing >= 0 {
		n.Content[existing+1] = mergeNodes(n.Content[existing+1], n.Content[idx+1])
		n.Content = slices.Delete(n.Content, idx, idx+2)
		return true
	}
	renamed := *n.Content[idx]
	renamed.Value = name
	n.Content[idx] = &renamed
	return true
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}
