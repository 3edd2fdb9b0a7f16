package config

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

var (
	dbalGlobalKeys = []string{"default_connection", "types", "default_table_options"}
	ormGlobalKeys  = []string{
		"default_entity_manager",
		"auto_generate_proxy_classes",
		"proxy_dir",
		"proxy_namespace",
		"resolve_target_entities",
	}

	legacyConnectionKeys = [][2]string{
		{"slaves", "replicas"},
		{"keep_slave", "keep_replica"},
	}
)

// normalize rewrites shorthand forms of the merged tree into their canonical shape.
func (l *Loader) normalize(root *yaml.Node) {
	doctrine := mappingValue(root, "doctrine")
	if doctrine == nil || doctrine.Kind != yaml.MappingNode {
		return
	}

	if dbal := mappingValue(doctrine, "dbal"); dbal != nil && dbal.Kind == yaml.MappingNode {
		nestShorthand(dbal, "connections", "default_connection", dbalGlobalKeys)
		if connections := mappingValue(dbal, "connections"); connections != nil && connections.Kind == yaml.MappingNode {
			for i := 0; i+1 < len(connections.Content); i += 2 {
				l.renameLegacyKeys(connections.Content[i].Value, connections.Content[i+1])
			}
		}
	}

	if orm := mappingValue(doctrine, "orm"); orm != nil && orm.Kind == yaml.MappingNode {
		nestShorthand(orm, "entity_managers", "default_entity_manager", ormGlobalKeys)
	}
}

// nestShorthand moves every non-global key of section under collection.<default name>
// when the section does not declare collection itself.
func nestShorthand(section *yaml.Node, collection, defaultKey string, globals []string) {
	if mappingIndex(section, collection) >= 0 {
		return
	}

	name := "default"
	if v := mappingValue(section, defaultKey); v != nil && v.Kind == yaml.ScalarNode && v.Value != "" {
		name = v.Value
	}

	entry := mappingNode()
	kept := make([]*yaml.Node, 0, len(section.Content))
	for i := 0; i+1 < len(section.Content); i += 2 {
		key, value := section.Content[i], section.Content[i+1]
		if slices.Contains(globals, key.Value) {
			kept = append(kept, key, value)
			continue
		}
		entry.Content = append(entry.Content, key, value)
	}
	if len(entry.Content) == 0 {
		return
	}

	nested := mappingNode()
	nested.Content = append(nested.Content, scalarNode(name), entry)
	section.Content = append(kept, scalarNode(collection), nested)
}

func (l *Loader) renameLegacyKeys(connection string, node *yaml.Node) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for _, pair := range legacyConnectionKeys {
		if renameKey(node, pair[0], pair[1]) {
			l.Logger.Warn(fmt.Sprintf("connection %q: %q is deprecated, use %q", connection, pair[0], pair[1]))
		}
	}
}
