package passes

import (
	"context"

	"go.trai.ch/ormwire/internal/core/domain"
)

// Framework subsystems that keep their own tables in a connection's schema.
const (
	CachePdoAdapterClass      = `Symfony\Component\Cache\Adapter\PdoAdapter`
	CacheDbalAdapterClass     = `Symfony\Component\Cache\Adapter\DoctrineDbalAdapter`
	LockPdoStoreClass         = `Symfony\Component\Lock\Store\PdoStore`
	LockDbalStoreClass        = `Symfony\Component\Lock\Store\DoctrineDbalStore`
	MessengerConnectionClass  = `Symfony\Component\Messenger\Bridge\Doctrine\Transport\Connection`
	MessengerLegacyConnection = `Symfony\Component\Messenger\Transport\Doctrine\Connection`
	SessionPdoHandlerClass    = `Symfony\Component\HttpFoundation\Session\Storage\Handler\PdoSessionHandler`
)

// subsystem tells where a subsystem class keeps its table name.
type subsystem struct {
	optionsArg   int
	key          string
	defaultTable string
}

var subsystems = map[string]subsystem{
	CachePdoAdapterClass:      {optionsArg: 3, key: "db_table", defaultTable: "cache_items"},
	CacheDbalAdapterClass:     {optionsArg: 3, key: "db_table", defaultTable: "cache_items"},
	LockPdoStoreClass:         {optionsArg: 1, key: "db_table", defaultTable: "lock_keys"},
	LockDbalStoreClass:        {optionsArg: 1, key: "db_table", defaultTable: "lock_keys"},
	MessengerConnectionClass:  {optionsArg: 0, key: "table_name", defaultTable: "messenger_messages"},
	MessengerLegacyConnection: {optionsArg: 0, key: "table_name", defaultTable: "messenger_messages"},
	SessionPdoHandlerClass:    {optionsArg: 1, key: "db_table", defaultTable: "sessions"},
}

// WellKnownSchemaFilter hides the tables of framework subsystems from schema tooling.
type WellKnownSchemaFilter struct{}

// NewWellKnownSchemaFilter creates a new WellKnownSchemaFilter pass.
func NewWellKnownSchemaFilter() *WellKnownSchemaFilter {
	return &WellKnownSchemaFilter{}
}

// Name implements ports.CompilerPass.
func (p *WellKnownSchemaFilter) Name() string {
	return "well_known_schema_filter"
}

// Process implements ports.CompilerPass.
func (p *WellKnownSchemaFilter) Process(_ context.Context, c *domain.Container, _ domain.TagIndex) error {
	filter, ok := c.Definition(domain.WellKnownSchemaFilterID)
	if !ok {
		return nil
	}

	connections := connectionNames(c)
	var tables []any
	bound := make(map[string]bool)
	unbound := false

	for _, def := range c.Definitions() {
		if def.Abstract || def.Synthetic {
			continue
		}
		sub, ok := subsystems[def.Class]
		if !ok {
			continue
		}
		tables = append(tables, tableName(def, sub))
		if name, ok := boundConnection(def, connections); ok {
			bound[name] = true
		} else {
			unbound = true
		}
	}
	if len(tables) == 0 {
		return nil
	}

	// A subsystem without a connection reference may use any of them.
	filter.SetArgument(0, tables)
	for _, name := range connections {
		if !unbound && !bound[name] {
			continue
		}
		filter.AddTagOnce(domain.SchemaFilterTag, domain.Attributes{"connection": name})
	}
	return nil
}

func tableName(def *domain.Definition, sub subsystem) string {
	arg, _ := def.Argument(sub.optionsArg)
	options, _ := arg.(map[string]any)
	if table, ok := options[sub.key].(string); ok && table != "" {
		return table
	}
	return sub.defaultTable
}

// boundConnection reports the connection a subsystem receives as its first argument.
func boundConnection(def *domain.Definition, connections []string) (string, bool) {
	arg, _ := def.Argument(0)
	ref, ok := arg.(domain.Reference)
	if !ok {
		return "", false
	}
	for _, name := range connections {
		if ref.ID == domain.ConnectionID(name) {
			return name, true
		}
	}
	return "", false
}
