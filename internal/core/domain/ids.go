package domain

import "fmt"

// Well-known service ids and tags shared by the builders and the passes.
const (
	ServiceContainerID = "service_container"

	SchemaFilterTag         = "doctrine.dbal.schema_filter"
	EntityListenerTag       = "doctrine.orm.entity_listener"
	EventListenerTag        = "doctrine.event_listener"
	EventSubscriberTag      = "doctrine.event_subscriber"
	CachePoolTag            = "cache.pool"
	WellKnownSchemaFilterID = "doctrine.dbal.well_known_schema_asset_filter"
	SchemaFilterManagerID   = "doctrine.dbal.schema_asset_filter_manager"
	ConnectionsParameter    = "doctrine.connections"
	EntityManagersParameter = "doctrine.entity_managers"
	DefaultConnectionParam  = "doctrine.default_connection"
	DefaultEntityManagerPar = "doctrine.default_entity_manager"
	EntityManagerAliasID    = "doctrine.orm.entity_manager"
	ResolverClassParameter  = "doctrine.orm.entity_listener_resolver.class"
)

// ConnectionID is the id of a connection service.
func ConnectionID(name string) string {
	return fmt.Sprintf("doctrine.dbal.%s_connection", name)
}

// ConnectionConfigurationID is the id of a connection's Configuration.
func ConnectionConfigurationID(name string) string {
	return ConnectionID(name) + ".configuration"
}

// EventManagerID is the id of a connection's event manager.
func EventManagerID(name string) string {
	return ConnectionID(name) + ".event_manager"
}

// SchemaFilterManagerIDFor is the id of a connection's aggregate schema filter.
func SchemaFilterManagerIDFor(connection string) string {
	return fmt.Sprintf("doctrine.dbal.%s_schema_asset_filter_manager", connection)
}

// EntityManagerID is the id of an entity manager service.
func EntityManagerID(name string) string {
	return fmt.Sprintf("doctrine.orm.%s_entity_manager", name)
}

// ORMElementID is the id of a per-entity-manager element such as "configuration".
func ORMElementID(em, element string) string {
	return fmt.Sprintf("doctrine.orm.%s_%s", em, element)
}

// EntityListenerResolverID is the id of an entity manager's listener resolver.
func EntityListenerResolverID(em string) string {
	return ORMElementID(em, "entity_listener_resolver")
}

// AttachEntityListenersID is the id of an entity manager's attach-listeners subscriber.
func AttachEntityListenersID(em string) string {
	return ORMElementID(em, "listeners.attach_entity_listeners")
}
