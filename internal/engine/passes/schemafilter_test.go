package passes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/engine/extension"
	"go.trai.ch/ormwire/internal/engine/passes"
)

func TestWellKnownSchemaFilter_CollectsTables(t *testing.T) {
	services := []domain.ServiceConfig{
		{
			ID:        "cache.adapter.pdo",
			Class:     passes.CachePdoAdapterClass,
			Arguments: []any{"dsn", "", 0, map[string]any{"db_table": "app_cache"}},
		},
		{ID: "lock.store", Class: passes.LockDbalStoreClass},
		{ID: "messenger.connection", Class: passes.MessengerConnectionClass, Arguments: []any{map[string]any{}}},
		{ID: "session.handler", Class: passes.SessionPdoHandlerClass, Abstract: true},
	}
	c := graph(t, services, "default", "other")

	require.NoError(t, process(t, passes.NewWellKnownSchemaFilter(), c))

	filter := definition(t, c, domain.WellKnownSchemaFilterID)
	assert.Equal(t, []any{[]any{"app_cache", "lock_keys", "messenger_messages"}}, filter.Arguments)
	assert.Equal(t, []domain.Attributes{
		{"connection": "default"},
		{"connection": "other"},
	}, filter.Tag(domain.SchemaFilterTag))
}

func TestWellKnownSchemaFilter_BoundConnection(t *testing.T) {
	services := []domain.ServiceConfig{
		{
			ID:        "lock.store",
			Class:     passes.LockDbalStoreClass,
			Arguments: []any{domain.Ref(domain.ConnectionID("other"))},
		},
	}
	c := graph(t, services, "default", "other")

	require.NoError(t, process(t, passes.NewWellKnownSchemaFilter(), c))

	filter := definition(t, c, domain.WellKnownSchemaFilterID)
	assert.Equal(t, []domain.Attributes{{"connection": "other"}}, filter.Tag(domain.SchemaFilterTag))
}

func TestWellKnownSchemaFilter_MixedBoundAndUnbound(t *testing.T) {
	services := []domain.ServiceConfig{
		{
			ID:        "lock.store",
			Class:     passes.LockDbalStoreClass,
			Arguments: []any{domain.Ref(domain.ConnectionID("other"))},
		},
		{
			ID:        "session.handler",
			Class:     passes.SessionPdoHandlerClass,
			Arguments: []any{"mysql:host=db;dbname=app"},
		},
	}
	c := graph(t, services, "default", "other")

	require.NoError(t, process(t, passes.NewWellKnownSchemaFilter(), c))

	filter := definition(t, c, domain.WellKnownSchemaFilterID)
	assert.Equal(t, []any{[]any{"lock_keys", "sessions"}}, filter.Arguments)
	assert.Equal(t, []domain.Attributes{
		{"connection": "default"},
		{"connection": "other"},
	}, filter.Tag(domain.SchemaFilterTag))
}

func TestWellKnownSchemaFilter_NoSubsystem(t *testing.T) {
	c := graph(t, nil)

	require.NoError(t, process(t, passes.NewWellKnownSchemaFilter(), c))

	filter := definition(t, c, domain.WellKnownSchemaFilterID)
	assert.Equal(t, []any{[]any{}}, filter.Arguments)
	assert.False(t, filter.HasTag(domain.SchemaFilterTag))
}

func TestSchemaFilter_PerConnectionManagers(t *testing.T) {
	services := []domain.ServiceConfig{
		{
			ID:    "app.filter.default_only",
			Class: domain.RegexSchemaAssetFilterClass,
			Tags:  []domain.Tag{{Name: domain.SchemaFilterTag, Attributes: domain.Attributes{"connection": "default"}}},
		},
		{
			ID:    "app.filter.everywhere",
			Class: domain.RegexSchemaAssetFilterClass,
			Tags:  []domain.Tag{{Name: domain.SchemaFilterTag}},
		},
	}
	c := graph(t, services, "default", "other")
	c.Register("lock.store", passes.LockPdoStoreClass)

	require.NoError(t, process(t, passes.NewWellKnownSchemaFilter(), c))
	require.NoError(t, process(t, passes.NewSchemaFilter(newLogger(t)), c))

	manager := definition(t, c, domain.SchemaFilterManagerIDFor("default"))
	assert.Equal(t, domain.SchemaFilterManagerID, manager.Parent)
	assert.Equal(t, []any{[]any{
		domain.Ref(domain.WellKnownSchemaFilterID),
		domain.Ref("app.filter.default_only"),
		domain.Ref("app.filter.everywhere"),
	}}, manager.Arguments)

	other := definition(t, c, domain.SchemaFilterManagerIDFor("other"))
	assert.Equal(t, []any{[]any{
		domain.Ref(domain.WellKnownSchemaFilterID),
		domain.Ref("app.filter.everywhere"),
	}}, other.Arguments)

	calls := definition(t, c, domain.ConnectionConfigurationID("default")).MethodCalls("setSchemaAssetsFilter")
	require.Len(t, calls, 1)
	assert.Equal(t, []any{domain.Ref(domain.SchemaFilterManagerIDFor("default"))}, calls[0].Args)
}

func TestSchemaFilter_ConnectionWithoutFilters(t *testing.T) {
	services := []domain.ServiceConfig{
		{
			ID:    "app.filter",
			Class: domain.RegexSchemaAssetFilterClass,
			Tags:  []domain.Tag{{Name: domain.SchemaFilterTag, Attributes: domain.Attributes{"connection": "default"}}},
		},
	}
	c := graph(t, services, "default", "other")

	require.NoError(t, process(t, passes.NewSchemaFilter(newLogger(t)), c))

	assert.False(t, c.Has(domain.SchemaFilterManagerIDFor("other")))
	assert.False(t, definition(t, c, domain.ConnectionConfigurationID("other")).HasMethodCall("setSchemaAssetsFilter"))
}

func TestSchemaFilter_UnknownConnection(t *testing.T) {
	services := []domain.ServiceConfig{
		{
			ID:    "app.filter",
			Class: domain.RegexSchemaAssetFilterClass,
			Tags:  []domain.Tag{{Name: domain.SchemaFilterTag, Attributes: domain.Attributes{"connection": "missing"}}},
		},
	}
	c := graph(t, services)

	require.NoError(t, process(t, passes.NewSchemaFilter(newLogger(t)), c))

	assert.False(t, c.Has(domain.SchemaFilterManagerIDFor("missing")))
	assert.False(t, c.Has(domain.SchemaFilterManagerIDFor("default")))
}

func TestSchemaFilter_RegexFromConnectionConfig(t *testing.T) {
	c := graph(t, nil)
	c.Register(extension.RegexSchemaFilterID("default"), domain.RegexSchemaAssetFilterClass, "~^(?!t_)~").
		AddTag(domain.SchemaFilterTag, domain.Attributes{"connection": "default"})

	require.NoError(t, process(t, passes.NewSchemaFilter(newLogger(t)), c))

	manager := definition(t, c, domain.SchemaFilterManagerIDFor("default"))
	assert.Equal(t, []any{[]any{domain.Ref(extension.RegexSchemaFilterID("default"))}}, manager.Arguments)
}
