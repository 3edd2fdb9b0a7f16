package extension_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/engine/extension"
)

func connectionOptions(t *testing.T, c *domain.Container, name string) map[string]any {
	t.Helper()
	def := definition(t, c, domain.ConnectionID(name))
	options, ok := def.Arguments[0].(map[string]any)
	require.True(t, ok, "argument 0 of %s is %T", name, def.Arguments[0])
	return options
}

func TestLoadDBAL_ConnectionOptions(t *testing.T) {
	conn := connection("default")
	conn.Params = domain.ConnectionParams{
		"dbname":      "mysql_db",
		"user":        "mysql_user",
		"password":    "mysql_s3cr3t",
		"unix_socket": "/path/to/mysqld.sock",
	}

	c := load(t, dbalConfig(conn))

	assert.Equal(t, map[string]any{
		"dbname":              "mysql_db",
		"host":                "localhost",
		"port":                nil,
		"user":                "mysql_user",
		"password":            "mysql_s3cr3t",
		"driver":              "pdo_mysql",
		"driverOptions":       map[string]any{},
		"defaultTableOptions": map[string]any{},
		"unix_socket":         "/path/to/mysqld.sock",
	}, connectionOptions(t, c, "default"))
}

func TestLoadDBAL_ConnectionDefinition(t *testing.T) {
	conn := connection("default")
	conn.MappingTypes = map[string]string{"enum": "string"}

	c := load(t, dbalConfig(conn))

	def := definition(t, c, domain.ConnectionID("default"))
	assert.Equal(t, extension.ConnectionTemplateID, def.Parent)
	assert.True(t, def.Public)
	assert.Equal(t, domain.Ref(domain.ConnectionConfigurationID("default")), def.Arguments[1])
	assert.Equal(t, domain.Ref(domain.EventManagerID("default")), def.Arguments[2])
	assert.Equal(t, map[string]any{"enum": "string"}, def.Arguments[3])

	assert.Equal(t, extension.EventManagerTemplateID, definition(t, c, domain.EventManagerID("default")).Parent)

	connections, ok := c.Parameter(domain.ConnectionsParameter)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"default": domain.ConnectionID("default")}, connections)

	alias, ok := c.Alias(extension.DatabaseConnectionAlias)
	require.True(t, ok)
	assert.Equal(t, domain.ConnectionID("default"), alias.Target)
	assert.True(t, alias.Public)
}

func TestLoadDBAL_OptionalOptions(t *testing.T) {
	conn := connection("default")
	conn.ServerVersion = "8.0"
	conn.PlatformService = "app.platform"
	conn.DriverClass = `App\Driver`
	conn.WrapperClass = `App\Connection`
	conn.DriverOptions = map[string]any{"1002": "SET NAMES utf8"}
	conn.DefaultTableOptions = map[string]string{"charset": "utf8mb4"}

	c := load(t, dbalConfig(conn))
	options := connectionOptions(t, c, "default")

	assert.Equal(t, "8.0", options["serverVersion"])
	assert.Equal(t, domain.Ref("app.platform"), options["platform"])
	assert.Equal(t, `App\Driver`, options["driverClass"])
	assert.Equal(t, `App\Connection`, options["wrapperClass"])
	assert.Equal(t, map[string]any{"1002": "SET NAMES utf8"}, options["driverOptions"])
	assert.Equal(t, map[string]any{"charset": "utf8mb4"}, options["defaultTableOptions"])
	assert.Equal(t, `App\Connection`, definition(t, c, domain.ConnectionID("default")).Class)
}

func TestLoadDBAL_Replicas(t *testing.T) {
	conn := connection("default")
	conn.Params = domain.ConnectionParams{"dbname": "app", "host": "primary"}
	conn.KeepReplica = true
	conn.Replicas = []domain.NamedParams{
		{Name: "replica1", Params: domain.ConnectionParams{"host": "replica1"}},
	}

	c := load(t, dbalConfig(conn))
	options := connectionOptions(t, c, "default")

	assert.Equal(t, map[string]any{
		"dbname": "app", "host": "primary", "port": nil, "user": "root", "password": nil,
	}, options["primary"])
	assert.Equal(t, map[string]any{
		"replica1": map[string]any{
			"dbname": nil, "host": "replica1", "port": nil, "user": "root", "password": nil,
		},
	}, options["replicas"])
	assert.Equal(t, true, options["keepReplica"])
	assert.Equal(t, extension.PrimaryReadReplicaClass, options["wrapperClass"])
	assert.NotContains(t, options, "dbname")
	assert.Equal(t, extension.PrimaryReadReplicaClass, definition(t, c, domain.ConnectionID("default")).Class)
}

func TestLoadDBAL_Shards(t *testing.T) {
	conn := connection("default")
	conn.Params = domain.ConnectionParams{"dbname": "global"}
	conn.Shards = []domain.ShardConfig{
		{ID: 1, Params: domain.ConnectionParams{"dbname": "shard1"}},
		{ID: 2, Params: domain.ConnectionParams{"dbname": "shard2"}},
	}
	conn.ShardChoserService = "app.shard_choser"

	c := load(t, dbalConfig(conn))
	options := connectionOptions(t, c, "default")

	global, ok := options["global"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "global", global["dbname"])

	shards, ok := options["shards"].([]any)
	require.True(t, ok)
	require.Len(t, shards, 2)
	assert.Equal(t, 1, shards[0].(map[string]any)["id"])
	assert.Equal(t, "shard2", shards[1].(map[string]any)["dbname"])

	assert.Equal(t, domain.Ref("app.shard_choser"), options["shardChoser"])
	assert.Equal(t, extension.PoolingShardClass, options["wrapperClass"])
}

func TestLoadDBAL_SQLLogger(t *testing.T) {
	tests := []struct {
		name      string
		logging   bool
		profiling bool
		backtrace bool
		want      string
	}{
		{name: "none"},
		{name: "logging", logging: true, want: extension.DBALLoggerID},
		{name: "profiling", profiling: true, want: "doctrine.dbal.logger.profiling.default"},
		{name: "backtrace", profiling: true, backtrace: true, want: "doctrine.dbal.logger.backtrace.default"},
		{name: "both", logging: true, profiling: true, want: "doctrine.dbal.logger.chain.default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := connection("default")
			conn.Logging = tt.logging
			conn.Profiling = tt.profiling
			conn.ProfilingCollectBacktrace = tt.backtrace

			c := load(t, dbalConfig(conn))
			config := definition(t, c, domain.ConnectionConfigurationID("default"))

			calls := config.MethodCalls("setSQLLogger")
			if tt.want == "" {
				assert.Empty(t, calls)
				return
			}
			require.Len(t, calls, 1)
			assert.Equal(t, []any{domain.Ref(tt.want)}, calls[0].Args)
		})
	}
}

func TestLoadDBAL_ChainLoggerArguments(t *testing.T) {
	conn := connection("default")
	conn.Logging = true
	conn.Profiling = true

	c := load(t, dbalConfig(conn))

	chain := definition(t, c, "doctrine.dbal.logger.chain.default")
	assert.Equal(t, extension.ChainLoggerTemplateID, chain.Parent)
	assert.Equal(t, []any{
		[]any{domain.Ref(extension.DBALLoggerID), domain.Ref("doctrine.dbal.logger.profiling.default")},
	}, chain.Arguments)
}

func TestLoadDBAL_Savepoints(t *testing.T) {
	enabled := connection("enabled")
	enabled.UseSavepoints = true
	disabled := connection("disabled")

	c := load(t, dbalConfig(enabled, disabled))

	calls := definition(t, c, domain.ConnectionConfigurationID("enabled")).MethodCalls("setNestTransactionsWithSavepoints")
	require.Len(t, calls, 1)
	assert.Equal(t, []any{true}, calls[0].Args)

	assert.False(t, definition(t, c, domain.ConnectionConfigurationID("disabled")).
		HasMethodCall("setNestTransactionsWithSavepoints"))
}

func TestLoadDBAL_AutoCommit(t *testing.T) {
	off := false
	conn := connection("default")
	conn.AutoCommit = &off
	unset := connection("unset")

	c := load(t, dbalConfig(conn, unset))

	calls := definition(t, c, domain.ConnectionConfigurationID("default")).MethodCalls("setAutoCommit")
	require.Len(t, calls, 1)
	assert.Equal(t, []any{false}, calls[0].Args)
	assert.False(t, definition(t, c, domain.ConnectionConfigurationID("unset")).HasMethodCall("setAutoCommit"))
}

func TestLoadDBAL_RegexSchemaFilter(t *testing.T) {
	conn := connection("default")
	conn.SchemaFilter = "~^(?!t_)~"

	c := load(t, dbalConfig(conn, connection("other")))

	filter := definition(t, c, extension.RegexSchemaFilterID("default"))
	assert.Equal(t, domain.RegexSchemaAssetFilterClass, filter.Class)
	assert.Equal(t, []any{"~^(?!t_)~"}, filter.Arguments)
	assert.Equal(t, []domain.Attributes{{"connection": "default"}}, filter.Tag(domain.SchemaFilterTag))

	assert.False(t, c.HasDefinition(extension.RegexSchemaFilterID("other")))
}

func TestLoadDBAL_Types(t *testing.T) {
	cfg := dbalConfig(connection("default"))
	cfg.DBAL.Types = []domain.NamedClass{{Name: "uuid", Class: `App\UuidType`}}

	c := load(t, cfg)

	types, ok := c.Parameter(extension.TypesParameter)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"uuid": map[string]any{"class": `App\UuidType`}}, types)
	assert.Equal(t, []any{domain.Param(extension.TypesParameter)},
		definition(t, c, extension.ConnectionFactoryID).Arguments)
}
