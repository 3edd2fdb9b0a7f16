package extension

import (
	"cmp"
	"maps"

	"go.trai.ch/ormwire/internal/core/domain"
)

// loadDBAL registers a connection, its configuration, its event manager and its loggers
// for every configured connection.
func loadDBAL(c *domain.Container, dbal *domain.DBALConfig) {
	types := make(map[string]any, len(dbal.Types))
	for _, t := range dbal.Types {
		types[t.Name] = map[string]any{"class": t.Class}
	}
	c.SetParameter(TypesParameter, types)

	connections := make(map[string]any, len(dbal.Connections))
	for i := range dbal.Connections {
		conn := &dbal.Connections[i]
		loadConnection(c, conn)
		connections[conn.Name] = domain.ConnectionID(conn.Name)
	}
	c.SetParameter(domain.ConnectionsParameter, connections)
	c.SetParameter(domain.DefaultConnectionParam, dbal.DefaultConnection)

	if dbal.DefaultConnection != "" {
		c.SetPublicAlias(DatabaseConnectionAlias, domain.ConnectionID(dbal.DefaultConnection))
	}
}

func loadConnection(c *domain.Container, conn *domain.ConnectionConfig) {
	configID := domain.ConnectionConfigurationID(conn.Name)
	config := c.SetDefinition(configID, domain.NewChildDefinition(ConfigurationTemplateID))

	if logger := sqlLogger(c, conn); logger != "" {
		config.AddMethodCall("setSQLLogger", domain.Ref(logger))
	}
	if conn.AutoCommit != nil {
		config.AddMethodCall("setAutoCommit", *conn.AutoCommit)
	}
	if conn.UseSavepoints {
		config.AddMethodCall("setNestTransactionsWithSavepoints", true)
	}

	if conn.SchemaFilter != "" {
		c.Register(RegexSchemaFilterID(conn.Name), domain.RegexSchemaAssetFilterClass, conn.SchemaFilter).
			AddTag(domain.SchemaFilterTag, domain.Attributes{"connection": conn.Name})
	}

	eventManagerID := domain.EventManagerID(conn.Name)
	c.SetDefinition(eventManagerID, domain.NewChildDefinition(EventManagerTemplateID))

	options := connectionOptions(conn)
	def := domain.NewChildDefinition(ConnectionTemplateID,
		options,
		domain.Ref(configID),
		domain.Ref(eventManagerID),
		stringMap(conn.MappingTypes),
	)
	def.Public = true
	if wrapper, ok := options["wrapperClass"].(string); ok {
		def.Class = wrapper
	}
	c.SetDefinition(domain.ConnectionID(conn.Name), def)
}

// RegexSchemaFilterID is the id of the filter generated from a connection's schema_filter option.
func RegexSchemaFilterID(connection string) string {
	return "doctrine.dbal." + connection + "_regex_schema_filter"
}

// sqlLogger registers the loggers a connection needs and returns the id to pass to
// setSQLLogger, or "" when the connection logs nothing.
func sqlLogger(c *domain.Container, conn *domain.ConnectionConfig) string {
	var profiling string
	if conn.Profiling {
		template, id := ProfilingLoggerTemplateID, ProfilingLoggerTemplateID+"."+conn.Name
		if conn.ProfilingCollectBacktrace {
			template, id = BacktraceLoggerTemplateID, BacktraceLoggerTemplateID+"."+conn.Name
		}
		c.SetDefinition(id, domain.NewChildDefinition(template))
		profiling = id
	}

	switch {
	case conn.Logging && profiling != "":
		chainID := ChainLoggerTemplateID + "." + conn.Name
		c.SetDefinition(chainID, domain.NewChildDefinition(ChainLoggerTemplateID,
			[]any{domain.Ref(DBALLoggerID), domain.Ref(profiling)},
		))
		return chainID
	case conn.Logging:
		return DBALLoggerID
	default:
		return profiling
	}
}

// connectionOptions builds the option map handed to the connection factory.
func connectionOptions(conn *domain.ConnectionConfig) map[string]any {
	driverOptions := maps.Clone(conn.DriverOptions)
	if driverOptions == nil {
		driverOptions = map[string]any{}
	}
	options := map[string]any{
		"driver":              conn.Driver,
		"driverOptions":       driverOptions,
		"defaultTableOptions": stringMap(conn.DefaultTableOptions),
	}

	main := endpoint(conn.Params)
	switch {
	case len(conn.Replicas) > 0:
		replicas := make(map[string]any, len(conn.Replicas))
		for _, r := range conn.Replicas {
			replicas[r.Name] = endpoint(r.Params)
		}
		options["primary"] = main
		options["replicas"] = replicas
		options["keepReplica"] = conn.KeepReplica
		options["wrapperClass"] = cmp.Or(conn.WrapperClass, PrimaryReadReplicaClass)

	case len(conn.Shards) > 0:
		shards := make([]any, 0, len(conn.Shards))
		for _, s := range conn.Shards {
			shard := endpoint(s.Params)
			shard["id"] = s.ID
			shards = append(shards, shard)
		}
		options["global"] = main
		options["shards"] = shards
		switch {
		case conn.ShardChoserService != "":
			options["shardChoser"] = domain.Ref(conn.ShardChoserService)
		case conn.ShardChoser != "":
			options["shardChoser"] = conn.ShardChoser
		}
		options["wrapperClass"] = cmp.Or(conn.WrapperClass, PoolingShardClass)

	default:
		maps.Copy(options, main)
		if conn.WrapperClass != "" {
			options["wrapperClass"] = conn.WrapperClass
		}
	}

	if conn.ServerVersion != "" {
		options["serverVersion"] = conn.ServerVersion
	}
	if conn.PlatformService != "" {
		options["platform"] = domain.Ref(conn.PlatformService)
	}
	if conn.DriverClass != "" {
		options["driverClass"] = conn.DriverClass
	}
	return options
}

// endpoint returns the credentials of one server with the always-present keys filled in.
func endpoint(params domain.ConnectionParams) map[string]any {
	out := map[string]any{
		"dbname":   nil,
		"host":     "localhost",
		"port":     nil,
		"user":     "root",
		"password": nil,
	}
	maps.Copy(out, params)
	return out
}

func stringMap(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
