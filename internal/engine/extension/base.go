package extension

import "go.trai.ch/ormwire/internal/core/domain"

// Template and shared service ids registered before any connection or entity manager.
const (
	RegistryID                = "doctrine"
	ConnectionFactoryID       = "doctrine.dbal.connection_factory"
	ConnectionTemplateID      = "doctrine.dbal.connection"
	EventManagerTemplateID    = "doctrine.dbal.connection.event_manager"
	ConfigurationTemplateID   = "doctrine.dbal.connection.configuration"
	DBALLoggerID              = "doctrine.dbal.logger"
	ProfilingLoggerTemplateID = "doctrine.dbal.logger.profiling"
	BacktraceLoggerTemplateID = "doctrine.dbal.logger.backtrace"
	ChainLoggerTemplateID     = "doctrine.dbal.logger.chain"

	ORMConfigurationTemplateID = "doctrine.orm.configuration"
	EntityManagerTemplateID    = "doctrine.orm.entity_manager.abstract"
	ConfiguratorTemplateID     = "doctrine.orm.manager_configurator.abstract"
	AnnotationReaderID         = "doctrine.orm.metadata.annotation_reader"
	ResolveTargetEntityID      = "doctrine.orm.listeners.resolve_target_entity"

	DatabaseConnectionAlias = "database_connection"
	SystemCachePool         = "cache.system"
	AppCachePool            = "cache.app"

	TypesParameter      = "doctrine.dbal.connection_factory.types"
	AutoGenerateParam   = "doctrine.orm.auto_generate_proxy_classes"
	ProxyDirParam       = "doctrine.orm.proxy_dir"
	ProxyNamespaceParam = "doctrine.orm.proxy_namespace"
	BuildIDParameter    = "container.build_id"
)

// registerBase seeds c with the class catalog, the class parameters, the kernel
// parameters and the template definitions every builder derives from.
func registerBase(c *domain.Container, cfg *domain.Config) {
	for _, info := range builtinClasses {
		c.DefineClass(info)
	}
	for _, info := range cfg.Classes {
		c.DefineClass(info)
	}

	for _, p := range classParameters {
		c.SetParameter(p.Name, p.Value)
	}
	c.SetParameter("kernel.cache_dir", cfg.Kernel.CacheDir)
	c.SetParameter("kernel.project_dir", cfg.Kernel.ProjectDir)
	c.SetParameter("kernel.debug", cfg.Kernel.Debug)
	bundles := make(map[string]any, len(cfg.Kernel.Bundles))
	for _, b := range cfg.Kernel.Bundles {
		bundles[b.Name] = b.Namespace
	}
	c.SetParameter("kernel.bundles", bundles)
	for _, p := range cfg.Parameters {
		c.SetParameter(p.Name, p.Value)
	}

	container := c.Register(domain.ServiceContainerID, ContainerClass)
	container.Synthetic = true
	container.Public = true

	registry := c.Register(RegistryID, classRef(registryClassParam),
		domain.Ref(domain.ServiceContainerID),
		domain.Param(domain.ConnectionsParameter),
		domain.Param(domain.EntityManagersParameter),
		domain.Param(domain.DefaultConnectionParam),
		domain.Param(domain.DefaultEntityManagerPar),
	)
	registry.Public = true

	c.Register(ConnectionFactoryID, classRef(connectionFactoryClassParam), domain.Param(TypesParameter))

	conn := abstract(c, ConnectionTemplateID, ConnectionClass)
	factory := domain.Ref(ConnectionFactoryID)
	conn.Factory = &domain.Callable{Service: &factory, Method: "createConnection"}

	abstract(c, EventManagerTemplateID, classRef(eventManagerClassParam)).
		SetArgument(0, domain.Ref(domain.ServiceContainerID))
	abstract(c, ConfigurationTemplateID, classRef(dbalConfigurationClassParam))

	c.Register(DBALLoggerID, classRef(dbalLoggerClassParam),
		domain.OptionalRef("logger"),
		domain.OptionalRef("debug.stopwatch"),
	).AddTag("monolog.logger", domain.Attributes{"channel": "doctrine"})
	abstract(c, ProfilingLoggerTemplateID, classRef(loggerProfilingClassParam))
	abstract(c, BacktraceLoggerTemplateID, BacktraceLoggerClass)
	abstract(c, ChainLoggerTemplateID, classRef(loggerChainClassParam))

	abstract(c, domain.SchemaFilterManagerID, SchemaAssetsFilterManagerClass)
	c.Register(domain.WellKnownSchemaFilterID, domain.BlacklistSchemaAssetFilterClass, []any{})

	abstract(c, ORMConfigurationTemplateID, classRef(ormConfigurationClassParam))
	em := abstract(c, EntityManagerTemplateID, classRef(entityManagerClassParam))
	em.Factory = &domain.Callable{Class: classRef(entityManagerClassParam), Method: "create"}
	abstract(c, ConfiguratorTemplateID, classRef(managerConfiguratorClassParam))

	c.Register(AnnotationReaderID, AnnotationReaderClass)
	for _, id := range []string{
		domain.DefaultNamingStrategy,
		"doctrine.orm.naming_strategy.underscore",
		domain.DefaultQuoteStrategy,
		"doctrine.orm.quote_strategy.ansi",
	} {
		c.Register(id, classRef(id+".class"))
	}

	for _, pool := range []string{SystemCachePool, AppCachePool} {
		c.Register(pool, ArrayAdapterClass).AddTag(domain.CachePoolTag, nil)
	}
}

func abstract(c *domain.Container, id, class string) *domain.Definition {
	def := c.Register(id, class)
	def.Abstract = true
	return def
}
