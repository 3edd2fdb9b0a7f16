package extension

import "go.trai.ch/ormwire/internal/core/domain"

// Runtime classes referenced by the generated definitions.
const (
	ContainerClass                 = `Symfony\Component\DependencyInjection\ContainerInterface`
	RegistryClass                  = `Doctrine\Bundle\DoctrineBundle\Registry`
	ConnectionFactoryClass         = `Doctrine\Bundle\DoctrineBundle\ConnectionFactory`
	ConnectionClass                = `Doctrine\DBAL\Connection`
	EventManagerClass              = `Symfony\Bridge\Doctrine\ContainerAwareEventManager`
	DBALConfigurationClass         = `Doctrine\DBAL\Configuration`
	DBALLoggerClass                = `Symfony\Bridge\Doctrine\Logger\DbalLogger`
	LoggerChainClass               = `Doctrine\DBAL\Logging\LoggerChain`
	DebugStackClass                = `Doctrine\DBAL\Logging\DebugStack`
	BacktraceLoggerClass           = `Doctrine\Bundle\DoctrineBundle\Dbal\Logging\BacktraceLogger`
	PrimaryReadReplicaClass        = `Doctrine\DBAL\Connections\PrimaryReadReplicaConnection`
	PoolingShardClass              = `Doctrine\DBAL\Sharding\PoolingShardConnection`
	SchemaAssetsFilterManagerClass = `Doctrine\Bundle\DoctrineBundle\Dbal\SchemaAssetsFilterManager`

	EntityManagerClass         = `Doctrine\ORM\EntityManager`
	ORMConfigurationClass      = `Doctrine\ORM\Configuration`
	ManagerConfiguratorClass   = `Doctrine\Bundle\DoctrineBundle\ManagerConfigurator`
	MappingDriverChainClass    = `Doctrine\Persistence\Mapping\Driver\MappingDriverChain`
	AnnotationReaderClass      = `Doctrine\Common\Annotations\AnnotationReader`
	ResolveTargetEntityClass   = `Doctrine\ORM\Tools\ResolveTargetEntityListener`
	AttachEntityListenersClass = `Doctrine\ORM\Tools\AttachEntityListenersListener`
	DoctrineProviderClass      = `Symfony\Component\Cache\DoctrineProvider`
	ArrayAdapterClass          = `Symfony\Component\Cache\Adapter\ArrayAdapter`
)

// Parameter names holding overridable runtime classes.
const (
	registryClassParam            = "doctrine.class"
	connectionFactoryClassParam   = "doctrine.dbal.connection_factory.class"
	eventManagerClassParam        = "doctrine.dbal.connection.event_manager.class"
	dbalConfigurationClassParam   = "doctrine.dbal.configuration.class"
	dbalLoggerClassParam          = "doctrine.dbal.logger.class"
	loggerChainClassParam         = "doctrine.dbal.logger.chain.class"
	loggerProfilingClassParam     = "doctrine.dbal.logger.profiling.class"
	entityManagerClassParam       = "doctrine.orm.entity_manager.class"
	ormConfigurationClassParam    = "doctrine.orm.configuration.class"
	managerConfiguratorClassParam = "doctrine.orm.manager_configurator.class"
	driverChainClassParam         = "doctrine.orm.metadata.driver_chain.class"
	resolveTargetClassParam       = "doctrine.orm.listeners.resolve_target_entity.class"
	attachListenersClassParam     = "doctrine.orm.listeners.attach_entity_listeners.class"

	slcCacheFactoryClassParam  = "doctrine.orm.second_level_cache.default_cache_factory.class"
	slcDefaultRegionClassParam = "doctrine.orm.second_level_cache.default_region.class"
	slcFileLockClassParam      = "doctrine.orm.second_level_cache.filelock_region.class"
	slcLoggerChainClassParam   = "doctrine.orm.second_level_cache.logger_chain.class"
	slcStatisticsClassParam    = "doctrine.orm.second_level_cache.logger_statistics.class"
	slcCacheConfigClassParam   = "doctrine.orm.second_level_cache.cache_configuration.class"
	slcRegionsConfigClassParam = "doctrine.orm.second_level_cache.regions_configuration.class"
)

var classParameters = []domain.NamedValue{
	{Name: registryClassParam, Value: RegistryClass},
	{Name: connectionFactoryClassParam, Value: ConnectionFactoryClass},
	{Name: eventManagerClassParam, Value: EventManagerClass},
	{Name: dbalConfigurationClassParam, Value: DBALConfigurationClass},
	{Name: dbalLoggerClassParam, Value: DBALLoggerClass},
	{Name: loggerChainClassParam, Value: LoggerChainClass},
	{Name: loggerProfilingClassParam, Value: DebugStackClass},
	{Name: entityManagerClassParam, Value: EntityManagerClass},
	{Name: ormConfigurationClassParam, Value: ORMConfigurationClass},
	{Name: managerConfiguratorClassParam, Value: ManagerConfiguratorClass},
	{Name: driverChainClassParam, Value: MappingDriverChainClass},
	{Name: metadataClassParam(domain.MappingAnnotation), Value: `Doctrine\ORM\Mapping\Driver\AnnotationDriver`},
	{Name: metadataClassParam(domain.MappingAttribute), Value: `Doctrine\ORM\Mapping\Driver\AttributeDriver`},
	{Name: metadataClassParam(domain.MappingXML), Value: `Doctrine\ORM\Mapping\Driver\SimplifiedXmlDriver`},
	{Name: metadataClassParam(domain.MappingYAML), Value: `Doctrine\ORM\Mapping\Driver\SimplifiedYamlDriver`},
	{Name: metadataClassParam(domain.MappingPHP), Value: `Doctrine\Persistence\Mapping\Driver\PHPDriver`},
	{Name: metadataClassParam(domain.MappingStaticPHP), Value: `Doctrine\Persistence\Mapping\Driver\StaticPHPDriver`},
	{Name: resolveTargetClassParam, Value: ResolveTargetEntityClass},
	{Name: attachListenersClassParam, Value: AttachEntityListenersClass},
	{Name: domain.ResolverClassParameter, Value: domain.ContainerResolverClass},
	{Name: "doctrine.orm.naming_strategy.default.class", Value: `Doctrine\ORM\Mapping\DefaultNamingStrategy`},
	{Name: "doctrine.orm.naming_strategy.underscore.class", Value: `Doctrine\ORM\Mapping\UnderscoreNamingStrategy`},
	{Name: "doctrine.orm.quote_strategy.default.class", Value: `Doctrine\ORM\Mapping\DefaultQuoteStrategy`},
	{Name: "doctrine.orm.quote_strategy.ansi.class", Value: `Doctrine\ORM\Mapping\AnsiQuoteStrategy`},
	{Name: slcCacheFactoryClassParam, Value: `Doctrine\ORM\Cache\DefaultCacheFactory`},
	{Name: slcDefaultRegionClassParam, Value: `Doctrine\ORM\Cache\Region\DefaultRegion`},
	{Name: slcFileLockClassParam, Value: `Doctrine\ORM\Cache\Region\FileLockRegion`},
	{Name: slcLoggerChainClassParam, Value: `Doctrine\ORM\Cache\Logging\CacheLoggerChain`},
	{Name: slcStatisticsClassParam, Value: `Doctrine\ORM\Cache\Logging\StatisticsCacheLogger`},
	{Name: slcCacheConfigClassParam, Value: `Doctrine\ORM\Cache\CacheConfiguration`},
	{Name: slcRegionsConfigClassParam, Value: `Doctrine\ORM\Cache\RegionsConfiguration`},
}

// builtinClasses describes the bundled classes the entity listener pass inspects.
var builtinClasses = []domain.ClassInfo{
	{
		Name: domain.ContainerResolverClass,
		Interfaces: []string{
			domain.EntityListenerResolverInterface,
			domain.EntityListenerServiceResolverInterface,
		},
		Methods: []string{"clear", "resolve", "register", "registerService"},
	},
}

func metadataClassParam(driver string) string {
	return "doctrine.orm.metadata." + driver + ".class"
}

// classRef renders a parameter placeholder usable as a definition class.
func classRef(param string) string {
	return domain.Param(param).String()
}
