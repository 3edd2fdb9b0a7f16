package extension

import (
	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/zerr"
)

// loadORM registers every entity manager and the ORM-wide services. The registry
// parameters are set even when no entity manager is configured.
func (e *Extension) loadORM(c *domain.Container, cfg *domain.Config) error {
	orm := &cfg.ORM
	c.SetParameter(domain.EntityManagersParameter, map[string]any{})
	c.SetParameter(domain.DefaultEntityManagerPar, orm.DefaultEntityManager)
	if len(orm.EntityManagers) == 0 {
		return nil
	}

	c.SetParameter(AutoGenerateParam, orm.AutoGenerateProxyClasses)
	c.SetParameter(ProxyDirParam, orm.ProxyDir)
	c.SetParameter(ProxyNamespaceParam, orm.ProxyNamespace)

	managers := make(map[string]any, len(orm.EntityManagers))
	for i := range orm.EntityManagers {
		em := &orm.EntityManagers[i]
		if err := e.loadEntityManager(c, cfg, em); err != nil {
			return zerr.With(err, "entity_manager", em.Name)
		}
		managers[em.Name] = domain.EntityManagerID(em.Name)
	}
	c.SetParameter(domain.EntityManagersParameter, managers)
	c.SetPublicAlias(domain.EntityManagerAliasID, domain.EntityManagerID(orm.DefaultEntityManager))

	resolver := c.Register(ResolveTargetEntityID, classRef(resolveTargetClassParam))
	for _, target := range orm.ResolveTargetEntities {
		resolver.AddMethodCall("addResolveTargetEntity", target.Name, target.Class, []any{})
	}
	resolver.AddTag(domain.EventSubscriberTag, nil)
	return nil
}

func (e *Extension) loadEntityManager(c *domain.Container, cfg *domain.Config, em *domain.EntityManagerConfig) error {
	if _, ok := cfg.DBAL.Connection(em.Connection); !ok {
		return zerr.With(domain.ErrUnknownConnection, "connection", em.Connection)
	}

	configID := domain.ORMElementID(em.Name, "configuration")
	config := c.SetDefinition(configID, domain.NewChildDefinition(ORMConfigurationTemplateID))

	caches := []struct {
		name, defaultPool string
		driver            domain.CacheDriver
		method            string
	}{
		{"metadata_cache", SystemCachePool, em.MetadataCacheDriver, "setMetadataCacheImpl"},
		{"query_cache", "", em.QueryCacheDriver, "setQueryCacheImpl"},
		{"result_cache", "", em.ResultCacheDriver, "setResultCacheImpl"},
	}
	for _, cache := range caches {
		id, err := loadCacheDriver(c, em.Name, cache.name, cache.driver, cache.defaultPool)
		if err != nil {
			return err
		}
		config.AddMethodCall(cache.method, domain.Ref(id))
	}

	chainID, aliases, err := e.loadMetadataDrivers(c, &cfg.Kernel, em)
	if err != nil {
		return err
	}
	config.AddMethodCall("setMetadataDriverImpl", domain.Ref(chainID))
	if len(aliases) > 0 {
		config.AddMethodCall("setEntityNamespaces", aliases)
	}

	config.AddMethodCall("setProxyDir", domain.Param(ProxyDirParam))
	config.AddMethodCall("setProxyNamespace", domain.Param(ProxyNamespaceParam))
	config.AddMethodCall("setAutoGenerateProxyClasses", domain.Param(AutoGenerateParam))
	config.AddMethodCall("setClassMetadataFactoryName", em.ClassMetadataFactoryName)
	config.AddMethodCall("setDefaultRepositoryClassName", em.DefaultRepositoryClass)
	config.AddMethodCall("setNamingStrategy", domain.Ref(em.NamingStrategy))
	config.AddMethodCall("setQuoteStrategy", domain.Ref(em.QuoteStrategy))

	resolverID := domain.EntityListenerResolverID(em.Name)
	config.AddMethodCall("setEntityListenerResolver", domain.Ref(resolverID))
	if em.RepositoryFactory != "" {
		config.AddMethodCall("setRepositoryFactory", domain.Ref(em.RepositoryFactory))
	}

	if em.SecondLevelCache != nil {
		if err := loadSecondLevelCache(c, em, config); err != nil {
			return err
		}
	}

	for _, mode := range em.HydrationModes {
		config.AddMethodCall("addCustomHydrationMode", mode.Name, mode.Class)
	}
	for _, fn := range em.StringFunctions {
		config.AddMethodCall("addCustomStringFunction", fn.Name, fn.Class)
	}
	for _, fn := range em.NumericFunctions {
		config.AddMethodCall("addCustomNumericFunction", fn.Name, fn.Class)
	}
	for _, fn := range em.DatetimeFunctions {
		config.AddMethodCall("addCustomDatetimeFunction", fn.Name, fn.Class)
	}

	enabled := []any{}
	parameters := map[string]any{}
	for _, f := range em.Filters {
		config.AddMethodCall("addFilter", f.Name, f.Class)
		if f.Enabled {
			enabled = append(enabled, f.Name)
		}
		if len(f.Parameters) > 0 {
			parameters[f.Name] = f.Parameters
		}
	}

	configuratorID := domain.ORMElementID(em.Name, "manager_configurator")
	c.SetDefinition(configuratorID, domain.NewChildDefinition(ConfiguratorTemplateID, enabled, parameters))

	manager := domain.NewChildDefinition(EntityManagerTemplateID,
		domain.Ref(domain.ConnectionID(em.Connection)),
		domain.Ref(configID),
	)
	manager.Public = true
	configurator := domain.Ref(configuratorID)
	manager.Configurator = &domain.Callable{Service: &configurator, Method: "configure"}
	c.SetDefinition(domain.EntityManagerID(em.Name), manager)
	c.SetAlias(domain.EntityManagerID(em.Name)+".event_manager", domain.EventManagerID(em.Connection))

	attach := c.Register(domain.AttachEntityListenersID(em.Name), classRef(attachListenersClassParam))
	attach.AddTag(domain.EventListenerTag, domain.Attributes{
		"event":      "loadClassMetadata",
		"connection": em.Connection,
	})
	for _, b := range em.EntityListeners {
		var method any
		if b.Method != "" {
			method = b.Method
		}
		attach.AddMethodCall("addEntityListener", b.Entity, b.Listener, b.Event, method)
	}

	if em.EntityListenerResolver != "" {
		c.SetAlias(resolverID, em.EntityListenerResolver)
	} else {
		c.Register(resolverID, classRef(domain.ResolverClassParameter), domain.Ref(domain.ServiceContainerID))
	}
	return nil
}
