package config

import (
	"maps"
	"path/filepath"
	"slices"

	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	defaultDriver               = "pdo_mysql"
	defaultCacheDir             = "var/cache"
	defaultClassMetadataFactory = `Doctrine\ORM\Mapping\ClassMetadataFactory`
	defaultRepositoryClass      = `Doctrine\ORM\EntityRepository`
	defaultRegionLifetime       = 3600
	defaultRegionLockLifetime   = 60
	defaultFileLockPath         = "%kernel.cache_dir%/doctrine/orm/slc/filelock"
)

// convert turns the decoded file into the semantic configuration tree, applying defaults.
func convert(file *File, configDir string) (*domain.Config, error) {
	cfg := &domain.Config{
		Kernel: convertKernel(file.Kernel, configDir),
	}

	for _, p := range file.Parameters {
		cfg.Parameters = append(cfg.Parameters, domain.NamedValue{Name: p.Key, Value: p.Value})
	}

	for _, c := range file.Classes {
		cfg.Classes = append(cfg.Classes, domain.ClassInfo{
			Name:       c.Key,
			Parent:     c.Value.Parent,
			Interfaces: c.Value.Interfaces,
			Methods:    c.Value.Methods,
		})
	}

	services, err := convertServices(file.Services)
	if err != nil {
		return nil, err
	}
	cfg.Services = services

	dbal, err := convertDBAL(file.Doctrine.DBAL)
	if err != nil {
		return nil, err
	}
	cfg.DBAL = dbal

	orm, err := convertORM(file.Doctrine.ORM, &cfg.DBAL, cfg.Kernel.Bundles)
	if err != nil {
		return nil, err
	}
	cfg.ORM = orm

	return cfg, nil
}

func convertKernel(dto KernelDTO, configDir string) domain.KernelConfig {
	k := domain.KernelConfig{
		CacheDir:   dto.CacheDir,
		ProjectDir: resolvePath(configDir, dto.ProjectDir),
		Debug:      dto.Debug,
	}
	if k.CacheDir == "" {
		k.CacheDir = defaultCacheDir
	}
	if dto.ProjectDir == "" {
		k.ProjectDir = configDir
	}
	for _, b := range dto.Bundles {
		k.Bundles = append(k.Bundles, domain.Bundle{
			Name:      b.Name,
			Namespace: b.Namespace,
			Path:      resolvePath(k.ProjectDir, b.Path),
		})
	}
	return k
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func convertDBAL(dto DBALDTO) (domain.DBALConfig, error) {
	dbal := domain.DBALConfig{
		DefaultConnection:   dto.DefaultConnection,
		DefaultTableOptions: dto.DefaultTableOptions,
	}

	for _, t := range dto.Types {
		dbal.Types = append(dbal.Types, domain.NamedClass{Name: t.Key, Class: t.Value.Class})
	}

	for _, e := range dto.Connections {
		conn, err := convertConnection(e.Key, e.Value, dto.DefaultTableOptions)
		if err != nil {
			return dbal, zerr.With(err, "connection", e.Key)
		}
		dbal.Connections = append(dbal.Connections, conn)
	}

	if len(dbal.Connections) == 0 {
		return dbal, nil
	}
	if dbal.DefaultConnection == "" {
		dbal.DefaultConnection = dbal.Connections[0].Name
	}
	if _, ok := dbal.Connection(dbal.DefaultConnection); !ok {
		return dbal, zerr.With(domain.ErrUnknownConnection, "connection", dbal.DefaultConnection)
	}
	return dbal, nil
}

func convertConnection(name string, dto ConnectionDTO, globalTableOptions map[string]string) (domain.ConnectionConfig, error) {
	conn := domain.ConnectionConfig{
		Name:                      name,
		Driver:                    dto.Driver,
		Params:                    convertParams(dto.ParamsDTO),
		DriverClass:               dto.DriverClass,
		WrapperClass:              dto.WrapperClass,
		ServerVersion:             dto.ServerVersion,
		PlatformService:           dto.PlatformService,
		DriverOptions:             dto.Options,
		MappingTypes:              dto.MappingTypes,
		Logging:                   dto.Logging,
		Profiling:                 dto.Profiling,
		ProfilingCollectBacktrace: dto.ProfilingCollectBacktrace,
		AutoCommit:                dto.AutoCommit,
		UseSavepoints:             dto.UseSavepoints,
		SchemaFilter:              dto.SchemaFilter,
		KeepReplica:               dto.KeepReplica,
		ShardChoser:               dto.ShardChoser,
		ShardChoserService:        dto.ShardChoserService,
	}
	if conn.Driver == "" {
		conn.Driver = defaultDriver
	}

	if len(globalTableOptions) > 0 || len(dto.DefaultTableOptions) > 0 {
		conn.DefaultTableOptions = make(map[string]string, len(globalTableOptions)+len(dto.DefaultTableOptions))
		maps.Copy(conn.DefaultTableOptions, globalTableOptions)
		maps.Copy(conn.DefaultTableOptions, dto.DefaultTableOptions)
	}

	if len(dto.Replicas) > 0 && len(dto.Shards) > 0 {
		return conn, zerr.With(domain.ErrInvalidConfiguration, "field", "replicas")
	}

	for _, r := range dto.Replicas {
		conn.Replicas = append(conn.Replicas, domain.NamedParams{Name: r.Key, Params: convertParams(r.Value)})
	}

	seen := make(map[int]bool, len(dto.Shards))
	for _, s := range dto.Shards {
		if seen[*s.ID] {
			return conn, zerr.With(zerr.With(domain.ErrInvalidConfiguration, "field", "shards.id"), "shard_id", *s.ID)
		}
		seen[*s.ID] = true
		conn.Shards = append(conn.Shards, domain.ShardConfig{ID: *s.ID, Params: convertParams(s.ParamsDTO)})
	}

	return conn, nil
}

// convertParams keeps only the parameters that were configured.
func convertParams(p ParamsDTO) domain.ConnectionParams {
	params := domain.ConnectionParams{}
	setString := func(key string, v *string) {
		if v != nil {
			params[key] = *v
		}
	}
	setBool := func(key string, v *bool) {
		if v != nil {
			params[key] = *v
		}
	}

	setString("url", p.URL)
	setString("dbname", p.DBName)
	setString("host", p.Host)
	if p.Port != nil {
		params["port"] = p.Port
	}
	setString("user", p.User)
	setString("password", p.Password)
	setString("unix_socket", p.UnixSocket)
	setString("charset", p.Charset)
	setString("path", p.Path)
	setBool("memory", p.Memory)
	setString("servicename", p.ServiceName)
	setBool("service", p.Service)
	setBool("pooled", p.Pooled)
	setString("connectstring", p.ConnectString)
	setString("instancename", p.InstanceName)
	setString("sslmode", p.SSLMode)
	setString("sslrootcert", p.SSLRootCert)
	setString("sslcert", p.SSLCert)
	setString("sslkey", p.SSLKey)
	setString("sslcrl", p.SSLCRL)
	setString("default_dbname", p.DefaultDBName)
	setString("application_name", p.ApplicationName)
	setString("server", p.Server)
	setBool("persistent", p.Persistent)
	setString("protocol", p.Protocol)
	return params
}

func convertORM(dto ORMDTO, dbal *domain.DBALConfig, bundles []domain.Bundle) (domain.ORMConfig, error) {
	orm := domain.ORMConfig{
		DefaultEntityManager:     dto.DefaultEntityManager,
		AutoGenerateProxyClasses: dto.AutoGenerateProxyClasses,
		ProxyDir:                 dto.ProxyDir,
		ProxyNamespace:           dto.ProxyNamespace,
		ResolveTargetEntities:    namedClasses(dto.ResolveTargetEntities),
	}
	if orm.ProxyDir == "" {
		orm.ProxyDir = "%kernel.cache_dir%/doctrine/orm/Proxies"
	}
	if orm.ProxyNamespace == "" {
		orm.ProxyNamespace = "Proxies"
	}

	autoMapped := 0
	for _, e := range dto.EntityManagers {
		em, err := convertEntityManager(e.Key, e.Value, dbal, bundles)
		if err != nil {
			return orm, zerr.With(err, "entity_manager", e.Key)
		}
		if em.AutoMapping {
			autoMapped++
		}
		orm.EntityManagers = append(orm.EntityManagers, em)
	}

	if autoMapped > 1 {
		return orm, zerr.With(domain.ErrInvalidConfiguration, "field", "auto_mapping")
	}

	if len(orm.EntityManagers) == 0 {
		return orm, nil
	}
	if orm.DefaultEntityManager == "" {
		orm.DefaultEntityManager = orm.EntityManagers[0].Name
	}
	if !slices.ContainsFunc(orm.EntityManagers, func(em domain.EntityManagerConfig) bool {
		return em.Name == orm.DefaultEntityManager
	}) {
		return orm, zerr.With(domain.ErrInvalidConfiguration, "field", "default_entity_manager")
	}
	return orm, nil
}

func convertEntityManager(
	name string,
	dto EntityManagerDTO,
	dbal *domain.DBALConfig,
	bundles []domain.Bundle,
) (domain.EntityManagerConfig, error) {
	em := domain.EntityManagerConfig{
		Name:                     name,
		Connection:               dto.Connection,
		ClassMetadataFactoryName: dto.ClassMetadataFactoryName,
		DefaultRepositoryClass:   dto.DefaultRepositoryClass,
		AutoMapping:              dto.AutoMapping,
		NamingStrategy:           dto.NamingStrategy,
		QuoteStrategy:            dto.QuoteStrategy,
		EntityListenerResolver:   dto.EntityListenerResolver,
		RepositoryFactory:        dto.RepositoryFactory,
		MetadataCacheDriver:      convertCacheDriver(dto.MetadataCacheDriver),
		QueryCacheDriver:         convertCacheDriver(dto.QueryCacheDriver),
		ResultCacheDriver:        convertCacheDriver(dto.ResultCacheDriver),
		StringFunctions:          namedClasses(dto.DQL.StringFunctions),
		NumericFunctions:         namedClasses(dto.DQL.NumericFunctions),
		DatetimeFunctions:        namedClasses(dto.DQL.DatetimeFunctions),
		HydrationModes:           namedClasses(dto.Hydrators),
	}

	if em.Connection == "" {
		em.Connection = dbal.DefaultConnection
	}
	if _, ok := dbal.Connection(em.Connection); !ok {
		return em, zerr.With(domain.ErrUnknownConnection, "connection", em.Connection)
	}
	if em.ClassMetadataFactoryName == "" {
		em.ClassMetadataFactoryName = defaultClassMetadataFactory
	}
	if em.DefaultRepositoryClass == "" {
		em.DefaultRepositoryClass = defaultRepositoryClass
	}
	if em.NamingStrategy == "" {
		em.NamingStrategy = domain.DefaultNamingStrategy
	}
	if em.QuoteStrategy == "" {
		em.QuoteStrategy = domain.DefaultQuoteStrategy
	}

	for _, m := range dto.Mappings {
		mapping, err := convertMapping(m.Key, m.Value, bundles)
		if err != nil {
			return em, err
		}
		em.Mappings = append(em.Mappings, mapping)
	}

	for _, f := range dto.Filters {
		em.Filters = append(em.Filters, domain.FilterConfig{
			Name:       f.Key,
			Class:      f.Value.Class,
			Enabled:    f.Value.Enabled,
			Parameters: f.Value.Parameters,
		})
	}

	if dto.SecondLevelCache != nil {
		em.SecondLevelCache = convertSecondLevelCache(dto.SecondLevelCache)
	}

	for _, entity := range dto.EntityListeners.Entities {
		for _, listener := range entity.Value.Listeners {
			for _, event := range listener.Value.Events {
				em.EntityListeners = append(em.EntityListeners, domain.EntityListenerBinding{
					Entity:   entity.Key,
					Listener: listener.Key,
					Event:    event.Type,
					Method:   event.Method,
				})
			}
		}
	}

	return em, nil
}

func convertMapping(name string, dto MappingDTO, bundles []domain.Bundle) (domain.MappingConfig, error) {
	m := domain.MappingConfig{
		Name:     name,
		Type:     dto.Type,
		Dir:      dto.Dir,
		Prefix:   dto.Prefix,
		Alias:    dto.Alias,
		Disabled: dto.Mapping != nil && !*dto.Mapping,
	}

	if dto.IsBundle != nil {
		m.IsBundle = *dto.IsBundle
	} else {
		m.IsBundle = slices.ContainsFunc(bundles, func(b domain.Bundle) bool { return b.Name == name })
	}

	if !m.IsBundle && !m.Disabled && (m.Type == "" || m.Dir == "" || m.Prefix == "") {
		err := zerr.With(domain.ErrInvalidConfiguration, "field", "mappings."+name)
		return m, zerr.With(err, "rule", "type, dir and prefix are required for non-bundle mappings")
	}
	return m, nil
}

func convertCacheDriver(dto *CacheDriverDTO) domain.CacheDriver {
	if dto == nil {
		return domain.CacheDriver{}
	}
	d := domain.CacheDriver{Type: dto.Type, Pool: dto.Pool, ID: dto.ID}
	if d.Type == "" {
		switch {
		case d.ID != "":
			d.Type = domain.CacheDriverService
		case d.Pool != "":
			d.Type = domain.CacheDriverPool
		}
	}
	return d
}

func convertSecondLevelCache(dto *SecondLevelCacheDTO) *domain.SecondLevelCacheConfig {
	if dto.Enabled != nil && !*dto.Enabled {
		return nil
	}

	slc := &domain.SecondLevelCacheConfig{
		RegionCacheDriver:  convertCacheDriver(dto.RegionCacheDriver),
		RegionLifetime:     intOr(dto.RegionLifetime, defaultRegionLifetime),
		RegionLockLifetime: intOr(dto.RegionLockLifetime, defaultRegionLockLifetime),
		LogEnabled:         dto.LogEnabled == nil || *dto.LogEnabled,
		Factory:            dto.Factory,
	}

	for _, r := range dto.Regions {
		region := domain.RegionConfig{
			Name:         r.Key,
			Type:         r.Value.Type,
			Service:      r.Value.Service,
			CacheDriver:  convertCacheDriver(r.Value.CacheDriver),
			LockPath:     r.Value.LockPath,
			LockLifetime: intOr(r.Value.LockLifetime, defaultRegionLockLifetime),
			Lifetime:     intOr(r.Value.Lifetime, defaultRegionLifetime),
		}
		if region.Type == "" {
			region.Type = domain.RegionDefault
			if region.LockPath != "" {
				region.Type = domain.RegionFileLock
			}
		}
		if region.Type == domain.RegionFileLock && region.LockPath == "" {
			region.LockPath = defaultFileLockPath
		}
		slc.Regions = append(slc.Regions, region)
	}

	for _, lg := range dto.Loggers {
		slc.Loggers = append(slc.Loggers, domain.NamedService{Name: lg.Key, Service: lg.Value.Service})
	}

	return slc
}

func namedClasses(entries Ordered[string]) []domain.NamedClass {
	var out []domain.NamedClass
	for _, e := range entries {
		out = append(out, domain.NamedClass{Name: e.Key, Class: e.Value})
	}
	return out
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
