package config

import "gopkg.in/yaml.v3"

// File represents the structure of a configuration file after imports are merged.
type File struct {
	Parameters Ordered[any]       `yaml:"parameters"`
	Classes    Ordered[ClassDTO]  `yaml:"classes" validate:"dive"`
	Services   Ordered[yaml.Node] `yaml:"services"`
	Kernel     KernelDTO          `yaml:"kernel"`
	Doctrine   DoctrineDTO        `yaml:"doctrine"`
}

// KernelDTO describes the host application.
type KernelDTO struct {
	CacheDir   string      `yaml:"cache_dir"`
	ProjectDir string      `yaml:"project_dir"`
	Debug      bool        `yaml:"debug"`
	Bundles    []BundleDTO `yaml:"bundles" validate:"dive"`
}

// BundleDTO is one registered bundle.
type BundleDTO struct {
	Name      string `yaml:"name" validate:"required"`
	Namespace string `yaml:"namespace" validate:"required"`
	Path      string `yaml:"path" validate:"required"`
}

// ClassDTO declares what a runtime class implements.
type ClassDTO struct {
	Parent     string   `yaml:"parent"`
	Interfaces []string `yaml:"interfaces"`
	Methods    []string `yaml:"methods"`
}

// DoctrineDTO holds both database layers.
type DoctrineDTO struct {
	DBAL DBALDTO `yaml:"dbal"`
	ORM  ORMDTO  `yaml:"orm"`
}

// DBALDTO is the connection section.
type DBALDTO struct {
	DefaultConnection   string                 `yaml:"default_connection"`
	Types               Ordered[TypeDTO]       `yaml:"types" validate:"dive"`
	DefaultTableOptions map[string]string      `yaml:"default_table_options"`
	Connections         Ordered[ConnectionDTO] `yaml:"connections" validate:"dive"`
}

// TypeDTO registers a custom column type. A plain string is the class name.
type TypeDTO struct {
	Class string `yaml:"class" validate:"required"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TypeDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t.Class = node.Value
		return nil
	}
	type plain TypeDTO
	return decodeStrict(node, (*plain)(t))
}

// ParamsDTO holds the driver parameters of one endpoint.
type ParamsDTO struct {
	URL             *string `yaml:"url"`
	DBName          *string `yaml:"dbname"`
	Host            *string `yaml:"host"`
	Port            any     `yaml:"port"`
	User            *string `yaml:"user"`
	Password        *string `yaml:"password"`
	UnixSocket      *string `yaml:"unix_socket"`
	Charset         *string `yaml:"charset"`
	Path            *string `yaml:"path"`
	Memory          *bool   `yaml:"memory"`
	ServiceName     *string `yaml:"servicename"`
	Service         *bool   `yaml:"service"`
	Pooled          *bool   `yaml:"pooled"`
	ConnectString   *string `yaml:"connectstring"`
	InstanceName    *string `yaml:"instancename"`
	SSLMode         *string `yaml:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	SSLRootCert     *string `yaml:"sslrootcert"`
	SSLCert         *string `yaml:"sslcert"`
	SSLKey          *string `yaml:"sslkey"`
	SSLCRL          *string `yaml:"sslcrl"`
	DefaultDBName   *string `yaml:"default_dbname"`
	ApplicationName *string `yaml:"application_name"`
	Server          *string `yaml:"server"`
	Persistent      *bool   `yaml:"persistent"`
	Protocol        *string `yaml:"protocol"`
}

// ConnectionDTO is one connection.
type ConnectionDTO struct {
	ParamsDTO `yaml:",inline"`

	Driver              string            `yaml:"driver" validate:"omitempty,oneof=pdo_mysql pdo_sqlite pdo_pgsql pdo_oci pdo_sqlsrv oci8 ibm_db2 mysqli pgsql sqlsrv sqlite3 sqlanywhere"`
	DriverClass         string            `yaml:"driver_class"`
	WrapperClass        string            `yaml:"wrapper_class"`
	ServerVersion       string            `yaml:"server_version"`
	PlatformService     string            `yaml:"platform_service"`
	Options             map[string]any    `yaml:"options"`
	DefaultTableOptions map[string]string `yaml:"default_table_options"`
	MappingTypes        map[string]string `yaml:"mapping_types"`

	Logging                   bool   `yaml:"logging"`
	Profiling                 bool   `yaml:"profiling"`
	ProfilingCollectBacktrace bool   `yaml:"profiling_collect_backtrace"`
	AutoCommit                *bool  `yaml:"auto_commit"`
	UseSavepoints             bool   `yaml:"use_savepoints"`
	SchemaFilter              string `yaml:"schema_filter" validate:"omitempty,regexp"`

	KeepReplica bool               `yaml:"keep_replica"`
	Replicas    Ordered[ParamsDTO] `yaml:"replicas" validate:"dive"`

	Shards             []ShardDTO `yaml:"shards" validate:"dive"`
	ShardChoser        string     `yaml:"shard_choser"`
	ShardChoserService string     `yaml:"shard_choser_service"`
}

// ShardDTO is one shard.
type ShardDTO struct {
	ParamsDTO `yaml:",inline"`

	ID *int `yaml:"id" validate:"required,min=0"`
}

// ORMDTO is the entity manager section.
type ORMDTO struct {
	DefaultEntityManager     string                    `yaml:"default_entity_manager"`
	AutoGenerateProxyClasses bool                      `yaml:"auto_generate_proxy_classes"`
	ProxyDir                 string                    `yaml:"proxy_dir"`
	ProxyNamespace           string                    `yaml:"proxy_namespace"`
	ResolveTargetEntities    Ordered[string]           `yaml:"resolve_target_entities"`
	EntityManagers           Ordered[EntityManagerDTO] `yaml:"entity_managers" validate:"dive"`
}

// EntityManagerDTO is one entity manager.
type EntityManagerDTO struct {
	Connection               string `yaml:"connection"`
	ClassMetadataFactoryName string `yaml:"class_metadata_factory_name"`
	DefaultRepositoryClass   string `yaml:"default_repository_class"`
	AutoMapping              bool   `yaml:"auto_mapping"`
	NamingStrategy           string `yaml:"naming_strategy"`
	QuoteStrategy            string `yaml:"quote_strategy"`
	EntityListenerResolver   string `yaml:"entity_listener_resolver"`
	RepositoryFactory        string `yaml:"repository_factory"`

	MetadataCacheDriver *CacheDriverDTO `yaml:"metadata_cache_driver"`
	QueryCacheDriver    *CacheDriverDTO `yaml:"query_cache_driver"`
	ResultCacheDriver   *CacheDriverDTO `yaml:"result_cache_driver"`

	Mappings         Ordered[MappingDTO]  `yaml:"mappings" validate:"dive"`
	DQL              DQLDTO               `yaml:"dql"`
	Hydrators        Ordered[string]      `yaml:"hydrators"`
	Filters          Ordered[FilterDTO]   `yaml:"filters" validate:"dive"`
	SecondLevelCache *SecondLevelCacheDTO `yaml:"second_level_cache"`
	EntityListeners  EntityListenersDTO   `yaml:"entity_listeners"`
}

// CacheDriverDTO selects the store of an ORM cache.
type CacheDriverDTO struct {
	Type string `yaml:"type" validate:"omitempty,oneof=pool service"`
	Pool string `yaml:"pool"`
	ID   string `yaml:"id" validate:"required_if=Type service"`
}

// MappingDTO is one metadata mapping.
type MappingDTO struct {
	Mapping  *bool  `yaml:"mapping"`
	Type     string `yaml:"type" validate:"omitempty,oneof=annotation attribute xml yml php staticphp"`
	Dir      string `yaml:"dir"`
	Prefix   string `yaml:"prefix"`
	Alias    string `yaml:"alias"`
	IsBundle *bool  `yaml:"is_bundle"`
}

// DQLDTO registers custom DQL functions.
type DQLDTO struct {
	StringFunctions   Ordered[string] `yaml:"string_functions"`
	NumericFunctions  Ordered[string] `yaml:"numeric_functions"`
	DatetimeFunctions Ordered[string] `yaml:"datetime_functions"`
}

// FilterDTO registers an SQL filter. A plain string is the class name.
type FilterDTO struct {
	Class      string         `yaml:"class" validate:"required"`
	Enabled    bool           `yaml:"enabled"`
	Parameters map[string]any `yaml:"parameters"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *FilterDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Class = node.Value
		return nil
	}
	type plain FilterDTO
	return decodeStrict(node, (*plain)(f))
}

// SecondLevelCacheDTO configures the second-level cache.
type SecondLevelCacheDTO struct {
	Enabled            *bool               `yaml:"enabled"`
	RegionCacheDriver  *CacheDriverDTO     `yaml:"region_cache_driver"`
	RegionLockLifetime *int                `yaml:"region_lock_lifetime" validate:"omitempty,min=0"`
	RegionLifetime     *int                `yaml:"region_lifetime" validate:"omitempty,min=0"`
	LogEnabled         *bool               `yaml:"log_enabled"`
	Factory            string              `yaml:"factory"`
	Regions            Ordered[RegionDTO]  `yaml:"regions" validate:"dive"`
	Loggers            Ordered[LoggerDTO]  `yaml:"loggers" validate:"dive"`
}

// RegionDTO is one cache region.
type RegionDTO struct {
	Type         string          `yaml:"type" validate:"omitempty,oneof=default filelock service"`
	Service      string          `yaml:"service" validate:"required_if=Type service"`
	CacheDriver  *CacheDriverDTO `yaml:"cache_driver"`
	LockPath     string          `yaml:"lock_path"`
	LockLifetime *int            `yaml:"lock_lifetime" validate:"omitempty,min=0"`
	Lifetime     *int            `yaml:"lifetime" validate:"omitempty,min=0"`
}

// LoggerDTO is one named cache logger.
type LoggerDTO struct {
	Service string `yaml:"service" validate:"required"`
}

// EntityListenersDTO attaches listeners to entities without tags.
type EntityListenersDTO struct {
	Entities Ordered[EntityListenerDTO] `yaml:"entities" validate:"dive"`
}

// EntityListenerDTO lists the listeners of one entity.
type EntityListenerDTO struct {
	Listeners Ordered[ListenerEventsDTO] `yaml:"listeners" validate:"dive"`
}

// ListenerEventsDTO lists the events one listener handles.
type ListenerEventsDTO struct {
	Events []EventDTO `yaml:"events" validate:"dive"`
}

// EventDTO is one handled event.
type EventDTO struct {
	Type   string `yaml:"type" validate:"required"`
	Method string `yaml:"method"`
}

// serviceDTO is one entry of the services section.
type serviceDTO struct {
	Alias     string      `yaml:"alias"`
	Class     string      `yaml:"class"`
	Parent    string      `yaml:"parent"`
	Abstract  bool        `yaml:"abstract"`
	Public    bool        `yaml:"public"`
	Lazy      bool        `yaml:"lazy"`
	Synthetic bool        `yaml:"synthetic"`
	Factory   []string    `yaml:"factory"`
	Arguments []yaml.Node `yaml:"arguments"`
	Calls     []callDTO   `yaml:"calls"`
	Tags      []yaml.Node `yaml:"tags"`
}

type callDTO struct {
	Method    string      `yaml:"method"`
	Arguments []yaml.Node `yaml:"arguments"`
}
