package domain

// Config is the merged and normalized configuration tree.
type Config struct {
	// Sources lists every file that contributed to the tree, imports first.
	Sources []string

	Kernel     KernelConfig
	Parameters []NamedValue
	Classes    []ClassInfo
	Services   []ServiceConfig
	DBAL       DBALConfig
	ORM        ORMConfig
}

// NamedValue is an ordered key/value pair.
type NamedValue struct {
	Name  string
	Value any
}

// NamedClass maps a registration name to a class.
type NamedClass struct {
	Name  string
	Class string
}

// KernelConfig describes the host application.
type KernelConfig struct {
	CacheDir   string
	ProjectDir string
	Debug      bool
	Bundles    []Bundle
}

// Bundle is one entry of the bundle enumeration, in kernel order.
type Bundle struct {
	Name      string
	Namespace string
	Path      string
}

// BundleMapping is what could be detected about a bundle's mapping files.
type BundleMapping struct {
	Type   string
	Dir    string
	Prefix string
}

// ServiceConfig is a user-declared service from the services section.
type ServiceConfig struct {
	ID        string
	Alias     string
	Class     string
	Parent    string
	Abstract  bool
	Public    bool
	Lazy      bool
	Synthetic bool
	Factory   *Callable
	Arguments []any
	Calls     []MethodCall
	Tags      []Tag
}

// DBALConfig is the connection side of the tree.
type DBALConfig struct {
	DefaultConnection   string
	Types               []NamedClass
	DefaultTableOptions map[string]string
	Connections         []ConnectionConfig
}

// ConnectionParams are the driver parameters of one endpoint, keyed by their option names.
// Only keys that were configured are present.
type ConnectionParams map[string]any

// ConnectionConfig is one named connection.
type ConnectionConfig struct {
	Name string

	Driver              string
	Params              ConnectionParams
	DriverClass         string
	WrapperClass        string
	ServerVersion       string
	PlatformService     string
	DriverOptions       map[string]any
	DefaultTableOptions map[string]string
	MappingTypes        map[string]string

	Logging                   bool
	Profiling                 bool
	ProfilingCollectBacktrace bool
	AutoCommit                *bool
	UseSavepoints             bool
	SchemaFilter              string

	KeepReplica bool
	Replicas    []NamedParams

	Shards             []ShardConfig
	ShardChoser        string
	ShardChoserService string
}

// NamedParams is a named replica endpoint.
type NamedParams struct {
	Name   string
	Params ConnectionParams
}

// ShardConfig is one shard of a pooling shard connection.
type ShardConfig struct {
	ID     int
	Params ConnectionParams
}

// ORMConfig is the entity manager side of the tree.
type ORMConfig struct {
	DefaultEntityManager     string
	AutoGenerateProxyClasses bool
	ProxyDir                 string
	ProxyNamespace           string
	ResolveTargetEntities    []NamedClass
	EntityManagers           []EntityManagerConfig
}

// Naming and quote strategy services shipped with the base definitions.
const (
	DefaultNamingStrategy = "doctrine.orm.naming_strategy.default"
	DefaultQuoteStrategy  = "doctrine.orm.quote_strategy.default"
)

// EntityManagerConfig is one named entity manager.
type EntityManagerConfig struct {
	Name       string
	Connection string

	ClassMetadataFactoryName string
	DefaultRepositoryClass   string
	AutoMapping              bool
	NamingStrategy           string
	QuoteStrategy            string
	EntityListenerResolver   string
	RepositoryFactory        string

	MetadataCacheDriver CacheDriver
	QueryCacheDriver    CacheDriver
	ResultCacheDriver   CacheDriver

	Mappings          []MappingConfig
	StringFunctions   []NamedClass
	NumericFunctions  []NamedClass
	DatetimeFunctions []NamedClass
	HydrationModes    []NamedClass
	Filters           []FilterConfig

	SecondLevelCache *SecondLevelCacheConfig
	EntityListeners  []EntityListenerBinding
}

// Cache driver types.
const (
	CacheDriverPool    = "pool"
	CacheDriverService = "service"
)

// CacheDriver selects the backing store of an ORM cache. A zero value means an
// in-memory pool created for the entity manager.
type CacheDriver struct {
	Type string
	Pool string
	ID   string
}

// Mapping driver types.
const (
	MappingAnnotation = "annotation"
	MappingAttribute  = "attribute"
	MappingXML        = "xml"
	MappingYAML       = "yml"
	MappingPHP        = "php"
	MappingStaticPHP  = "staticphp"
)

// MappingConfig is one declared metadata mapping.
type MappingConfig struct {
	Name     string
	Type     string
	Dir      string
	Prefix   string
	Alias    string
	IsBundle bool
	Disabled bool
}

// FilterConfig is one SQL filter registration.
type FilterConfig struct {
	Name       string
	Class      string
	Enabled    bool
	Parameters map[string]any
}

// Region types.
const (
	RegionDefault  = "default"
	RegionFileLock = "filelock"
	RegionService  = "service"
)

// SecondLevelCacheConfig configures the second-level cache of an entity manager.
type SecondLevelCacheConfig struct {
	RegionCacheDriver  CacheDriver
	RegionLifetime     int
	RegionLockLifetime int
	LogEnabled         bool
	Factory            string
	Regions            []RegionConfig
	Loggers            []NamedService
}

// RegionConfig is one cache region.
type RegionConfig struct {
	Name         string
	Type         string
	Service      string
	CacheDriver  CacheDriver
	LockPath     string
	LockLifetime int
	Lifetime     int
}

// NamedService maps a name to a service id.
type NamedService struct {
	Name    string
	Service string
}

// EntityListenerBinding attaches a listener to one event of an entity.
type EntityListenerBinding struct {
	Entity   string
	Listener string
	Event    string
	Method   string
}

// Connection returns the named connection config.
func (c *DBALConfig) Connection(name string) (*ConnectionConfig, bool) {
	for i := range c.Connections {
		if c.Connections[i].Name == name {
			return &c.Connections[i], true
		}
	}
	return nil, false
}
