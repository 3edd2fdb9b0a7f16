package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigReadFailed is returned when a config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrImportCycle is returned when config files import each other.
	ErrImportCycle = zerr.New("config import cycle detected")

	// ErrInvalidConfiguration is returned when the config tree does not match the schema.
	ErrInvalidConfiguration = zerr.New("invalid configuration")

	// ErrInvalidArgumentExpression is returned when a service argument string cannot be parsed.
	ErrInvalidArgumentExpression = zerr.New("invalid argument expression")

	// ErrBundleNotFound is returned when a bundle mapping names a bundle the kernel does not know.
	ErrBundleNotFound = zerr.New("bundle not found")

	// ErrBundleMappingUndetected is returned when no mapping type can be detected for a bundle.
	ErrBundleMappingUndetected = zerr.New("could not detect mapping type for bundle")

	// ErrUnknownConnection is returned when an entity manager names a connection that is not configured.
	ErrUnknownConnection = zerr.New("unknown connection")

	// ErrServiceNotFound is returned when a referenced service is not registered.
	ErrServiceNotFound = zerr.New("service not found")

	// ErrAbstractService is returned when an abstract definition is used where a concrete service is required.
	ErrAbstractService = zerr.New("service must not be abstract")

	// ErrAbstractReference is returned when a definition references an abstract definition.
	ErrAbstractReference = zerr.New("reference to abstract service")

	// ErrAliasCycle is returned when aliases point at each other.
	ErrAliasCycle = zerr.New("alias cycle detected")

	// ErrParentNotFound is returned when a child definition names a parent that does not exist.
	ErrParentNotFound = zerr.New("parent definition not found")

	// ErrParentCycle is returned when child definitions inherit from each other.
	ErrParentCycle = zerr.New("parent definition cycle detected")

	// ErrParameterNotFound is returned when a parameter placeholder cannot be resolved.
	ErrParameterNotFound = zerr.New("parameter not found")

	// ErrMissingCapability is returned when a service class does not implement a required interface.
	ErrMissingCapability = zerr.New("service does not implement required interface")

	// ErrCacheDriverNotFound is returned when a cache driver names a pool or service that is not registered.
	ErrCacheDriverNotFound = zerr.New("cache driver service not found")

	// ErrUnsupportedFilter is returned when a schema filter class cannot be evaluated.
	ErrUnsupportedFilter = zerr.New("unsupported schema filter class")

	// ErrPassFailed is returned when a compiler pass fails.
	ErrPassFailed = zerr.New("compiler pass failed")

	// ErrStoreCreateFailed is returned when the compiled graph cache directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create graph cache directory")

	// ErrStoreReadFailed is returned when a cached graph cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read cached graph")

	// ErrStoreWriteFailed is returned when a compiled graph cannot be cached.
	ErrStoreWriteFailed = zerr.New("failed to write cached graph")

	// ErrFingerprintFailed is returned when config sources cannot be hashed.
	ErrFingerprintFailed = zerr.New("failed to fingerprint config sources")

	// ErrDumpFailed is returned when the compiled graph cannot be serialized.
	ErrDumpFailed = zerr.New("failed to dump compiled graph")

	// ErrNoConfigFiles is returned when a command needs at least one config file.
	ErrNoConfigFiles = zerr.New("no config files specified")

	// ErrCheckFailed is returned when one or more config files fail to compile.
	ErrCheckFailed = zerr.New("config check failed")
)
