package extension_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ormwire/internal/adapters/telemetry"
	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/core/ports/mocks"
	"go.trai.ch/ormwire/internal/engine/extension"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newExtension(t *testing.T, locator *mocks.MockBundleLocator) *extension.Extension {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	if locator == nil {
		locator = mocks.NewMockBundleLocator(ctrl)
	}
	return extension.New(mockLogger, locator, telemetry.NewNoOpTracer())
}

func load(t *testing.T, cfg *domain.Config) *domain.Container {
	t.Helper()
	c, err := newExtension(t, nil).Load(t.Context(), cfg, "")
	require.NoError(t, err)
	return c
}

func definition(t *testing.T, c *domain.Container, id string) *domain.Definition {
	t.Helper()
	def, ok := c.Definition(id)
	require.True(t, ok, "definition %q not registered", id)
	return def
}

func metadata(t *testing.T, err error) map[string]any {
	t.Helper()
	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	return zErr.Metadata()
}

func methodNames(def *domain.Definition) []string {
	names := make([]string, 0, len(def.Calls))
	for _, call := range def.Calls {
		names = append(names, call.Method)
	}
	return names
}

func connection(name string) domain.ConnectionConfig {
	return domain.ConnectionConfig{Name: name, Driver: "pdo_mysql", Params: domain.ConnectionParams{}}
}

func dbalConfig(conns ...domain.ConnectionConfig) *domain.Config {
	return &domain.Config{
		Kernel: domain.KernelConfig{CacheDir: "/app/var/cache", ProjectDir: "/app"},
		DBAL: domain.DBALConfig{
			DefaultConnection: conns[0].Name,
			Connections:       conns,
		},
	}
}

func TestExtension_Load_BaseDefinitions(t *testing.T) {
	c := load(t, dbalConfig(connection("default")))

	registry := definition(t, c, extension.RegistryID)
	assert.True(t, registry.Public)
	assert.Equal(t, []any{
		domain.Ref(domain.ServiceContainerID),
		domain.Param(domain.ConnectionsParameter),
		domain.Param(domain.EntityManagersParameter),
		domain.Param(domain.DefaultConnectionParam),
		domain.Param(domain.DefaultEntityManagerPar),
	}, registry.Arguments)

	container := definition(t, c, domain.ServiceContainerID)
	assert.True(t, container.Synthetic)

	for _, id := range []string{
		extension.ConnectionTemplateID,
		extension.ConfigurationTemplateID,
		extension.EventManagerTemplateID,
		extension.ORMConfigurationTemplateID,
		extension.EntityManagerTemplateID,
		domain.SchemaFilterManagerID,
	} {
		assert.True(t, definition(t, c, id).Abstract, id)
	}

	assert.True(t, definition(t, c, extension.SystemCachePool).HasTag(domain.CachePoolTag))

	class, ok := c.Parameter(domain.ResolverClassParameter)
	require.True(t, ok)
	assert.Equal(t, domain.ContainerResolverClass, class)
	assert.True(t, c.Implements(domain.ContainerResolverClass, domain.EntityListenerServiceResolverInterface))
}

func TestExtension_Load_RegistryParametersWithoutORM(t *testing.T) {
	c := load(t, dbalConfig(connection("default")))

	managers, ok := c.Parameter(domain.EntityManagersParameter)
	require.True(t, ok)
	assert.Equal(t, map[string]any{}, managers)

	def, ok := c.Parameter(domain.DefaultEntityManagerPar)
	require.True(t, ok)
	assert.Empty(t, def)

	_, ok = c.Alias(domain.EntityManagerAliasID)
	assert.False(t, ok)
}

func TestExtension_Load_KernelAndUserParameters(t *testing.T) {
	cfg := dbalConfig(connection("default"))
	cfg.Kernel.Bundles = []domain.Bundle{{Name: "AppBundle", Namespace: `App\AppBundle`, Path: "/app/src"}}
	cfg.Parameters = []domain.NamedValue{{Name: "app.locale", Value: "en"}}

	c := load(t, cfg)

	dir, _ := c.Parameter("kernel.cache_dir")
	assert.Equal(t, "/app/var/cache", dir)
	bundles, _ := c.Parameter("kernel.bundles")
	assert.Equal(t, map[string]any{"AppBundle": `App\AppBundle`}, bundles)
	locale, _ := c.Parameter("app.locale")
	assert.Equal(t, "en", locale)
}

func TestExtension_Load_UserServices(t *testing.T) {
	cfg := dbalConfig(connection("default"))
	cfg.Services = []domain.ServiceConfig{
		{
			ID:        "app.listener",
			Class:     `App\Listener`,
			Arguments: []any{domain.Ref("logger")},
			Calls:     []domain.MethodCall{{Method: "setDebug", Args: []any{true}}},
			Tags:      []domain.Tag{{Name: domain.EventListenerTag, Attributes: domain.Attributes{"event": "postPersist"}}},
		},
		{ID: "app.listener_alias", Alias: "app.listener", Public: true},
	}

	c := load(t, cfg)

	def := definition(t, c, "app.listener")
	assert.Equal(t, `App\Listener`, def.Class)
	assert.Equal(t, []any{domain.Ref("logger")}, def.Arguments)
	assert.True(t, def.HasMethodCall("setDebug"))
	assert.Equal(t, []domain.Attributes{{"event": "postPersist"}}, def.Tag(domain.EventListenerTag))

	alias, ok := c.Alias("app.listener_alias")
	require.True(t, ok)
	assert.Equal(t, domain.Alias{Target: "app.listener", Public: true}, alias)
}

func TestExtension_Load_BuildID(t *testing.T) {
	ext := newExtension(t, nil)

	first, err := ext.Load(t.Context(), dbalConfig(connection("default")), "abc")
	require.NoError(t, err)
	second, err := ext.Load(t.Context(), dbalConfig(connection("default")), "abc")
	require.NoError(t, err)
	other, err := ext.Load(t.Context(), dbalConfig(connection("default")), "def")
	require.NoError(t, err)

	id, ok := first.Parameter(extension.BuildIDParameter)
	require.True(t, ok)
	again, _ := second.Parameter(extension.BuildIDParameter)
	different, _ := other.Parameter(extension.BuildIDParameter)
	assert.Equal(t, id, again)
	assert.NotEqual(t, id, different)

	unset, err := ext.Load(t.Context(), dbalConfig(connection("default")), "")
	require.NoError(t, err)
	_, ok = unset.Parameter(extension.BuildIDParameter)
	assert.False(t, ok)
}

func TestExtension_Load_RecordsSpan(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTracer := mocks.NewMockTracer(ctrl)
	mockSpan := mocks.NewMockSpan(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "extension.load").Return(t.Context(), mockSpan)
	mockSpan.EXPECT().SetAttribute(domain.SpanAttrServicesCount, gomock.Any())
	mockSpan.EXPECT().End()

	ext := extension.New(mockLogger, mocks.NewMockBundleLocator(ctrl), mockTracer)
	_, err := ext.Load(t.Context(), dbalConfig(connection("default")), "")
	require.NoError(t, err)
}

func TestExtension_Load_RecordsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTracer := mocks.NewMockTracer(ctrl)
	mockSpan := mocks.NewMockSpan(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "extension.load").Return(t.Context(), mockSpan)
	mockSpan.EXPECT().RecordError(gomock.Any())
	mockSpan.EXPECT().End()

	cfg := dbalConfig(connection("default"))
	cfg.ORM = domain.ORMConfig{
		DefaultEntityManager: "default",
		EntityManagers:       []domain.EntityManagerConfig{{Name: "default", Connection: "missing"}},
	}

	ext := extension.New(mockLogger, mocks.NewMockBundleLocator(ctrl), mockTracer)
	_, err := ext.Load(t.Context(), cfg, "")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownConnection.Error())
}
