package schemafilter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ormwire/internal/adapters/telemetry"
	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/core/ports/mocks"
	"go.trai.ch/ormwire/internal/engine/compiler"
	"go.trai.ch/ormwire/internal/engine/extension"
	"go.trai.ch/ormwire/internal/engine/passes"
	"go.trai.ch/ormwire/internal/engine/schemafilter"
	"go.uber.org/mock/gomock"
)

func compiled(t *testing.T, services []domain.ServiceConfig, connections ...domain.ConnectionConfig) *domain.Container {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	tracer := telemetry.NewNoOpTracer()

	cfg := &domain.Config{
		Services: services,
		DBAL:     domain.DBALConfig{DefaultConnection: connections[0].Name, Connections: connections},
	}
	c, err := extension.New(mockLogger, mocks.NewMockBundleLocator(ctrl), tracer).Load(t.Context(), cfg, "")
	require.NoError(t, err)
	require.NoError(t, compiler.New(tracer).Compile(t.Context(), c, passes.Default(mockLogger)...))
	return c
}

func conn(name, schemaFilter string) domain.ConnectionConfig {
	return domain.ConnectionConfig{
		Name:         name,
		Driver:       "pdo_mysql",
		Params:       domain.ConnectionParams{},
		SchemaFilter: schemaFilter,
	}
}

func TestEvaluator_FilterOrderAndUnion(t *testing.T) {
	services := []domain.ServiceConfig{
		{ID: "cache.adapter.pdo", Class: passes.CachePdoAdapterClass},
		{
			ID:        "app.legacy_filter",
			Class:     domain.BlacklistSchemaAssetFilterClass,
			Arguments: []any{[]any{"legacy"}},
			Tags:      []domain.Tag{{Name: domain.SchemaFilterTag, Attributes: domain.Attributes{"connection": "default"}}},
		},
	}
	c := compiled(t, services, conn("default", "~^(?!t_)~"), conn("other", ""))
	eval := schemafilter.New(c)

	ids, err := eval.Filters("default")
	require.NoError(t, err)
	assert.Equal(t, []string{
		domain.WellKnownSchemaFilterID,
		"app.legacy_filter",
		extension.RegexSchemaFilterID("default"),
	}, ids)

	kept, err := eval.Filter("default", []string{"users", "cache_items", "legacy", "t_tmp", "orders"})
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "orders"}, kept)

	kept, err = eval.Filter("other", []string{"users", "cache_items", "legacy", "t_tmp"})
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "legacy", "t_tmp"}, kept)
}

func TestEvaluator_ConnectionWithoutFilters(t *testing.T) {
	c := compiled(t, nil, conn("default", ""))

	config, ok := c.Definition(domain.ConnectionConfigurationID("default"))
	require.True(t, ok)
	assert.False(t, config.HasMethodCall("setSchemaAssetsFilter"))

	eval := schemafilter.New(c)
	ids, err := eval.Filters("default")
	require.NoError(t, err)
	assert.Empty(t, ids)

	ok, err = eval.Accepts("default", "anything")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluator_UnsupportedFilterClass(t *testing.T) {
	services := []domain.ServiceConfig{
		{
			ID:    "app.custom_filter",
			Class: `App\CustomFilter`,
			Tags:  []domain.Tag{{Name: domain.SchemaFilterTag}},
		},
	}
	c := compiled(t, services, conn("default", ""))

	_, err := schemafilter.New(c).Accepts("default", "users")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnsupportedFilter.Error())
}

func TestEvaluator_UnknownConnection(t *testing.T) {
	c := compiled(t, nil, conn("default", ""))

	_, err := schemafilter.New(c).Accepts("missing", "users")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrServiceNotFound.Error())
}

func TestRegex(t *testing.T) {
	tests := []struct {
		pattern string
		asset   string
		want    bool
	}{
		{pattern: "~^(?!t_)~", asset: "users", want: true},
		{pattern: "~^(?!t_)~", asset: "t_users", want: false},
		{pattern: "/^app_/i", asset: "APP_users", want: true},
		{pattern: "{^app_}", asset: "other", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.asset, func(t *testing.T) {
			keep, err := schemafilter.Regex(tt.pattern)
			require.NoError(t, err)
			got, err := keep(tt.asset)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegex_Unsupported(t *testing.T) {
	for _, pattern := range []string{"no-delimiters", "/app/U", "/(unclosed/"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := schemafilter.Regex(pattern)
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrUnsupportedFilter.Error())
		})
	}
}

func TestBlacklist(t *testing.T) {
	keep := schemafilter.Blacklist([]any{"sessions", "lock_keys"})

	for asset, want := range map[string]bool{"sessions": false, "lock_keys": false, "users": true} {
		got, err := keep(asset)
		require.NoError(t, err)
		assert.Equal(t, want, got, asset)
	}
}
