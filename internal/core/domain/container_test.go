package domain_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestContainer_SetDefinition_KeepsOrder(t *testing.T) {
	c := domain.NewContainer()
	c.Register("a", "A")
	c.Register("b", "B")
	c.Register("a", "A2")

	var ids []string
	for id := range c.Definitions() {
		ids = append(ids, id)
	}

	assert.Equal(t, []string{"a", "b"}, ids)
	def, ok := c.Definition("a")
	require.True(t, ok)
	assert.Equal(t, "A2", def.Class)
}

func TestContainer_AliasReplacesDefinition(t *testing.T) {
	c := domain.NewContainer()
	c.Register("target", "T")
	c.Register("name", "N")
	c.SetAlias("name", "target")

	assert.False(t, c.HasDefinition("name"))
	h, ok := c.Handle("name")
	require.True(t, ok)
	assert.Equal(t, domain.HandleAlias, h.Kind)

	c.Register("name", "N2")
	_, isAlias := c.Alias("name")
	assert.False(t, isAlias)
}

func TestContainer_Resolve(t *testing.T) {
	c := domain.NewContainer()
	c.Register("real", "Real")
	c.SetAlias("first", "second")
	c.SetAlias("second", "real")

	id, err := c.Resolve("first")
	require.NoError(t, err)
	assert.Equal(t, "real", id)

	def, err := c.FindDefinition("first")
	require.NoError(t, err)
	assert.Equal(t, "Real", def.Class)
}

func TestContainer_Resolve_Cycle(t *testing.T) {
	c := domain.NewContainer()
	c.SetAlias("a", "b")
	c.SetAlias("b", "c")
	c.SetAlias("c", "a")

	_, err := c.Resolve("a")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrAliasCycle.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "a -> b -> c -> a", zErr.Metadata()["cycle"])
}

func TestContainer_Resolve_Dangling(t *testing.T) {
	c := domain.NewContainer()
	c.SetAlias("a", "missing")

	err := c.ResolveAliases()
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "missing", zErr.Metadata()["service_id"])
	assert.Equal(t, "a", zErr.Metadata()["alias"])
}

func TestContainer_ResolveClass(t *testing.T) {
	c := domain.NewContainer()
	c.SetParameter("listener.class", `App\Listener`)
	c.Register("parent", "%listener.class%").Abstract = true
	c.SetDefinition("child", domain.NewChildDefinition("parent"))
	c.SetAlias("alias", "child")

	class, err := c.ResolveClass("alias")
	require.NoError(t, err)
	assert.Equal(t, `App\Listener`, class)
}

func TestContainer_ResolveClass_MissingParameter(t *testing.T) {
	c := domain.NewContainer()
	c.Register("svc", "%nope%")

	_, err := c.ResolveClass("svc")
	assert.ErrorContains(t, err, domain.ErrParameterNotFound.Error())
}

func TestContainer_ClassCatalog(t *testing.T) {
	c := domain.NewContainer()
	c.DefineClass(domain.ClassInfo{Name: "Base", Interfaces: []string{"Iface"}, Methods: []string{"__invoke"}})
	c.DefineClass(domain.ClassInfo{Name: "Child", Parent: "Base", Methods: []string{"prePersist"}})

	assert.True(t, c.Implements("Child", "Iface"))
	assert.False(t, c.Implements("Child", "Other"))
	assert.False(t, c.Implements("Unknown", "Iface"))
	assert.True(t, c.HasMethod("Child", "__invoke"))
	assert.True(t, c.HasMethod("Child", "prePersist"))
	assert.False(t, c.HasMethod("Base", "prePersist"))
}

func TestBuildTagIndex(t *testing.T) {
	c := domain.NewContainer()
	c.Register("one", "One").AddTag("x", domain.Attributes{"n": 1})
	c.Register("two", "Two").AddTag("y", nil).AddTag("x", domain.Attributes{"n": 2})
	c.Register("three", "Three").AddTag("x", nil)

	idx := domain.BuildTagIndex(c)

	tagged := idx.Tagged("x")
	require.Len(t, tagged, 3)
	assert.Equal(t, []string{"one", "two", "three"}, []string{tagged[0].ID, tagged[1].ID, tagged[2].ID})
	assert.Equal(t, 2, tagged[1].Attributes.Int("n"))
	assert.Equal(t, []string{"x", "y"}, idx.Tags())
	assert.Empty(t, idx.Tagged("z"))

	// The index is a snapshot.
	c.Register("four", "Four").AddTag("x", nil)
	assert.Len(t, idx.Tagged("x"), 3)
}

func TestDefinition_AddMethodCallOnce(t *testing.T) {
	def := domain.NewDefinition("C")

	assert.True(t, def.AddMethodCallOnce("register", domain.Ref("a")))
	assert.False(t, def.AddMethodCallOnce("register", domain.Ref("a")))
	assert.True(t, def.AddMethodCallOnce("register", domain.Ref("b")))
	assert.True(t, def.AddMethodCallOnce("reset"))
	assert.False(t, def.AddMethodCallOnce("reset"))

	assert.Len(t, def.MethodCalls("register"), 2)
	def.RemoveMethodCalls("register")
	assert.False(t, def.HasMethodCall("register"))
	assert.True(t, def.HasMethodCall("reset"))
}

func TestDefinition_Clone(t *testing.T) {
	def := domain.NewDefinition("C", map[string]any{"k": []any{"v"}})
	def.AddMethodCall("set", []any{1})
	def.AddTag("t", domain.Attributes{"a": "b"})

	clone := def.Clone()
	clone.Arguments[0].(map[string]any)["k"] = "changed"
	clone.Calls[0].Args[0] = "changed"
	clone.Tags[0].Attributes["a"] = "changed"

	assert.Equal(t, []any{"v"}, def.Arguments[0].(map[string]any)["k"])
	assert.Equal(t, []any{1}, def.Calls[0].Args[0])
	assert.Equal(t, "b", def.Tags[0].Attributes["a"])
}

func TestReferences(t *testing.T) {
	loc := domain.ServiceLocator{}
	loc.Set("l", domain.Ref("located"))

	value := []any{
		domain.Ref("a"),
		map[string]any{"z": domain.Ref("z"), "b": domain.OptionalRef("b")},
		"literal",
		loc,
	}

	var ids []string
	for ref := range domain.References(value) {
		ids = append(ids, ref.ID)
	}

	assert.Equal(t, []string{"a", "b", "z", "located"}, ids)
	assert.True(t, slices.Contains(ids, "located"))
}

func TestParameterName(t *testing.T) {
	tests := []struct {
		in   string
		name string
		ok   bool
	}{
		{"%kernel.cache_dir%", "kernel.cache_dir", true},
		{"%kernel.cache_dir%/doctrine", "", false},
		{"%%", "", false},
		{"plain", "", false},
		{"%a%b%", "", false},
	}
	for _, tt := range tests {
		name, ok := domain.ParameterName(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.name, name, tt.in)
	}
}
