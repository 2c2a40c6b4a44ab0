package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDuplicate(t *testing.T) {
	c := New()
	require.NoError(t, c.Register("a", value(1)))

	err := c.Register("a", value(2))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateDefinition)
	assert.Equal(t, KindDuplicateDefinition, KindOf(err))
	assert.Equal(t, `di: duplicate definition: "a"`, err.Error())

	def, err := c.Lookup("a")
	require.NoError(t, err)
	require.NoError(t, c.Open())
	v, err := c.Resolve(def.Name)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "the first registration is kept")
}

func TestRegisterInvalid(t *testing.T) {
	tests := []struct {
		name string
		def  string
		opts []Option
	}{
		{"empty name", "", []Option{value(1)}},
		{"no factory", "a", nil},
		{"nil value", "a", []Option{WithValue(nil)}},
		{"bad constructor", "a", []Option{WithConstructor(42)}},
		{"unknown scope", "a", []Option{value(1), WithScope(ScopeType(9))}},
		{"empty dependency", "a", []Option{value(1), DependsOn(Dependency{})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().Register(tt.def, tt.opts...)
			assert.ErrorIs(t, err, ErrInvalidDefinition)
		})
	}
}

func TestRegisterAfterOpen(t *testing.T) {
	c := New()
	require.NoError(t, c.Open())

	assert.ErrorIs(t, c.Register("late", value(1)), ErrRegistryFrozen)

	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Register("later", value(1)), ErrContainerClosed)
}

func TestMustRegisterPanics(t *testing.T) {
	c := New()
	c.MustRegister("a", value(1))
	assert.Panics(t, func() { c.MustRegister("a", value(1)) })
}

func TestLookup(t *testing.T) {
	c := New()
	c.MustRegister("greeter", Provides[Greeter](), value(&englishGreeter{}))

	def, err := c.Lookup("greeter")
	require.NoError(t, err)
	assert.Equal(t, "greeter", def.Name)
	assert.Equal(t, ScopeSingleton, def.Scope)
	assert.True(t, def.Provides(TypeOf[Greeter]()))

	_, err = c.Lookup("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupByCapability(t *testing.T) {
	c := New()
	c.MustRegister("english", Provides[Greeter](), value(&englishGreeter{}))
	c.MustRegister("number", value(1))
	c.MustRegister("korean", Provides[Greeter](), value(koreanGreeter{}))

	defs := c.LookupByCapability(TypeOf[Greeter]())
	require.Len(t, defs, 2)
	assert.Equal(t, "english", defs[0].Name)
	assert.Equal(t, "korean", defs[1].Name)

	assert.Empty(t, c.LookupByCapability(TypeOf[error]()))
}

func TestNames(t *testing.T) {
	c := New()
	for _, name := range []string{"c", "a", "b"} {
		c.MustRegister(name, value(name))
	}
	assert.Equal(t, []string{"c", "a", "b"}, c.Names())
	assert.Equal(t, 3, c.Len())
}

func TestOpenTwice(t *testing.T) {
	c := New()
	require.NoError(t, c.Open())
	require.NoError(t, c.Open())
	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Open(), ErrContainerClosed)
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "singleton", ScopeSingleton.String())
	assert.Equal(t, "transient", ScopeTransient.String())
}
