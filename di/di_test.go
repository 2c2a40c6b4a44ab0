package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTypeMismatch(t *testing.T) {
	c := openContainer(t, func(c *Container) {
		c.MustRegister("number", value(1))
	})

	_, err := Get[string](c, "number")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"number" resolved to int, expected string`)

	assert.Panics(t, func() { MustGet[string](c, "number") })
	assert.Equal(t, 1, MustGet[int](c, "number"))
}

func TestWithValueAddsCapability(t *testing.T) {
	c := New()
	c.MustRegister("greeter", WithValue(&englishGreeter{}))

	def, err := c.Lookup("greeter")
	require.NoError(t, err)
	assert.Equal(t, []string{"*di.englishGreeter"}, Capabilities(def))
	assert.Equal(t, ScopeSingleton, def.Scope)
}

func TestAsDeduplicates(t *testing.T) {
	c := New()
	c.MustRegister("greeter", As(TypeOf[Greeter](), TypeOf[Greeter]()), Provides[Greeter](), value(koreanGreeter{}))

	def, err := c.Lookup("greeter")
	require.NoError(t, err)
	assert.Len(t, def.Capabilities, 1)
}

func TestErrorKinds(t *testing.T) {
	kinds := map[Kind]error{
		KindDuplicateDefinition:  ErrDuplicateDefinition,
		KindNotFound:             ErrNotFound,
		KindAmbiguousResolution:  ErrAmbiguousResolution,
		KindCyclicDependency:     ErrCyclicDependency,
		KindInitializationFailed: ErrInitializationFailed,
		KindContainerClosed:      ErrContainerClosed,
		KindDestroyFailed:        ErrDestroyFailed,
	}
	for kind, sentinel := range kinds {
		err := newError(kind, "x", nil)
		assert.ErrorIs(t, err, sentinel, kind.String())
		assert.Equal(t, kind, KindOf(err))
	}
	assert.Equal(t, Kind(0), KindOf(errBoom))
	assert.Equal(t, "unknown", Kind(99).String())
}
