package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repository interface {
	Find(id int) string
}

type memoryRepository struct{ prefix string }

func (r *memoryRepository) Find(id int) string { return r.prefix }

type service struct {
	repo    repository
	greeter Greeter
}

func newService(repo repository, greeter Greeter) *service {
	return &service{repo: repo, greeter: greeter}
}

func newCheckedService(repo repository) (*service, error) {
	if repo == nil {
		return nil, errBoom
	}
	return &service{repo: repo}, nil
}

func TestWithConstructor(t *testing.T) {
	c := openContainer(t, func(c *Container) {
		c.MustRegister("repository", Provides[repository](), WithConstructor(func() *memoryRepository {
			return &memoryRepository{prefix: "memory"}
		}))
		c.MustRegister("greeter", Provides[Greeter](), value(koreanGreeter{}))
		c.MustRegister("service", WithConstructor(newService))
	})

	def, err := c.Lookup("service")
	require.NoError(t, err)
	assert.Equal(t, []Dependency{Needs[repository](), Needs[Greeter]()}, def.Deps)
	assert.Equal(t, []string{"*di.service"}, Capabilities(def))

	svc, err := GetByCapability[*service](c)
	require.NoError(t, err)
	assert.Equal(t, "memory", svc.repo.Find(1))
	assert.Equal(t, "annyeong", svc.greeter.Greet())

	repo := MustGet[repository](c, "repository")
	assert.Same(t, repo, svc.repo)
}

func TestWithConstructorOverride(t *testing.T) {
	c := openContainer(t, func(c *Container) {
		c.MustRegister("primaryRepo", Provides[repository](), value(&memoryRepository{prefix: "primary"}))
		c.MustRegister("backupRepo", Provides[repository](), value(&memoryRepository{prefix: "backup"}))
		c.MustRegister("greeter", Provides[Greeter](), value(koreanGreeter{}))
		c.MustRegister("service", WithConstructor(newService, Ref("backupRepo")))
	})

	svc, err := Get[*service](c, "service")
	require.NoError(t, err)
	assert.Equal(t, "backup", svc.repo.Find(1))
}

func TestWithConstructorError(t *testing.T) {
	c := openContainer(t, func(c *Container) {
		c.MustRegister("repository", Provides[repository](), WithFactory(func([]any) (any, error) {
			return &memoryRepository{}, nil
		}))
		c.MustRegister("ok", WithConstructor(newCheckedService))
		c.MustRegister("failing", WithConstructor(func() (*service, error) { return nil, errBoom }))
		c.MustRegister("nilResult", WithConstructor(func() *service { return nil }))
	})

	_, err := c.Resolve("ok")
	require.NoError(t, err)

	_, err = c.Resolve("failing")
	assert.ErrorIs(t, err, ErrInitializationFailed)
	assert.ErrorIs(t, err, errBoom)

	_, err = c.Resolve("nilResult")
	assert.ErrorIs(t, err, errNilInstance)
}

func TestWithConstructorInvalidSignatures(t *testing.T) {
	tests := []struct {
		name string
		fn   any
		over []Dependency
	}{
		{"not a function", "newService", nil},
		{"no results", func() {}, nil},
		{"second result not error", func() (int, int) { return 0, 0 }, nil},
		{"three results", func() (int, int, error) { return 0, 0, nil }, nil},
		{"variadic", func(...int) int { return 0 }, nil},
		{"too many overrides", newCheckedService, []Dependency{Ref("a"), Ref("b")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().Register("bad", WithConstructor(tt.fn, tt.over...))
			assert.ErrorIs(t, err, ErrInvalidDefinition)
		})
	}
}
