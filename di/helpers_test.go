package di

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// 测试用接口和实现
type Greeter interface {
	Greet() string
}

type englishGreeter struct{ id int64 }

func (g *englishGreeter) Greet() string { return "hello" }

type koreanGreeter struct{}

func (koreanGreeter) Greet() string { return "annyeong" }

type counter struct {
	n atomic.Int64
}

// factory 返回每次调用都计数的工厂
func (c *counter) factory() Factory {
	return func([]any) (any, error) {
		return &englishGreeter{id: c.n.Add(1)}, nil
	}
}

// recorder 记录回调顺序
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) hook(event string) Hook {
	return func(any) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, event)
		return nil
	}
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

var errBoom = errors.New("boom")

func value(v any) Option {
	return WithFactory(func([]any) (any, error) { return v, nil })
}

func openContainer(t *testing.T, register func(c *Container)) *Container {
	t.Helper()
	c := New()
	register(c)
	require.NoError(t, c.Open())
	t.Cleanup(func() { c.Close() })
	return c
}
