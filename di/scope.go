package di

import (
	"context"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/singleflight"
)

// ScopeHolder 表示一个工作单元（例如一次 HTTP 请求）内的实例缓存。
//
// 容器本身不提供请求作用域：调用方为每个工作单元创建一个 ScopeHolder，
// 在其中解析的瞬态实例在该单元内复用，Close 时逆序执行它们的 destroy 回调。
// 单例直接委托给容器，不由 holder 销毁。
//
// 工厂可以通过同一个 holder（例如绑定到它的 Provider）解析其他名称；
// 在工厂里再解析自身名称会永久阻塞。
// 通过 Deps 声明的瞬态依赖由容器直接创建，不进入 holder 缓存，Close 也不会销毁它们。
type ScopeHolder struct {
	container *Container

	// flight 保证同一名称在 holder 内只创建一次，创建期间不持有 mu
	flight singleflight.Group

	mu        sync.Mutex
	instances map[string]any
	order     []string
	closed    bool
}

// NewScopeHolder 为一个工作单元创建作用域。
func (c *Container) NewScopeHolder() *ScopeHolder {
	return &ScopeHolder{
		container: c,
		instances: make(map[string]any),
	}
}

// Resolve 在当前工作单元内解析 name。
func (h *ScopeHolder) Resolve(name string) (any, error) {
	def, err := h.container.Lookup(name)
	if err != nil {
		return nil, err
	}
	if def.Scope == ScopeSingleton {
		return h.container.Resolve(name)
	}

	if v, ok, err := h.cached(name); err != nil || ok {
		return v, err
	}

	v, err, _ := h.flight.Do(name, func() (any, error) {
		// 双重检查
		if v, ok, err := h.cached(name); err != nil || ok {
			return v, err
		}

		v, err := h.container.Resolve(name)
		if err != nil {
			return nil, err
		}

		h.mu.Lock()
		if h.closed {
			h.mu.Unlock()
			_ = h.container.destroy(def, v)
			return nil, newError(KindContainerClosed, name, nil)
		}
		h.instances[name] = v
		h.order = append(h.order, name)
		h.mu.Unlock()
		return v, nil
	})
	return v, err
}

func (h *ScopeHolder) cached(name string) (any, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false, newError(KindContainerClosed, name, nil)
	}
	v, ok := h.instances[name]
	return v, ok, nil
}

// Close 逆序销毁该工作单元创建的瞬态实例。重复调用返回 nil。
func (h *ScopeHolder) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	order := h.order
	instances := h.instances
	h.order = nil
	h.instances = nil
	h.mu.Unlock()

	var errs error
	for i := len(order) - 1; i >= 0; i-- {
		name := order[i]
		def, err := h.container.Lookup(name)
		if err != nil {
			continue
		}
		errs = multierr.Append(errs, h.container.destroy(def, instances[name]))
	}
	return errs
}

type scopeHolderKey struct{}

// WithScopeHolder 将 holder 放入 ctx。
func WithScopeHolder(ctx context.Context, h *ScopeHolder) context.Context {
	return context.WithValue(ctx, scopeHolderKey{}, h)
}

// ScopeHolderFrom 从 ctx 取出 holder。
func ScopeHolderFrom(ctx context.Context) (*ScopeHolder, bool) {
	h, ok := ctx.Value(scopeHolderKey{}).(*ScopeHolder)
	return h, ok
}
