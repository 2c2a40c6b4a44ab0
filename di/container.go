package di

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/gocrud/hellocore/logging"
	"go.uber.org/multierr"
	"golang.org/x/sync/singleflight"
)

const (
	stateRegistering int32 = iota
	stateOpen
	stateClosed
)

// Container 是依赖注入容器。
//
// 使用顺序为 Register（多次）→ Open → Resolve（可并发）→ Close。
// Open 之后注册表不可变，解析时无锁读取定义；
// 已创建的单例通过原子读取返回，首次创建按名称互斥。
type Container struct {
	logger logging.Logger

	mu          sync.Mutex
	definitions map[string]*Definition
	names       []string // 注册顺序
	state       atomic.Int32

	// flight 保证同一名称的单例只有一个调用方执行工厂和 init。
	flight singleflight.Group

	// created 记录单例的创建顺序，Close 时逆序销毁。
	createdMu sync.Mutex
	created   []*Definition

	closeOnce sync.Once
	closeErr  error
}

// ContainerOption 配置容器本身。
type ContainerOption func(*Container)

// WithLogger 设置容器使用的日志记录器，默认不输出。
func WithLogger(logger logging.Logger) ContainerOption {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger.WithCategory("di")
		}
	}
}

// New 创建一个新的空容器。
func New(opts ...ContainerOption) *Container {
	c := &Container{
		logger:      logging.NewNopLogger(),
		definitions: make(map[string]*Definition),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register 以 name 注册一个定义。
func (c *Container) Register(name string, opts ...Option) error {
	def := &Definition{Name: name, Scope: ScopeSingleton}
	for _, opt := range opts {
		opt(def)
	}
	return c.Add(def)
}

// MustRegister 与 Register 相同，失败时 panic。用于启动阶段的静态注册。
func (c *Container) MustRegister(name string, opts ...Option) {
	if err := c.Register(name, opts...); err != nil {
		panic(err)
	}
}

// Add 向容器添加服务定义。
func (c *Container) Add(def *Definition) error {
	if err := def.validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.Load() {
	case stateOpen:
		return fmt.Errorf("%w: cannot register %q", ErrRegistryFrozen, def.Name)
	case stateClosed:
		return newError(KindContainerClosed, def.Name, nil)
	}

	if _, exists := c.definitions[def.Name]; exists {
		return newError(KindDuplicateDefinition, def.Name, nil)
	}

	c.definitions[def.Name] = def
	c.names = append(c.names, def.Name)

	c.logger.Debug("Registered definition",
		logging.Field{Key: "name", Value: def.Name},
		logging.Field{Key: "scope", Value: def.Scope.String()},
		logging.Field{Key: "deps", Value: len(def.Deps)})
	return nil
}

// Lookup 按名称查找定义。
func (c *Container) Lookup(name string) (*Definition, error) {
	if c.state.Load() == stateRegistering {
		c.mu.Lock()
		defer c.mu.Unlock()
	}
	def, ok := c.definitions[name]
	if !ok {
		return nil, newError(KindNotFound, name, nil)
	}
	return def, nil
}

// LookupByCapability 返回能力集包含 capability 的全部定义，按注册顺序排列。
// 没有匹配时返回空切片。
func (c *Container) LookupByCapability(capability reflect.Type) []*Definition {
	if c.state.Load() == stateRegistering {
		c.mu.Lock()
		defer c.mu.Unlock()
	}
	var matches []*Definition
	for _, name := range c.names {
		if def := c.definitions[name]; def.Provides(capability) {
			matches = append(matches, def)
		}
	}
	return matches
}

// Names 返回全部定义名称，按注册顺序排列。
func (c *Container) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Len 返回注册的定义数量。
func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.names)
}

type openOptions struct {
	eager bool
}

// OpenOption 配置 Open 的行为。
type OpenOption func(*openOptions)

// Eager 使 Open 在返回前校验依赖图并创建全部非 Lazy 单例，
// 让配置错误在启动时暴露，而不是在首次使用时。
func Eager() OpenOption {
	return func(o *openOptions) {
		o.eager = true
	}
}

// Open 冻结注册表并激活容器。
// 对已打开的容器重复调用只在传入 Eager 时执行校验和急切初始化，已创建的单例不会重复创建。
func (c *Container) Open(opts ...OpenOption) error {
	o := openOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	c.mu.Lock()
	switch c.state.Load() {
	case stateOpen:
		c.mu.Unlock()
		if !o.eager {
			return nil
		}
		return c.eagerStart()
	case stateClosed:
		c.mu.Unlock()
		return newError(KindContainerClosed, "", nil)
	}
	c.state.Store(stateOpen)
	names := c.names
	c.mu.Unlock()

	c.logger.Info("Container opened",
		logging.Field{Key: "definitions", Value: len(names)},
		logging.Field{Key: "eager", Value: o.eager})

	if !o.eager {
		return nil
	}
	return c.eagerStart()
}

// eagerStart 校验依赖图，然后按注册顺序创建全部非 Lazy 单例，依赖会在递归中先于依赖方创建。
func (c *Container) eagerStart() error {
	if err := c.Validate(); err != nil {
		return err
	}

	for _, name := range c.names {
		def := c.definitions[name]
		if def.Scope != ScopeSingleton || def.Lazy {
			continue
		}
		if _, err := c.Resolve(name); err != nil {
			return fmt.Errorf("di: eager start: %w", err)
		}
	}
	return nil
}

// Close 逆序销毁全部已创建的单例并关闭容器。
//
// 单个 destroy 失败不会中断后续销毁，所有失败会合并后返回。
// 之后的 Resolve 调用都返回 ErrContainerClosed。重复调用返回 nil。
func (c *Container) Close() error {
	first := false
	c.closeOnce.Do(func() {
		first = true
		c.closeErr = c.close()
	})
	if !first {
		return nil
	}
	return c.closeErr
}

func (c *Container) close() error {
	c.mu.Lock()
	c.createdMu.Lock()
	c.state.Store(stateClosed)
	created := c.created
	c.created = nil
	c.createdMu.Unlock()
	c.mu.Unlock()

	c.logger.Info("Closing container",
		logging.Field{Key: "singletons", Value: len(created)})

	var errs error
	for i := len(created) - 1; i >= 0; i-- {
		def := created[i]
		box := def.singleton.Load()
		if box == nil {
			continue
		}
		errs = multierr.Append(errs, c.destroy(def, box.value))
	}

	c.logger.Info("Container closed")
	return errs
}

// Closed 报告容器是否已关闭。
func (c *Container) Closed() bool {
	return c.state.Load() == stateClosed
}
