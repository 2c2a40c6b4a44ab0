package di

import (
	"fmt"
	"reflect"
	"time"

	"github.com/gocrud/hellocore/logging"
)

// Resolver 按名称解析实例。Container 和 ScopeHolder 都实现了它。
type Resolver interface {
	Resolve(name string) (any, error)
}

// Resolve 按名称解析实例。
//
// 单例在首次解析时创建（依赖先于自身创建，随后执行 init），之后总是返回同一实例；
// 瞬态每次都创建新实例。失败的创建不会被缓存。
func (c *Container) Resolve(name string) (any, error) {
	return c.resolve(name, nil)
}

// ResolveByCapability 按能力解析唯一的实例。
// 没有候选返回 ErrNotFound；多个候选且没有唯一的 Primary 时返回 ErrAmbiguousResolution。
func (c *Container) ResolveByCapability(capability reflect.Type) (any, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	def, err := c.selectByCapability(capability)
	if err != nil {
		return nil, err
	}
	return c.resolve(def.Name, nil)
}

// ResolveAll 解析全部满足 capability 的定义，返回名称到实例的映射。
func (c *Container) ResolveAll(capability reflect.Type) (map[string]any, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	defs := c.LookupByCapability(capability)
	instances := make(map[string]any, len(defs))
	for _, def := range defs {
		v, err := c.resolve(def.Name, nil)
		if err != nil {
			return nil, err
		}
		instances[def.Name] = v
	}
	return instances, nil
}

func (c *Container) checkOpen() error {
	switch c.state.Load() {
	case stateRegistering:
		return ErrNotOpen
	case stateClosed:
		return newError(KindContainerClosed, "", nil)
	}
	return nil
}

func (c *Container) selectByCapability(capability reflect.Type) (*Definition, error) {
	matches := c.LookupByCapability(capability)
	switch len(matches) {
	case 0:
		return nil, newError(KindNotFound, capability.String(), nil)
	case 1:
		return matches[0], nil
	}

	var primary *Definition
	primaries := 0
	names := make([]string, 0, len(matches))
	for _, def := range matches {
		names = append(names, def.Name)
		if def.Primary {
			primary = def
			primaries++
		}
	}
	if primaries == 1 {
		return primary, nil
	}
	return nil, &Error{
		Kind:       KindAmbiguousResolution,
		Name:       capability.String(),
		Candidates: names,
	}
}

// resolve 是解析的核心。path 为当前调用链上正在解析的名称。
func (c *Container) resolve(name string, path []string) (any, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	// 构建后定义是不可变的，因此可以无锁读取
	def, ok := c.definitions[name]
	if !ok {
		return nil, newError(KindNotFound, name, nil)
	}

	// 快速路径：已创建的单例
	if def.Scope == ScopeSingleton {
		if box := def.singleton.Load(); box != nil {
			return box.value, nil
		}
	}

	if cycle := cycleIn(path, name); cycle != nil {
		return nil, &Error{Kind: KindCyclicDependency, Name: name, Path: cycle}
	}
	// 按声明的依赖做一次静态环检查，避免不同 goroutine 在环上互相等待
	if err := c.checkGraph(def); err != nil {
		return nil, err
	}

	if def.Scope == ScopeTransient {
		return c.create(def, path)
	}

	// 慢速路径：同名单例只允许一个调用方执行创建，其余等待并共享结果
	v, err, _ := c.flight.Do(name, func() (any, error) {
		// 双重检查
		if box := def.singleton.Load(); box != nil {
			return box.value, nil
		}
		instance, err := c.create(def, path)
		if err != nil {
			return nil, err
		}
		if err := c.track(def, instance); err != nil {
			return nil, err
		}
		return instance, nil
	})
	return v, err
}

// create 解析依赖、调用工厂并执行 init。
func (c *Container) create(def *Definition, path []string) (any, error) {
	next := make([]string, len(path)+1)
	copy(next, path)
	next[len(path)] = def.Name

	args := make([]any, len(def.Deps))
	for i, dep := range def.Deps {
		v, err := c.resolveDependency(dep, next)
		if err != nil {
			return nil, fmt.Errorf("resolve %q dependency %s: %w", def.Name, dep, err)
		}
		args[i] = v
	}

	start := time.Now()
	instance, err := def.Factory(args)
	if err == nil && instance == nil {
		err = errNilInstance
	}
	if err == nil {
		err = def.checkCapabilities(instance)
	}
	if err == nil {
		err = c.runInit(def, instance)
	}
	if err != nil {
		c.logger.Error("Failed to create instance",
			logging.Field{Key: "name", Value: def.Name},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, newError(KindInitializationFailed, def.Name, err)
	}

	c.logger.Debug("Created instance",
		logging.Field{Key: "name", Value: def.Name},
		logging.Field{Key: "scope", Value: def.Scope.String()},
		logging.Field{Key: "elapsed", Value: time.Since(start).String()})
	return instance, nil
}

// track 缓存单例并记录创建顺序。
// 如果容器在创建期间已关闭，立即销毁该实例并返回 ErrContainerClosed。
func (c *Container) track(def *Definition, instance any) error {
	c.createdMu.Lock()
	if c.state.Load() == stateClosed {
		c.createdMu.Unlock()
		_ = c.destroy(def, instance)
		return newError(KindContainerClosed, def.Name, nil)
	}
	def.singleton.Store(&instanceBox{value: instance})
	c.created = append(c.created, def)
	c.createdMu.Unlock()
	return nil
}

func (c *Container) resolveDependency(dep Dependency, path []string) (any, error) {
	if dep.Name != "" {
		return c.resolve(dep.Name, path)
	}
	def, err := c.selectByCapability(dep.Capability)
	if err != nil {
		return nil, err
	}
	return c.resolve(def.Name, path)
}

// cycleIn 如果 name 已在 path 上，返回从 name 开始并回到 name 的环。
func cycleIn(path []string, name string) []string {
	for i, n := range path {
		if n == name {
			cycle := make([]string, 0, len(path)-i+1)
			cycle = append(cycle, path[i:]...)
			return append(cycle, name)
		}
	}
	return nil
}

// CreationOrder 返回已创建单例的名称，按创建先后排列。
func (c *Container) CreationOrder() []string {
	c.createdMu.Lock()
	defer c.createdMu.Unlock()
	names := make([]string, len(c.created))
	for i, def := range c.created {
		names[i] = def.Name
	}
	return names
}
