package di

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// ScopeType 定义了服务的生命周期。
type ScopeType int

const (
	// ScopeSingleton 每个容器只创建一个实例（默认）。
	ScopeSingleton ScopeType = iota
	// ScopeTransient 每次解析都创建新实例，不缓存，也不参与容器关闭时的销毁。
	ScopeTransient
)

func (s ScopeType) String() string {
	switch s {
	case ScopeSingleton:
		return "singleton"
	case ScopeTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Factory 使用已解析的依赖创建实例。
// args 与 Definition.Deps 按位置一一对应。
type Factory func(args []any) (any, error)

// Hook 生命周期回调，接收刚创建（或即将销毁）的实例。
type Hook func(instance any) error

// Dependency 描述工厂需要的一个依赖。
// Name 非空时按名称解析，否则按 Capability（通常是接口类型）解析。
type Dependency struct {
	Name       string
	Capability reflect.Type
}

// Ref 按名称引用另一个定义。
func Ref(name string) Dependency {
	return Dependency{Name: name}
}

// Needs 按能力 T 引用一个定义，T 通常是接口。
func Needs[T any]() Dependency {
	return Dependency{Capability: TypeOf[T]()}
}

func (d Dependency) String() string {
	if d.Name != "" {
		return d.Name
	}
	if d.Capability != nil {
		return d.Capability.String()
	}
	return "<empty>"
}

func (d Dependency) isZero() bool {
	return d.Name == "" && d.Capability == nil
}

// Definition 是一个具名的实例配方：工厂、作用域和生命周期回调。
// 注册后由容器持有，Open 之后不可再修改。
type Definition struct {
	Name         string
	Capabilities []reflect.Type
	Deps         []Dependency
	Factory      Factory
	Scope        ScopeType

	Init          Hook
	Destroy       Hook
	InitMethod    string // 实例上的无参方法名，返回值可以为空或 error
	DestroyMethod string

	// Lazy 为 true 时，Eager 模式启动不会提前创建该单例。
	Lazy bool
	// Primary 在按能力解析出现多个候选时优先选择。
	Primary bool

	// err 记录选项应用过程中的错误（例如构造函数签名不合法），在 Register 时返回。
	err error

	// 以下为单例缓存和图检查的运行时状态。
	singleton atomic.Pointer[instanceBox]
	graphOnce sync.Once
	graphErr  error
}

// instanceBox 包装实例，使 nil 接口值也能被原子地存取。
type instanceBox struct {
	value any
}

// Provides 判断定义的能力集是否包含 capability。
func (d *Definition) Provides(capability reflect.Type) bool {
	for _, c := range d.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

func (d *Definition) validate() error {
	if d.err != nil {
		return d.err
	}
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDefinition)
	}
	if d.Factory == nil {
		return fmt.Errorf("%w: %q has no factory", ErrInvalidDefinition, d.Name)
	}
	if d.Scope != ScopeSingleton && d.Scope != ScopeTransient {
		return fmt.Errorf("%w: %q has unknown scope %d", ErrInvalidDefinition, d.Name, d.Scope)
	}
	for i, dep := range d.Deps {
		if dep.isZero() {
			return fmt.Errorf("%w: %q dependency %d is empty", ErrInvalidDefinition, d.Name, i)
		}
	}
	return nil
}

// checkCapabilities 确认实例满足定义声明的全部能力。
func (d *Definition) checkCapabilities(instance any) error {
	typ := reflect.TypeOf(instance)
	for _, c := range d.Capabilities {
		if c.Kind() == reflect.Interface {
			if !typ.Implements(c) {
				return fmt.Errorf("%T does not implement %v", instance, c)
			}
			continue
		}
		if !typ.AssignableTo(c) {
			return fmt.Errorf("%T is not assignable to %v", instance, c)
		}
	}
	return nil
}

// TypeOf 获取类型 T 的 reflect.Type（泛型辅助函数），接口类型同样适用。
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
