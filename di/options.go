package di

import (
	"fmt"
	"reflect"
)

// Option 配置服务注册。
type Option func(*Definition)

// WithScope 设置服务的生命周期范围。
func WithScope(scope ScopeType) Option {
	return func(d *Definition) {
		d.Scope = scope
	}
}

// WithSingleton 将范围设置为 Singleton（默认）。
func WithSingleton() Option {
	return WithScope(ScopeSingleton)
}

// WithTransient 将范围设置为 Transient。
func WithTransient() Option {
	return WithScope(ScopeTransient)
}

// WithFactory 注册一个工厂函数来创建实例。
// deps 会按顺序解析后作为 args 传给工厂。
func WithFactory(fn Factory, deps ...Dependency) Option {
	return func(d *Definition) {
		d.Factory = fn
		d.Deps = append(d.Deps, deps...)
	}
}

// DependsOn 追加工厂所需的依赖。
func DependsOn(deps ...Dependency) Option {
	return func(d *Definition) {
		d.Deps = append(d.Deps, deps...)
	}
}

// WithConstructor 注册一个普通的 Go 构造函数，例如 func(Repo, Policy) (*Service, error)。
//
// 每个参数类型都成为一个按能力解析的依赖，第一个返回值的类型会加入能力集。
// overrides 按位置覆盖参数的解析方式，零值 Dependency 表示保留默认：
//
//	di.WithConstructor(order.NewService, di.Ref("memberRepository"))
func WithConstructor(fn any, overrides ...Dependency) Option {
	return func(d *Definition) {
		factory, deps, out, err := adaptConstructor(fn, overrides)
		if err != nil {
			d.err = fmt.Errorf("%w: %q: %v", ErrInvalidDefinition, d.Name, err)
			return
		}
		d.Factory = factory
		d.Deps = deps
		d.addCapability(out)
	}
}

// WithValue 将已经创建好的实例注册为单例，值本身的类型加入能力集。
func WithValue(v any) Option {
	return func(d *Definition) {
		if v == nil {
			d.err = fmt.Errorf("%w: %q: nil value", ErrInvalidDefinition, d.Name)
			return
		}
		d.Factory = func([]any) (any, error) { return v, nil }
		d.Scope = ScopeSingleton
		d.addCapability(reflect.TypeOf(v))
	}
}

// As 声明定义满足的能力（角色），通常是接口类型。
func As(capabilities ...reflect.Type) Option {
	return func(d *Definition) {
		for _, c := range capabilities {
			d.addCapability(c)
		}
	}
}

// Provides 声明定义满足能力 T。
//
//	c.Register("memberService", di.Provides[member.Service](), ...)
func Provides[T any]() Option {
	return As(TypeOf[T]())
}

// WithInit 设置创建后立即执行的回调。
func WithInit(h Hook) Option {
	return func(d *Definition) {
		d.Init = h
	}
}

// WithDestroy 设置容器关闭时执行的回调。
func WithDestroy(h Hook) Option {
	return func(d *Definition) {
		d.Destroy = h
	}
}

// WithInitMethod 按方法名指定 init 回调，方法必须无参，返回值为空或 error。
func WithInitMethod(name string) Option {
	return func(d *Definition) {
		d.InitMethod = name
	}
}

// WithDestroyMethod 按方法名指定 destroy 回调。
func WithDestroyMethod(name string) Option {
	return func(d *Definition) {
		d.DestroyMethod = name
	}
}

// WithLazy 使单例不参与 Eager 启动。
func WithLazy() Option {
	return func(d *Definition) {
		d.Lazy = true
	}
}

// WithPrimary 在按能力解析出现多个候选时优先选择此定义。
func WithPrimary() Option {
	return func(d *Definition) {
		d.Primary = true
	}
}

func (d *Definition) addCapability(c reflect.Type) {
	if c == nil || d.Provides(c) {
		return
	}
	d.Capabilities = append(d.Capabilities, c)
}
