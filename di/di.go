// Package di 实现一个按名称注册的依赖注入容器。
//
// 定义（Definition）由名称、能力集、依赖列表、工厂、作用域和生命周期回调组成，
// 在启动时显式注册，不做任何运行时扫描：
//
//	c := di.New()
//	c.MustRegister("memberRepository",
//		di.Provides[member.Repository](),
//		di.WithConstructor(member.NewMemoryRepository))
//	c.MustRegister("memberService",
//		di.Provides[member.Service](),
//		di.WithConstructor(member.NewService))
//	if err := c.Open(); err != nil { ... }
//	defer c.Close()
//
//	svc, err := di.Get[member.Service](c, "memberService")
package di

import (
	"fmt"
	"reflect"
)

// Get 按名称解析实例并断言为 T。
func Get[T any](r Resolver, name string) (T, error) {
	var zero T
	val, err := r.Resolve(name)
	if err != nil {
		return zero, err
	}
	if v, ok := val.(T); ok {
		return v, nil
	}
	return zero, fmt.Errorf("di: %q resolved to %T, expected %v", name, val, TypeOf[T]())
}

// MustGet 与 Get 相同，失败时 panic。
func MustGet[T any](r Resolver, name string) T {
	v, err := Get[T](r, name)
	if err != nil {
		panic(err)
	}
	return v
}

// GetByCapability 按能力 T 解析唯一的实例。
func GetByCapability[T any](c *Container) (T, error) {
	var zero T
	typ := TypeOf[T]()
	val, err := c.ResolveByCapability(typ)
	if err != nil {
		return zero, err
	}
	if v, ok := val.(T); ok {
		return v, nil
	}
	return zero, fmt.Errorf("di: capability %v resolved to %T", typ, val)
}

// GetAll 解析全部满足能力 T 的实例，返回名称到实例的映射。
func GetAll[T any](c *Container) (map[string]T, error) {
	typ := TypeOf[T]()
	all, err := c.ResolveAll(typ)
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, len(all))
	for name, val := range all {
		v, ok := val.(T)
		if !ok {
			return nil, fmt.Errorf("di: %q resolved to %T, expected %v", name, val, typ)
		}
		out[name] = v
	}
	return out, nil
}

// Provider 是“T 的提供者”：每次调用都通过 Resolver 重新解析。
// 注入 Provider 而不是 T，可以在每个工作单元里拿到新的瞬态实例。
type Provider[T any] func() (T, error)

// ProviderOf 创建按名称解析的 Provider。
func ProviderOf[T any](r Resolver, name string) Provider[T] {
	return func() (T, error) {
		return Get[T](r, name)
	}
}

// Get 调用提供者。
func (p Provider[T]) Get() (T, error) {
	return p()
}

// Capabilities 返回定义能力集的可读形式，便于日志和调试输出。
func Capabilities(def *Definition) []string {
	out := make([]string, len(def.Capabilities))
	for i, c := range def.Capabilities {
		out[i] = typeName(c)
	}
	return out
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
