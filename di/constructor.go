package di

import (
	"errors"
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

var errNilInstance = errors.New("factory returned nil instance")

// adaptConstructor 把 func(A, B, ...) (T[, error]) 包装成 Factory。
// 返回工厂、按参数推断的依赖列表以及 T 的类型。
func adaptConstructor(fn any, overrides []Dependency) (Factory, []Dependency, reflect.Type, error) {
	fnVal := reflect.ValueOf(fn)
	if fnVal.Kind() != reflect.Func {
		return nil, nil, nil, fmt.Errorf("constructor must be a function, got %T", fn)
	}

	fnType := fnVal.Type()
	if fnType.IsVariadic() {
		return nil, nil, nil, fmt.Errorf("variadic constructor %v is not supported", fnType)
	}

	switch fnType.NumOut() {
	case 1:
	case 2:
		if fnType.Out(1) != errorType {
			return nil, nil, nil, fmt.Errorf("second result of %v must be error", fnType)
		}
	default:
		return nil, nil, nil, fmt.Errorf("constructor %v must return (T) or (T, error)", fnType)
	}

	if len(overrides) > fnType.NumIn() {
		return nil, nil, nil, fmt.Errorf("%d overrides for %d parameters", len(overrides), fnType.NumIn())
	}

	deps := make([]Dependency, fnType.NumIn())
	for i := range deps {
		deps[i] = Dependency{Capability: fnType.In(i)}
		if i < len(overrides) && !overrides[i].isZero() {
			deps[i] = overrides[i]
		}
	}

	factory := func(args []any) (any, error) {
		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			want := fnType.In(i)
			if arg == nil {
				in[i] = reflect.Zero(want)
				continue
			}
			v := reflect.ValueOf(arg)
			if !v.Type().AssignableTo(want) {
				return nil, fmt.Errorf("argument %d: %T is not assignable to %v", i, arg, want)
			}
			in[i] = v
		}

		results := fnVal.Call(in)

		// 检查最后一个返回值是否为错误
		if len(results) == 2 && !results[1].IsNil() {
			return nil, results[1].Interface().(error)
		}

		first := results[0]
		switch first.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			if first.IsNil() {
				return nil, errNilInstance
			}
		}
		return first.Interface(), nil
	}

	return factory, deps, fnType.Out(0), nil
}
