package di

import (
	"fmt"
	"reflect"

	"github.com/gocrud/hellocore/logging"
	"go.uber.org/multierr"
)

// runInit 依次执行 Init 闭包和 InitMethod。
func (c *Container) runInit(def *Definition, instance any) error {
	if def.Init != nil {
		if err := def.Init(instance); err != nil {
			return err
		}
	}
	if def.InitMethod != "" {
		if err := callMethod(instance, def.InitMethod); err != nil {
			return err
		}
	}
	return nil
}

// destroy 执行实例的销毁回调，两种回调都会尝试执行。
// 失败以 KindDestroyFailed 包装返回，成功返回 nil。
func (c *Container) destroy(def *Definition, instance any) error {
	var errs error
	if def.Destroy != nil {
		errs = multierr.Append(errs, def.Destroy(instance))
	}
	if def.DestroyMethod != "" {
		errs = multierr.Append(errs, callMethod(instance, def.DestroyMethod))
	}
	if errs == nil {
		if def.Destroy != nil || def.DestroyMethod != "" {
			c.logger.Debug("Destroyed instance", logging.Field{Key: "name", Value: def.Name})
		}
		return nil
	}

	c.logger.Error("Destroy hook failed",
		logging.Field{Key: "name", Value: def.Name},
		logging.Field{Key: "error", Value: errs.Error()})
	return newError(KindDestroyFailed, def.Name, errs)
}

// callMethod 通过反射调用实例上的无参方法，方法可以返回 error。
func callMethod(instance any, name string) error {
	method := reflect.ValueOf(instance).MethodByName(name)
	if !method.IsValid() {
		return fmt.Errorf("method %s not found on %T", name, instance)
	}

	mt := method.Type()
	if mt.NumIn() != 0 {
		return fmt.Errorf("method %T.%s must take no arguments", instance, name)
	}

	switch mt.NumOut() {
	case 0:
		method.Call(nil)
		return nil
	case 1:
		if mt.Out(0) != errorType {
			return fmt.Errorf("method %T.%s must return nothing or error", instance, name)
		}
		if out := method.Call(nil)[0]; !out.IsNil() {
			return out.Interface().(error)
		}
		return nil
	default:
		return fmt.Errorf("method %T.%s must return nothing or error", instance, name)
	}
}
