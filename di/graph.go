package di

import (
	"fmt"

	"go.uber.org/multierr"
)

// checkGraph 对 def 可达的依赖图做一次环检查，结果缓存在定义上。
func (c *Container) checkGraph(def *Definition) error {
	def.graphOnce.Do(func() {
		def.graphErr = c.findCycle(def)
	})
	return def.graphErr
}

// findCycle 从 start 出发做 DFS，发现环时返回 KindCyclicDependency。
// 缺失或有歧义的依赖在这里跳过，留给解析时报告。
func (c *Container) findCycle(start *Definition) error {
	var stack []string
	onStack := make(map[string]bool)
	done := make(map[string]bool)

	var visit func(*Definition) []string
	visit = func(def *Definition) []string {
		if done[def.Name] {
			return nil
		}
		stack = append(stack, def.Name)
		onStack[def.Name] = true

		for _, dep := range def.Deps {
			next, err := c.target(dep)
			if err != nil {
				continue
			}
			if onStack[next.Name] {
				return cycleIn(stack, next.Name)
			}
			if cycle := visit(next); cycle != nil {
				return cycle
			}
		}

		stack = stack[:len(stack)-1]
		onStack[def.Name] = false
		done[def.Name] = true
		return nil
	}

	if cycle := visit(start); cycle != nil {
		return &Error{Kind: KindCyclicDependency, Name: start.Name, Path: cycle}
	}
	return nil
}

// target 返回依赖指向的定义。
func (c *Container) target(dep Dependency) (*Definition, error) {
	if dep.Name != "" {
		def, ok := c.definitions[dep.Name]
		if !ok {
			return nil, newError(KindNotFound, dep.Name, nil)
		}
		return def, nil
	}
	return c.selectByCapability(dep.Capability)
}

// Validate 检查全部定义的依赖是否存在、是否唯一以及是否成环，
// 返回合并后的全部问题。只能在 Open 之后调用。
func (c *Container) Validate() error {
	if err := c.checkOpen(); err != nil {
		return err
	}

	var errs error
	for _, name := range c.names {
		def := c.definitions[name]
		for _, dep := range def.Deps {
			if _, err := c.target(dep); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%q dependency %s: %w", name, dep, err))
			}
		}
	}

	// 同一个环只报告一次
	reported := make(map[string]bool)
	for _, name := range c.names {
		err := c.checkGraph(c.definitions[name])
		if err == nil {
			continue
		}
		e, ok := err.(*Error)
		if !ok || reported[e.Path[0]] {
			continue
		}
		for _, n := range e.Path {
			reported[n] = true
		}
		errs = multierr.Append(errs, err)
	}
	return errs
}
