package di

import (
	"errors"
	"fmt"
	"strings"
)

// Kind 描述容器错误的类别。
type Kind int

const (
	// KindDuplicateDefinition 名称已被注册。
	KindDuplicateDefinition Kind = iota + 1
	// KindNotFound 名称或能力没有对应的定义。
	KindNotFound
	// KindAmbiguousResolution 按能力解析时匹配到多个定义。
	KindAmbiguousResolution
	// KindCyclicDependency 依赖图中存在环。
	KindCyclicDependency
	// KindInitializationFailed 工厂或 init 回调失败。
	KindInitializationFailed
	// KindContainerClosed 容器已关闭。
	KindContainerClosed
	// KindDestroyFailed destroy 回调失败（仅在 Close 时记录）。
	KindDestroyFailed
)

func (k Kind) String() string {
	switch k {
	case KindDuplicateDefinition:
		return "duplicate definition"
	case KindNotFound:
		return "not found"
	case KindAmbiguousResolution:
		return "ambiguous resolution"
	case KindCyclicDependency:
		return "cyclic dependency"
	case KindInitializationFailed:
		return "initialization failed"
	case KindContainerClosed:
		return "container closed"
	case KindDestroyFailed:
		return "destroy failed"
	default:
		return "unknown"
	}
}

// 与 errors.Is 配合使用的哨兵错误。
var (
	ErrDuplicateDefinition  = errors.New("di: duplicate definition")
	ErrNotFound             = errors.New("di: not found")
	ErrAmbiguousResolution  = errors.New("di: ambiguous resolution")
	ErrCyclicDependency     = errors.New("di: cyclic dependency")
	ErrInitializationFailed = errors.New("di: initialization failed")
	ErrContainerClosed      = errors.New("di: container closed")
	ErrDestroyFailed        = errors.New("di: destroy failed")

	// ErrNotOpen 在 Open 之前解析时返回。
	ErrNotOpen = errors.New("di: container is not open")
	// ErrRegistryFrozen 在 Open 之后注册时返回。
	ErrRegistryFrozen = errors.New("di: registry is frozen after open")
	// ErrInvalidDefinition 定义本身不完整或不合法。
	ErrInvalidDefinition = errors.New("di: invalid definition")
)

var sentinels = map[Kind]error{
	KindDuplicateDefinition:  ErrDuplicateDefinition,
	KindNotFound:             ErrNotFound,
	KindAmbiguousResolution:  ErrAmbiguousResolution,
	KindCyclicDependency:     ErrCyclicDependency,
	KindInitializationFailed: ErrInitializationFailed,
	KindContainerClosed:      ErrContainerClosed,
	KindDestroyFailed:        ErrDestroyFailed,
}

// Error 是容器返回的结构化错误。
//
// Name 是出错的定义名称（或按能力解析时的能力描述），
// Path 仅在 KindCyclicDependency 时填充，为环上的名称序列（首尾相同），
// Candidates 仅在 KindAmbiguousResolution 时填充。
type Error struct {
	Kind       Kind
	Name       string
	Path       []string
	Candidates []string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("di: ")
	b.WriteString(e.Kind.String())

	switch e.Kind {
	case KindCyclicDependency:
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Path, " -> "))
	case KindAmbiguousResolution:
		fmt.Fprintf(&b, ": %s matches %s", e.Name, strings.Join(e.Candidates, ", "))
	default:
		if e.Name != "" {
			fmt.Fprintf(&b, ": %q", e.Name)
		}
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is 让 errors.Is(err, ErrNotFound) 等判断按 Kind 匹配。
func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, name string, cause error) *Error {
	return &Error{Kind: kind, Name: name, Err: cause}
}

// KindOf 返回错误链中第一个 *Error 的 Kind，不存在时返回 0。
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
