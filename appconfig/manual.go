// Package appconfig 组装应用对象图。
//
// AppConfig 用构造函数手工装配，每次调用都会得到一张新的对象图；
// Register 把同样的对象图交给 di 容器管理，全部为单例。
package appconfig

import (
	"fmt"

	"github.com/gocrud/hellocore/config"
	"github.com/gocrud/hellocore/discount"
	"github.com/gocrud/hellocore/member"
	"github.com/gocrud/hellocore/order"
)

// AppConfig 手工装配
type AppConfig struct {
	Discount config.DiscountSettings
}

// Manual 按配置创建手工装配器
func Manual(s *config.Settings) *AppConfig {
	return &AppConfig{Discount: s.Discount}
}

func (a *AppConfig) MemberRepository() member.Repository {
	return member.NewMemoryRepository()
}

func (a *AppConfig) DiscountPolicy() discount.Policy {
	p, err := NewDiscountPolicy(a.Discount)
	if err != nil {
		panic(err)
	}
	return p
}

// MemberService 每次调用都新建存储
func (a *AppConfig) MemberService() member.Service {
	return member.NewService(a.MemberRepository())
}

// OrderService 每次调用都新建存储和折扣策略
func (a *AppConfig) OrderService() order.Service {
	return order.NewService(a.MemberRepository(), a.DiscountPolicy())
}

// NewDiscountPolicy 按配置选择折扣策略
func NewDiscountPolicy(s config.DiscountSettings) (discount.Policy, error) {
	switch s.Policy {
	case "fix":
		return discount.NewFixPolicy(s.FixAmount), nil
	case "rate":
		return discount.NewRatePolicy(s.RatePercent), nil
	default:
		return nil, fmt.Errorf("appconfig: unknown discount policy %q", s.Policy)
	}
}
