package appconfig

import (
	"github.com/gocrud/hellocore/config"
	"github.com/gocrud/hellocore/di"
	"github.com/gocrud/hellocore/discount"
	"github.com/gocrud/hellocore/lifecycle"
	"github.com/gocrud/hellocore/logging"
	"github.com/gocrud/hellocore/member"
	"github.com/gocrud/hellocore/order"
)

// 定义名称
const (
	MemberRepository = "memberRepository"
	DiscountPolicy   = "discountPolicy"
	MemberService    = "memberService"
	OrderService     = "orderService"
	NetworkClient    = "networkClient"
)

// Register 注册会员和订单的对象图。依赖按能力声明，由容器按接口类型匹配。
func Register(c *di.Container, s *config.Settings) error {
	policy := s.Discount

	registrations := []struct {
		name string
		opts []di.Option
	}{
		{MemberRepository, []di.Option{
			di.Provides[member.Repository](),
			di.WithConstructor(member.NewMemoryRepository),
		}},
		{DiscountPolicy, []di.Option{
			di.Provides[discount.Policy](),
			di.WithFactory(func([]any) (any, error) {
				return NewDiscountPolicy(policy)
			}),
		}},
		{MemberService, []di.Option{
			di.Provides[member.Service](),
			di.WithConstructor(member.NewService),
		}},
		{OrderService, []di.Option{
			di.Provides[order.Service](),
			di.WithConstructor(order.NewService),
		}},
	}

	for _, r := range registrations {
		if err := c.Register(r.name, r.opts...); err != nil {
			return err
		}
	}
	return nil
}

// RegisterLifecycle 注册生命周期演示客户端。
// lazy：只有在被请求时才创建，eager 启动时不会连接。
func RegisterLifecycle(c *di.Container, s *config.Settings, logger logging.Logger) error {
	url := s.Lifecycle.URL
	return c.Register(NetworkClient,
		di.WithFactory(func([]any) (any, error) {
			return lifecycle.NewNetworkClient(url, logger), nil
		}),
		di.WithInitMethod("Init"),
		di.WithDestroyMethod("Close"),
		di.WithLazy(),
	)
}
