package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gocrud/hellocore/appconfig"
	"github.com/gocrud/hellocore/config"
	"github.com/gocrud/hellocore/di"
	"github.com/gocrud/hellocore/hosting"
	"github.com/gocrud/hellocore/lifecycle"
	"github.com/gocrud/hellocore/logging"
	"github.com/gocrud/hellocore/member"
	"github.com/gocrud/hellocore/order"
	"github.com/gocrud/hellocore/web"
	"go.uber.org/multierr"
)

type environment struct {
	settings *config.Settings
	factory  logging.LoggerFactory
	logger   logging.Logger
	out      io.Writer
	sync     func() error
}

func newEnvironment(path string, out io.Writer) (*environment, error) {
	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	factory, sync, err := appconfig.NewLoggerFactory(settings.Log)
	if err != nil {
		return nil, err
	}
	return &environment{
		settings: settings,
		factory:  factory,
		logger:   factory.CreateLogger("hellocore"),
		out:      out,
		sync:     sync,
	}, nil
}

// container 创建并注册会员和订单的对象图，调用方负责 Close
func (e *environment) container(register ...func(*di.Container) error) (*di.Container, error) {
	c := di.New(di.WithLogger(e.logger))
	if err := appconfig.Register(c, e.settings); err != nil {
		return nil, err
	}
	for _, fn := range register {
		if err := fn(c); err != nil {
			return nil, err
		}
	}

	var opts []di.OpenOption
	if e.settings.Container.Eager {
		opts = append(opts, di.Eager())
	}
	if err := c.Open(opts...); err != nil {
		return nil, multierr.Append(err, c.Close())
	}
	return c, nil
}

var commands = map[string]func(*environment) error{
	"member":    runMember,
	"order":     runOrder,
	"manual":    runManual,
	"beans":     runBeans,
	"lifecycle": runLifecycle,
	"serve":     runServe,
}

func runMember(e *environment) (err error) {
	c, err := e.container()
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, c.Close()) }()

	svc, err := di.GetByCapability[member.Service](c)
	if err != nil {
		return err
	}

	m := member.Member{ID: 1, Name: "memberA", Grade: member.GradeVIP}
	if err := svc.Join(m); err != nil {
		return err
	}
	found, err := svc.FindMember(1)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "new member = %s\n", m.Name)
	fmt.Fprintf(e.out, "find member = %s\n", found.Name)
	return nil
}

func runOrder(e *environment) (err error) {
	c, err := e.container()
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, c.Close()) }()

	members, err := di.Get[member.Service](c, appconfig.MemberService)
	if err != nil {
		return err
	}
	orders, err := di.Get[order.Service](c, appconfig.OrderService)
	if err != nil {
		return err
	}

	if err := members.Join(member.Member{ID: 1, Name: "memberA", Grade: member.GradeVIP}); err != nil {
		return err
	}
	o, err := orders.CreateOrder(1, "itemA", 10000)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "order = %s\n", o)
	fmt.Fprintf(e.out, "order.calculatePrice = %d\n", o.CalculatePrice())
	return nil
}

// runManual 手工装配每次调用都会产生新对象
func runManual(e *environment) error {
	app := appconfig.Manual(e.settings)
	s1 := app.MemberService()
	s2 := app.MemberService()
	fmt.Fprintf(e.out, "memberService1 = %p\n", s1)
	fmt.Fprintf(e.out, "memberService2 = %p\n", s2)
	fmt.Fprintf(e.out, "same instance = %t\n", s1 == s2)
	return nil
}

func runBeans(e *environment) (err error) {
	c, err := e.container()
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, c.Close()) }()

	for _, name := range c.Names() {
		def, err := c.Lookup(name)
		if err != nil {
			return err
		}
		bean, err := c.Resolve(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.out, "name = %s scope = %s capabilities = %v object = %T\n",
			name, def.Scope, di.Capabilities(def), bean)
	}
	return nil
}

func runLifecycle(e *environment) (err error) {
	c, err := e.container(func(c *di.Container) error {
		return appconfig.RegisterLifecycle(c, e.settings, e.logger)
	})
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, c.Close()) }()

	client, err := di.Get[*lifecycle.NetworkClient](c, appconfig.NetworkClient)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "client url = %s connected = %t\n", client.URL, client.Connected())
	return nil
}

// runServe 启动日志演示服务，收到退出信号后优雅关闭
func runServe(e *environment) (err error) {
	var c *di.Container
	c, err = e.container(func(c *di.Container) error {
		if err := web.Register(c, e.logger); err != nil {
			return err
		}
		// Web 主机本身也是一个定义，依赖容器在创建时挂载控制器
		return c.Register("webHost",
			di.Provides[hosting.HostedService](),
			di.WithFactory(func([]any) (any, error) {
				return web.NewHost(c, e.settings.Web.Addr, e.logger)
			}),
			di.WithLazy(),
		)
	})
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, c.Close()) }()

	services, err := di.GetAll[hosting.HostedService](c)
	if err != nil {
		return err
	}

	manager := hosting.NewManager(e.logger)
	for name, svc := range services {
		manager.Add(name, svc)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return manager.Run(ctx)
}
