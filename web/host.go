// Package web 基于 Gin 的演示 Web 主机。每个请求拥有独立的 di.ScopeHolder。
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/gocrud/hellocore/di"
	"github.com/gocrud/hellocore/hosting"
	"github.com/gocrud/hellocore/logging"
)

// Controller 控制器接口
type Controller interface {
	// MountRoutes 注册路由
	MountRoutes(router gin.IRouter)
}

var _ hosting.HostedService = (*Host)(nil)

// Host Web 主机
type Host struct {
	addr      string
	engine    *gin.Engine
	server    *http.Server
	logger    logging.Logger
	container *di.Container

	mu       sync.RWMutex
	listened string
}

// NewHost 创建 Web 主机，容器必须已经 Open。
// 容器中所有满足 Controller 能力的定义都会被解析并挂载路由。
func NewHost(c *di.Container, addr string, logger logging.Logger) (*Host, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.WithCategory("web")

	engine := gin.New()
	// 默认中间件：恢复 panic
	engine.Use(gin.Recovery(), ScopeMiddleware(c, logger))

	h := &Host{
		addr:      addr,
		engine:    engine,
		logger:    logger,
		container: c,
		server:    &http.Server{Addr: addr, Handler: engine},
	}
	if err := h.mapControllers(); err != nil {
		return nil, fmt.Errorf("web: failed to map controllers: %w", err)
	}
	return h, nil
}

// Handler 返回 HTTP 处理器（便于测试使用）
func (h *Host) Handler() http.Handler {
	return h.engine
}

// Address 获取监听地址，仅在 Start 后是实际地址
func (h *Host) Address() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.listened != "" {
		return h.listened
	}
	return h.addr
}

// Start 启动 Web 主机，阻塞直到 Stop 被调用或发生错误
func (h *Host) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("web: failed to listen on %s: %w", h.addr, err)
	}
	h.server.BaseContext = func(net.Listener) context.Context { return ctx }

	h.mu.Lock()
	h.listened = ln.Addr().String()
	h.mu.Unlock()

	h.logger.Info("Web host started", logging.Field{Key: "address", Value: h.Address()})

	if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Error("Web host error", logging.Field{Key: "error", Value: err.Error()})
		return err
	}
	return nil
}

// Stop 停止 Web 主机
func (h *Host) Stop(ctx context.Context) error {
	h.logger.Info("Stopping web host")
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Error("Failed to shutdown web host gracefully",
			logging.Field{Key: "error", Value: err.Error()})
		return err
	}
	h.logger.Info("Web host stopped")
	return nil
}

// mapControllers 从容器解析控制器并注册路由，按名称排序保证顺序稳定
func (h *Host) mapControllers() error {
	controllers, err := di.GetAll[Controller](h.container)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(controllers))
	for name := range controllers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		controllers[name].MountRoutes(h.engine)
		h.logger.Debug("Mapped controller routes", logging.Field{Key: "controller", Value: name})
	}
	return nil
}
