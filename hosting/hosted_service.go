// Package hosting 管理长时间运行的托管服务（例如 Web 主机）的启动和优雅关闭。
package hosting

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/gocrud/hellocore/logging"
)

// HostedService 托管服务接口
type HostedService interface {
	// Start 启动服务，阻塞直到服务退出。由 Manager 在独立的 goroutine 中调用。
	Start(ctx context.Context) error
	// Stop 执行优雅关闭逻辑。
	Stop(ctx context.Context) error
}

// DefaultShutdownTimeout 默认给定 5 秒超时时间用于清理
const DefaultShutdownTimeout = 5 * time.Second

// Manager 托管服务管理器
type Manager struct {
	logger          logging.Logger
	shutdownTimeout time.Duration

	mu       sync.Mutex
	services []namedService
}

type namedService struct {
	name    string
	service HostedService
}

// NewManager 创建托管服务管理器
func NewManager(logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Manager{
		logger:          logger.WithCategory("hosting"),
		shutdownTimeout: DefaultShutdownTimeout,
	}
}

// SetShutdownTimeout 设置关闭超时
func (m *Manager) SetShutdownTimeout(d time.Duration) *Manager {
	m.shutdownTimeout = d
	return m
}

// Add 添加托管服务
func (m *Manager) Add(name string, service HostedService) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services = append(m.services, namedService{name: name, service: service})
}

// Run 并发启动全部服务，阻塞直到 ctx 结束或任一服务出错，然后逆序停止全部服务。
// 返回启动错误与停止错误的合并结果。
func (m *Manager) Run(ctx context.Context) error {
	m.mu.Lock()
	services := append([]namedService(nil), m.services...)
	m.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(services))
	var wg sync.WaitGroup

	m.logger.Info("Starting hosted services", logging.Field{Key: "count", Value: len(services)})
	for _, s := range services {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.service.Start(runCtx)
			if err == nil || errors.Is(err, context.Canceled) {
				m.logger.Debug("Hosted service exited", logging.Field{Key: "name", Value: s.name})
				return
			}
			m.logger.Error("Hosted service error",
				logging.Field{Key: "name", Value: s.name},
				logging.Field{Key: "error", Value: err.Error()})
			errCh <- err
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), m.shutdownTimeout)
	defer stopCancel()
	stopErr := m.stopAll(stopCtx, services)

	cancel()
	wg.Wait()
	return multierr.Append(runErr, stopErr)
}

// stopAll 逆序停止服务
func (m *Manager) stopAll(ctx context.Context, services []namedService) error {
	m.logger.Info("Stopping hosted services", logging.Field{Key: "count", Value: len(services)})

	var errs error
	for i := len(services) - 1; i >= 0; i-- {
		s := services[i]
		if err := s.service.Stop(ctx); err != nil {
			m.logger.Error("Failed to stop hosted service",
				logging.Field{Key: "name", Value: s.name},
				logging.Field{Key: "error", Value: err.Error()})
			errs = multierr.Append(errs, err)
		}
	}

	m.logger.Info("All hosted services stopped")
	return errs
}
