// Package lifecycle 演示初始化和销毁回调：NetworkClient 在创建后连接，在容器关闭时断开。
package lifecycle

import (
	"errors"
	"sync"

	"github.com/gocrud/hellocore/logging"
)

// ErrNotConnected 未连接时调用
var ErrNotConnected = errors.New("lifecycle: client not connected")

// NetworkClient 模拟需要在依赖注入完成后才能建立连接的客户端
type NetworkClient struct {
	URL string

	logger    logging.Logger
	mu        sync.Mutex
	connected bool
	calls     []string
}

// NewNetworkClient 构造时只保存地址，不建立连接
func NewNetworkClient(url string, logger logging.Logger) *NetworkClient {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	c := &NetworkClient{URL: url, logger: logger.WithCategory("lifecycle")}
	c.logger.Info("constructor called", logging.Field{Key: "url", Value: url})
	return c
}

func (c *NetworkClient) Connect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = true
	c.logger.Info("connect", logging.Field{Key: "url", Value: c.URL})
}

func (c *NetworkClient) Call(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return ErrNotConnected
	}
	c.calls = append(c.calls, message)
	c.logger.Info("call", logging.Field{Key: "url", Value: c.URL}, logging.Field{Key: "message", Value: message})
	return nil
}

func (c *NetworkClient) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	c.logger.Info("close", logging.Field{Key: "url", Value: c.URL})
}

// Init 初始化回调
func (c *NetworkClient) Init() error {
	c.Connect()
	return c.Call("init connection message")
}

// Close 销毁回调
func (c *NetworkClient) Close() error {
	c.Disconnect()
	return nil
}

func (c *NetworkClient) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Calls 返回已发送的消息
func (c *NetworkClient) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}
