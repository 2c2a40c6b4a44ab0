// Package reqlog 提供工作单元级别的日志：每个请求一个实例，用 UUID 区分并发请求。
package reqlog

import (
	"sync"

	"github.com/google/uuid"

	"github.com/gocrud/hellocore/logging"
)

// Logger 请求日志
type Logger struct {
	id     string
	logger logging.Logger

	mu         sync.RWMutex
	requestURL string
}

// New 创建请求日志并记录创建事件
func New(logger logging.Logger) *Logger {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	l := &Logger{id: uuid.NewString()}
	l.logger = logger.WithCategory("request").WithFields(logging.Field{Key: "uuid", Value: l.id})
	l.logger.Info("request scope created")
	return l
}

// ID 返回本次请求的标识
func (l *Logger) ID() string {
	return l.id
}

// SetRequestURL 请求地址通常在创建之后才知道
func (l *Logger) SetRequestURL(url string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requestURL = url
}

func (l *Logger) RequestURL() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.requestURL
}

// Log 记录一条带 uuid 和请求地址的消息
func (l *Logger) Log(message string) {
	l.logger.Info(message, logging.Field{Key: "url", Value: l.RequestURL()})
}

// Close 销毁回调
func (l *Logger) Close() error {
	l.logger.Info("request scope closed")
	return nil
}
