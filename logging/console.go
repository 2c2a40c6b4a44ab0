package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ConsoleLoggerOptions 控制台日志选项
type ConsoleLoggerOptions struct {
	IncludeTimestamp bool
	TimestampFormat  string
	ColorOutput      bool
	Output           io.Writer
}

// ConsoleLoggerProvider 控制台日志提供者
// 同一提供者创建的 Logger 共享输出和级别，写入互斥。
type ConsoleLoggerProvider struct {
	options ConsoleLoggerOptions
	level   atomic.Int32
	mu      sync.Mutex
}

func NewConsoleLoggerProvider(options ConsoleLoggerOptions) *ConsoleLoggerProvider {
	if options.Output == nil {
		options.Output = os.Stdout
	}
	if options.TimestampFormat == "" {
		options.TimestampFormat = time.DateTime
	}
	p := &ConsoleLoggerProvider{options: options}
	p.level.Store(int32(LogLevelInfo))
	return p
}

func (p *ConsoleLoggerProvider) CreateLogger(category string) Logger {
	return &consoleLogger{provider: p, category: category}
}

func (p *ConsoleLoggerProvider) SetMinimumLevel(level LogLevel) {
	p.level.Store(int32(level))
}

func (p *ConsoleLoggerProvider) write(level LogLevel, category, msg string, fields []Field) {
	if level < LogLevel(p.level.Load()) {
		return
	}

	var b strings.Builder

	// 时间戳
	if p.options.IncludeTimestamp {
		b.WriteString(time.Now().Format(p.options.TimestampFormat))
		b.WriteByte(' ')
	}

	// 日志级别（带颜色）
	if p.options.ColorOutput {
		b.WriteString(colorize(level, level.String()))
	} else {
		b.WriteString(level.String())
	}

	if category != "" {
		b.WriteString(" [")
		b.WriteString(category)
		b.WriteByte(']')
	}

	b.WriteByte(' ')
	b.WriteString(msg)

	if len(fields) > 0 {
		b.WriteString(" {")
		for i, field := range fields {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", field.Key, field.Value)
		}
		b.WriteByte('}')
	}
	b.WriteByte('\n')

	p.mu.Lock()
	defer p.mu.Unlock()
	io.WriteString(p.options.Output, b.String())
}

// consoleLogger 控制台日志实现
type consoleLogger struct {
	provider *ConsoleLoggerProvider
	category string
	fields   []Field
}

func (l *consoleLogger) Trace(msg string, fields ...Field) { l.Log(LogLevelTrace, msg, fields...) }
func (l *consoleLogger) Debug(msg string, fields ...Field) { l.Log(LogLevelDebug, msg, fields...) }
func (l *consoleLogger) Info(msg string, fields ...Field)  { l.Log(LogLevelInfo, msg, fields...) }
func (l *consoleLogger) Warn(msg string, fields ...Field)  { l.Log(LogLevelWarn, msg, fields...) }
func (l *consoleLogger) Error(msg string, fields ...Field) { l.Log(LogLevelError, msg, fields...) }

func (l *consoleLogger) Fatal(msg string, fields ...Field) {
	l.Log(LogLevelFatal, msg, fields...)
	os.Exit(1)
}

func (l *consoleLogger) Log(level LogLevel, msg string, fields ...Field) {
	l.provider.write(level, l.category, msg, mergeFields(l.fields, fields))
}

func (l *consoleLogger) WithFields(fields ...Field) Logger {
	return &consoleLogger{provider: l.provider, category: l.category, fields: mergeFields(l.fields, fields)}
}

func (l *consoleLogger) WithCategory(category string) Logger {
	return &consoleLogger{provider: l.provider, category: category, fields: l.fields}
}

// colorize 为日志级别添加颜色
func colorize(level LogLevel, text string) string {
	const (
		reset   = "\033[0m"
		gray    = "\033[90m"
		cyan    = "\033[36m"
		green   = "\033[32m"
		yellow  = "\033[33m"
		red     = "\033[31m"
		magenta = "\033[35m"
	)

	switch level {
	case LogLevelTrace:
		return gray + text + reset
	case LogLevelDebug:
		return cyan + text + reset
	case LogLevelInfo:
		return green + text + reset
	case LogLevelWarn:
		return yellow + text + reset
	case LogLevelError:
		return red + text + reset
	case LogLevelFatal:
		return magenta + text + reset
	default:
		return text
	}
}
