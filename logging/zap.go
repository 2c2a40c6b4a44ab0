package logging

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLoggerProvider 把 zap.Logger 适配为 LoggerProvider。
type ZapLoggerProvider struct {
	base  *zap.Logger
	level atomic.Int32
}

// NewZapLoggerProvider 创建 zap 日志提供者，base 为 nil 时使用 zap.NewNop()。
func NewZapLoggerProvider(base *zap.Logger) *ZapLoggerProvider {
	if base == nil {
		base = zap.NewNop()
	}
	p := &ZapLoggerProvider{base: base}
	p.level.Store(int32(LogLevelInfo))
	return p
}

func (p *ZapLoggerProvider) CreateLogger(category string) Logger {
	return &zapLogger{provider: p, logger: p.named(category)}
}

func (p *ZapLoggerProvider) SetMinimumLevel(level LogLevel) {
	p.level.Store(int32(level))
}

// Sync 刷新 zap 的缓冲。
func (p *ZapLoggerProvider) Sync() error {
	return p.base.Sync()
}

func (p *ZapLoggerProvider) named(category string) *zap.Logger {
	if category == "" {
		return p.base
	}
	return p.base.Named(category)
}

type zapLogger struct {
	provider *ZapLoggerProvider
	logger   *zap.Logger
	// fields 保存 WithFields 累积的字段，切换类别时重新附加
	fields []zap.Field
}

func (l *zapLogger) Trace(msg string, fields ...Field) { l.Log(LogLevelTrace, msg, fields...) }
func (l *zapLogger) Debug(msg string, fields ...Field) { l.Log(LogLevelDebug, msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.Log(LogLevelInfo, msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.Log(LogLevelWarn, msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.Log(LogLevelError, msg, fields...) }

// Fatal 由 zap 负责退出进程
func (l *zapLogger) Fatal(msg string, fields ...Field) { l.Log(LogLevelFatal, msg, fields...) }

func (l *zapLogger) Log(level LogLevel, msg string, fields ...Field) {
	if level < LogLevel(l.provider.level.Load()) {
		return
	}
	if ce := l.logger.Check(zapLevel(level), msg); ce != nil {
		ce.Write(zapFields(fields)...)
	}
}

func (l *zapLogger) WithFields(fields ...Field) Logger {
	extra := zapFields(fields)
	merged := make([]zap.Field, 0, len(l.fields)+len(extra))
	merged = append(merged, l.fields...)
	merged = append(merged, extra...)
	return &zapLogger{provider: l.provider, logger: l.logger.With(extra...), fields: merged}
}

func (l *zapLogger) WithCategory(category string) Logger {
	return &zapLogger{
		provider: l.provider,
		logger:   l.provider.named(category).With(l.fields...),
		fields:   l.fields,
	}
}

// zap 没有 Trace，映射到 Debug
func zapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LogLevelTrace, LogLevelDebug:
		return zapcore.DebugLevel
	case LogLevelInfo:
		return zapcore.InfoLevel
	case LogLevelWarn:
		return zapcore.WarnLevel
	case LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.FatalLevel
	}
}

func zapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}
