package web

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gocrud/hellocore/di"
	"github.com/gocrud/hellocore/logging"
	"github.com/gocrud/hellocore/reqlog"
)

// RequestLoggerName 请求日志的定义名称
const RequestLoggerName = "myLogger"

var errNoScope = errors.New("web: no request scope in context")

// ScopeMiddleware 为每个请求创建 ScopeHolder，请求结束后关闭
func ScopeMiddleware(c *di.Container, logger logging.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		holder := c.NewScopeHolder()
		ctx.Request = ctx.Request.WithContext(di.WithScopeHolder(ctx.Request.Context(), holder))

		defer func() {
			if err := holder.Close(); err != nil {
				logger.Error("Failed to close request scope", logging.Field{Key: "error", Value: err.Error()})
			}
		}()
		ctx.Next()
	}
}

// RequestLogger 返回当前请求的 reqlog.Logger，同一请求内多次调用得到同一实例
func RequestLogger(ctx context.Context) (*reqlog.Logger, error) {
	holder, ok := di.ScopeHolderFrom(ctx)
	if !ok {
		return nil, errNoScope
	}
	return di.ProviderOf[*reqlog.Logger](holder, RequestLoggerName).Get()
}
