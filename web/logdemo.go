package web

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gocrud/hellocore/di"
	"github.com/gocrud/hellocore/logging"
	"github.com/gocrud/hellocore/reqlog"
)

// LogDemoService 与控制器在同一请求内共享请求日志
type LogDemoService struct{}

func NewLogDemoService() *LogDemoService {
	return &LogDemoService{}
}

func (s *LogDemoService) Logic(ctx context.Context, id string) error {
	logger, err := RequestLogger(ctx)
	if err != nil {
		return err
	}
	logger.Log("service id = " + id)
	return nil
}

// LogDemoController GET /log-demo
type LogDemoController struct {
	service *LogDemoService
}

func NewLogDemoController(service *LogDemoService) *LogDemoController {
	return &LogDemoController{service: service}
}

func (c *LogDemoController) MountRoutes(router gin.IRouter) {
	router.GET("/log-demo", c.logDemo)
}

func (c *LogDemoController) logDemo(ctx *gin.Context) {
	logger, err := RequestLogger(ctx.Request.Context())
	if err != nil {
		ctx.String(http.StatusInternalServerError, err.Error())
		return
	}
	logger.SetRequestURL(requestURL(ctx.Request))
	logger.Log("controller test")

	if err := c.service.Logic(ctx.Request.Context(), "testId"); err != nil {
		ctx.String(http.StatusInternalServerError, err.Error())
		return
	}
	ctx.String(http.StatusOK, "OK")
}

func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.Path
}

// Register 注册日志演示需要的定义
func Register(c *di.Container, logger logging.Logger) error {
	if err := c.Register(RequestLoggerName,
		di.WithTransient(),
		di.WithFactory(func([]any) (any, error) {
			return reqlog.New(logger), nil
		}),
		di.WithDestroyMethod("Close"),
	); err != nil {
		return err
	}
	if err := c.Register("logDemoService", di.WithConstructor(NewLogDemoService)); err != nil {
		return err
	}
	return c.Register("logDemoController",
		di.Provides[Controller](),
		di.WithConstructor(NewLogDemoController),
	)
}
