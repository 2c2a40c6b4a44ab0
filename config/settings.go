// Package config 负责加载应用配置：YAML 文件为基础，环境变量覆盖，最后做结构校验。
package config

// Settings 应用配置
type Settings struct {
	Discount  DiscountSettings  `yaml:"discount" envPrefix:"DISCOUNT_"`
	Container ContainerSettings `yaml:"container" envPrefix:"CONTAINER_"`
	Log       LogSettings       `yaml:"log" envPrefix:"LOG_"`
	Web       WebSettings       `yaml:"web" envPrefix:"WEB_"`
	Lifecycle LifecycleSettings `yaml:"lifecycle" envPrefix:"LIFECYCLE_"`
}

// DiscountSettings 折扣策略配置
type DiscountSettings struct {
	// Policy 取 fix 或 rate
	Policy      string `yaml:"policy" env:"POLICY" validate:"oneof=fix rate"`
	FixAmount   int    `yaml:"fixAmount" env:"FIX_AMOUNT" validate:"gte=0"`
	RatePercent int    `yaml:"ratePercent" env:"RATE_PERCENT" validate:"gte=0,lte=100"`
}

// ContainerSettings 容器配置
type ContainerSettings struct {
	// Eager 为 true 时 Open 会提前创建所有非 lazy 单例
	Eager bool `yaml:"eager" env:"EAGER"`
}

// LogSettings 日志配置
type LogSettings struct {
	Level  string `yaml:"level" env:"LEVEL" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" env:"FORMAT" validate:"oneof=console zap"`
}

// WebSettings Web 演示服务配置
type WebSettings struct {
	Addr string `yaml:"addr" env:"ADDR" validate:"required,hostname_port"`
}

// LifecycleSettings 生命周期演示配置
type LifecycleSettings struct {
	URL string `yaml:"url" env:"URL" validate:"required,url"`
}

// Default 返回默认配置
func Default() *Settings {
	return &Settings{
		Discount: DiscountSettings{
			Policy:      "rate",
			FixAmount:   1000,
			RatePercent: 10,
		},
		Container: ContainerSettings{Eager: true},
		Log: LogSettings{
			Level:  "info",
			Format: "console",
		},
		Web:       WebSettings{Addr: "127.0.0.1:8080"},
		Lifecycle: LifecycleSettings{URL: "http://hello-spring.dev"},
	}
}
