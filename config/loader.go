package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 环境变量前缀，例如 HELLOCORE_DISCOUNT_POLICY
const EnvPrefix = "HELLOCORE_"

var validate = validator.New()

// Load 按 默认值 -> YAML 文件 -> 环境变量 的顺序加载配置并校验。
// path 为空或文件不存在时只使用默认值和环境变量。
func Load(path string) (*Settings, error) {
	s := Default()

	if path != "" {
		if err := loadFile(path, s); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(s, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate 校验配置
func Validate(s *Settings) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("config: invalid settings: %w", err)
	}
	return nil
}

func loadFile(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}
