package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig 配置错误的哨兵值
// 所有 ConfigError 都可以通过 errors.Is(err, ErrInvalidConfig) 识别
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrCatalogNotFound 方块目录文件不存在
var ErrCatalogNotFound = errors.New("block catalog not found")

// ConfigError 配置错误（网格尺寸非法、形状为空或重复、权重和越界等）
// 只在初始化/编辑配置时产生，不会在模拟过程中出现
type ConfigError struct {
	Field  string // 出错的配置项，如 "grid.width"、"shapes[2].cells"
	Reason string // 可读的错误原因
}

// Error 实现 error 接口
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}

// Unwrap 返回 ErrInvalidConfig
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func newConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
