package config

import (
	"go.uber.org/zap"
)

// NewLogger 根据运行环境选择 zap 预设
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
