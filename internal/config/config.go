package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config 应用运行配置，全部来自环境变量（可选 .env 文件）
type Config struct {
	Env            string
	Port           string
	DatabaseURL    string
	SessionSecret  string
	SessionCleanup bool
	CORSOrigin     string
}

// Load 读取 .env（若存在）并解析环境变量
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}
	return FromEnv()
}

// FromEnv 只读取当前进程环境，不加载 .env
func FromEnv() *Config {
	cfg := &Config{
		Env:            getEnv("APP_ENV", EnvDevelopment),
		Port:           getEnv("PORT", "4000"),
		DatabaseURL:    getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=perapera port=5432 sslmode=disable"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		SessionCleanup: getEnv("SESSION_CLEANUP", "true") != "false",
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:5173"),
	}

	if cfg.SessionSecret == "" {
		log.Println("SESSION_SECRET not set, using development secret")
		cfg.SessionSecret = "dev-secret"
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
