// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Backend BackendConfig `mapstructure:"backend"`
	Session SessionConfig `mapstructure:"session"`
	Upload  UploadConfig  `mapstructure:"upload"`
	JWT     JWTConfig     `mapstructure:"jwt"`
}

// ServerConfig 存储网关服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// BackendConfig 存储问答后端的连接配置。
type BackendConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
	DefaultCollection string `mapstructure:"default_collection"`
	AnonymousUser     string `mapstructure:"anonymous_user"`
}

// Timeout 返回 HTTP 客户端超时，0 表示不设超时。
func (c BackendConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionConfig 存储会话保活相关的配置。
type SessionConfig struct {
	IdleMinutes    int `mapstructure:"idle_minutes"`
	CleanupMinutes int `mapstructure:"cleanup_minutes"`
}

// UploadConfig 存储文档上传相关的配置。
type UploadConfig struct {
	MaxFileMB int `mapstructure:"max_file_mb"`
}

// MaxBytes 返回允许上传的最大字节数。
func (c UploadConfig) MaxBytes() int64 {
	return int64(c.MaxFileMB) << 20
}

// JWTConfig 存储 JWT 校验配置。secret 为空时只读取声明，不校验签名。
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output_path", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.timeout_seconds", 0)
	v.SetDefault("backend.default_collection", "default")
	v.SetDefault("backend.anonymous_user", "Anonymous")
	v.SetDefault("session.idle_minutes", 60)
	v.SetDefault("session.cleanup_minutes", 10)
	v.SetDefault("upload.max_file_mb", 50)
	v.SetDefault("jwt.secret", "")
}

// Load 从指定路径读取 YAML 配置，环境变量（前缀 TA_）可覆盖同名键。
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("TA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("无法将配置解析到结构体中: %w", err)
	}
	cfg.Backend.BaseURL = strings.TrimRight(cfg.Backend.BaseURL, "/")
	return cfg, nil
}

// Init 初始化配置加载，失败时 panic，并写入全局 Conf。
func Init(configPath string) {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	Conf = cfg
}
