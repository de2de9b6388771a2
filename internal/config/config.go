package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// 默认值
const (
	defaultHost           = "0.0.0.0"
	defaultPort           = 1780
	defaultHTTPPort       = 1781
	defaultMaxConnections = 1000
	defaultIdleTimeout    = 300
	defaultRedisAddr      = "localhost:6379"
	defaultConnPerSecond  = 5
	defaultConnPerMinute  = 60
	defaultBanDuration    = 60
	defaultHandSize       = 7
	defaultMaxPayload     = 1 << 20
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Security SecurityConfig `yaml:"security"`
	Redis    RedisConfig    `yaml:"redis"`
	Game     GameConfig     `yaml:"game"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`            // TCP 端口（原始帧）
	HTTPPort       int    `yaml:"http_port"`       // HTTP 端口（/ws /health /stats）
	MaxConnections int    `yaml:"max_connections"` // 最大并发连接数
	IdleTimeout    int    `yaml:"idle_timeout"`    // 连接空闲超时（秒）
}

// SecurityConfig 连接准入配置（按 IP）
type SecurityConfig struct {
	MaxConnPerSecond int `yaml:"max_conn_per_second"`
	MaxConnPerMinute int `yaml:"max_conn_per_minute"`
	BanDuration      int `yaml:"ban_duration"` // 超限封禁时长（秒）
}

// BanDurationTime 返回封禁时长
func (c *SecurityConfig) BanDurationTime() time.Duration {
	return time.Duration(c.BanDuration) * time.Second
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 游戏配置
type GameConfig struct {
	HandSize   int    `yaml:"hand_size"`   // 起手张数
	Seed       uint64 `yaml:"seed"`        // 洗牌种子，0 表示随机
	MaxPayload int    `yaml:"max_payload"` // 单条消息最大字节数
}

// IdleTimeoutDuration 返回连接空闲超时时长
func (c *ServerConfig) IdleTimeoutDuration() time.Duration {
	return time.Duration(c.IdleTimeout) * time.Second
}

// Load 加载配置文件，依次应用默认值和环境变量
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	return &cfg, nil
}

// Default 返回默认配置（同样应用环境变量）
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = defaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = defaultHTTPPort
	}
	if c.Server.MaxConnections == 0 {
		c.Server.MaxConnections = defaultMaxConnections
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = defaultIdleTimeout
	}
	if c.Security.MaxConnPerSecond == 0 {
		c.Security.MaxConnPerSecond = defaultConnPerSecond
	}
	if c.Security.MaxConnPerMinute == 0 {
		c.Security.MaxConnPerMinute = defaultConnPerMinute
	}
	if c.Security.BanDuration == 0 {
		c.Security.BanDuration = defaultBanDuration
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
	if c.Game.HandSize == 0 {
		c.Game.HandSize = defaultHandSize
	}
	if c.Game.MaxPayload == 0 {
		c.Game.MaxPayload = defaultMaxPayload
	}
}

// applyEnv 环境变量覆盖配置文件
func (c *Config) applyEnv() {
	setString(&c.Server.Host, "SERVER_HOST")
	setInt(&c.Server.Port, "SERVER_PORT")
	setInt(&c.Server.HTTPPort, "SERVER_HTTP_PORT")
	setInt(&c.Server.MaxConnections, "SERVER_MAX_CONNECTIONS")
	setInt(&c.Server.IdleTimeout, "SERVER_IDLE_TIMEOUT")

	setBool(&c.Redis.Enabled, "REDIS_ENABLED")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setInt(&c.Redis.DB, "REDIS_DB")

	setInt(&c.Game.HandSize, "GAME_HAND_SIZE")
	setInt(&c.Game.MaxPayload, "GAME_MAX_PAYLOAD")
	if v, ok := os.LookupEnv("GAME_SEED"); ok {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Game.Seed = n
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
