package daily_music

import "gorm.io/gorm"
import "github.com/go-redis/redis/v8"

type ServiceConfig struct {
	Debug bool
}

type Config struct {
	DB          *gorm.DB
	RDB         *redis.Client
	TablePrefix string
	Service     ServiceConfig

	// CoverURLPrefix 封面图写库时的访问路径前缀。
	// 例："uploads/covers" 或 "https://cdn.xxx.com/covers"。
	// 为空时使用默认上传目录的相对路径。
	CoverURLPrefix string
}

type Option func(*Config)

func WithDB(db *gorm.DB) Option {
	return func(c *Config) {
		c.DB = db
	}
}

func WithTablePrefix(prefix string) Option {
	return func(c *Config) {
		c.TablePrefix = prefix
	}
}

func WithRDB(RDB *redis.Client) Option {
	return func(c *Config) {
		c.RDB = RDB
	}
}

func WithServiceDebug(debug bool) Option {
	return func(c *Config) {
		c.Service.Debug = debug
	}
}

// WithCoverURLPrefix 配置封面图路径前缀。
func WithCoverURLPrefix(prefix string) Option {
	return func(c *Config) {
		c.CoverURLPrefix = prefix
	}
}
