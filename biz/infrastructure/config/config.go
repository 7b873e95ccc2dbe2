package config

import (
	_ "embed"
	"os"

	"flashcard-show/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

// //go:embed config.local.yaml
var embeddedConfig []byte

var config *Config

type Auth struct {
	SecretKey    string
	PublicKey    string
	AccessExpire int64 `json:",default=604800"`
}

type Config struct {
	service.ServiceConf
	ListenOn string
	State    string
	Auth     Auth
	Mongo    struct {
		URL string
		DB  string
	}
	MySQL struct {
		DSN string `json:",optional"`
	}
	Cache      cache.CacheConf
	Redis      *redis.RedisConf
	Api        API
	Storage    Storage
	Assignment AssignmentConfig
	Suggestion SuggestionConfig
	Log        LogConfig
}

type LogConfig struct {
	NoLogPaths []string `json:",optional"`
}

type API struct {
	SuggestURL   string `json:",optional"`
	ClassJoinURL string `json:",optional"`
}

// Storage 兼容s3协议的对象存储, 用于卡片图片
type Storage struct {
	Region        string `json:",default=us-east-1"`
	Endpoint      string `json:",optional"`
	Bucket        string `json:",optional"`
	AccessKey     string `json:",optional"`
	SecretKey     string `json:",optional"`
	PresignExpire int64  `json:",default=900"`
}

type AssignmentConfig struct {
	PerQuestionSeconds int64 `json:",default=30"`
}

type SuggestionConfig struct {
	CacheExpire int     `json:",default=3600"`
	Rate        float64 `json:",default=2"`
	Burst       int     `json:",default=5"`
	Timeout     int64   `json:",default=5000"`
}

func NewConfig() (*Config, error) {
	c := new(Config)

	if len(embeddedConfig) == 0 {
		path := os.Getenv("CONFIG_PATH")
		log.Info("NewConfig load config from path: %s", path)
		err := conf.Load(path, c)
		if err != nil {
			return nil, err
		}
	} else {
		err := conf.LoadFromYamlBytes(embeddedConfig, c)
		if err != nil {
			return nil, err
		}
	}

	err := c.SetUp()
	if err != nil {
		return nil, err
	}
	config = c
	return c, nil
}

func GetConfig() *Config {
	return config
}

// SetConfig 用于测试和本地工具直接注入配置
func SetConfig(c *Config) {
	config = c
}
