package catalog

import (
	"context"

	"flashcard-show/biz/infrastructure/config"
	"flashcard-show/biz/infrastructure/util/log"
)

// NewMapperFromConfig 未配置DSN时返回空目录, 本地开发不依赖MySQL
func NewMapperFromConfig(config *config.Config) (IMySQLMapper, error) {
	if config.MySQL.DSN == "" {
		log.Info("MySQL DSN not configured, catalog disabled")
		return emptyMapper{}, nil
	}
	return NewMySQLMapper(config.MySQL.DSN)
}

type emptyMapper struct{}

func (emptyMapper) List(context.Context, *Filter) ([]*Entry, int64, error) {
	return nil, 0, nil
}
