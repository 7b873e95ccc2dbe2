package util

import (
	"encoding/json"

	"flashcard-show/biz/infrastructure/util/log"
)

// JSONF 将对象序列化为日志友好的字符串, 失败时返回空串
func JSONF(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error("JSONF fail, v=%v, err=%v", v, err)
		return ""
	}
	return string(data)
}
