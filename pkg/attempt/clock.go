package attempt

import "time"

// Clock 时间来源, 测试中注入假时钟
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock 使用墙上时间
var SystemClock Clock = systemClock{}
