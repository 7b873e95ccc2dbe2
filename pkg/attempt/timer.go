package attempt

import "time"

// Timer 一次作答的两级倒计时: 整体预算和单题预算.
// 两者都只由开始时间推算, 单题边界固定在 start + k*perQuestion.
type Timer struct {
	start       time.Time
	total       time.Duration
	perQuestion time.Duration
}

func NewTimer(start time.Time, questions int, perQuestion time.Duration) *Timer {
	return &Timer{
		start:       start,
		total:       time.Duration(questions) * perQuestion,
		perQuestion: perQuestion,
	}
}

func (t *Timer) Start() time.Time {
	return t.start
}

func (t *Timer) Elapsed(now time.Time) time.Duration {
	if now.Before(t.start) {
		return 0
	}
	return now.Sub(t.start)
}

func (t *Timer) TotalRemaining(now time.Time) time.Duration {
	return max(t.total-t.Elapsed(now), 0)
}

// QuestionRemaining perQuestion - elapsed mod perQuestion
func (t *Timer) QuestionRemaining(now time.Time) time.Duration {
	if t.perQuestion <= 0 {
		return 0
	}
	return max(t.perQuestion-t.Elapsed(now)%t.perQuestion, 0)
}

// Slot 已经越过的单题边界数
func (t *Timer) Slot(now time.Time) int {
	if t.perQuestion <= 0 {
		return 0
	}
	return int(t.Elapsed(now) / t.perQuestion)
}
