package attempt

import (
	"context"
	"errors"
	"sync"
	"time"

	"flashcard-show/biz/infrastructure/util/log"

	"github.com/google/uuid"
)

type State string

const (
	StateLoading          State = "loading"
	StateInProgress       State = "in_progress"
	StateFinished         State = "finished"
	StateClosed           State = "closed"
	StateAlreadySubmitted State = "already_submitted"
)

// DefaultTickInterval 刷新间隔, 远小于单题预算
const DefaultTickInterval = 500 * time.Millisecond

var (
	ErrNotInProgress = errors.New("attempt is not in progress")
	ErrStaleQuestion = errors.New("question already answered")
)

// Assignment 作答所需的作业快照
type Assignment struct {
	ID             string
	Mode           string
	Deadline       time.Time
	PerQuestion    time.Duration
	TotalQuestions int
	Cards          []*Card
}

// Prior 已存在的提交记录
type Prior struct {
	Score       int64
	Total       int64
	SubmittedAt time.Time
}

type Detail struct {
	Term     string
	Expected string
	Given    string
	Correct  bool
	TimedOut bool
}

type Result struct {
	SessionID string
	Score     int64
	Total     int64
	Details   []*Detail
	StartTime time.Time
}

// Finalizer 提交最终成绩, 每次作答最多调用一次
type Finalizer interface {
	Finalize(ctx context.Context, r *Result) error
}

type FinalizerFunc func(ctx context.Context, r *Result) error

func (f FinalizerFunc) Finalize(ctx context.Context, r *Result) error {
	return f(ctx, r)
}

type Option func(*Controller)

func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithTickInterval 为0时不启动后台刷新, 由调用方驱动 Tick
func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// View 供界面渲染的只读快照
type View struct {
	State             State
	Index             int
	Question          *Question
	Score             int64
	Total             int64
	TotalRemaining    time.Duration
	QuestionRemaining time.Duration
	PerQuestion       time.Duration
	Prior             *Prior
	FinalizeErr       error
}

// Controller 一次作答会话.
// 状态只会进入 finished 一次, 定时刷新和手动作答都经过同一个 finish, 所以 Finalizer 恰好调用一次.
type Controller struct {
	mu        sync.Mutex
	clock     Clock
	interval  time.Duration
	finalizer Finalizer
	mode      Mode

	sessionID  string
	assignment *Assignment
	questions  []*Question
	state      State
	stopped    bool
	prior      *Prior
	index      int
	slot       int // 已结算到的单题边界
	score      int64
	details    []*Detail
	timer      *Timer

	ctx         context.Context
	finalizeErr error
	halt        chan struct{}
	done        chan struct{}
	haltOnce    sync.Once
	doneOnce    sync.Once
}

func NewController(a *Assignment, finalizer Finalizer, opts ...Option) (*Controller, error) {
	mode, err := ModeOf(a.Mode)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		clock:      SystemClock,
		interval:   DefaultTickInterval,
		finalizer:  finalizer,
		mode:       mode,
		sessionID:  uuid.NewString(),
		assignment: a,
		state:      StateLoading,
		ctx:        context.Background(),
		halt:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Controller) SessionID() string {
	return c.sessionID
}

// Done 进入任一终态或被 Stop 后关闭
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Load 根据已有提交和截止时间决定能否开始作答
func (c *Controller) Load(prior *Prior) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateLoading {
		return c.state
	}
	switch {
	case prior != nil:
		c.prior = prior
		c.terminateLocked(StateAlreadySubmitted)
	case !c.clock.Now().Before(c.assignment.Deadline):
		c.terminateLocked(StateClosed)
	default:
		cards := c.assignment.Cards
		// 题目数以创建作业时的快照为准
		if n := c.assignment.TotalQuestions; n > 0 && len(cards) > n {
			cards = cards[:n]
		}
		c.questions = c.mode.Prepare(cards)
	}
	return c.state
}

// Start 开始计时, 须在 Load 之后调用. ctx 取消等同于 Stop
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateLoading || c.questions == nil {
		c.mu.Unlock()
		return ErrNotInProgress
	}
	c.ctx = ctx
	now := c.clock.Now()
	c.timer = NewTimer(now, len(c.questions), c.assignment.PerQuestion)
	c.state = StateInProgress
	log.CtxInfo(ctx, "attempt %s started, assignment=%s, questions=%d", c.sessionID, c.assignment.ID, len(c.questions))
	if len(c.questions) == 0 {
		res := c.finishLocked()
		c.mu.Unlock()
		c.finalize(res)
		return nil
	}
	c.mu.Unlock()

	if c.interval > 0 {
		go c.run(ctx)
	}
	return nil
}

func (c *Controller) run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.Stop()
			return
		case <-c.halt:
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

// Tick 依据当前时间推进: 整体超时直接结束, 单题超时记0分并进入下一题
func (c *Controller) Tick() {
	c.mu.Lock()
	if c.state != StateInProgress || c.stopped {
		c.mu.Unlock()
		return
	}
	if res := c.advanceLocked(c.clock.Now()); res != nil {
		c.mu.Unlock()
		c.finalize(res)
		return
	}
	c.mu.Unlock()
}

// Answer 对第 index 题作答, 题目已超时或已作答时返回 ErrStaleQuestion
func (c *Controller) Answer(index int, input string) (bool, error) {
	c.mu.Lock()
	if c.state != StateInProgress || c.stopped {
		c.mu.Unlock()
		return false, ErrNotInProgress
	}
	now := c.clock.Now()
	// 先结算已经过去的时间, 超时的题不再接受作答
	if res := c.advanceLocked(now); res != nil {
		c.mu.Unlock()
		c.finalize(res)
		return false, ErrNotInProgress
	}
	if index != c.index {
		c.mu.Unlock()
		return false, ErrStaleQuestion
	}

	q := c.questions[c.index]
	correct := c.mode.Evaluate(q, input)
	if correct {
		c.score++
	}
	c.details = append(c.details, &Detail{
		Term:     q.Term,
		Expected: q.Expected,
		Given:    input,
		Correct:  correct,
	})
	c.index++
	if c.index >= len(c.questions) {
		res := c.finishLocked()
		c.mu.Unlock()
		c.finalize(res)
		return correct, nil
	}
	c.mu.Unlock()
	return correct, nil
}

// Stop 放弃本次作答, 停止刷新且不提交
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	c.haltLocked()
	if c.state != StateFinished {
		c.closeDone()
	}
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := View{
		State:       c.state,
		Index:       c.index,
		Score:       c.score,
		Total:       c.total(),
		Prior:       c.prior,
		FinalizeErr: c.finalizeErr,
		PerQuestion: c.assignment.PerQuestion,
	}
	if c.state == StateInProgress && c.index < len(c.questions) {
		now := c.clock.Now()
		v.Question = c.questions[c.index]
		v.TotalRemaining = c.timer.TotalRemaining(now)
		v.QuestionRemaining = min(c.timer.QuestionRemaining(now), v.TotalRemaining)
	}
	return v
}

// advanceLocked 返回非空结果时调用方需要在释放锁后提交
func (c *Controller) advanceLocked(now time.Time) *Result {
	if c.timer.TotalRemaining(now) == 0 || !now.Before(c.assignment.Deadline) {
		return c.finishLocked()
	}
	// 每越过一个边界, 当时展示的题记为超时; 手动作答不移动边界
	for slot := c.timer.Slot(now); c.slot < slot; c.slot++ {
		if c.index < len(c.questions) {
			c.timeoutLocked()
		}
	}
	if c.index >= len(c.questions) {
		return c.finishLocked()
	}
	return nil
}

func (c *Controller) timeoutLocked() {
	q := c.questions[c.index]
	c.details = append(c.details, &Detail{
		Term:     q.Term,
		Expected: q.Expected,
		TimedOut: true,
	})
	c.index++
}

// finishLocked 唯一进入 finished 的路径, 剩余未答的题记0分
func (c *Controller) finishLocked() *Result {
	for c.index < len(c.questions) {
		c.timeoutLocked()
	}
	c.state = StateFinished
	c.haltLocked()
	return &Result{
		SessionID: c.sessionID,
		Score:     c.score,
		Total:     c.total(),
		Details:   c.details,
		StartTime: c.timer.Start(),
	}
}

func (c *Controller) finalize(res *Result) {
	defer c.closeDone()
	if c.finalizer == nil {
		return
	}
	err := c.finalizer.Finalize(c.ctx, res)
	if err != nil {
		// 不改变状态, 界面仍展示本地成绩
		log.CtxError(c.ctx, "attempt %s finalize failed, score=%d/%d, err=%v", c.sessionID, res.Score, res.Total, err)
		c.mu.Lock()
		c.finalizeErr = err
		c.mu.Unlock()
		return
	}
	log.CtxInfo(c.ctx, "attempt %s finalized, score=%d/%d", c.sessionID, res.Score, res.Total)
}

func (c *Controller) terminateLocked(state State) {
	c.state = state
	c.haltLocked()
	c.closeDone()
}

func (c *Controller) haltLocked() {
	c.haltOnce.Do(func() { close(c.halt) })
}

func (c *Controller) closeDone() {
	c.doneOnce.Do(func() { close(c.done) })
}

func (c *Controller) total() int64 {
	if c.assignment.TotalQuestions > 0 {
		return int64(c.assignment.TotalQuestions)
	}
	return int64(len(c.questions))
}
