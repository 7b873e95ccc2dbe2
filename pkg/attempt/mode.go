package attempt

import (
	"strings"

	"flashcard-show/biz/infrastructure/consts"

	"github.com/samber/lo"
)

// 选择题的干扰项数量
const distractorCount = 3

type Card struct {
	Term       string
	Definition string
	Image      *string
}

type Question struct {
	Index    int
	Term     string
	Expected string
	Image    *string
	Options  []string // 仅选择题
}

// Mode 作答模式, 决定题目的呈现方式和判分规则
type Mode interface {
	Name() string
	Prepare(cards []*Card) []*Question
	Evaluate(q *Question, input string) bool
}

// ModeOf 根据作业上的模式字段选择实现
func ModeOf(name string) (Mode, error) {
	switch name {
	case consts.ModeTest:
		return TestMode{}, nil
	case consts.ModeLearn:
		return LearnMode{}, nil
	}
	return nil, consts.ErrInvalidMode
}

// Normalize 去掉首尾空白并统一大小写
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func Matches(input, expected string) bool {
	return Normalize(input) == Normalize(expected)
}

// TestMode 选择题, 第一次选择即锁定
type TestMode struct{}

func (TestMode) Name() string { return consts.ModeTest }

func (TestMode) Prepare(cards []*Card) []*Question {
	questions := make([]*Question, 0, len(cards))
	for i, c := range cards {
		q := newQuestion(i, c)
		q.Options = buildOptions(cards, i)
		questions = append(questions, q)
	}
	return questions
}

func (TestMode) Evaluate(q *Question, input string) bool {
	// 选项来自题目本身, 结构相等即可
	return input == q.Expected
}

// LearnMode 填空题, 比较去空白忽略大小写后的文本
type LearnMode struct{}

func (LearnMode) Name() string { return consts.ModeLearn }

func (LearnMode) Prepare(cards []*Card) []*Question {
	return lo.Map(cards, func(c *Card, i int) *Question {
		return newQuestion(i, c)
	})
}

func (LearnMode) Evaluate(q *Question, input string) bool {
	return Matches(input, q.Expected)
}

func newQuestion(i int, c *Card) *Question {
	return &Question{
		Index:    i,
		Term:     c.Term,
		Expected: c.Definition,
		Image:    c.Image,
	}
}

// buildOptions 正确答案加上从其他卡片中不放回抽取的干扰项, 打乱顺序
func buildOptions(cards []*Card, index int) []string {
	correct := cards[index].Definition
	others := make([]string, 0, len(cards))
	for i, c := range cards {
		if i == index || Matches(c.Definition, correct) {
			continue
		}
		others = append(others, c.Definition)
	}
	others = lo.UniqBy(others, Normalize)
	options := append(lo.Samples(others, distractorCount), correct)
	return lo.Shuffle(options)
}
