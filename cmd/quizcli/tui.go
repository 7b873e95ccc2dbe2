package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flashcard-show/pkg/attempt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const refreshInterval = 200 * time.Millisecond

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3498db"))
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ecc71"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f8c8d"))
)

type refreshMsg time.Time

type model struct {
	ctx     context.Context
	ctrl    *attempt.Controller
	sub     *submitter
	started bool
	// 上一题的判定结果
	feedback string
	err      error

	answer textinput.Model
	bar    progress.Model
}

func newModel(ctx context.Context, ctrl *attempt.Controller, sub *submitter) model {
	ti := textinput.New()
	ti.Placeholder = "definition"
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	return model{
		ctx:    ctx,
		ctrl:   ctrl,
		sub:    sub,
		answer: ti,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, refresh())
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	view := m.ctrl.View()

	switch msg := msg.(type) {
	case refreshMsg:
		return m, refresh()
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.ctrl.Stop()
			return m, tea.Quit
		}
		if view.State != attempt.StateLoading && view.State != attempt.StateInProgress {
			if msg.String() == "q" || msg.Type == tea.KeyEnter {
				return m, tea.Quit
			}
			return m, nil
		}
		if !m.started {
			if msg.Type == tea.KeyEnter {
				m.started = true
				m.err = m.ctrl.Start(m.ctx)
			}
			return m, nil
		}
		if view.Question == nil {
			return m, nil
		}
		if input, ok := m.pick(view.Question, msg); ok {
			correct, err := m.ctrl.Answer(view.Question.Index, input)
			m.answer.Reset()
			switch {
			case err != nil:
				m.feedback = hintStyle.Render("time is up for that question")
			case correct:
				m.feedback = correctStyle.Render("correct")
			default:
				m.feedback = wrongStyle.Render("wrong, expected: " + view.Question.Expected)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if view.Question == nil || len(view.Question.Options) == 0 {
		m.answer, cmd = m.answer.Update(msg)
	}
	return m, cmd
}

// pick 选择题按数字键作答, 填空题按回车提交
func (m model) pick(q *attempt.Question, msg tea.KeyMsg) (string, bool) {
	if len(q.Options) > 0 {
		s := msg.String()
		if len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(q.Options) {
			return q.Options[s[0]-'1'], true
		}
		return "", false
	}
	if msg.Type == tea.KeyEnter {
		return m.answer.Value(), true
	}
	return "", false
}

func (m model) View() string {
	view := m.ctrl.View()
	var b strings.Builder

	switch view.State {
	case attempt.StateLoading:
		if m.err != nil {
			fmt.Fprintf(&b, "%s\n", wrongStyle.Render(m.err.Error()))
		}
		fmt.Fprintf(&b, "%s\n\n%d questions. Press enter to start.\n", titleStyle.Render("Ready"), view.Total)
	case attempt.StateInProgress:
		q := view.Question
		if q == nil {
			return "submitting...\n"
		}
		fmt.Fprintf(&b, "%s  %s\n", titleStyle.Render(fmt.Sprintf("Question %d/%d", q.Index+1, view.Total)),
			hintStyle.Render(fmt.Sprintf("score %d, %s left", view.Score, view.TotalRemaining.Round(time.Second))))
		fmt.Fprintf(&b, "%s\n\n", m.bar.ViewAs(ratio(view.QuestionRemaining, view.PerQuestion)))
		fmt.Fprintf(&b, "%s\n", q.Term)
		if q.Image != nil {
			fmt.Fprintf(&b, "%s\n", hintStyle.Render(*q.Image))
		}
		b.WriteString("\n")
		if len(q.Options) > 0 {
			for i, opt := range q.Options {
				fmt.Fprintf(&b, "  %d. %s\n", i+1, opt)
			}
		} else {
			fmt.Fprintf(&b, "%s\n", m.answer.View())
		}
		if m.feedback != "" {
			fmt.Fprintf(&b, "\n%s\n", m.feedback)
		}
	case attempt.StateFinished:
		b.WriteString(m.finishedView(view))
	case attempt.StateAlreadySubmitted:
		fmt.Fprintf(&b, "%s\n\nscore %d/%d, submitted at %s\n", titleStyle.Render("Already submitted"),
			view.Prior.Score, view.Prior.Total, view.Prior.SubmittedAt.Local().Format(time.DateTime))
	case attempt.StateClosed:
		fmt.Fprintf(&b, "%s\n\nThe deadline has passed.\n", wrongStyle.Render("Closed"))
	}
	b.WriteString(hintStyle.Render("\nesc to quit") + "\n")
	return b.String()
}

func (m model) finishedView(view attempt.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nscore %d/%d\n", titleStyle.Render("Finished"), view.Score, view.Total)
	select {
	case <-m.ctrl.Done():
	default:
		b.WriteString(hintStyle.Render("submitting...") + "\n")
		return b.String()
	}
	switch {
	case view.FinalizeErr != nil:
		fmt.Fprintf(&b, "%s\n", wrongStyle.Render("submit failed: "+view.FinalizeErr.Error()))
	case m.sub.stored != nil:
		fmt.Fprintf(&b, "%s\n", hintStyle.Render(fmt.Sprintf("already submitted earlier, recorded score %d/%d",
			m.sub.stored.Score, m.sub.stored.Total)))
	default:
		fmt.Fprintf(&b, "%s\n", correctStyle.Render("submitted"))
	}
	return b.String()
}

func ratio(remaining, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return min(float64(remaining)/float64(total), 1)
}
