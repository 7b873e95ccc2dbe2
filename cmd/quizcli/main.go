package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"flashcard-show/pkg/attempt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/zeromicro/go-zero/core/logx"
)

func main() {
	// .env 可选, 环境变量优先
	_ = godotenv.Load()
	// 日志会打乱终端界面
	logx.Disable()

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("quizcli", flag.ContinueOnError)
	assignmentId := fs.String("assignment", "", "assignment id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *assignmentId == "" {
		return errors.New("please provide an assignment id using the -assignment flag")
	}
	baseURL := getenv("FLASHCARD_API", "http://localhost:8080")
	studentId := os.Getenv("FLASHCARD_STUDENT")
	if studentId == "" {
		return errors.New("FLASHCARD_STUDENT is not set")
	}

	cli := newClient(baseURL, os.Getenv("FLASHCARD_TOKEN"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl, sub, err := prepare(ctx, cli, *assignmentId, studentId)
	if err != nil {
		return err
	}
	defer ctrl.Stop()

	p := tea.NewProgram(newModel(ctx, ctrl, sub), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// prepare 拉取作业和已有提交, 返回已 Load 的会话
func prepare(ctx context.Context, cli *client, assignmentId, studentId string) (*attempt.Controller, *submitter, error) {
	local := time.Now()
	resp, err := cli.getAssignment(ctx, assignmentId)
	if err != nil {
		return nil, nil, fmt.Errorf("load assignment: %w", err)
	}
	prior, err := cli.getSubmission(ctx, assignmentId, studentId)
	if err != nil {
		return nil, nil, fmt.Errorf("load submission: %w", err)
	}

	sub := &submitter{client: cli, assignmentId: assignmentId, studentId: studentId}
	ctrl, err := attempt.NewController(toAssignment(resp), sub,
		attempt.WithClock(newSkewClock(resp.ServerTime, local)))
	if err != nil {
		return nil, nil, err
	}
	ctrl.Load(toPrior(prior))
	return ctrl, sub, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
