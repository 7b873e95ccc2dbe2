package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"flashcard-show/biz/application/dto/flashcard/show"
	"flashcard-show/pkg/attempt"

	"github.com/cenkalti/backoff/v4"
	"github.com/samber/lo"
)

// 提交最多重试次数
const maxSubmitRetries = 3

var ErrAlreadySubmitted = errors.New("already submitted")

// apiError 服务端返回的 {code,msg}
type apiError struct {
	Status int
	Code   int64  `json:"code"`
	Msg    string `json:"msg"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Msg)
}

type client struct {
	baseURL    string
	token      string
	http       *http.Client
	newBackOff func() backoff.BackOff
}

func newClient(baseURL, token string) *client {
	return &client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			return b
		},
	}
}

func (c *client) getAssignment(ctx context.Context, id string) (*show.GetAssignmentResp, error) {
	resp := new(show.GetAssignmentResp)
	err := c.do(ctx, http.MethodGet, "/api/assignments/"+url.PathEscape(id), nil, resp)
	return resp, err
}

func (c *client) getSubmission(ctx context.Context, assignmentId, studentId string) (*show.GetSubmissionResp, error) {
	resp := new(show.GetSubmissionResp)
	err := c.do(ctx, http.MethodGet,
		"/api/assignments/"+url.PathEscape(assignmentId)+"/submission/"+url.PathEscape(studentId), nil, resp)
	return resp, err
}

// submit 网络错误和5xx有限次重试, 409视为已提交, 其余4xx不重试
func (c *client) submit(ctx context.Context, assignmentId string, req *show.SubmitAssignmentReq) (*show.SubmitAssignmentResp, error) {
	resp := new(show.SubmitAssignmentResp)
	op := func() error {
		err := c.do(ctx, http.MethodPost, "/api/assignments/"+url.PathEscape(assignmentId)+"/submit", req, resp)
		var ae *apiError
		switch {
		case err == nil:
			return nil
		case errors.As(err, &ae) && ae.Status == http.StatusConflict:
			return backoff.Permanent(ErrAlreadySubmitted)
		case errors.As(err, &ae) && ae.Status < http.StatusInternalServerError:
			return backoff.Permanent(err)
		}
		return err
	}
	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), maxSubmitRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		ae := &apiError{Status: resp.StatusCode}
		if json.Unmarshal(data, ae) != nil || ae.Msg == "" {
			ae.Msg = http.StatusText(resp.StatusCode)
		}
		return ae
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// toAssignment 把接口返回转换成作答所需的结构
func toAssignment(resp *show.GetAssignmentResp) *attempt.Assignment {
	a := resp.Assignment
	var cards []*attempt.Card
	if resp.Set != nil {
		cards = lo.Map(resp.Set.Cards, func(c *show.Card, _ int) *attempt.Card {
			return &attempt.Card{Term: c.Term, Definition: c.Definition, Image: c.Image}
		})
	}
	return &attempt.Assignment{
		ID:             a.Id,
		Mode:           a.Mode,
		Deadline:       a.Deadline,
		PerQuestion:    time.Duration(a.PerQuestionSeconds) * time.Second,
		TotalQuestions: int(a.TotalQuestions),
		Cards:          cards,
	}
}

func toPrior(resp *show.GetSubmissionResp) *attempt.Prior {
	if resp == nil || !resp.Submitted {
		return nil
	}
	return &attempt.Prior{
		Score:       lo.FromPtr(resp.Score),
		Total:       lo.FromPtr(resp.Total),
		SubmittedAt: lo.FromPtr(resp.SubmittedAt),
	}
}

// submitter 作答结束时把成绩写回服务端
type submitter struct {
	client       *client
	assignmentId string
	studentId    string
	// 服务端已有提交时记录下来, 界面展示服务端保存的成绩
	stored *attempt.Prior
}

func (s *submitter) Finalize(ctx context.Context, r *attempt.Result) error {
	_, err := s.client.submit(ctx, s.assignmentId, &show.SubmitAssignmentReq{
		StudentId: s.studentId,
		Score:     r.Score,
		Total:     r.Total,
		Details: lo.Map(r.Details, func(d *attempt.Detail, _ int) *show.Detail {
			return &show.Detail{
				Term:     d.Term,
				Expected: d.Expected,
				Given:    d.Given,
				Correct:  d.Correct,
				TimedOut: d.TimedOut,
			}
		}),
	})
	if !errors.Is(err, ErrAlreadySubmitted) {
		return err
	}
	sub, err := s.client.getSubmission(ctx, s.assignmentId, s.studentId)
	if err != nil {
		// 已经提交过, 查询失败不影响结果
		s.stored = &attempt.Prior{}
		return nil
	}
	s.stored = lo.Ternary(sub.Submitted, toPrior(sub), &attempt.Prior{})
	return nil
}

// skewClock 按服务端时间校准的时钟
type skewClock struct {
	offset time.Duration
}

func newSkewClock(serverTime, localTime time.Time) skewClock {
	if serverTime.IsZero() {
		return skewClock{}
	}
	return skewClock{offset: serverTime.Sub(localTime)}
}

func (s skewClock) Now() time.Time {
	return time.Now().Add(s.offset)
}
