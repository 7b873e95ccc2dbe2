package service

import (
	"context"
	"errors"
	"time"

	"flashcard-show/biz/adaptor"
	"flashcard-show/biz/application/dto/basic"
	"flashcard-show/biz/application/dto/flashcard/show"
	"flashcard-show/biz/infrastructure/config"
	"flashcard-show/biz/infrastructure/consts"
	"flashcard-show/biz/infrastructure/repository/assignment"
	"flashcard-show/biz/infrastructure/repository/class"
	"flashcard-show/biz/infrastructure/repository/flashcard"
	"flashcard-show/biz/infrastructure/repository/submission"
	"flashcard-show/biz/infrastructure/storage"
	"flashcard-show/biz/infrastructure/util/log"
	"flashcard-show/biz/infrastructure/util/page"
	"flashcard-show/pkg/attempt"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/google/wire"
	"github.com/jinzhu/copier"
	"github.com/samber/lo"
)

// timeNow 测试中替换
var timeNow = time.Now

type IAssignmentService interface {
	CreateAssignment(ctx context.Context, req *show.CreateAssignmentReq) (*show.CreateAssignmentResp, error)
	GetAssignment(ctx context.Context, req *show.GetAssignmentReq) (*show.GetAssignmentResp, error)
	GetSubmission(ctx context.Context, req *show.GetSubmissionReq) (*show.GetSubmissionResp, error)
	SubmitAssignment(ctx context.Context, req *show.SubmitAssignmentReq) (*show.SubmitAssignmentResp, error)
	ListAssignments(ctx context.Context, req *show.ListAssignmentsReq) (*show.ListAssignmentsResp, error)
	ListSubmissions(ctx context.Context, req *show.ListSubmissionsReq) (*show.ListSubmissionsResp, error)
	DeleteAssignment(ctx context.Context, req *show.DeleteAssignmentReq) (*basic.Response, error)
}

type AssignmentService struct {
	AssignmentMapper assignment.IMongoMapper
	SubmissionMapper submission.IMongoMapper
	ClassMapper      class.IMongoMapper
	MemberMapper     class.IMemberMongoMapper
	SetMapper        flashcard.IMongoMapper
	ImageSigner      storage.IImageSigner
	Notifier         INotificationService
}

var AssignmentServiceSet = wire.NewSet(
	wire.Struct(new(AssignmentService), "*"),
	wire.Bind(new(IAssignmentService), new(*AssignmentService)),
)

// CreateAssignment 班级创建者布置作业, 题目数在此刻固定
func (s *AssignmentService) CreateAssignment(ctx context.Context, req *show.CreateAssignmentReq) (*show.CreateAssignmentResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	if _, err := attempt.ModeOf(req.Mode); err != nil {
		return nil, err
	}
	now := timeNow()
	if !req.Deadline.After(now) {
		return nil, consts.ErrInvalidDeadline
	}

	c, err := s.ClassMapper.FindOne(ctx, req.ClassId)
	if err != nil {
		log.CtxError(ctx, "获取班级失败: %v", err)
		return nil, consts.ErrNotFound
	}
	if c.CreatorID != meta.GetUserId() {
		return nil, consts.ErrNotClassOwner
	}

	set, err := s.SetMapper.FindOne(ctx, req.SetId)
	if err != nil {
		log.CtxError(ctx, "获取卡组失败: %v", err)
		return nil, consts.ErrNotFound
	}
	if len(set.Cards) == 0 {
		return nil, consts.ErrEmptySet
	}

	perQuestion := perQuestionSeconds()
	if req.PerQuestionSeconds != nil {
		perQuestion = *req.PerQuestionSeconds
	}
	if perQuestion <= 0 {
		return nil, consts.ErrInvalidParams
	}

	title := req.Title
	if title == "" {
		title = set.Title
	}
	a := &assignment.Assignment{
		ClassID:            req.ClassId,
		SetID:              req.SetId,
		CreatorID:          meta.GetUserId(),
		Title:              title,
		Mode:               req.Mode,
		Deadline:           req.Deadline,
		PerQuestionSeconds: perQuestion,
		TotalQuestions:     int64(len(set.Cards)),
		CreateTime:         now,
	}
	if err = s.AssignmentMapper.Insert(ctx, a); err != nil {
		log.CtxError(ctx, "创建作业失败: %v", err)
		return nil, consts.ErrCreateAssignment
	}
	if err = s.ClassMapper.UpdateCount(ctx, a.ClassID, class.AssignmentCounter, 1); err != nil {
		log.CtxError(ctx, "更新班级作业数量失败: %v", err)
	}

	return &show.CreateAssignmentResp{
		AssignmentId:   a.ID.Hex(),
		TotalQuestions: a.TotalQuestions,
	}, nil
}

// GetAssignment 作业定义和卡组内容, 图片引用换成可访问的地址
func (s *AssignmentService) GetAssignment(ctx context.Context, req *show.GetAssignmentReq) (*show.GetAssignmentResp, error) {
	a, err := s.findAssignment(ctx, req.AssignmentId)
	if err != nil {
		return nil, err
	}

	set, err := s.SetMapper.FindOne(ctx, a.SetID)
	if err != nil {
		log.CtxError(ctx, "获取作业卡组失败: %v", err)
		return nil, consts.ErrNotFound
	}

	info, err := toAssignmentInfo(a)
	if err != nil {
		return nil, err
	}
	setInfo, err := toSetInfo(set, s.ImageSigner)
	if err != nil {
		return nil, err
	}
	return &show.GetAssignmentResp{
		Assignment: info,
		Set:        setInfo,
		ServerTime: timeNow(),
	}, nil
}

// GetSubmission 查询学生是否已提交
func (s *AssignmentService) GetSubmission(ctx context.Context, req *show.GetSubmissionReq) (*show.GetSubmissionResp, error) {
	sub, err := s.SubmissionMapper.FindByAssignmentAndStudent(ctx, req.AssignmentId, req.StudentId)
	switch {
	case errors.Is(err, consts.ErrNotFound):
		return &show.GetSubmissionResp{Submitted: false}, nil
	case err != nil:
		log.CtxError(ctx, "获取提交记录失败: %v", err)
		return nil, consts.ErrGetSubmission
	}

	return &show.GetSubmissionResp{
		Submitted:   true,
		Score:       lo.ToPtr(sub.Score),
		Total:       lo.ToPtr(sub.Total),
		SubmittedAt: lo.ToPtr(sub.SubmitTime),
	}, nil
}

// SubmitAssignment 唯一的成绩写入口.
// 截止时间以服务端为准, 重复提交由存储层唯一索引拦截, 不做先查后写.
func (s *AssignmentService) SubmitAssignment(ctx context.Context, req *show.SubmitAssignmentReq) (*show.SubmitAssignmentResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if uid := meta.GetUserId(); uid != "" && uid != req.StudentId {
		return nil, consts.ErrForbidden
	}

	a, err := s.findAssignment(ctx, req.AssignmentId)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	if !a.Open(now) {
		log.CtxInfo(ctx, "作业已截止, assignment=%s, student=%s, deadline=%s", req.AssignmentId, req.StudentId, a.Deadline)
		return nil, consts.ErrDeadlinePassed
	}
	if req.Score < 0 || req.Total < 0 || req.Score > req.Total {
		return nil, consts.ErrInvalidScore
	}

	sub := &submission.Submission{
		AssignmentID: a.ID.Hex(),
		StudentID:    req.StudentId,
		Score:        req.Score,
		Total:        req.Total,
		StartTime:    now,
		SubmitTime:   now,
	}
	if len(req.Details) > 0 {
		if err = copier.Copy(&sub.Details, req.Details); err != nil {
			return nil, consts.ErrInvalidParams
		}
	}

	err = s.SubmissionMapper.Insert(ctx, sub)
	switch {
	case errors.Is(err, consts.ErrAlreadySubmitted):
		log.CtxInfo(ctx, "重复提交, assignment=%s, student=%s", req.AssignmentId, req.StudentId)
		return nil, consts.ErrAlreadySubmitted
	case err != nil:
		log.CtxError(ctx, "保存提交记录失败: %v", err)
		return nil, consts.ErrSubmit
	}

	s.notifyCreator(ctx, a, sub)

	return &show.SubmitAssignmentResp{
		Submitted: true,
		Score:     sub.Score,
		Total:     sub.Total,
	}, nil
}

// ListAssignments 班级成员可见
func (s *AssignmentService) ListAssignments(ctx context.Context, req *show.ListAssignmentsReq) (*show.ListAssignmentsResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	if _, err := checkClassAccess(ctx, s.ClassMapper, s.MemberMapper, req.ClassId, meta.GetUserId()); err != nil {
		return nil, err
	}

	p, size := page.ParsePageOpt(req.PaginationOptions)
	data, total, err := s.AssignmentMapper.FindByClassID(ctx, req.ClassId, p, size)
	if err != nil {
		log.CtxError(ctx, "获取作业列表失败: %v", err)
		return nil, consts.ErrGetAssignment
	}

	assignments := make([]*show.AssignmentInfo, 0, len(data))
	for _, a := range data {
		info, err := toAssignmentInfo(a)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, info)
	}
	return &show.ListAssignmentsResp{
		Assignments: assignments,
		Total:       total,
	}, nil
}

// ListSubmissions 仅班级创建者可以查看全部成绩
func (s *AssignmentService) ListSubmissions(ctx context.Context, req *show.ListSubmissionsReq) (*show.ListSubmissionsResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	a, err := s.findAssignment(ctx, req.AssignmentId)
	if err != nil {
		return nil, err
	}
	c, err := s.ClassMapper.FindOne(ctx, a.ClassID)
	if err != nil {
		log.CtxError(ctx, "获取班级失败: %v", err)
		return nil, consts.ErrNotFound
	}
	if c.CreatorID != meta.GetUserId() {
		return nil, consts.ErrNotClassOwner
	}

	p, size := page.ParsePageOpt(req.PaginationOptions)
	data, total, err := s.SubmissionMapper.FindByAssignmentID(ctx, req.AssignmentId, p, size)
	if err != nil {
		log.CtxError(ctx, "获取提交列表失败: %v", err)
		return nil, consts.ErrGetSubmission
	}

	submissions := make([]*show.SubmissionInfo, 0, len(data))
	for _, sub := range data {
		info := &show.SubmissionInfo{}
		if err = copier.Copy(info, sub); err != nil {
			return nil, err
		}
		info.Id = sub.ID.Hex()
		info.StudentId = sub.StudentID
		submissions = append(submissions, info)
	}

	// 成员数包含创建者本人
	return &show.ListSubmissionsResp{
		Submissions: submissions,
		Total:       total,
		Pending:     max(c.MemberCount-1-total, 0),
	}, nil
}

// DeleteAssignment 只有班级创建者能删除, 已有提交的作业不能删除
func (s *AssignmentService) DeleteAssignment(ctx context.Context, req *show.DeleteAssignmentReq) (*basic.Response, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	a, err := s.findAssignment(ctx, req.AssignmentId)
	if err != nil {
		return nil, err
	}
	c, err := s.ClassMapper.FindOne(ctx, a.ClassID)
	if err != nil {
		log.CtxError(ctx, "获取班级失败: %v", err)
		return nil, consts.ErrNotFound
	}
	if c.CreatorID != meta.GetUserId() {
		return nil, consts.ErrNotClassOwner
	}

	_, total, err := s.SubmissionMapper.FindByAssignmentID(ctx, req.AssignmentId, 1, 1)
	if err != nil {
		log.CtxError(ctx, "获取提交列表失败: %v", err)
		return nil, consts.ErrDeleteAssignment
	}
	if total > 0 {
		return nil, consts.ErrHasSubmissions
	}

	if err = s.AssignmentMapper.Delete(ctx, req.AssignmentId); err != nil {
		log.CtxError(ctx, "删除作业失败: %v", err)
		return nil, consts.ErrDeleteAssignment
	}
	if err = s.ClassMapper.UpdateCount(ctx, a.ClassID, class.AssignmentCounter, -1); err != nil {
		log.CtxError(ctx, "更新班级作业数量失败: %v", err)
	}
	return &basic.Response{Code: 0, Msg: "ok"}, nil
}

func (s *AssignmentService) findAssignment(ctx context.Context, id string) (*assignment.Assignment, error) {
	a, err := s.AssignmentMapper.FindOne(ctx, id)
	switch {
	case err == nil:
		return a, nil
	case errors.Is(err, consts.ErrNotFound), errors.Is(err, consts.ErrInvalidObjectId):
		return nil, consts.ErrNotFound
	default:
		log.CtxError(ctx, "获取作业失败: %v", err)
		return nil, consts.ErrGetAssignment
	}
}

// notifyCreator 通知班级创建者有新提交, 失败只记录日志
func (s *AssignmentService) notifyCreator(ctx context.Context, a *assignment.Assignment, sub *submission.Submission) {
	if s.Notifier == nil {
		return
	}
	// 请求结束后继续执行
	ctx = context.WithoutCancel(ctx)
	gopool.Go(func() {
		c, err := s.ClassMapper.FindOne(ctx, a.ClassID)
		if err != nil {
			log.CtxError(ctx, "通知失败, 获取班级失败: %v", err)
			return
		}
		err = s.Notifier.Notify(ctx, c.CreatorID, consts.NotifySubmission, map[string]any{
			"assignmentId": a.ID.Hex(),
			"title":        a.Title,
			"studentId":    sub.StudentID,
			"score":        sub.Score,
			"total":        sub.Total,
		})
		if err != nil {
			log.CtxError(ctx, "通知失败, assignment=%s, err=%v", a.ID.Hex(), err)
		}
	})
}

func perQuestionSeconds() int64 {
	if c := config.GetConfig(); c != nil && c.Assignment.PerQuestionSeconds > 0 {
		return c.Assignment.PerQuestionSeconds
	}
	return consts.DefaultPerQuestionSeconds
}

func toAssignmentInfo(a *assignment.Assignment) (*show.AssignmentInfo, error) {
	info := &show.AssignmentInfo{}
	if err := copier.Copy(info, a); err != nil {
		return nil, err
	}
	info.Id = a.ID.Hex()
	info.ClassId = a.ClassID
	info.SetId = a.SetID
	info.CreatorId = a.CreatorID
	return info, nil
}
