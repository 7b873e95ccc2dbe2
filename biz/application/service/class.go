package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"net/url"

	"flashcard-show/biz/adaptor"
	"flashcard-show/biz/application/dto/flashcard/show"
	"flashcard-show/biz/infrastructure/config"
	"flashcard-show/biz/infrastructure/consts"
	"flashcard-show/biz/infrastructure/repository/class"
	"flashcard-show/biz/infrastructure/util/log"
	"flashcard-show/biz/infrastructure/util/page"

	"github.com/google/wire"
	"github.com/samber/lo"
)

type IClassService interface {
	CreateClass(ctx context.Context, req *show.CreateClassReq) (*show.CreateClassResp, error)
	ListClasses(ctx context.Context, req *show.ListClassesReq) (*show.ListClassesResp, error)
	JoinClass(ctx context.Context, req *show.JoinClassReq) (*show.JoinClassResp, error)
	GetClassMembers(ctx context.Context, req *show.GetClassMembersReq) (*show.GetClassMembersResp, error)
}

type ClassService struct {
	ClassMapper  class.IMongoMapper
	MemberMapper class.IMemberMongoMapper
}

var ClassServiceSet = wire.NewSet(
	wire.Struct(new(ClassService), "*"),
	wire.Bind(new(IClassService), new(*ClassService)),
)

// CreateClass 创建班级
func (s *ClassService) CreateClass(ctx context.Context, req *show.CreateClassReq) (*show.CreateClassResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	if userMeta.GetRole() != consts.RoleTeacher {
		return nil, consts.ErrNotTeacher
	}

	inviteCode := generateInviteCode()

	now := timeNow()
	c := &class.Class{
		Name:        req.Name,
		Description: req.Description,
		InviteCode:  inviteCode,
		CreatorID:   userMeta.GetUserId(),
		MemberCount: 1, // 创建者自动成为成员
		CreateTime:  now,
		UpdateTime:  now,
	}
	if err := s.ClassMapper.Insert(ctx, c); err != nil {
		log.CtxError(ctx, "创建班级失败: %v", err)
		return nil, consts.ErrCreateClass
	}

	member := &class.Member{
		ClassID:    c.ID.Hex(),
		UserID:     userMeta.GetUserId(),
		Role:       consts.RoleTeacher,
		JoinTime:   now,
		CreateTime: now,
	}
	if err := s.MemberMapper.Insert(ctx, member); err != nil {
		// 班级已创建, 只记录错误
		log.CtxError(ctx, "添加班级成员失败: %v", err)
	}

	return &show.CreateClassResp{
		ClassId:    c.ID.Hex(),
		InviteCode: inviteCode,
		InviteUrl:  inviteURL(inviteCode),
	}, nil
}

// ListClasses 老师看自己创建的班级, 学生看加入的班级
func (s *ClassService) ListClasses(ctx context.Context, req *show.ListClassesReq) (*show.ListClassesResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	if userMeta.GetRole() == consts.RoleTeacher {
		p, size := page.ParsePageOpt(req.PaginationOptions)
		classes, total, err := s.ClassMapper.FindByCreator(ctx, userMeta.GetUserId(), p, size)
		if err != nil {
			log.CtxError(ctx, "获取班级列表失败: %v", err)
			return nil, consts.ErrGetClassList
		}
		infos := make([]*show.ClassInfo, 0, len(classes))
		for _, c := range classes {
			infos = append(infos, toClassInfo(c, true))
		}
		return &show.ListClassesResp{
			Classes: infos,
			Total:   total,
		}, nil
	}

	members, total, err := s.MemberMapper.FindByUserID(ctx, userMeta.GetUserId())
	if err != nil {
		log.CtxError(ctx, "获取学生班级失败: %v", err)
		return nil, consts.ErrGetClassList
	}
	classes, err := s.ClassMapper.FindByIDs(ctx, lo.Map(members, func(m *class.Member, _ int) string {
		return m.ClassID
	}))
	if err != nil {
		log.CtxError(ctx, "获取班级信息失败: %v", err)
		return nil, consts.ErrGetClassList
	}
	infos := lo.Map(classes, func(c *class.Class, _ int) *show.ClassInfo {
		return toClassInfo(c, false)
	})
	return &show.ListClassesResp{
		Classes: infos,
		Total:   total,
	}, nil
}

// JoinClass 通过邀请码加入班级, 重复加入直接返回
func (s *ClassService) JoinClass(ctx context.Context, req *show.JoinClassReq) (*show.JoinClassResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	userID := meta.GetUserId()

	c, err := s.ClassMapper.FindOneByInviteCode(ctx, req.InviteCode)
	if err != nil {
		log.CtxError(ctx, "班级不存在: %v", err)
		return nil, consts.ErrNotFound
	}

	existing, err := s.MemberMapper.FindByClassIDAndUserID(ctx, c.ID.Hex(), userID)
	if err == nil && existing != nil {
		return &show.JoinClassResp{
			ClassId:   c.ID.Hex(),
			ClassName: c.Name,
		}, nil
	}

	now := timeNow()
	member := &class.Member{
		ClassID:    c.ID.Hex(),
		UserID:     userID,
		Role:       consts.RoleStudent,
		JoinTime:   now,
		CreateTime: now,
	}
	if err = s.MemberMapper.Insert(ctx, member); err != nil {
		log.CtxError(ctx, "加入班级失败: %v", err)
		return nil, consts.ErrJoinClass
	}

	if err = s.ClassMapper.UpdateCount(ctx, c.ID.Hex(), class.MemberCounter, 1); err != nil {
		// 不影响主流程
		log.CtxError(ctx, "更新班级成员数量失败: %v", err)
	}

	return &show.JoinClassResp{
		ClassId:   c.ID.Hex(),
		ClassName: c.Name,
	}, nil
}

// GetClassMembers 班级成员可见
func (s *ClassService) GetClassMembers(ctx context.Context, req *show.GetClassMembersReq) (*show.GetClassMembersResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	if _, err := checkClassAccess(ctx, s.ClassMapper, s.MemberMapper, req.ClassId, meta.GetUserId()); err != nil {
		return nil, err
	}

	p, size := page.ParsePageOpt(req.PaginationOptions)
	members, total, err := s.MemberMapper.FindByClassID(ctx, req.ClassId, p, size)
	if err != nil {
		log.CtxError(ctx, "获取班级成员失败: %v", err)
		return nil, consts.ErrGetClassMembers
	}

	infos := make([]*show.ClassMemberInfo, 0, len(members))
	for _, m := range members {
		infos = append(infos, &show.ClassMemberInfo{
			Id:       m.ID.Hex(),
			UserId:   m.UserID,
			Role:     m.Role,
			JoinTime: m.JoinTime.Unix(),
		})
	}
	return &show.GetClassMembersResp{
		Members: infos,
		Total:   total,
	}, nil
}

// checkClassAccess 创建者或成员才能访问班级
func checkClassAccess(ctx context.Context, classMapper class.IMongoMapper, memberMapper class.IMemberMongoMapper, classID, userID string) (*class.Class, error) {
	c, err := classMapper.FindOne(ctx, classID)
	if err != nil {
		log.CtxError(ctx, "获取班级失败: %v", err)
		return nil, consts.ErrNotFound
	}
	if c.CreatorID == userID {
		return c, nil
	}
	if m, err := memberMapper.FindByClassIDAndUserID(ctx, classID, userID); err != nil || m == nil {
		return nil, consts.ErrNotClassMember
	}
	return c, nil
}

func toClassInfo(c *class.Class, withInviteCode bool) *show.ClassInfo {
	info := &show.ClassInfo{
		Id:              c.ID.Hex(),
		Name:            c.Name,
		Description:     c.Description,
		MemberCount:     c.MemberCount,
		AssignmentCount: c.AssignmentCount,
		CreatorId:       c.CreatorID,
		CreateTime:      c.CreateTime.Unix(),
	}
	if withInviteCode {
		info.InviteCode = c.InviteCode
	}
	return info
}

func inviteURL(code string) string {
	base := ""
	if c := config.GetConfig(); c != nil {
		base = c.Api.ClassJoinURL
	}
	return base + "?invite_code=" + url.QueryEscape(code)
}

// generateInviteCode 生成邀请码
func generateInviteCode() string {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	code := make([]byte, consts.InviteCodeLength)
	for i := range code {
		randomIndex, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		code[i] = charset[randomIndex.Int64()]
	}
	return string(code)
}
