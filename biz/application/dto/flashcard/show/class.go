package show

import "flashcard-show/biz/application/dto/basic"

type CreateClassReq struct {
	Name        string `json:"name" vd:"len($)>0"`
	Description string `json:"description"`
}

type CreateClassResp struct {
	ClassId    string `json:"classId"`
	InviteCode string `json:"inviteCode"`
	InviteUrl  string `json:"inviteUrl"`
}

type ListClassesReq struct {
	PaginationOptions *basic.PaginationOptions `json:"paginationOptions,omitempty"`
}

type ClassInfo struct {
	Id              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	InviteCode      string `json:"inviteCode,omitempty"`
	MemberCount     int64  `json:"memberCount"`
	AssignmentCount int64  `json:"assignmentCount"`
	CreatorId       string `json:"creatorId"`
	CreateTime      int64  `json:"createTime"`
}

type ListClassesResp struct {
	Classes []*ClassInfo `json:"classes"`
	Total   int64        `json:"total"`
}

type JoinClassReq struct {
	InviteCode string `json:"inviteCode" vd:"len($)>0"`
}

type JoinClassResp struct {
	ClassId   string `json:"classId"`
	ClassName string `json:"className"`
}

type GetClassMembersReq struct {
	ClassId           string                   `path:"id" json:"-"`
	PaginationOptions *basic.PaginationOptions `json:"paginationOptions,omitempty"`
}

type ClassMemberInfo struct {
	Id       string `json:"id"`
	UserId   string `json:"userId"`
	Role     string `json:"role"`
	JoinTime int64  `json:"joinTime"`
}

type GetClassMembersResp struct {
	Members []*ClassMemberInfo `json:"members"`
	Total   int64              `json:"total"`
}
