package show

import (
	"time"

	"flashcard-show/biz/application/dto/basic"
)

type CreateAssignmentReq struct {
	ClassId            string    `json:"classId" vd:"len($)>0"`
	SetId              string    `json:"setId" vd:"len($)>0"`
	Title              string    `json:"title"`
	Mode               string    `json:"mode" vd:"$=='test'||$=='learn'"`
	Deadline           time.Time `json:"deadline"`
	PerQuestionSeconds *int64    `json:"perQuestionSeconds,omitempty"`
}

type CreateAssignmentResp struct {
	AssignmentId   string `json:"assignmentId"`
	TotalQuestions int64  `json:"totalQuestions"`
}

type GetAssignmentReq struct {
	AssignmentId string `path:"id" json:"-"`
}

type AssignmentInfo struct {
	Id                 string    `json:"id"`
	ClassId            string    `json:"classId"`
	SetId              string    `json:"setId"`
	CreatorId          string    `json:"creatorId"`
	Title              string    `json:"title"`
	Mode               string    `json:"mode"`
	Deadline           time.Time `json:"deadline"`
	PerQuestionSeconds int64     `json:"perQuestionSeconds"`
	TotalQuestions     int64     `json:"totalQuestions"`
	CreateTime         time.Time `json:"createTime"`
}

// GetAssignmentResp 附带服务端时间, 客户端据此判断是否已截止
type GetAssignmentResp struct {
	Assignment *AssignmentInfo `json:"assignment"`
	Set        *SetInfo        `json:"set"`
	ServerTime time.Time       `json:"serverTime"`
}

type DeleteAssignmentReq struct {
	AssignmentId string `path:"id" json:"-"`
}

type GetSubmissionReq struct {
	AssignmentId string `path:"id" json:"-"`
	StudentId    string `path:"studentId" json:"-"`
}

type GetSubmissionResp struct {
	Submitted   bool       `json:"submitted"`
	Score       *int64     `json:"score,omitempty"`
	Total       *int64     `json:"total,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}

type Detail struct {
	Term     string `json:"term"`
	Expected string `json:"expected"`
	Given    string `json:"given"`
	Correct  bool   `json:"correct"`
	TimedOut bool   `json:"timedOut"`
}

type SubmitAssignmentReq struct {
	AssignmentId string    `path:"id" json:"-"`
	StudentId    string    `json:"studentId" vd:"len($)>0"`
	Score        int64     `json:"score"`
	Total        int64     `json:"total"`
	Details      []*Detail `json:"details,omitempty"`
}

type SubmitAssignmentResp struct {
	Submitted bool  `json:"submitted"`
	Score     int64 `json:"score"`
	Total     int64 `json:"total"`
}

type ListAssignmentsReq struct {
	ClassId           string                   `path:"id" json:"-"`
	PaginationOptions *basic.PaginationOptions `json:"paginationOptions,omitempty"`
}

type ListAssignmentsResp struct {
	Assignments []*AssignmentInfo `json:"assignments"`
	Total       int64             `json:"total"`
}

type ListSubmissionsReq struct {
	AssignmentId      string                   `path:"id" json:"-"`
	PaginationOptions *basic.PaginationOptions `json:"paginationOptions,omitempty"`
}

type SubmissionInfo struct {
	Id         string    `json:"id"`
	StudentId  string    `json:"studentId"`
	Score      int64     `json:"score"`
	Total      int64     `json:"total"`
	Details    []*Detail `json:"details,omitempty"`
	SubmitTime time.Time `json:"submitTime"`
}

type ListSubmissionsResp struct {
	Submissions []*SubmissionInfo `json:"submissions"`
	Total       int64             `json:"total"`
	Pending     int64             `json:"pending"` // 班级中尚未提交的学生数
}
