package class

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Class 班级, 计数字段只通过 UpdateCount 增减
type Class struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description" json:"description"`
	InviteCode      string             `bson:"invite_code" json:"inviteCode"`
	CreatorID       string             `bson:"creator_id" json:"creatorId"`
	MemberCount     int64              `bson:"member_count" json:"memberCount"`
	AssignmentCount int64              `bson:"assignment_count" json:"assignmentCount"`
	CreateTime      time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime      time.Time          `bson:"update_time" json:"updateTime"`
}

// Counter 班级上可增减的计数字段
type Counter string

const (
	MemberCounter     Counter = "member_count"
	AssignmentCounter Counter = "assignment_count"
)
