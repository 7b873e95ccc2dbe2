package assignment

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment 限时作业, 创建后只读
type Assignment struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClassID            string             `bson:"class_id" json:"classId"`
	SetID              string             `bson:"set_id" json:"setId"`
	CreatorID          string             `bson:"creator_id" json:"creatorId"`
	Title              string             `bson:"title" json:"title"`
	Mode               string             `bson:"mode" json:"mode"` // test/learn
	Deadline           time.Time          `bson:"deadline" json:"deadline"`
	PerQuestionSeconds int64              `bson:"per_question_seconds" json:"perQuestionSeconds"`
	TotalQuestions     int64              `bson:"total_questions" json:"totalQuestions"` // 创建时的卡片数快照
	CreateTime         time.Time          `bson:"create_time" json:"createTime"`
}

// Open 截止时间之前才能提交
func (a *Assignment) Open(now time.Time) bool {
	return now.Before(a.Deadline)
}
