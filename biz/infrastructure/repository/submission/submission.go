package submission

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission 一个学生对一次作业的唯一成绩, 存在即代表已完成
type Submission struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssignmentID string             `bson:"assignment_id" json:"assignmentId"`
	StudentID    string             `bson:"student_id" json:"studentId"`
	Score        int64              `bson:"score" json:"score"`
	Total        int64              `bson:"total" json:"total"`
	Details      []*Detail          `bson:"details,omitempty" json:"details,omitempty"`
	StartTime    time.Time          `bson:"start_time" json:"startTime"`
	SubmitTime   time.Time          `bson:"submit_time" json:"submitTime"`
}

// Detail 单题作答记录, 内容由客户端决定
type Detail struct {
	Term     string `bson:"term" json:"term"`
	Expected string `bson:"expected" json:"expected"`
	Given    string `bson:"given" json:"given"`
	Correct  bool   `bson:"correct" json:"correct"`
	TimedOut bool   `bson:"timed_out" json:"timedOut"`
}
