package submission

import (
	"context"
	"errors"

	"flashcard-show/biz/infrastructure/config"
	"flashcard-show/biz/infrastructure/consts"
	"flashcard-show/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "submission"
	uniqueIndex    = "uniq_assignment_student"
)

type IMongoMapper interface {
	Insert(ctx context.Context, s *Submission) error
	FindByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string) (*Submission, error)
	FindByAssignmentID(ctx context.Context, assignmentID string, page, pageSize int64) ([]*Submission, int64, error)
}

type MongoMapper struct {
	conn *monc.Model
}

// NewMongoMapper 创建mapper并确保(assignment_id, student_id)唯一索引存在
func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewSubmissionMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	m := &MongoMapper{
		conn: conn,
	}
	if err := m.EnsureIndexes(context.Background()); err != nil {
		panic(err)
	}
	return m
}

// EnsureIndexes 建立 (assignment_id, student_id) 唯一索引
func (m *MongoMapper) EnsureIndexes(ctx context.Context) error {
	_, err := m.conn.Indexes().CreateOne(ctx, UniqueIndexModel())
	return err
}

func UniqueIndexModel() mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{
			{Key: consts.AssignmentID, Value: 1},
			{Key: consts.StudentID, Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName(uniqueIndex),
	}
}

// Insert 插入提交记录, 违反唯一约束时返回 ErrAlreadySubmitted
func (m *MongoMapper) Insert(ctx context.Context, s *Submission) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	_, err := m.conn.InsertOneNoCache(ctx, s)
	return translateInsertErr(err)
}

func translateInsertErr(err error) error {
	switch {
	case err == nil:
		return nil
	case mongo.IsDuplicateKeyError(err):
		return consts.ErrAlreadySubmitted
	default:
		return err
	}
}

func (m *MongoMapper) FindByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string) (*Submission, error) {
	var s Submission
	filter := bson.M{
		consts.AssignmentID: assignmentID,
		consts.StudentID:    studentID,
	}

	err := m.conn.FindOneNoCache(ctx, &s, filter)
	switch {
	case err == nil:
		return &s, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindByAssignmentID(ctx context.Context, assignmentID string, page, pageSize int64) ([]*Submission, int64, error) {
	var submissions []*Submission
	filter := bson.M{consts.AssignmentID: assignmentID}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := (page - 1) * pageSize
	err = m.conn.Find(ctx, &submissions, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &pageSize,
		Sort:  bson.M{consts.SubmitTime: -1},
	})
	if err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}
