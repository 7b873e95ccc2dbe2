package class

import (
	"context"
	"errors"
	"time"

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
	MemberCollectionName = "class_member"
)

type IMemberMongoMapper interface {
	Insert(ctx context.Context, member *Member) error
	FindByClassID(ctx context.Context, classID string, page, pageSize int64) ([]*Member, int64, error)
	FindByUserID(ctx context.Context, userID string) ([]*Member, int64, error)
	FindByClassIDAndUserID(ctx context.Context, classID, userID string) (*Member, error)
}

type MemberMongoMapper struct {
	conn *monc.Model
}

func NewMemberMongoMapper(config *config.Config) *MemberMongoMapper {
	log.Info("NewMemberMongoMapper collection: %s", MemberCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, MemberCollectionName, config.Cache)
	_, err := conn.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: consts.ClassID, Value: 1}, {Key: consts.UserID, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Error("create class_member index fail: %v", err)
	}
	return &MemberMongoMapper{
		conn: conn,
	}
}

// Insert 同一用户重复加入由唯一索引拦截
func (m *MemberMongoMapper) Insert(ctx context.Context, member *Member) error {
	if member.ID.IsZero() {
		member.ID = primitive.NewObjectID()
		member.CreateTime = time.Now()
	}
	_, err := m.conn.InsertOneNoCache(ctx, member)
	return err
}

func (m *MemberMongoMapper) FindByClassID(ctx context.Context, classID string, page, pageSize int64) ([]*Member, int64, error) {
	var members []*Member
	filter := bson.M{consts.ClassID: classID}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := (page - 1) * pageSize
	err = m.conn.Find(ctx, &members, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &pageSize,
		Sort:  bson.M{"join_time": -1},
	})
	if err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (m *MemberMongoMapper) FindByUserID(ctx context.Context, userID string) ([]*Member, int64, error) {
	var members []*Member
	filter := bson.M{consts.UserID: userID}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	err = m.conn.Find(ctx, &members, filter, &options.FindOptions{
		Sort: bson.M{"join_time": -1},
	})
	if err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (m *MemberMongoMapper) FindByClassIDAndUserID(ctx context.Context, classID, userID string) (*Member, error) {
	var member Member
	filter := bson.M{
		consts.ClassID: classID,
		consts.UserID:  userID,
	}

	err := m.conn.FindOneNoCache(ctx, &member, filter)
	switch {
	case err == nil:
		return &member, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}
