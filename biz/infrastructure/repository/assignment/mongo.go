package assignment

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	prefixAssignmentCacheKey = "cache:assignment"
	CollectionName           = "assignment"
)

type IMongoMapper interface {
	Insert(ctx context.Context, a *Assignment) error
	FindOne(ctx context.Context, id string) (*Assignment, error)
	FindByClassID(ctx context.Context, classID string, page, pageSize int64) ([]*Assignment, int64, error)
	Delete(ctx context.Context, id string) error
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewAssignmentMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, a *Assignment) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
		a.CreateTime = time.Now()
	}
	_, err := m.conn.InsertOneNoCache(ctx, a)
	return err
}

// FindOne 作业创建后不再修改, 可以走缓存
func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Assignment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var a Assignment
	err = m.conn.FindOne(ctx, prefixAssignmentCacheKey+":"+id, &a, bson.M{
		consts.ID: oid,
	})
	switch {
	case err == nil:
		return &a, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindByClassID(ctx context.Context, classID string, page, pageSize int64) ([]*Assignment, int64, error) {
	var assignments []*Assignment
	filter := bson.M{consts.ClassID: classID}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := (page - 1) * pageSize
	err = m.conn.Find(ctx, &assignments, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &pageSize,
		Sort:  bson.M{"deadline": -1},
	})
	if err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

func (m *MongoMapper) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.DeleteOne(ctx, prefixAssignmentCacheKey+":"+id, bson.M{consts.ID: oid})
	return err
}
