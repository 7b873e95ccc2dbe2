package flashcard

import (
	"context"
	"errors"
	"regexp"
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
	prefixSetCacheKey = "cache:flashcard_set"
	CollectionName    = "flashcard_set"
)

type IMongoMapper interface {
	Insert(ctx context.Context, s *Set) error
	Update(ctx context.Context, s *Set) error
	FindOne(ctx context.Context, id string) (*Set, error)
	FindByOwner(ctx context.Context, ownerID string, page, pageSize int64) ([]*Set, int64, error)
	FindCardsByTerm(ctx context.Context, ownerID, term string, limit int64) ([]*Card, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewFlashcardSetMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, s *Set) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
		s.CreateTime = time.Now()
		s.UpdateTime = s.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, s)
	return err
}

func (m *MongoMapper) Update(ctx context.Context, s *Set) error {
	s.UpdateTime = time.Now()
	_, err := m.conn.UpdateByID(ctx, prefixSetCacheKey+":"+s.ID.Hex(), s.ID, bson.M{"$set": s})
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Set, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var s Set
	err = m.conn.FindOne(ctx, prefixSetCacheKey+":"+id, &s, bson.M{
		consts.ID: oid,
	})
	switch {
	case err == nil:
		return &s, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindByOwner(ctx context.Context, ownerID string, page, pageSize int64) ([]*Set, int64, error) {
	var sets []*Set
	filter := bson.M{consts.OwnerID: ownerID}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := (page - 1) * pageSize
	err = m.conn.Find(ctx, &sets, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &pageSize,
		Sort:  bson.M{"update_time": -1},
	})
	if err != nil {
		return nil, 0, err
	}

	return sets, total, nil
}

// FindCardsByTerm 在用户自己的卡组里按词条前缀查卡片, 供联想降级使用
func (m *MongoMapper) FindCardsByTerm(ctx context.Context, ownerID, term string, limit int64) ([]*Card, error) {
	var sets []*Set
	pattern := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(term), Options: "i"}
	err := m.conn.Find(ctx, &sets, bson.M{
		consts.OwnerID: ownerID,
		"cards.term":   pattern,
	}, &options.FindOptions{
		Limit: &limit,
		Sort:  bson.M{"update_time": -1},
	})
	if err != nil {
		return nil, err
	}
	return MatchCards(sets, term, int(limit)), nil
}
