package notification

import (
	"context"
	"time"

	"flashcard-show/biz/infrastructure/config"
	"flashcard-show/biz/infrastructure/consts"
	"flashcard-show/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "notification"

type IMongoMapper interface {
	Insert(ctx context.Context, n *Notification) error
	FindByRecipient(ctx context.Context, recipient string, unreadOnly bool, page, pageSize int64) ([]*Notification, int64, error)
	MarkRead(ctx context.Context, id, recipient string) error
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewNotificationMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, n *Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	_, err := m.conn.InsertOneNoCache(ctx, n)
	return err
}

func (m *MongoMapper) FindByRecipient(ctx context.Context, recipient string, unreadOnly bool, page, pageSize int64) ([]*Notification, int64, error) {
	var ns []*Notification
	filter := bson.M{consts.Recipient: recipient}
	if unreadOnly {
		filter["read"] = false
	}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := (page - 1) * pageSize
	err = m.conn.Find(ctx, &ns, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &pageSize,
		Sort:  bson.M{consts.Timestamp: -1},
	})
	if err != nil {
		return nil, 0, err
	}
	return ns, total, nil
}

// MarkRead 只能标记自己的通知
func (m *MongoMapper) MarkRead(ctx context.Context, id, recipient string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	res, err := m.conn.UpdateOneNoCache(ctx, bson.M{
		consts.ID:        oid,
		consts.Recipient: recipient,
	}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return consts.ErrNotFound
	}
	return nil
}
