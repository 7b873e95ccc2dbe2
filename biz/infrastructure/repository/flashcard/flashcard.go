package flashcard

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Set struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     string             `bson:"owner_id" json:"ownerId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Cards       []*Card            `bson:"cards" json:"cards"`
	CreateTime  time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime  time.Time          `bson:"update_time" json:"updateTime"`
}

type Card struct {
	Term       string  `bson:"term" json:"term"`
	Definition string  `bson:"definition" json:"definition"`
	Image      *string `bson:"image,omitempty" json:"image,omitempty"` // 对象存储key或完整url
}
