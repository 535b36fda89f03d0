package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// NotificationTypeLike is the only notification type emitted by the engine:
// comments, retweets and bookmarks deliberately do not notify.
const NotificationTypeLike = "like"

type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	From      primitive.ObjectID `bson:"from" json:"from"`
	To        primitive.ObjectID `bson:"to" json:"to"`
	Type      string             `bson:"type" json:"type"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`

	FromUser *Author `bson:"-" json:"fromUser,omitempty"` // Populated in response only
}
