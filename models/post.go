package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Comment struct {
	UserID    primitive.ObjectID `bson:"user" json:"userId"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
	Author    *Author            `bson:"-" json:"user,omitempty"` // Populated in response only
}

type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID   `bson:"userId" json:"userId"`
	Text      string               `bson:"text" json:"text"`
	Img       string               `bson:"img,omitempty" json:"img,omitempty"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Retweets  []primitive.ObjectID `bson:"retweets" json:"retweets"`
	Comments  []Comment            `bson:"comments" json:"comments"`
	CreatedAt int64                `bson:"createdAt" json:"createdAt"`

	// RetweetData marks this post as a retweet record: it carries the id of
	// the original post and duplicates its text/img for display. A retweet
	// record is itself never retweetable.
	RetweetData *primitive.ObjectID `bson:"retweetData,omitempty" json:"retweetData,omitempty"`

	Author *Author `bson:"-" json:"user,omitempty"` // Populated in response only
}

// IsRetweet reports whether this post is a retweet record rather than an
// original post.
func (p *Post) IsRetweet() bool { return p.RetweetData != nil }

func (p *Post) LikedBy(id primitive.ObjectID) bool {
	return containsID(p.Likes, id)
}

func (p *Post) RetweetedBy(id primitive.ObjectID) bool {
	return containsID(p.Retweets, id)
}
