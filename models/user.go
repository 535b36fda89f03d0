package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username   string               `bson:"username" json:"username"`
	FullName   string               `bson:"fullName" json:"fullName"`
	Email      string               `bson:"email" json:"email"`
	Password   string               `bson:"password" json:"-"`
	Followers  []primitive.ObjectID `bson:"followers" json:"followers"`
	Following  []primitive.ObjectID `bson:"following" json:"following"`
	ProfileImg string               `bson:"profileImg" json:"profileImg"`
	CoverImg   string               `bson:"coverImg" json:"coverImg"`
	Bio        string               `bson:"bio" json:"bio"`
	Link       string               `bson:"link" json:"link"`
	LikedPosts []primitive.ObjectID `bson:"likedPosts" json:"likedPosts"`
	Bookmarks  []primitive.ObjectID `bson:"bookmarks" json:"bookmarks"`
	CreatedAt  int64                `bson:"createdAt" json:"createdAt"`
}

// Author is the public projection of a user attached to posts, comments and
// notifications in responses. The password hash is never part of it; Email
// and Bio are additionally cleared for comment authors on the full feed.
type Author struct {
	ID         primitive.ObjectID `json:"id"`
	Username   string             `json:"username"`
	FullName   string             `json:"fullName"`
	ProfileImg string             `json:"profileImg"`
	Email      string             `json:"email,omitempty"`
	Bio        string             `json:"bio,omitempty"`
}

func (u *User) IsFollowing(id primitive.ObjectID) bool {
	return containsID(u.Following, id)
}

func (u *User) HasBookmarked(postID primitive.ObjectID) bool {
	return containsID(u.Bookmarks, postID)
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
