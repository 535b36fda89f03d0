// Package store holds the persistence contracts for the users, posts and
// notifications collections, with a MongoDB implementation for production
// and an in-memory implementation for tests and local runs.
//
// Field-level update operations (push/pull/set on a single document) follow
// the semantics of the underlying document store: each call is atomic at
// single-document granularity, and updating a document that no longer exists
// is not an error. Lookups return ErrNotFound for missing documents.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"twyster/models"
)

var ErrNotFound = errors.New("store: not found")

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)

	// Suggestions returns up to limit users whose id is not in exclude.
	Suggestions(ctx context.Context, exclude []primitive.ObjectID, limit int) ([]models.User, error)

	Insert(ctx context.Context, u *models.User) error
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error

	AddLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error
	RemoveLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error
	AddBookmark(ctx context.Context, userID, postID primitive.ObjectID) error
	RemoveBookmark(ctx context.Context, userID, postID primitive.ObjectID) error

	// Follow pushes targetID into userID's following set and userID into
	// targetID's followers set; Unfollow pulls both. Two single-document
	// updates, not a transaction.
	Follow(ctx context.Context, userID, targetID primitive.ObjectID) error
	Unfollow(ctx context.Context, userID, targetID primitive.ObjectID) error
}

// ProfileUpdate lists the profile fields a user may change. Empty strings
// mean "leave unchanged".
type ProfileUpdate struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	Bio        string
	Link       string
	ProfileImg string
	CoverImg   string
}

type PostStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Insert(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// All returns every post, newest first.
	All(ctx context.Context) ([]models.Post, error)
	// ByAuthor returns a user's posts, newest first.
	ByAuthor(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error)
	// ByAuthors returns posts authored by any of the given users, newest first.
	ByAuthors(ctx context.Context, userIDs []primitive.ObjectID) ([]models.Post, error)
	// ByIDs returns the posts with the given ids in storage order.
	ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error)

	AppendComment(ctx context.Context, postID primitive.ObjectID, c models.Comment) error
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error
	AddRetweeter(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveRetweeter(ctx context.Context, postID, userID primitive.ObjectID) error
}

type NotificationStore interface {
	Insert(ctx context.Context, n *models.Notification) error
	// DeleteLike removes one like notification from->to if any exists.
	DeleteLike(ctx context.Context, from, to primitive.ObjectID) error
	ListForUser(ctx context.Context, to primitive.ObjectID) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, to primitive.ObjectID) error
	DeleteForUser(ctx context.Context, to primitive.ObjectID) error
}

// Store bundles the three collections the engine operates on.
type Store struct {
	Users         UserStore
	Posts         PostStore
	Notifications NotificationStore
}
