package engine

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"twyster/models"
)

// Read-side feed assembly. Every listing returns an empty slice rather than
// an error when nothing matches, and every listing attaches redacted author
// projections: the password hash is never exposed, and on the full feed
// comment authors additionally lose email and bio.

// ListAll returns every post, newest first.
func (e *Engine) ListAll(ctx context.Context) ([]models.Post, error) {
	posts, err := e.store.Posts.All(ctx)
	if err != nil {
		return nil, err
	}
	return e.attachAuthors(ctx, posts, true)
}

// ListFollowingFeed returns posts authored by users the given user follows,
// newest first. Following nobody yields an empty feed.
func (e *Engine) ListFollowingFeed(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	user, err := e.store.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, userErr(err)
	}
	if len(user.Following) == 0 {
		return []models.Post{}, nil
	}
	posts, err := e.store.Posts.ByAuthors(ctx, user.Following)
	if err != nil {
		return nil, err
	}
	return e.attachAuthors(ctx, posts, false)
}

// ListUserTimeline returns the posts authored by the named user, newest
// first.
func (e *Engine) ListUserTimeline(ctx context.Context, username string) ([]models.Post, error) {
	user, err := e.store.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, userErr(err)
	}
	posts, err := e.store.Posts.ByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return e.attachAuthors(ctx, posts, false)
}

// ListLiked returns the posts in the user's likedPosts set, in storage
// order.
func (e *Engine) ListLiked(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	user, err := e.store.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, userErr(err)
	}
	posts, err := e.store.Posts.ByIDs(ctx, user.LikedPosts)
	if err != nil {
		return nil, err
	}
	return e.attachAuthors(ctx, posts, false)
}

// ListBookmarked returns the posts in the user's bookmarks set.
func (e *Engine) ListBookmarked(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	user, err := e.store.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, userErr(err)
	}
	posts, err := e.store.Posts.ByIDs(ctx, user.Bookmarks)
	if err != nil {
		return nil, err
	}
	return e.attachAuthors(ctx, posts, false)
}

// attachAuthors resolves post and comment authors in one batched lookup and
// attaches their public projections. With redactCommenters set, comment
// authors lose email and bio as well.
func (e *Engine) attachAuthors(ctx context.Context, posts []models.Post, redactCommenters bool) ([]models.Post, error) {
	idSet := map[primitive.ObjectID]bool{}
	for _, p := range posts {
		idSet[p.UserID] = true
		for _, c := range p.Comments {
			idSet[c.UserID] = true
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := e.store.Users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	authors := map[primitive.ObjectID]*models.Author{}
	for i := range users {
		u := &users[i]
		authors[u.ID] = &models.Author{
			ID:         u.ID,
			Username:   u.Username,
			FullName:   u.FullName,
			ProfileImg: u.ProfileImg,
			Email:      u.Email,
			Bio:        u.Bio,
		}
	}

	for i := range posts {
		posts[i].Author = authors[posts[i].UserID]
		for j := range posts[i].Comments {
			author := authors[posts[i].Comments[j].UserID]
			if author != nil && redactCommenters {
				redacted := *author
				redacted.Email = ""
				redacted.Bio = ""
				author = &redacted
			}
			posts[i].Comments[j].Author = author
		}
	}
	return posts, nil
}
