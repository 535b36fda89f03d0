package engine

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"twyster/media"
	"twyster/models"
	"twyster/store"
)

// CreatePost stores a new post for author. At least one of text and img is
// required; a provided image is uploaded through the media store and
// replaced by its durable URL before the post is written.
func (e *Engine) CreatePost(ctx context.Context, authorID primitive.ObjectID, text, img string) (*models.Post, error) {
	if _, err := e.store.Users.FindByID(ctx, authorID); err != nil {
		return nil, userErr(err)
	}
	if text == "" && img == "" {
		return nil, fmt.Errorf("%w: post must have text or image", ErrInvalidArgument)
	}

	if img != "" {
		url, err := e.media.Upload(ctx, img)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		img = url
	}

	post := &models.Post{
		ID:        primitive.NewObjectID(),
		UserID:    authorID,
		Text:      text,
		Img:       img,
		Likes:     []primitive.ObjectID{},
		Retweets:  []primitive.ObjectID{},
		Comments:  []models.Comment{},
		CreatedAt: e.now(),
	}
	if err := e.store.Posts.Insert(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post owned by requester. Deleting a retweet record
// also pulls the retweeter from the original post's retweets set; deleting
// an original post leaves its outstanding retweet records in place. A hosted
// image is destroyed best-effort.
func (e *Engine) DeletePost(ctx context.Context, requesterID, postID primitive.ObjectID) error {
	post, err := e.store.Posts.FindByID(ctx, postID)
	if err != nil {
		return postErr(err)
	}
	if post.UserID != requesterID {
		return fmt.Errorf("%w: not the post owner", ErrForbidden)
	}

	if post.IsRetweet() {
		// The original may be gone already; the pull is then a no-op.
		if err := e.store.Posts.RemoveRetweeter(ctx, *post.RetweetData, requesterID); err != nil {
			return err
		}
	}

	if post.Img != "" {
		// The post record is authoritative; a leaked asset is acceptable.
		if err := e.media.Destroy(ctx, media.AssetID(post.Img)); err != nil {
			log.Printf("[DeletePost] failed to destroy image asset %s: %v", media.AssetID(post.Img), err)
		}
	}

	return e.store.Posts.Delete(ctx, postID)
}

// CommentOnPost appends a comment to the post's comment sequence. Comments
// never reorder and never notify.
func (e *Engine) CommentOnPost(ctx context.Context, commenterID, postID primitive.ObjectID, text string) (*models.Post, error) {
	post, err := e.store.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, postErr(err)
	}
	if text == "" {
		return nil, fmt.Errorf("%w: comment must have text", ErrInvalidArgument)
	}

	comment := models.Comment{
		UserID:    commenterID,
		Text:      text,
		CreatedAt: e.now(),
	}
	if err := e.store.Posts.AppendComment(ctx, post.ID, comment); err != nil {
		return nil, err
	}
	return e.store.Posts.FindByID(ctx, postID)
}

// ToggleLike flips the (user, post) like state. Liking pushes the user into
// the post's likes, the post into the user's likedPosts and writes a like
// notification to the author; unliking reverses all three. A self-like is
// allowed and notifies the liker themselves.
func (e *Engine) ToggleLike(ctx context.Context, userID, postID primitive.ObjectID) (*models.Post, error) {
	post, err := e.store.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, postErr(err)
	}

	if post.LikedBy(userID) {
		if err := e.store.Posts.RemoveLike(ctx, postID, userID); err != nil {
			return nil, err
		}
		if err := e.store.Users.RemoveLikedPost(ctx, userID, postID); err != nil {
			return nil, err
		}
		if err := e.store.Notifications.DeleteLike(ctx, userID, post.UserID); err != nil {
			return nil, err
		}
	} else {
		if err := e.store.Posts.AddLike(ctx, postID, userID); err != nil {
			return nil, err
		}
		if err := e.store.Users.AddLikedPost(ctx, userID, postID); err != nil {
			return nil, err
		}
		notification := &models.Notification{
			ID:        primitive.NewObjectID(),
			From:      userID,
			To:        post.UserID,
			Type:      models.NotificationTypeLike,
			CreatedAt: e.now(),
		}
		if err := e.store.Notifications.Insert(ctx, notification); err != nil {
			return nil, err
		}
	}

	return e.store.Posts.FindByID(ctx, postID)
}

// ToggleBookmark flips postID's membership in the user's bookmarks and
// reports the resulting state. Bookmarks never notify.
func (e *Engine) ToggleBookmark(ctx context.Context, userID, postID primitive.ObjectID) (bool, *models.Post, error) {
	user, err := e.store.Users.FindByID(ctx, userID)
	if err != nil {
		return false, nil, userErr(err)
	}
	post, err := e.store.Posts.FindByID(ctx, postID)
	if err != nil {
		return false, nil, postErr(err)
	}

	if user.HasBookmarked(postID) {
		if err := e.store.Users.RemoveBookmark(ctx, userID, postID); err != nil {
			return false, nil, err
		}
		return false, post, nil
	}
	if err := e.store.Users.AddBookmark(ctx, userID, postID); err != nil {
		return false, nil, err
	}
	return true, post, nil
}

// RetweetPost re-shares another user's post: the retweeter is appended to
// the original's retweets set and a retweet record is inserted under the
// retweeter's authorship, copying the original's text and image as of now.
// A retweet record cannot be retweeted, and a user retweets a post at most
// once.
func (e *Engine) RetweetPost(ctx context.Context, retweeterID, postID primitive.ObjectID) (*models.Post, error) {
	post, err := e.store.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, postErr(err)
	}
	if post.IsRetweet() {
		return nil, ErrAlreadyRetweetedPost
	}
	if post.RetweetedBy(retweeterID) {
		return nil, ErrAlreadyRetweetedByUser
	}

	if err := e.store.Posts.AddRetweeter(ctx, postID, retweeterID); err != nil {
		return nil, err
	}

	record := &models.Post{
		ID:          primitive.NewObjectID(),
		UserID:      retweeterID,
		Text:        post.Text,
		Img:         post.Img,
		Likes:       []primitive.ObjectID{},
		Retweets:    []primitive.ObjectID{},
		Comments:    []models.Comment{},
		RetweetData: &postID,
		CreatedAt:   e.now(),
	}
	if err := e.store.Posts.Insert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func postErr(err error) error {
	if err == store.ErrNotFound {
		return fmt.Errorf("%w: post", ErrNotFound)
	}
	return err
}

func userErr(err error) error {
	if err == store.ErrNotFound {
		return fmt.Errorf("%w: user", ErrNotFound)
	}
	return err
}
