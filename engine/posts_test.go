package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"twyster/models"
)

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("requires text or image", func(t *testing.T) {
		e, st, _ := newTestEngine(t)
		a := seedUser(t, st, "alice")

		_, err := e.CreatePost(ctx, a.ID, "", "")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("text only", func(t *testing.T) {
		e, st, m := newTestEngine(t)
		a := seedUser(t, st, "alice")

		post, err := e.CreatePost(ctx, a.ID, "hello", "")
		require.NoError(t, err)
		assert.Equal(t, a.ID, post.UserID)
		assert.Equal(t, "hello", post.Text)
		assert.Empty(t, post.Likes)
		assert.Empty(t, post.Retweets)
		assert.False(t, post.IsRetweet())
		assert.Empty(t, m.uploads, "no media upload for a text post")

		stored, err := st.Posts.FindByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello", stored.Text)
	})

	t.Run("image is replaced by its hosted URL", func(t *testing.T) {
		e, st, m := newTestEngine(t)
		a := seedUser(t, st, "alice")

		post, err := e.CreatePost(ctx, a.ID, "", "data:image/png;base64,xyz")
		require.NoError(t, err)
		assert.Equal(t, []string{"data:image/png;base64,xyz"}, m.uploads)
		assert.Equal(t, "https://img.example.com/v1/asset1.png", post.Img)

		stored, err := st.Posts.FindByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.Img, stored.Img)
	})

	t.Run("unknown author", func(t *testing.T) {
		e, _, _ := newTestEngine(t)
		_, err := e.CreatePost(ctx, primitive.NewObjectID(), "hello", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestToggleLikeInvolution(t *testing.T) {
	ctx := context.Background()
	e, st, _ := newTestEngine(t)
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	post, err := e.CreatePost(ctx, alice.ID, "hello", "")
	require.NoError(t, err)

	// Like.
	liked, err := e.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{bob.ID}, liked.Likes)

	bobAfter, err := st.Users.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{post.ID}, bobAfter.LikedPosts)

	notifications, err := st.Notifications.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, bob.ID, notifications[0].From)
	assert.Equal(t, alice.ID, notifications[0].To)
	assert.Equal(t, models.NotificationTypeLike, notifications[0].Type)

	// Unlike restores everything.
	unliked, err := e.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)

	bobAfter, err = st.Users.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobAfter.LikedPosts)

	notifications, err = st.Notifications.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestToggleLikeSelfLikeNotifies(t *testing.T) {
	ctx := context.Background()
	e, st, _ := newTestEngine(t)
	alice := seedUser(t, st, "alice")

	post, err := e.CreatePost(ctx, alice.ID, "hello", "")
	require.NoError(t, err)

	_, err = e.ToggleLike(ctx, alice.ID, post.ID)
	require.NoError(t, err)

	notifications, err := st.Notifications.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, alice.ID, notifications[0].From)
	assert.Equal(t, alice.ID, notifications[0].To)
}

func TestToggleLikeMissingPost(t *testing.T) {
	e, st, _ := newTestEngine(t)
	bob := seedUser(t, st, "bob")

	_, err := e.ToggleLike(context.Background(), bob.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleBookmarkInvolution(t *testing.T) {
	ctx := context.Background()
	e, st, _ := newTestEngine(t)
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	post, err := e.CreatePost(ctx, alice.ID, "hello", "")
	require.NoError(t, err)

	bookmarked, _, err := e.ToggleBookmark(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, bookmarked)

	bobAfter, err := st.Users.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{post.ID}, bobAfter.Bookmarks)

	bookmarked, _, err = e.ToggleBookmark(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, bookmarked)

	bobAfter, err = st.Users.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobAfter.Bookmarks)

	// Bookmarks never notify.
	notifications, err := st.Notifications.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestCommentOnPost(t *testing.T) {
	ctx := context.Background()
	e, st, _ := newTestEngine(t)
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	post, err := e.CreatePost(ctx, alice.ID, "hello", "")
	require.NoError(t, err)

	_, err = e.CommentOnPost(ctx, bob.ID, post.ID, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = e.CommentOnPost(ctx, bob.ID, primitive.NewObjectID(), "hi")
	assert.ErrorIs(t, err, ErrNotFound)

	first, err := e.CommentOnPost(ctx, bob.ID, post.ID, "first")
	require.NoError(t, err)
	require.Len(t, first.Comments, 1)

	second, err := e.CommentOnPost(ctx, alice.ID, post.ID, "second")
	require.NoError(t, err)
	require.Len(t, second.Comments, 2)

	// Insertion order is preserved.
	assert.Equal(t, "first", second.Comments[0].Text)
	assert.Equal(t, bob.ID, second.Comments[0].UserID)
	assert.Equal(t, "second", second.Comments[1].Text)
	assert.Equal(t, alice.ID, second.Comments[1].UserID)

	// Comments never notify.
	notifications, err := st.Notifications.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestRetweetPost(t *testing.T) {
	ctx := context.Background()
	e, st, _ := newTestEngine(t)
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")
	carol := seedUser(t, st, "carol")

	post, err := e.CreatePost(ctx, alice.ID, "hello", "")
	require.NoError(t, err)

	record, err := e.RetweetPost(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, record.UserID)
	require.NotNil(t, record.RetweetData)
	assert.Equal(t, post.ID, *record.RetweetData)
	assert.Equal(t, "hello", record.Text)

	original, err := st.Posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{bob.ID}, original.Retweets)

	// Same user cannot retweet the same post twice.
	_, err = e.RetweetPost(ctx, bob.ID, post.ID)
	assert.ErrorIs(t, err, ErrAlreadyRetweetedByUser)

	// Nobody can retweet a retweet record, not even a third party.
	_, err = e.RetweetPost(ctx, carol.ID, record.ID)
	assert.ErrorIs(t, err, ErrAlreadyRetweetedPost)

	_, err = e.RetweetPost(ctx, bob.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRetweetCopyDoesNotTrackOriginal(t *testing.T) {
	ctx := context.Background()
	e, st, _ := newTestEngine(t)
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	post, err := e.CreatePost(ctx, alice.ID, "v1", "")
	require.NoError(t, err)

	record, err := e.RetweetPost(ctx, bob.ID, post.ID)
	require.NoError(t, err)

	// Deleting the original leaves the copied text on the record.
	require.NoError(t, e.DeletePost(ctx, alice.ID, post.ID))

	kept, err := st.Posts.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "v1", kept.Text)
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()

	t.Run("missing post", func(t *testing.T) {
		e, st, _ := newTestEngine(t)
		alice := seedUser(t, st, "alice")
		err := e.DeletePost(ctx, alice.ID, primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("only the owner may delete", func(t *testing.T) {
		e, st, _ := newTestEngine(t)
		alice := seedUser(t, st, "alice")
		bob := seedUser(t, st, "bob")

		post, err := e.CreatePost(ctx, alice.ID, "hello", "")
		require.NoError(t, err)

		err = e.DeletePost(ctx, bob.ID, post.ID)
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = st.Posts.FindByID(ctx, post.ID)
		assert.NoError(t, err, "post must survive a forbidden delete")
	})

	t.Run("image asset is destroyed", func(t *testing.T) {
		e, st, m := newTestEngine(t)
		alice := seedUser(t, st, "alice")

		post, err := e.CreatePost(ctx, alice.ID, "", "data:image/png;base64,xyz")
		require.NoError(t, err)

		require.NoError(t, e.DeletePost(ctx, alice.ID, post.ID))
		assert.Equal(t, []string{"asset1"}, m.destroyed)
	})

	t.Run("media failure does not block deletion", func(t *testing.T) {
		e, st, m := newTestEngine(t)
		alice := seedUser(t, st, "alice")

		post, err := e.CreatePost(ctx, alice.ID, "", "data:image/png;base64,xyz")
		require.NoError(t, err)

		m.destroyErr = assert.AnError
		require.NoError(t, e.DeletePost(ctx, alice.ID, post.ID))

		_, err = st.Posts.FindByID(ctx, post.ID)
		assert.Error(t, err, "post must be gone despite the media failure")
	})

	t.Run("deleting a retweet record pulls the retweeter from the original", func(t *testing.T) {
		e, st, _ := newTestEngine(t)
		alice := seedUser(t, st, "alice")
		bob := seedUser(t, st, "bob")

		post, err := e.CreatePost(ctx, alice.ID, "hello", "")
		require.NoError(t, err)
		record, err := e.RetweetPost(ctx, bob.ID, post.ID)
		require.NoError(t, err)

		require.NoError(t, e.DeletePost(ctx, bob.ID, record.ID))

		original, err := st.Posts.FindByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Empty(t, original.Retweets)

		// Bob can retweet again after deleting his record.
		_, err = e.RetweetPost(ctx, bob.ID, post.ID)
		assert.NoError(t, err)
	})

	t.Run("deleting a retweet record survives a missing original", func(t *testing.T) {
		e, st, _ := newTestEngine(t)
		alice := seedUser(t, st, "alice")
		bob := seedUser(t, st, "bob")

		post, err := e.CreatePost(ctx, alice.ID, "hello", "")
		require.NoError(t, err)
		record, err := e.RetweetPost(ctx, bob.ID, post.ID)
		require.NoError(t, err)

		require.NoError(t, e.DeletePost(ctx, alice.ID, post.ID))
		require.NoError(t, e.DeletePost(ctx, bob.ID, record.ID))
	})

	t.Run("deleting the original does not cascade to retweet records", func(t *testing.T) {
		e, st, _ := newTestEngine(t)
		alice := seedUser(t, st, "alice")
		bob := seedUser(t, st, "bob")

		post, err := e.CreatePost(ctx, alice.ID, "hello", "")
		require.NoError(t, err)
		record, err := e.RetweetPost(ctx, bob.ID, post.ID)
		require.NoError(t, err)

		require.NoError(t, e.DeletePost(ctx, alice.ID, post.ID))

		_, err = st.Posts.FindByID(ctx, record.ID)
		assert.NoError(t, err, "retweet record must survive deletion of the original")
	})
}
