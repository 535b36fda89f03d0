package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"twyster/models"
	"twyster/store"
)

// fakeMedia records uploads and destroys, returning deterministic URLs.
type fakeMedia struct {
	uploads    []string
	destroyed  []string
	uploadErr  error
	destroyErr error
}

func (f *fakeMedia) Upload(_ context.Context, image string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads = append(f.uploads, image)
	return fmt.Sprintf("https://img.example.com/v1/asset%d.png", len(f.uploads)), nil
}

func (f *fakeMedia) Destroy(_ context.Context, assetID string) error {
	f.destroyed = append(f.destroyed, assetID)
	return f.destroyErr
}

func newTestEngine(t *testing.T) (*Engine, *store.Store, *fakeMedia) {
	t.Helper()
	st := store.NewMemory()
	m := &fakeMedia{}
	e := New(st, m)
	var tick int64
	e.now = func() int64 {
		tick++
		return tick
	}
	return e, st, m
}

func seedUser(t *testing.T, st *store.Store, username string) *models.User {
	t.Helper()
	u := &models.User{
		ID:         primitive.NewObjectID(),
		Username:   username,
		FullName:   username + " Fullname",
		Email:      username + "@example.com",
		Password:   "$2a$10$notarealhashnotarealhashnotarealhash",
		Bio:        "bio of " + username,
		Followers:  []primitive.ObjectID{},
		Following:  []primitive.ObjectID{},
		LikedPosts: []primitive.ObjectID{},
		Bookmarks:  []primitive.ObjectID{},
	}
	require.NoError(t, st.Users.Insert(context.Background(), u))
	return u
}
