package engine

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"twyster/models"
	"twyster/store"
)

// Register creates a new account. Username and email must be unique; the
// password is stored as a bcrypt hash.
func (e *Engine) Register(ctx context.Context, username, fullName, email, password string) (*models.User, error) {
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidArgument)
	}

	if _, err := e.store.Users.FindByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username is already taken", ErrConflict)
	} else if err != store.ErrNotFound {
		return nil, err
	}
	if _, err := e.store.Users.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email is already taken", ErrConflict)
	} else if err != store.ErrNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:         primitive.NewObjectID(),
		Username:   username,
		FullName:   fullName,
		Email:      email,
		Password:   string(hashed),
		Followers:  []primitive.ObjectID{},
		Following:  []primitive.ObjectID{},
		LikedPosts: []primitive.ObjectID{},
		Bookmarks:  []primitive.ObjectID{},
		CreatedAt:  e.now(),
	}
	if err := e.store.Users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks a username/password pair and returns the account.
func (e *Engine) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := e.store.Users.FindByUsername(ctx, username)
	if err == store.ErrNotFound {
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthenticated)
	}
	return user, nil
}

// GetUser returns the account with the given id.
func (e *Engine) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := e.store.Users.FindByID(ctx, id)
	if err != nil {
		return nil, userErr(err)
	}
	return user, nil
}
