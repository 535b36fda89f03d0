package engine

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"twyster/media"
	"twyster/models"
	"twyster/store"
)

// GetProfile resolves a username to its account.
func (e *Engine) GetProfile(ctx context.Context, username string) (*models.User, error) {
	user, err := e.store.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, userErr(err)
	}
	return user, nil
}

// ToggleFollow flips whether userID follows targetID, updating both sides of
// the relation. Following yourself is rejected. No notification is emitted;
// the only notification type in scope is the like.
func (e *Engine) ToggleFollow(ctx context.Context, userID, targetID primitive.ObjectID) (bool, error) {
	if userID == targetID {
		return false, fmt.Errorf("%w: you can't follow yourself", ErrInvalidArgument)
	}
	if _, err := e.store.Users.FindByID(ctx, targetID); err != nil {
		return false, userErr(err)
	}
	user, err := e.store.Users.FindByID(ctx, userID)
	if err != nil {
		return false, userErr(err)
	}

	if user.IsFollowing(targetID) {
		if err := e.store.Users.Unfollow(ctx, userID, targetID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := e.store.Users.Follow(ctx, userID, targetID); err != nil {
		return false, err
	}
	return true, nil
}

// SuggestedUsers returns up to four accounts the user does not already
// follow, excluding the user themselves.
func (e *Engine) SuggestedUsers(ctx context.Context, userID primitive.ObjectID) ([]models.User, error) {
	user, err := e.store.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, userErr(err)
	}
	exclude := append(append([]primitive.ObjectID{}, user.Following...), userID)
	return e.store.Users.Suggestions(ctx, exclude, 4)
}

// ProfileChanges carries the fields UpdateProfile may modify. Empty strings
// mean "leave unchanged"; a password change requires both the current and
// the new password.
type ProfileChanges struct {
	FullName        string
	Email           string
	Username        string
	CurrentPassword string
	NewPassword     string
	Bio             string
	Link            string
	ProfileImg      string // image payload, uploaded through the media store
	CoverImg        string // image payload, uploaded through the media store
}

// UpdateProfile applies profile changes for the user. New profile or cover
// images pass through the media store; the superseded assets are destroyed.
func (e *Engine) UpdateProfile(ctx context.Context, userID primitive.ObjectID, changes ProfileChanges) (*models.User, error) {
	user, err := e.store.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, userErr(err)
	}

	upd := store.ProfileUpdate{
		FullName: changes.FullName,
		Email:    changes.Email,
		Username: changes.Username,
		Bio:      changes.Bio,
		Link:     changes.Link,
	}

	if (changes.CurrentPassword == "") != (changes.NewPassword == "") {
		return nil, fmt.Errorf("%w: provide both current and new password", ErrInvalidArgument)
	}
	if changes.NewPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(changes.CurrentPassword)) != nil {
			return nil, fmt.Errorf("%w: current password is incorrect", ErrInvalidArgument)
		}
		if len(changes.NewPassword) < 6 {
			return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidArgument)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(changes.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		upd.Password = string(hashed)
	}

	if changes.ProfileImg != "" {
		url, err := e.replaceImage(ctx, user.ProfileImg, changes.ProfileImg)
		if err != nil {
			return nil, err
		}
		upd.ProfileImg = url
	}
	if changes.CoverImg != "" {
		url, err := e.replaceImage(ctx, user.CoverImg, changes.CoverImg)
		if err != nil {
			return nil, err
		}
		upd.CoverImg = url
	}

	if err := e.store.Users.UpdateProfile(ctx, userID, upd); err != nil {
		return nil, err
	}
	return e.store.Users.FindByID(ctx, userID)
}

// replaceImage uploads the new image first so a failed upload never leaves
// the profile pointing at a destroyed asset. The superseded asset is then
// destroyed best-effort.
func (e *Engine) replaceImage(ctx context.Context, oldURL, image string) (string, error) {
	url, err := e.media.Upload(ctx, image)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if oldURL != "" {
		if err := e.media.Destroy(ctx, media.AssetID(oldURL)); err != nil {
			log.Printf("[UpdateProfile] failed to destroy image asset %s: %v", media.AssetID(oldURL), err)
		}
	}
	return url, nil
}
