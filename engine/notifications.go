package engine

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"twyster/models"
)

// ListNotifications returns the user's notifications newest first, with the
// acting user's public projection attached, and marks them all read.
func (e *Engine) ListNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	if _, err := e.store.Users.FindByID(ctx, userID); err != nil {
		return nil, userErr(err)
	}
	notifications, err := e.store.Notifications.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	idSet := map[primitive.ObjectID]bool{}
	for _, n := range notifications {
		idSet[n.From] = true
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
		}
	}
	for i := range notifications {
		notifications[i].FromUser = authors[notifications[i].From]
	}

	if err := e.store.Notifications.MarkAllRead(ctx, userID); err != nil {
		return nil, err
	}
	return notifications, nil
}

// ClearNotifications deletes all of the user's notifications.
func (e *Engine) ClearNotifications(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := e.store.Users.FindByID(ctx, userID); err != nil {
		return userErr(err)
	}
	return e.store.Notifications.DeleteForUser(ctx, userID)
}
