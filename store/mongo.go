package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"twyster/models"
)

// NewMongo wires the store bundle over the given collections.
func NewMongo(users, posts, notifications *mongo.Collection) *Store {
	return &Store{
		Users:         &mongoUsers{coll: users},
		Posts:         &mongoPosts{coll: posts},
		Notifications: &mongoNotifications{coll: notifications},
	}
}

type mongoUsers struct {
	coll *mongo.Collection
}

func (s *mongoUsers) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := s.coll.FindOne(ctx, filter).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *mongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *mongoUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *mongoUsers) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *mongoUsers) Suggestions(ctx context.Context, exclude []primitive.ObjectID, limit int) ([]models.User, error) {
	opts := options.Find().SetLimit(int64(limit))
	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$nin": exclude}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *mongoUsers) Insert(ctx context.Context, u *models.User) error {
	_, err := s.coll.InsertOne(ctx, u)
	return err
}

func (s *mongoUsers) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	set := bson.M{}
	if upd.FullName != "" {
		set["fullName"] = upd.FullName
	}
	if upd.Email != "" {
		set["email"] = upd.Email
	}
	if upd.Username != "" {
		set["username"] = upd.Username
	}
	if upd.Password != "" {
		set["password"] = upd.Password
	}
	if upd.Bio != "" {
		set["bio"] = upd.Bio
	}
	if upd.Link != "" {
		set["link"] = upd.Link
	}
	if upd.ProfileImg != "" {
		set["profileImg"] = upd.ProfileImg
	}
	if upd.CoverImg != "" {
		set["coverImg"] = upd.CoverImg
	}
	if len(set) == 0 {
		return nil
	}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

func (s *mongoUsers) AddLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$push": bson.M{"likedPosts": postID}})
	return err
}

func (s *mongoUsers) RemoveLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{"likedPosts": postID}})
	return err
}

func (s *mongoUsers) AddBookmark(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$push": bson.M{"bookmarks": postID}})
	return err
}

func (s *mongoUsers) RemoveBookmark(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{"bookmarks": postID}})
	return err
}

func (s *mongoUsers) Follow(ctx context.Context, userID, targetID primitive.ObjectID) error {
	if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$push": bson.M{"following": targetID}}); err != nil {
		return err
	}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": targetID}, bson.M{"$push": bson.M{"followers": userID}})
	return err
}

func (s *mongoUsers) Unfollow(ctx context.Context, userID, targetID primitive.ObjectID) error {
	if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{"following": targetID}}); err != nil {
		return err
	}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": targetID}, bson.M{"$pull": bson.M{"followers": userID}})
	return err
}

type mongoPosts struct {
	coll *mongo.Collection
}

func (s *mongoPosts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *mongoPosts) Insert(ctx context.Context, p *models.Post) error {
	_, err := s.coll.InsertOne(ctx, p)
	return err
}

func (s *mongoPosts) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *mongoPosts) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Post, error) {
	cursor, err := s.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

func (s *mongoPosts) All(ctx context.Context) ([]models.Post, error) {
	return s.find(ctx, bson.M{}, newestFirst())
}

func (s *mongoPosts) ByAuthor(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	return s.find(ctx, bson.M{"userId": userID}, newestFirst())
}

func (s *mongoPosts) ByAuthors(ctx context.Context, userIDs []primitive.ObjectID) ([]models.Post, error) {
	if len(userIDs) == 0 {
		return []models.Post{}, nil
	}
	return s.find(ctx, bson.M{"userId": bson.M{"$in": userIDs}}, newestFirst())
}

func (s *mongoPosts) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	if len(ids) == 0 {
		return []models.Post{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *mongoPosts) AppendComment(ctx context.Context, postID primitive.ObjectID, c models.Comment) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$push": bson.M{"comments": c}})
	return err
}

func (s *mongoPosts) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$push": bson.M{"likes": userID}})
	return err
}

func (s *mongoPosts) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$pull": bson.M{"likes": userID}})
	return err
}

func (s *mongoPosts) AddRetweeter(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$push": bson.M{"retweets": userID}})
	return err
}

func (s *mongoPosts) RemoveRetweeter(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$pull": bson.M{"retweets": userID}})
	return err
}

type mongoNotifications struct {
	coll *mongo.Collection
}

func (s *mongoNotifications) Insert(ctx context.Context, n *models.Notification) error {
	_, err := s.coll.InsertOne(ctx, n)
	return err
}

func (s *mongoNotifications) DeleteLike(ctx context.Context, from, to primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{
		"from": from,
		"to":   to,
		"type": models.NotificationTypeLike,
	})
	return err
}

func (s *mongoNotifications) ListForUser(ctx context.Context, to primitive.ObjectID) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"to": to}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *mongoNotifications) MarkAllRead(ctx context.Context, to primitive.ObjectID) error {
	_, err := s.coll.UpdateMany(ctx, bson.M{"to": to}, bson.M{"$set": bson.M{"read": true}})
	return err
}

func (s *mongoNotifications) DeleteForUser(ctx context.Context, to primitive.ObjectID) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"to": to})
	return err
}
