package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"twyster/models"
)

// NewMemory returns a store backed by in-process maps, guarded by a single
// mutex. It serves tests and local runs without a MongoDB instance; each
// method call is atomic, mirroring the per-document atomicity of the mongo
// implementation.
func NewMemory() *Store {
	m := &memory{
		users:         map[primitive.ObjectID]*models.User{},
		posts:         map[primitive.ObjectID]*models.Post{},
		notifications: []*models.Notification{},
	}
	return &Store{
		Users:         &memoryUsers{m},
		Posts:         &memoryPosts{m},
		Notifications: &memoryNotifications{m},
	}
}

type memory struct {
	mu            sync.Mutex
	users         map[primitive.ObjectID]*models.User
	userOrder     []primitive.ObjectID
	posts         map[primitive.ObjectID]*models.Post
	postOrder     []primitive.ObjectID
	notifications []*models.Notification
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Followers = append([]primitive.ObjectID{}, u.Followers...)
	c.Following = append([]primitive.ObjectID{}, u.Following...)
	c.LikedPosts = append([]primitive.ObjectID{}, u.LikedPosts...)
	c.Bookmarks = append([]primitive.ObjectID{}, u.Bookmarks...)
	return &c
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Likes = append([]primitive.ObjectID{}, p.Likes...)
	c.Retweets = append([]primitive.ObjectID{}, p.Retweets...)
	c.Comments = append([]models.Comment{}, p.Comments...)
	if p.RetweetData != nil {
		id := *p.RetweetData
		c.RetweetData = &id
	}
	return &c
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

type memoryUsers struct{ m *memory }

func (s *memoryUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *memoryUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, id := range s.m.userOrder {
		if s.m.users[id].Username == username {
			return cloneUser(s.m.users[id]), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, id := range s.m.userOrder {
		if s.m.users[id].Email == email {
			return cloneUser(s.m.users[id]), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryUsers) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	users := []models.User{}
	for _, id := range ids {
		if u, ok := s.m.users[id]; ok {
			users = append(users, *cloneUser(u))
		}
	}
	return users, nil
}

func (s *memoryUsers) Suggestions(_ context.Context, exclude []primitive.ObjectID, limit int) ([]models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	excluded := map[primitive.ObjectID]bool{}
	for _, id := range exclude {
		excluded[id] = true
	}
	users := []models.User{}
	for _, id := range s.m.userOrder {
		if excluded[id] {
			continue
		}
		users = append(users, *cloneUser(s.m.users[id]))
		if len(users) == limit {
			break
		}
	}
	return users, nil
}

func (s *memoryUsers) Insert(_ context.Context, u *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.users[u.ID] = cloneUser(u)
	s.m.userOrder = append(s.m.userOrder, u.ID)
	return nil
}

func (s *memoryUsers) UpdateProfile(_ context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil
	}
	if upd.FullName != "" {
		u.FullName = upd.FullName
	}
	if upd.Email != "" {
		u.Email = upd.Email
	}
	if upd.Username != "" {
		u.Username = upd.Username
	}
	if upd.Password != "" {
		u.Password = upd.Password
	}
	if upd.Bio != "" {
		u.Bio = upd.Bio
	}
	if upd.Link != "" {
		u.Link = upd.Link
	}
	if upd.ProfileImg != "" {
		u.ProfileImg = upd.ProfileImg
	}
	if upd.CoverImg != "" {
		u.CoverImg = upd.CoverImg
	}
	return nil
}

func (s *memoryUsers) AddLikedPost(_ context.Context, userID, postID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if u, ok := s.m.users[userID]; ok {
		u.LikedPosts = append(u.LikedPosts, postID)
	}
	return nil
}

func (s *memoryUsers) RemoveLikedPost(_ context.Context, userID, postID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if u, ok := s.m.users[userID]; ok {
		u.LikedPosts = removeID(u.LikedPosts, postID)
	}
	return nil
}

func (s *memoryUsers) AddBookmark(_ context.Context, userID, postID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if u, ok := s.m.users[userID]; ok {
		u.Bookmarks = append(u.Bookmarks, postID)
	}
	return nil
}

func (s *memoryUsers) RemoveBookmark(_ context.Context, userID, postID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if u, ok := s.m.users[userID]; ok {
		u.Bookmarks = removeID(u.Bookmarks, postID)
	}
	return nil
}

func (s *memoryUsers) Follow(_ context.Context, userID, targetID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if u, ok := s.m.users[userID]; ok {
		u.Following = append(u.Following, targetID)
	}
	if t, ok := s.m.users[targetID]; ok {
		t.Followers = append(t.Followers, userID)
	}
	return nil
}

func (s *memoryUsers) Unfollow(_ context.Context, userID, targetID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if u, ok := s.m.users[userID]; ok {
		u.Following = removeID(u.Following, targetID)
	}
	if t, ok := s.m.users[targetID]; ok {
		t.Followers = removeID(t.Followers, userID)
	}
	return nil
}

type memoryPosts struct{ m *memory }

func (s *memoryPosts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clonePost(p), nil
}

func (s *memoryPosts) Insert(_ context.Context, p *models.Post) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.posts[p.ID] = clonePost(p)
	s.m.postOrder = append(s.m.postOrder, p.ID)
	return nil
}

func (s *memoryPosts) Delete(_ context.Context, id primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.posts, id)
	s.m.postOrder = removeID(s.m.postOrder, id)
	return nil
}

func (s *memoryPosts) collect(match func(*models.Post) bool, newestFirst bool) []models.Post {
	posts := []models.Post{}
	for _, id := range s.m.postOrder {
		if p := s.m.posts[id]; match(p) {
			posts = append(posts, *clonePost(p))
		}
	}
	if newestFirst {
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt > posts[j].CreatedAt
		})
	}
	return posts
}

func (s *memoryPosts) All(_ context.Context) ([]models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.collect(func(*models.Post) bool { return true }, true), nil
}

func (s *memoryPosts) ByAuthor(_ context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.collect(func(p *models.Post) bool { return p.UserID == userID }, true), nil
}

func (s *memoryPosts) ByAuthors(_ context.Context, userIDs []primitive.ObjectID) ([]models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	authors := map[primitive.ObjectID]bool{}
	for _, id := range userIDs {
		authors[id] = true
	}
	return s.collect(func(p *models.Post) bool { return authors[p.UserID] }, true), nil
}

func (s *memoryPosts) ByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	wanted := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	return s.collect(func(p *models.Post) bool { return wanted[p.ID] }, false), nil
}

func (s *memoryPosts) AppendComment(_ context.Context, postID primitive.ObjectID, c models.Comment) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if p, ok := s.m.posts[postID]; ok {
		p.Comments = append(p.Comments, c)
	}
	return nil
}

func (s *memoryPosts) AddLike(_ context.Context, postID, userID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if p, ok := s.m.posts[postID]; ok {
		p.Likes = append(p.Likes, userID)
	}
	return nil
}

func (s *memoryPosts) RemoveLike(_ context.Context, postID, userID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if p, ok := s.m.posts[postID]; ok {
		p.Likes = removeID(p.Likes, userID)
	}
	return nil
}

func (s *memoryPosts) AddRetweeter(_ context.Context, postID, userID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if p, ok := s.m.posts[postID]; ok {
		p.Retweets = append(p.Retweets, userID)
	}
	return nil
}

func (s *memoryPosts) RemoveRetweeter(_ context.Context, postID, userID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if p, ok := s.m.posts[postID]; ok {
		p.Retweets = removeID(p.Retweets, userID)
	}
	return nil
}

type memoryNotifications struct{ m *memory }

func (s *memoryNotifications) Insert(_ context.Context, n *models.Notification) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	c := *n
	s.m.notifications = append(s.m.notifications, &c)
	return nil
}

func (s *memoryNotifications) DeleteLike(_ context.Context, from, to primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i, n := range s.m.notifications {
		if n.From == from && n.To == to && n.Type == models.NotificationTypeLike {
			s.m.notifications = append(s.m.notifications[:i], s.m.notifications[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *memoryNotifications) ListForUser(_ context.Context, to primitive.ObjectID) ([]models.Notification, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	notifications := []models.Notification{}
	for i := len(s.m.notifications) - 1; i >= 0; i-- {
		if n := s.m.notifications[i]; n.To == to {
			notifications = append(notifications, *n)
		}
	}
	return notifications, nil
}

func (s *memoryNotifications) MarkAllRead(_ context.Context, to primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, n := range s.m.notifications {
		if n.To == to {
			n.Read = true
		}
	}
	return nil
}

func (s *memoryNotifications) DeleteForUser(_ context.Context, to primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	kept := s.m.notifications[:0]
	for _, n := range s.m.notifications {
		if n.To != to {
			kept = append(kept, n)
		}
	}
	s.m.notifications = kept
	return nil
}
