package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mwilde/quill/internal/models"
)

// InMemoryUserStore mirrors MongoUserStore without a database. Used by
// handler tests.
type InMemoryUserStore struct {
	mu    sync.Mutex
	users []models.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{users: []models.User{}}
}

func (s *InMemoryUserStore) CreateUser(_ context.Context, username, hashedPassword string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return nil, ErrUserExists
		}
	}
	u := models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
	}
	s.users = append(s.users, u)
	return &u, nil
}

func (s *InMemoryUserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *InMemoryUserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID.Hex() == id {
			out := u
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// InMemoryPostStore mirrors MongoPostStore without a database.
type InMemoryPostStore struct {
	mu    sync.Mutex
	posts []models.Post
}

func NewInMemoryPostStore() *InMemoryPostStore {
	return &InMemoryPostStore{posts: []models.Post{}}
}

func (s *InMemoryPostStore) Insert(_ context.Context, post *models.Post) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	s.posts = append(s.posts, *post)
	return post.ID.Hex(), nil
}

func (s *InMemoryPostStore) List(_ context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

func (s *InMemoryPostStore) GetByID(_ context.Context, id string) (*models.Post, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID.Hex() == id {
			out := p
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryPostStore) Update(_ context.Context, id, title, content string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID.Hex() == id {
			s.posts[i].Title = title
			s.posts[i].Content = content
			return nil
		}
	}
	return nil
}

func (s *InMemoryPostStore) Delete(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID.Hex() == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return nil
}
