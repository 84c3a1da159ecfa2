package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mwilde/quill/internal/models"
)

// ErrNotFound is returned when no post matches the given id, or the id
// is not a valid ObjectID hex.
var ErrNotFound = errors.New("post not found")

// MongoPostStore handles post CRUD in the posts collection.
type MongoPostStore struct {
	col *mongo.Collection
}

func NewMongoPostStore(db *mongo.Database) *MongoPostStore {
	return &MongoPostStore{col: db.Collection("posts")}
}

func (s *MongoPostStore) Insert(ctx context.Context, post *models.Post) (string, error) {
	post.CreatedAt = time.Now()
	res, err := s.col.InsertOne(ctx, post)
	if err != nil {
		return "", fmt.Errorf("mongo insert: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// List returns all posts in natural store order.
func (s *MongoPostStore) List(ctx context.Context) ([]models.Post, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *MongoPostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var post models.Post
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Update overwrites title and content in place. The id is stable across
// the update.
func (s *MongoPostStore) Update(ctx context.Context, id, title, content string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"title": title, "content": content},
	})
	if err != nil {
		return fmt.Errorf("mongo update: %w", err)
	}
	return nil
}

func (s *MongoPostStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}
