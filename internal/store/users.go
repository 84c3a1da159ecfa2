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

// ErrUserExists is returned by CreateUser when the username is taken.
var ErrUserExists = errors.New("username already exists")

// MongoUserStore handles user CRUD in the users collection.
type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection("users")}
}

// CreateUser inserts a new user. The collection carries no unique index,
// so duplicates are rejected here before the insert.
func (s *MongoUserStore) CreateUser(ctx context.Context, username, hashedPassword string) (*models.User, error) {
	err := s.col.FindOne(ctx, bson.M{"username": username}).Err()
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user lookup: %w", err)
	}

	u := &models.User{
		Username:  username,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
	}
	res, err := s.col.InsertOne(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return u, nil
}

func (s *MongoUserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.col.FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid id: %w", err)
	}
	var u models.User
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}
