package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a document in the users collection.
type User struct {
	ID        primitive.ObjectID `json:"id"         bson:"_id,omitempty"`
	Username  string             `json:"username"   bson:"username"`
	Password  string             `json:"-"          bson:"password"` // bcrypt hash, never serialized
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Credentials is the form payload for POST /register and POST /login.
type Credentials struct {
	Username string
	Password string
}
