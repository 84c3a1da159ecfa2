package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a single blog entry stored in MongoDB.
type Post struct {
	ID        primitive.ObjectID `json:"id"         bson:"_id,omitempty"`
	Title     string             `json:"title"      bson:"title"`
	Content   string             `json:"content"    bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// PostForm is the form payload for POST /compose and POST /edit/{id}.
// Field names follow the template inputs postTitle and postBody.
type PostForm struct {
	Title   string
	Content string
}
