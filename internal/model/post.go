package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"userId"`
	Username  string             `json:"username" bson:"username"`
	Text      string             `json:"text" bson:"text"`
	Image     *string            `json:"image" bson:"image"`
	Likes     []Like             `json:"likes" bson:"likes"`
	Comments  []Comment          `json:"comments" bson:"comments"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

type Like struct {
	UserID   string `json:"userId" bson:"userId"`
	Username string `json:"username" bson:"username"`
}

type Comment struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	UserID    string             `json:"userId" bson:"userId"`
	Username  string             `json:"username" bson:"username"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// LikedBy reports whether userID currently has a like on the post.
func (p *Post) LikedBy(userID string) bool {
	for _, like := range p.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}
