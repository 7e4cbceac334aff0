package dto

import "time"

type UserRegisteredEvent struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

const (
	PostCreated   = "post.created"
	PostLiked     = "post.liked"
	PostUnliked   = "post.unliked"
	PostCommented = "post.commented"
	PostDeleted   = "post.deleted"
)

type PostActivityEvent struct {
	Type     string    `json:"type"`
	PostID   string    `json:"post_id"`
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	At       time.Time `json:"at"`
}
