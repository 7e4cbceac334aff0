package dto

import "github.com/Rasika1975/socialapp/internal/model"

type MessageResponse struct {
	Message string `json:"message"`
}

func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{
		Message: message,
	}
}

type PostsPage struct {
	Posts       []*model.Post `json:"posts"`
	CurrentPage int           `json:"currentPage"`
	TotalPages  int           `json:"totalPages"`
	TotalPosts  int64         `json:"totalPosts"`
}

// LikeResponse is the toggled post plus the caller's resulting like state.
type LikeResponse struct {
	*model.Post
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type LatencyStats struct {
	Count int64   `json:"count"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
	MaxMs float64 `json:"max_ms"`
}
