package dto

type CommentRequest struct {
	Text string `json:"text"`
}

type CreatePostRequest struct {
	Text string `json:"text"`
}
