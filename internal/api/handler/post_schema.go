package handler

import "github.com/inkpress/blog-system/internal/core/domain"

// --- Request / Response types ---

type postRequest struct {
	Title   string `json:"title"   validate:"required,min=2,max=100"`
	Content string `json:"content" validate:"required,max=5000"`
}

type postResponse struct {
	Message string       `json:"message,omitempty"`
	Post    *domain.Post `json:"post"`
}

type listPostsResponse struct {
	Posts []domain.Post `json:"posts"`
	Count int           `json:"count"`
}
