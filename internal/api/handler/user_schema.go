package handler

import "github.com/inkpress/blog-system/internal/core/domain"

// --- Request / Response types ---

type updateProfileRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=2"`
	Email *string `json:"email" validate:"omitempty,email"`
	Age   *int    `json:"age"   validate:"omitempty,gte=18"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type publicUserResponse struct {
	User domain.PublicUser `json:"user"`
}

type listUsersResponse struct {
	Users []domain.PublicUser `json:"users"`
	Count int                 `json:"count"`
}

type userPostsResponse struct {
	User  domain.PublicUser `json:"user"`
	Posts []domain.Post     `json:"posts"`
	Count int               `json:"count"`
}

type messageResponse struct {
	Message string `json:"message"`
}
