package domain

import "time"

// Post is an article owned by a single user. Ownership checks are a plain
// equality test between the requester's subject id and AuthorID.
type Post struct {
	ID        int64     `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	AuthorID  int64     `json:"authorId" bson:"author_id"`
	Author    *Author   `json:"author,omitempty" bson:"-"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
