package domain

import "time"

// User models a registered account.
type User struct {
	ID              int64     `json:"id" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	Email           string    `json:"email" bson:"email"`
	Age             *int      `json:"age,omitempty" bson:"age,omitempty"`
	PasswordHash    string    `json:"-" bson:"password_hash"`
	IsEmailVerified bool      `json:"isEmailVerified" bson:"is_email_verified"`
	AvatarPath      string    `json:"-" bson:"avatar_path,omitempty"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updated_at"`
}

// PublicUser is the projection exposed on unauthenticated user endpoints.
// It never carries email, age, or verification state.
type PublicUser struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the unauthenticated projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt}
}

// Author is the embedded owner reference attached to posts.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
