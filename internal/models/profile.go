package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Profile represents a Montage user profile (PostgreSQL).
// Exactly one profile exists per identity; username lookups are
// case-insensitive even though the stored casing is preserved.
type Profile struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"size:30;uniqueIndex"`
	Email       string    `json:"email" gorm:"uniqueIndex"`
	FullName    string    `json:"full_name"`
	Bio         string    `json:"bio"`
	AvatarURL   string    `json:"avatar_url"`
	Password    string    `json:"-"` // bcrypt hash, never serialized
	FirebaseUID string    `json:"firebase_uid,omitempty" gorm:"index"`
	IsVerified  bool      `json:"is_verified" gorm:"default:false"`
	IsAdmin     bool      `json:"is_admin" gorm:"default:false"`
	IsBanned    bool      `json:"is_banned" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileCompact is the trimmed-down profile embedded in feed posts,
// story trays, notifications and follower lists.
type ProfileCompact struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	AvatarURL  string `json:"avatar_url"`
	IsVerified bool   `json:"is_verified"`
}

// ToCompact returns the compact representation of the profile.
func (p *Profile) ToCompact() ProfileCompact {
	return ProfileCompact{
		ID:         p.ID,
		Username:   p.Username,
		FullName:   p.FullName,
		AvatarURL:  p.AvatarURL,
		IsVerified: p.IsVerified,
	}
}

// SignupRequest defines the request body for local registration
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=2,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

// SigninRequest defines the request body for local sign-in
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest carries a Firebase ID token issued by the
// external identity provider.
type FirebaseLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// UpdateProfileRequest defines the request body for editing one's own profile
type UpdateProfileRequest struct {
	FullName  string `json:"full_name,omitempty" validate:"omitempty,min=2,max=50"`
	Bio       string `json:"bio,omitempty" validate:"omitempty,max=160"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
