package dto

import "time"

type RegisterRequest struct {
	Username      string `json:"username" binding:"required,min=3,max=30"`
	Email         string `json:"email" binding:"required,email,max=255"`
	FullName      string `json:"fullName" binding:"required,max=100"`
	Password      string `json:"password" binding:"required,min=6,max=100"`
	AvatarURL     string `json:"avatarUrl" binding:"omitempty,url,max=2048"`
	CoverImageURL string `json:"coverImageUrl" binding:"omitempty,url,max=2048"`
}

// LoginRequest accepts username OR email; at least one must be present
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=100"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName" binding:"omitempty,max=100"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
}

type UpdateImageRequest struct {
	URL string `json:"url" binding:"required,url,max=2048"`
}

// UserResponse never carries password or refresh token
type UserResponse struct {
	ID            uint      `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	AvatarURL     string    `json:"avatarUrl,omitempty"`
	CoverImageURL string    `json:"coverImageUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ChannelResponse is the public view of a user used in lists and embeds
type ChannelResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}
