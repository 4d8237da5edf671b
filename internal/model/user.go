package model

import (
	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username      string                    `gorm:"column:username;uniqueIndex;not null" validate:"required,min=3,max=30"`
	Email         string                    `gorm:"column:email;uniqueIndex;not null" validate:"required,email,max=255"`
	FullName      string                    `gorm:"column:full_name;not null;index" validate:"required,max=100"`
	Password      string                    `gorm:"column:password;not null" validate:"required"`
	AvatarURL     string                    `gorm:"column:avatar_url" validate:"omitempty,url,max=2048"`
	CoverImageURL string                    `gorm:"column:cover_image_url" validate:"omitempty,url,max=2048"`
	RefreshToken  *string                   `gorm:"column:refresh_token;default:null"`
	WatchHistory  datatypes.JSONSlice[uint] `gorm:"column:watch_history"`
}

var userValidator = validator.New()

// Validate runs the schema rules for a full record write
func (u *User) Validate() error {
	return userValidator.Struct(u)
}

// HasRefreshToken reports whether a session chain is currently active
func (u *User) HasRefreshToken() bool {
	return u.RefreshToken != nil
}
