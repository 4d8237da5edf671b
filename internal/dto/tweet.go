package dto

import "time"

type TweetRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type TweetResponse struct {
	ID        uint      `json:"id"`
	OwnerID   uint      `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
