package dto

import "time"

type CommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type CommentResponse struct {
	ID        uint             `json:"id"`
	VideoID   uint             `json:"videoId"`
	Content   string           `json:"content"`
	Owner     *ChannelResponse `json:"owner,omitempty"`
	OwnerID   uint             `json:"ownerId"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
