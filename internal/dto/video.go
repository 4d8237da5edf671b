package dto

import "time"

type PublishVideoRequest struct {
	Title        string  `json:"title" binding:"required,max=200"`
	Description  string  `json:"description" binding:"required,max=5000"`
	VideoURL     string  `json:"videoUrl" binding:"required,url,max=2048"`
	ThumbnailURL string  `json:"thumbnailUrl" binding:"required,url,max=2048"`
	Duration     float64 `json:"duration" binding:"gte=0"`
}

type UpdateVideoRequest struct {
	Title        string `json:"title" binding:"omitempty,max=200"`
	Description  string `json:"description" binding:"omitempty,max=5000"`
	ThumbnailURL string `json:"thumbnailUrl" binding:"omitempty,url,max=2048"`
}

// VideoFilter mirrors the query string of GET /videos
type VideoFilter struct {
	Query    string
	SortBy   string
	SortType string
	UserID   uint
	Limit    int
	Offset   int
}

type VideoResponse struct {
	ID           uint             `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	VideoURL     string           `json:"videoUrl"`
	ThumbnailURL string           `json:"thumbnailUrl"`
	Duration     float64          `json:"duration"`
	Views        int64            `json:"views"`
	IsPublished  bool             `json:"isPublished"`
	Owner        *ChannelResponse `json:"owner,omitempty"`
	OwnerID      uint             `json:"ownerId"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}
