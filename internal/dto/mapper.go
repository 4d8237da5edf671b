package dto

import "github.com/Payphone-Digital/videotube/internal/model"

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func NewChannelResponse(u *model.User) *ChannelResponse {
	if u == nil {
		return nil
	}
	return &ChannelResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
	}
}

func NewVideoResponse(v *model.Video) VideoResponse {
	return VideoResponse{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoURL,
		ThumbnailURL: v.ThumbnailURL,
		Duration:     v.Duration,
		Views:        v.Views,
		IsPublished:  v.IsPublished,
		Owner:        NewChannelResponse(v.Owner),
		OwnerID:      v.OwnerID,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func NewVideoResponses(videos []model.Video) []VideoResponse {
	res := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		res = append(res, NewVideoResponse(&videos[i]))
	}
	return res
}

func NewCommentResponse(c *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		VideoID:   c.VideoID,
		Content:   c.Content,
		Owner:     NewChannelResponse(c.Owner),
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewTweetResponse(t *model.Tweet) TweetResponse {
	return TweetResponse{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func NewPlaylistResponse(p *model.Playlist) PlaylistResponse {
	ids := []uint(p.VideoIDs)
	if ids == nil {
		ids = []uint{}
	}
	return PlaylistResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		VideoIDs:    ids,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
