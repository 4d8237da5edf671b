package model

import (
	"slices"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Playlist struct {
	gorm.Model
	OwnerID     uint                      `gorm:"column:owner_id;not null;index"`
	Name        string                    `gorm:"column:name;not null"`
	Description string                    `gorm:"column:description;type:text;not null"`
	VideoIDs    datatypes.JSONSlice[uint] `gorm:"column:video_ids"`
}

// AddVideo appends videoID once, reporting whether the list changed
func (p *Playlist) AddVideo(videoID uint) bool {
	if slices.Contains(p.VideoIDs, videoID) {
		return false
	}
	p.VideoIDs = append(p.VideoIDs, videoID)
	return true
}

// RemoveVideo drops videoID, reporting whether the list changed
func (p *Playlist) RemoveVideo(videoID uint) bool {
	idx := slices.Index(p.VideoIDs, videoID)
	if idx < 0 {
		return false
	}
	p.VideoIDs = slices.Delete(p.VideoIDs, idx, idx+1)
	return true
}
