package model

import "gorm.io/gorm"

type Video struct {
	gorm.Model
	OwnerID      uint    `gorm:"column:owner_id;not null;index"`
	Owner        *User   `gorm:"foreignKey:OwnerID"`
	Title        string  `gorm:"column:title;not null"`
	Description  string  `gorm:"column:description;type:text"`
	VideoURL     string  `gorm:"column:video_url;not null"`
	ThumbnailURL string  `gorm:"column:thumbnail_url"`
	Duration     float64 `gorm:"column:duration;not null;default:0"`
	Views        int64   `gorm:"column:views;not null;default:0"`
	IsPublished  bool    `gorm:"column:is_published;not null;default:true;index"`
}
