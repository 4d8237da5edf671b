package model

import "gorm.io/gorm"

type Comment struct {
	gorm.Model
	VideoID uint   `gorm:"column:video_id;not null;index"`
	OwnerID uint   `gorm:"column:owner_id;not null;index"`
	Owner   *User  `gorm:"foreignKey:OwnerID"`
	Content string `gorm:"column:content;type:text;not null"`
}
