package model

import "gorm.io/gorm"

type Tweet struct {
	gorm.Model
	OwnerID uint   `gorm:"column:owner_id;not null;index"`
	Content string `gorm:"column:content;type:text;not null"`
}
