package database

import (
	"github.com/Payphone-Digital/videotube/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models, then the secondary indexes
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Tweet{},
		&model.Playlist{},
		&model.Like{},
		&model.Subscription{},
	); err != nil {
		return err
	}
	return CreateIndexes(db)
}
