package database

import (
	"fmt"

	"gorm.io/gorm"
)

// feedIndexes back the list endpoints. Uniqueness of the toggle tables lives
// on the model tags so AutoMigrate always creates it.
var feedIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_videos_published_created ON videos (created_at DESC) WHERE is_published = true AND deleted_at IS NULL",
	"CREATE INDEX IF NOT EXISTS idx_videos_owner_created ON videos (owner_id, created_at DESC) WHERE deleted_at IS NULL",
	"CREATE INDEX IF NOT EXISTS idx_comments_video_created ON comments (video_id, created_at DESC) WHERE deleted_at IS NULL",
	"CREATE INDEX IF NOT EXISTS idx_tweets_owner_created ON tweets (owner_id, created_at DESC) WHERE deleted_at IS NULL",
	"CREATE INDEX IF NOT EXISTS idx_likes_actor_kind_created ON likes (liked_by_id, target_kind, created_at DESC)",
}

// CreateIndexes creates the partial and composite indexes gorm tags cannot express
func CreateIndexes(db *gorm.DB) error {
	for _, stmt := range feedIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
