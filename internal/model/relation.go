package model

import "time"

// TargetKind names what a toggle relation points at
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
	TargetChannel TargetKind = "channel"
)

// Valid reports whether k is one of the known kinds
func (k TargetKind) Valid() bool {
	switch k {
	case TargetVideo, TargetComment, TargetTweet, TargetChannel:
		return true
	}
	return false
}

// Like is a toggle relation from a user to a video, comment or tweet.
// The unique index is what keeps at most one row per (actor, target, kind).
type Like struct {
	ID         uint       `gorm:"primarykey"`
	LikedByID  uint       `gorm:"column:liked_by_id;not null;uniqueIndex:idx_likes_actor_target,priority:1"`
	TargetID   uint       `gorm:"column:target_id;not null;uniqueIndex:idx_likes_actor_target,priority:2;index:idx_likes_target"`
	TargetKind TargetKind `gorm:"column:target_kind;type:varchar(16);not null;uniqueIndex:idx_likes_actor_target,priority:3;index:idx_likes_target"`
	CreatedAt  time.Time
}

// Subscription is a toggle relation from a subscriber to a channel (a user)
type Subscription struct {
	ID           uint      `gorm:"primarykey"`
	SubscriberID uint      `gorm:"column:subscriber_id;not null;uniqueIndex:idx_subscriptions_pair,priority:1"`
	ChannelID    uint      `gorm:"column:channel_id;not null;uniqueIndex:idx_subscriptions_pair,priority:2;index"`
	Subscriber   *User     `gorm:"foreignKey:SubscriberID"`
	Channel      *User     `gorm:"foreignKey:ChannelID"`
	CreatedAt    time.Time
}
