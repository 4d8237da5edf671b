package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/videotube/internal/model"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"github.com/Payphone-Digital/videotube/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RelationRepository stores the toggle relations (likes and subscriptions).
//
// A toggle is a delete-or-insert inside one transaction. The delete removes
// the tuple if it exists; only when nothing was deleted is the tuple inserted
// with ON CONFLICT DO NOTHING. The unique index on each table guarantees at
// most one row per tuple even when two callers race past the delete.
type RelationRepository struct {
	db *gorm.DB
}

func NewRelationRepository(db *gorm.DB) *RelationRepository {
	return &RelationRepository{db: db}
}

// ToggleLike flips the like of actorID on (targetID, kind) and reports whether it is now active
func (r *RelationRepository) ToggleLike(ctx context.Context, actorID, targetID uint, kind model.TargetKind) (bool, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "ToggleLike")

	match := map[string]interface{}{
		"liked_by_id": actorID,
		"target_id":   targetID,
		"target_kind": kind,
	}
	row := &model.Like{LikedByID: actorID, TargetID: targetID, TargetKind: kind}

	active, err := r.toggle(ctx, &model.Like{}, match, row)
	if err != nil {
		return false, err
	}

	logger.InfoWithContext(ctx, "Like toggled").
		Uint("actor_id", actorID).
		Uint("target_id", targetID).
		String("target_kind", string(kind)).
		Bool("active", active).
		Log()

	return active, nil
}

// ToggleSubscription flips the subscription of subscriberID to channelID
func (r *RelationRepository) ToggleSubscription(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "ToggleSubscription")

	match := map[string]interface{}{
		"subscriber_id": subscriberID,
		"channel_id":    channelID,
	}
	row := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}

	active, err := r.toggle(ctx, &model.Subscription{}, match, row)
	if err != nil {
		return false, err
	}

	logger.InfoWithContext(ctx, "Subscription toggled").
		Uint("subscriber_id", subscriberID).
		Uint("channel_id", channelID).
		Bool("active", active).
		Log()

	return active, nil
}

func (r *RelationRepository) toggle(ctx context.Context, table interface{}, match map[string]interface{}, row interface{}) (bool, error) {
	start := time.Now()
	var active bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted := tx.Where(match).Delete(table)
		if deleted.Error != nil {
			return deleted.Error
		}
		if deleted.RowsAffected > 0 {
			active = false
			return nil
		}

		// A concurrent caller may have inserted first; either way the tuple exists
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
			return err
		}
		active = true
		return nil
	})

	logResult(ctx, "Toggle relation", start, err)
	return active, err
}

// CountLikes counts likes on a single target
func (r *RelationRepository) CountLikes(ctx context.Context, targetID uint, kind model.TargetKind) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "CountLikes")

	start := time.Now()
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("target_id = ? AND target_kind = ?", targetID, kind).
		Count(&count).Error
	logResult(ctx, "Likes counted", start, err)
	return count, err
}

// LikedVideoIDs returns the ids of videos the user liked, newest like first
func (r *RelationRepository) LikedVideoIDs(ctx context.Context, userID uint) ([]uint, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "LikedVideoIDs")

	start := time.Now()
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("liked_by_id = ? AND target_kind = ?", userID, model.TargetVideo).
		Order("created_at desc").
		Pluck("target_id", &ids).Error
	logResult(ctx, "Liked videos fetched", start, err)
	return ids, err
}

// ListSubscribers returns subscriptions to channelID with the subscriber preloaded
func (r *RelationRepository) ListSubscribers(ctx context.Context, channelID uint) ([]model.Subscription, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "ListSubscribers")

	start := time.Now()
	var subs []model.Subscription
	err := r.db.WithContext(ctx).
		Preload("Subscriber").
		Where("channel_id = ?", channelID).
		Order("created_at desc").
		Find(&subs).Error
	logResult(ctx, "Subscribers fetched", start, err)
	return subs, err
}

// ListSubscriptions returns the channels subscriberID follows with the channel preloaded
func (r *RelationRepository) ListSubscriptions(ctx context.Context, subscriberID uint) ([]model.Subscription, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "ListSubscriptions")

	start := time.Now()
	var subs []model.Subscription
	err := r.db.WithContext(ctx).
		Preload("Channel").
		Where("subscriber_id = ?", subscriberID).
		Order("created_at desc").
		Find(&subs).Error
	logResult(ctx, "Subscriptions fetched", start, err)
	return subs, err
}

// CountSubscribers counts the subscribers of a channel
func (r *RelationRepository) CountSubscribers(ctx context.Context, channelID uint) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "CountSubscribers")

	start := time.Now()
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	logResult(ctx, "Subscribers counted", start, err)
	return count, err
}

// CountLikesOnOwnerVideos counts likes received by all videos of ownerID
func (r *RelationRepository) CountLikesOnOwnerVideos(ctx context.Context, ownerID uint) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "CountLikesOnOwnerVideos")

	start := time.Now()
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Joins("JOIN videos ON videos.id = likes.target_id AND videos.deleted_at IS NULL").
		Where("likes.target_kind = ? AND videos.owner_id = ?", model.TargetVideo, ownerID).
		Count(&count).Error
	logResult(ctx, "Owner video likes counted", start, err)
	return count, err
}

// DeleteLikesForTarget removes every like on a target, used when the target is deleted
func (r *RelationRepository) DeleteLikesForTarget(ctx context.Context, targetID uint, kind model.TargetKind) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "DeleteLikesForTarget")

	start := time.Now()
	err := r.db.WithContext(ctx).
		Where("target_id = ? AND target_kind = ?", targetID, kind).
		Delete(&model.Like{}).Error
	logResult(ctx, "Target likes deleted", start, err)
	return err
}
