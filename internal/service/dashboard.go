package service

import (
	"context"

	"github.com/Payphone-Digital/videotube/internal/dto"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
)

type DashboardService struct {
	videos    VideoStore
	relations RelationStore
}

func NewDashboardService(videos VideoStore, relations RelationStore) *DashboardService {
	return &DashboardService{videos: videos, relations: relations}
}

func (s *DashboardService) Stats(ctx context.Context, ownerID uint) (*dto.ChannelStatsResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ChannelStats")

	videos, views, err := s.videos.OwnerTotals(ctx, ownerID)
	if err != nil {
		return nil, storeError(err, nil)
	}
	likes, err := s.relations.CountLikesOnOwnerVideos(ctx, ownerID)
	if err != nil {
		return nil, storeError(err, nil)
	}
	subscribers, err := s.relations.CountSubscribers(ctx, ownerID)
	if err != nil {
		return nil, storeError(err, nil)
	}

	return &dto.ChannelStatsResponse{
		TotalVideos:      videos,
		TotalViews:       views,
		TotalLikes:       likes,
		TotalSubscribers: subscribers,
	}, nil
}

// Videos lists the caller's own videos including unpublished ones
func (s *DashboardService) Videos(ctx context.Context, ownerID uint, limit, offset int) ([]dto.VideoResponse, int64, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ChannelVideos")

	filter := dto.VideoFilter{UserID: ownerID, Limit: limit, Offset: offset}
	videos, total, err := s.videos.List(ctx, filter, true)
	if err != nil {
		return nil, 0, storeError(err, nil)
	}
	return dto.NewVideoResponses(videos), total, nil
}
