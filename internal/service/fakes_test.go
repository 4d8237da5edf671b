package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Payphone-Digital/videotube/internal/dto"
	"github.com/Payphone-Digital/videotube/internal/model"
	"gorm.io/gorm"
)

// The fakes return the same gorm sentinel errors the repositories do.

type fakeUsers struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*model.User
	// failRefreshWrite makes UpdateRefreshToken fail, to exercise the non-transactional path
	failRefreshWrite error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uint]*model.User{}}
}

func (f *fakeUsers) copyOf(u *model.User) *model.User {
	c := *u
	if u.RefreshToken != nil {
		token := *u.RefreshToken
		c.RefreshToken = &token
	}
	c.WatchHistory = slices.Clone(u.WatchHistory)
	return &c
}

func (f *fakeUsers) GetByID(_ context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f.copyOf(u), nil
}

func (f *fakeUsers) GetByIdentifier(_ context.Context, username, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if username == "" && email == "" {
		return nil, gorm.ErrRecordNotFound
	}
	for _, u := range f.byID {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return f.copyOf(u), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.byID[user.ID] = f.copyOf(user)
	return nil
}

func (f *fakeUsers) UpdateFields(_ context.Context, id uint, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "password":
			u.Password = v.(string)
		case "full_name":
			u.FullName = v.(string)
		case "email":
			for _, other := range f.byID {
				if other.ID != id && other.Email == v.(string) {
					return gorm.ErrDuplicatedKey
				}
			}
			u.Email = v.(string)
		case "avatar_url":
			u.AvatarURL = v.(string)
		case "cover_image_url":
			u.CoverImageURL = v.(string)
		}
	}
	return nil
}

func (f *fakeUsers) UpdateRefreshToken(_ context.Context, id uint, refreshToken *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRefreshWrite != nil {
		return f.failRefreshWrite
	}
	u, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if refreshToken == nil {
		u.RefreshToken = nil
		return nil
	}
	token := *refreshToken
	u.RefreshToken = &token
	return nil
}

func (f *fakeUsers) AppendWatchHistory(_ context.Context, userID, videoID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	history := slices.DeleteFunc(slices.Clone(u.WatchHistory), func(id uint) bool { return id == videoID })
	u.WatchHistory = append(history, videoID)
	return nil
}

// stored returns the live record for assertions
func (f *fakeUsers) stored(id uint) *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.copyOf(f.byID[id])
}

type fakeVideos struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*model.Video
}

func newFakeVideos() *fakeVideos {
	return &fakeVideos{byID: map[uint]*model.Video{}}
}

func (f *fakeVideos) List(_ context.Context, filter dto.VideoFilter, includeUnpublished bool) ([]model.Video, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Video
	for id := uint(1); id <= f.nextID; id++ {
		v, ok := f.byID[id]
		if !ok {
			continue
		}
		if filter.UserID != 0 && v.OwnerID != filter.UserID {
			continue
		}
		if !includeUnpublished && !v.IsPublished {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (f *fakeVideos) GetByID(_ context.Context, id uint) (*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *v
	return &c, nil
}

func (f *fakeVideos) GetByIDs(_ context.Context, ids []uint) ([]model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Video{}
	for _, id := range ids {
		if v, ok := f.byID[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVideos) Create(_ context.Context, video *model.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	video.ID = f.nextID
	c := *video
	f.byID[video.ID] = &c
	return nil
}

func (f *fakeVideos) Save(_ context.Context, video *model.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[video.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	c := *video
	f.byID[video.ID] = &c
	return nil
}

func (f *fakeVideos) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeVideos) IncrementViews(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Views++
	return nil
}

func (f *fakeVideos) OwnerTotals(_ context.Context, ownerID uint) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count, views int64
	for _, v := range f.byID {
		if v.OwnerID == ownerID {
			count++
			views += v.Views
		}
	}
	return count, views, nil
}

type fakeComments struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*model.Comment
}

func newFakeComments() *fakeComments {
	return &fakeComments{byID: map[uint]*model.Comment{}}
}

func (f *fakeComments) ListByVideo(_ context.Context, videoID uint, limit, offset int) ([]model.Comment, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []model.Comment
	for id := f.nextID; id >= 1; id-- {
		if c, ok := f.byID[id]; ok && c.VideoID == videoID {
			all = append(all, *c)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Comment{}, total, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], total, nil
}

func (f *fakeComments) GetByID(_ context.Context, id uint) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeComments) Create(_ context.Context, comment *model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	comment.ID = f.nextID
	c := *comment
	f.byID[comment.ID] = &c
	return nil
}

func (f *fakeComments) Save(_ context.Context, comment *model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *comment
	f.byID[comment.ID] = &c
	return nil
}

func (f *fakeComments) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeTweets struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*model.Tweet
}

func newFakeTweets() *fakeTweets {
	return &fakeTweets{byID: map[uint]*model.Tweet{}}
}

func (f *fakeTweets) ListByOwner(_ context.Context, ownerID uint) ([]model.Tweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Tweet{}
	for id := f.nextID; id >= 1; id-- {
		if t, ok := f.byID[id]; ok && t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTweets) GetByID(_ context.Context, id uint) (*model.Tweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *t
	return &c, nil
}

func (f *fakeTweets) Create(_ context.Context, tweet *model.Tweet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	tweet.ID = f.nextID
	c := *tweet
	f.byID[tweet.ID] = &c
	return nil
}

func (f *fakeTweets) Save(_ context.Context, tweet *model.Tweet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *tweet
	f.byID[tweet.ID] = &c
	return nil
}

func (f *fakeTweets) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakePlaylists struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*model.Playlist
	saves  int
}

func newFakePlaylists() *fakePlaylists {
	return &fakePlaylists{byID: map[uint]*model.Playlist{}}
}

func (f *fakePlaylists) ListByOwner(_ context.Context, ownerID uint) ([]model.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Playlist{}
	for id := uint(1); id <= f.nextID; id++ {
		if p, ok := f.byID[id]; ok && p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlaylists) GetByID(_ context.Context, id uint) (*model.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *p
	c.VideoIDs = slices.Clone(p.VideoIDs)
	return &c, nil
}

func (f *fakePlaylists) Create(_ context.Context, playlist *model.Playlist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	playlist.ID = f.nextID
	c := *playlist
	f.byID[playlist.ID] = &c
	return nil
}

func (f *fakePlaylists) Save(_ context.Context, playlist *model.Playlist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	c := *playlist
	c.VideoIDs = slices.Clone(playlist.VideoIDs)
	f.byID[playlist.ID] = &c
	return nil
}

func (f *fakePlaylists) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

type likeKey struct {
	actor, target uint
	kind          model.TargetKind
}

type subKey struct {
	subscriber, channel uint
}

// fakeRelations keeps tuples in sets, so a toggle is atomic under its mutex
// the same way the repository's transaction plus unique index make it atomic.
type fakeRelations struct {
	mu    sync.Mutex
	likes map[likeKey]time.Time
	subs  map[subKey]time.Time
	users *fakeUsers
	clock time.Time
}

func newFakeRelations(users *fakeUsers) *fakeRelations {
	return &fakeRelations{
		likes: map[likeKey]time.Time{},
		subs:  map[subKey]time.Time{},
		users: users,
		clock: time.Unix(1_700_000_000, 0),
	}
}

func (f *fakeRelations) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRelations) ToggleLike(_ context.Context, actorID, targetID uint, kind model.TargetKind) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := likeKey{actorID, targetID, kind}
	if _, ok := f.likes[key]; ok {
		delete(f.likes, key)
		return false, nil
	}
	f.likes[key] = f.tick()
	return true, nil
}

func (f *fakeRelations) ToggleSubscription(_ context.Context, subscriberID, channelID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := subKey{subscriberID, channelID}
	if _, ok := f.subs[key]; ok {
		delete(f.subs, key)
		return false, nil
	}
	f.subs[key] = f.tick()
	return true, nil
}

func (f *fakeRelations) LikedVideoIDs(_ context.Context, userID uint) ([]uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	type liked struct {
		id uint
		at time.Time
	}
	var all []liked
	for k, at := range f.likes {
		if k.actor == userID && k.kind == model.TargetVideo {
			all = append(all, liked{k.target, at})
		}
	}
	slices.SortFunc(all, func(a, b liked) int { return b.at.Compare(a.at) })
	ids := make([]uint, 0, len(all))
	for _, l := range all {
		ids = append(ids, l.id)
	}
	return ids, nil
}

func (f *fakeRelations) ListSubscribers(ctx context.Context, channelID uint) ([]model.Subscription, error) {
	f.mu.Lock()
	var subs []model.Subscription
	for k, at := range f.subs {
		if k.channel == channelID {
			subs = append(subs, model.Subscription{SubscriberID: k.subscriber, ChannelID: k.channel, CreatedAt: at})
		}
	}
	f.mu.Unlock()
	for i := range subs {
		subs[i].Subscriber, _ = f.users.GetByID(ctx, subs[i].SubscriberID)
	}
	return subs, nil
}

func (f *fakeRelations) ListSubscriptions(ctx context.Context, subscriberID uint) ([]model.Subscription, error) {
	f.mu.Lock()
	var subs []model.Subscription
	for k, at := range f.subs {
		if k.subscriber == subscriberID {
			subs = append(subs, model.Subscription{SubscriberID: k.subscriber, ChannelID: k.channel, CreatedAt: at})
		}
	}
	f.mu.Unlock()
	for i := range subs {
		subs[i].Channel, _ = f.users.GetByID(ctx, subs[i].ChannelID)
	}
	return subs, nil
}

func (f *fakeRelations) CountSubscribers(_ context.Context, channelID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.subs {
		if k.channel == channelID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRelations) CountLikesOnOwnerVideos(_ context.Context, _ uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.likes {
		if k.kind == model.TargetVideo {
			n++
		}
	}
	return n, nil
}

func (f *fakeRelations) DeleteLikesForTarget(_ context.Context, targetID uint, kind model.TargetKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.likes {
		if k.target == targetID && k.kind == kind {
			delete(f.likes, k)
		}
	}
	return nil
}

func (f *fakeRelations) likeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.likes)
}
