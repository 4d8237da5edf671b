package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/videotube/internal/model"
	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"github.com/Payphone-Digital/videotube/pkg/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "UserGetByID")

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, err
	}

	start := time.Now()
	var user model.User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.DebugWithContext(ctx, "Failed to get user by ID").
			Uint("user_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved successfully").
		Uint("user_id", id).
		Duration(duration).
		Log()

	return &user, nil
}

// GetByIdentifier finds a user whose username or email matches.
// Empty arguments are ignored; with both empty it returns gorm.ErrRecordNotFound.
func (r *UserRepository) GetByIdentifier(ctx context.Context, username, email string) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "UserGetByIdentifier")

	if username == "" && email == "" {
		return nil, gorm.ErrRecordNotFound
	}

	query := r.db.WithContext(ctx).Model(&model.User{})
	switch {
	case username != "" && email != "":
		query = query.Where("username = ? OR email = ?", username, email)
	case username != "":
		query = query.Where("username = ?", username)
	default:
		query = query.Where("email = ?", email)
	}

	start := time.Now()
	var user model.User
	result := query.First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.DebugWithContext(ctx, "User lookup by identifier failed").
			String("username", username).
			String("email", email).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved by identifier").
		Uint("user_id", user.ID).
		Duration(duration).
		Log()

	return &user, nil
}

// GetByIDs returns the users with the given ids, in no particular order
func (r *UserRepository) GetByIDs(ctx context.Context, ids []uint) ([]model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "UserGetByIDs")

	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}

	start := time.Now()
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	logResult(ctx, "Users fetched by ids", start, err)
	return users, err
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "UserCreate")

	logger.DebugWithContext(ctx, "Creating new user").
		String("username", user.Username).
		String("email", user.Email).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("username", user.Username).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "User created successfully").
		Uint("user_id", user.ID).
		Duration(duration).
		Log()

	return nil
}

// UpdateFields updates the given columns without running record validation
func (r *UserRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "UserUpdateFields")

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update user").
			Uint("user_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No user found to update").
			Uint("user_id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.DebugWithContext(ctx, "User updated successfully").
		Uint("user_id", id).
		Int64("rows_affected", result.RowsAffected).
		Duration(duration).
		Log()

	return nil
}

// UpdateRefreshToken stores the active refresh token. A nil token sets the
// column to NULL so no later comparison can match it.
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id uint, refreshToken *string) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "UserUpdateRefreshToken")

	logger.DebugWithContext(ctx, "Updating refresh token").
		Uint("user_id", id).
		Bool("has_token", refreshToken != nil).
		Log()

	var value interface{}
	if refreshToken != nil {
		value = *refreshToken
	}

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("refresh_token", value)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update refresh token").
			Uint("user_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No user found to update refresh token").
			Uint("user_id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.DebugWithContext(ctx, "Refresh token updated successfully").
		Uint("user_id", id).
		Duration(duration).
		Log()

	return nil
}

// AppendWatchHistory moves videoID to the end of the user's watch history
func (r *UserRepository) AppendWatchHistory(ctx context.Context, userID, videoID uint) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "UserAppendWatchHistory")

	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "watch_history").
			Where("id = ?", userID).
			First(&user).Error; err != nil {
			return err
		}

		history := make([]uint, 0, len(user.WatchHistory)+1)
		for _, id := range user.WatchHistory {
			if id != videoID {
				history = append(history, id)
			}
		}
		history = append(history, videoID)

		return tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("watch_history", datatypes.JSONSlice[uint](history)).Error
	})

	logResult(ctx, "Watch history appended", start, err)
	return err
}

// Delete performs hard delete on user
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "UserDelete")

	start := time.Now()
	result := r.db.WithContext(ctx).Unscoped().Delete(&model.User{}, id)
	if result.Error == nil && result.RowsAffected == 0 {
		result.Error = gorm.ErrRecordNotFound
	}
	logResult(ctx, "User deleted", start, result.Error)
	return result.Error
}
