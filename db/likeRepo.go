package db

import (
	"context"

	"github.com/pkg/errors"
	"github.com/techagentng/mediahub/models"
	"github.com/techagentng/mediahub/policy"
	"gorm.io/gorm"
)

// LikeRepository interface
type LikeRepository interface {
	FindAll(ctx context.Context) ([]models.Like, error)
	FindByMediaID(ctx context.Context, mediaID uint) ([]models.Like, error)
	FindByUserID(ctx context.Context, userID uint) ([]models.Like, error)
	FindByMediaAndUser(ctx context.Context, mediaID, userID uint) (*models.Like, error)
	CountByMediaID(ctx context.Context, mediaID uint) (int64, error)
	Create(ctx context.Context, like *models.Like) (int64, error)
	Delete(ctx context.Context, likeID uint, caller policy.Caller) (int64, error)
	DeleteByMediaID(ctx context.Context, mediaID uint) (int64, error)
	WithTx(tx *gorm.DB) LikeRepository
}

// likeRepo struct
type likeRepo struct {
	DB *gorm.DB
}

// NewLikeRepo creates a new instance of LikeRepository
func NewLikeRepo(db *GormDB) LikeRepository {
	return &likeRepo{db.DB}
}

func (r *likeRepo) WithTx(tx *gorm.DB) LikeRepository {
	return &likeRepo{tx}
}

func (r *likeRepo) FindAll(ctx context.Context) ([]models.Like, error) {
	var likes []models.Like
	if err := r.DB.WithContext(ctx).Order("like_id ASC").Find(&likes).Error; err != nil {
		return nil, errors.Wrap(err, "fetch all likes")
	}
	return likes, nil
}

func (r *likeRepo) FindByMediaID(ctx context.Context, mediaID uint) ([]models.Like, error) {
	var likes []models.Like
	if err := r.DB.WithContext(ctx).Where("media_id = ?", mediaID).Order("like_id ASC").Find(&likes).Error; err != nil {
		return nil, errors.Wrap(err, "fetch likes by media")
	}
	return likes, nil
}

func (r *likeRepo) FindByUserID(ctx context.Context, userID uint) ([]models.Like, error) {
	var likes []models.Like
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("like_id ASC").Find(&likes).Error; err != nil {
		return nil, errors.Wrap(err, "fetch likes by user")
	}
	return likes, nil
}

func (r *likeRepo) FindByMediaAndUser(ctx context.Context, mediaID, userID uint) (*models.Like, error) {
	var like models.Like
	if err := r.DB.WithContext(ctx).Where("media_id = ? AND user_id = ?", mediaID, userID).First(&like).Error; err != nil {
		return nil, errors.Wrap(err, "fetch like by media and user")
	}
	return &like, nil
}

func (r *likeRepo) CountByMediaID(ctx context.Context, mediaID uint) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Like{}).Where("media_id = ?", mediaID).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count likes")
	}
	return count, nil
}

func (r *likeRepo) Create(ctx context.Context, like *models.Like) (int64, error) {
	result := r.DB.WithContext(ctx).Create(like)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "insert like")
	}
	return result.RowsAffected, nil
}

// Delete removes a like. Non-admin callers only match their own rows.
func (r *likeRepo) Delete(ctx context.Context, likeID uint, caller policy.Caller) (int64, error) {
	result := r.DB.WithContext(ctx).
		Where("like_id = ?", likeID).
		Scopes(policy.OwnerScope(caller)).
		Delete(&models.Like{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "delete like")
	}
	return result.RowsAffected, nil
}

func (r *likeRepo) DeleteByMediaID(ctx context.Context, mediaID uint) (int64, error) {
	result := r.DB.WithContext(ctx).Where("media_id = ?", mediaID).Delete(&models.Like{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "delete likes by media")
	}
	return result.RowsAffected, nil
}
