package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/techagentng/mediahub/models"
	"github.com/techagentng/mediahub/policy"
	"gorm.io/gorm"
)

type RatingRepository interface {
	FindAll(ctx context.Context) ([]models.Rating, error)
	FindByID(ctx context.Context, ratingID uint) (*models.Rating, error)
	FindByMediaID(ctx context.Context, mediaID uint) ([]models.Rating, error)
	FindByUserID(ctx context.Context, userID uint) ([]models.Rating, error)
	FindByMediaAndUser(ctx context.Context, mediaID, userID uint) (*models.Rating, error)
	// AverageByMediaID returns Valid=false when the media item has no ratings.
	AverageByMediaID(ctx context.Context, mediaID uint) (sql.NullFloat64, error)
	Create(ctx context.Context, rating *models.Rating) (int64, error)
	Delete(ctx context.Context, ratingID uint, caller policy.Caller) (int64, error)
	DeleteByMediaID(ctx context.Context, mediaID uint) (int64, error)
	WithTx(tx *gorm.DB) RatingRepository
}

type ratingRepo struct {
	DB *gorm.DB
}

func NewRatingRepo(db *GormDB) RatingRepository {
	return &ratingRepo{db.DB}
}

func (r *ratingRepo) WithTx(tx *gorm.DB) RatingRepository {
	return &ratingRepo{tx}
}

func (r *ratingRepo) FindAll(ctx context.Context) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.DB.WithContext(ctx).Order("rating_id ASC").Find(&ratings).Error; err != nil {
		return nil, errors.Wrap(err, "fetch all ratings")
	}
	return ratings, nil
}

func (r *ratingRepo) FindByID(ctx context.Context, ratingID uint) (*models.Rating, error) {
	var rating models.Rating
	if err := r.DB.WithContext(ctx).Where("rating_id = ?", ratingID).First(&rating).Error; err != nil {
		return nil, errors.Wrap(err, "fetch rating by id")
	}
	return &rating, nil
}

func (r *ratingRepo) FindByMediaID(ctx context.Context, mediaID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.DB.WithContext(ctx).Where("media_id = ?", mediaID).Order("rating_id ASC").Find(&ratings).Error; err != nil {
		return nil, errors.Wrap(err, "fetch ratings by media")
	}
	return ratings, nil
}

func (r *ratingRepo) FindByUserID(ctx context.Context, userID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("rating_id ASC").Find(&ratings).Error; err != nil {
		return nil, errors.Wrap(err, "fetch ratings by user")
	}
	return ratings, nil
}

func (r *ratingRepo) FindByMediaAndUser(ctx context.Context, mediaID, userID uint) (*models.Rating, error) {
	var rating models.Rating
	if err := r.DB.WithContext(ctx).Where("media_id = ? AND user_id = ?", mediaID, userID).First(&rating).Error; err != nil {
		return nil, errors.Wrap(err, "fetch rating by media and user")
	}
	return &rating, nil
}

func (r *ratingRepo) AverageByMediaID(ctx context.Context, mediaID uint) (sql.NullFloat64, error) {
	var avg sql.NullFloat64
	err := r.DB.WithContext(ctx).Model(&models.Rating{}).
		Select("AVG(rating_value)").
		Where("media_id = ?", mediaID).
		Row().Scan(&avg)
	if err != nil {
		return avg, errors.Wrap(err, "average rating")
	}
	return avg, nil
}

func (r *ratingRepo) Create(ctx context.Context, rating *models.Rating) (int64, error) {
	result := r.DB.WithContext(ctx).Create(rating)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "insert rating")
	}
	return result.RowsAffected, nil
}

func (r *ratingRepo) Delete(ctx context.Context, ratingID uint, caller policy.Caller) (int64, error) {
	result := r.DB.WithContext(ctx).
		Where("rating_id = ?", ratingID).
		Scopes(policy.OwnerScope(caller)).
		Delete(&models.Rating{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "delete rating")
	}
	return result.RowsAffected, nil
}

func (r *ratingRepo) DeleteByMediaID(ctx context.Context, mediaID uint) (int64, error) {
	result := r.DB.WithContext(ctx).Where("media_id = ?", mediaID).Delete(&models.Rating{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "delete ratings by media")
	}
	return result.RowsAffected, nil
}
