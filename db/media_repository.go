package db

import (
	"context"

	"github.com/pkg/errors"
	"github.com/techagentng/mediahub/models"
	"github.com/techagentng/mediahub/policy"
	"gorm.io/gorm"
)

type MediaRepository interface {
	FindAll(ctx context.Context, limit, offset int) ([]models.MediaItem, error)
	FindByID(ctx context.Context, mediaID uint) (*models.MediaItem, error)
	FindByTagName(ctx context.Context, tagName string) ([]models.MediaItem, error)
	FindByTagID(ctx context.Context, tagID uint) ([]models.MediaItem, error)
	FindRanked(ctx context.Context, view string) (*models.RankedMediaItem, error)
	Count(ctx context.Context) (int64, error)
	IsOwnedBy(ctx context.Context, mediaID, userID uint) (bool, error)
	Create(ctx context.Context, media *models.MediaItem) (int64, error)
	Update(ctx context.Context, mediaID uint, caller policy.Caller, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, mediaID uint, caller policy.Caller) (int64, error)
	WithTx(tx *gorm.DB) MediaRepository
}

type mediaRepo struct {
	DB *gorm.DB
}

func NewMediaRepo(db *GormDB) MediaRepository {
	return &mediaRepo{db.DB}
}

func (m *mediaRepo) WithTx(tx *gorm.DB) MediaRepository {
	return &mediaRepo{tx}
}

func (m *mediaRepo) FindAll(ctx context.Context, limit, offset int) ([]models.MediaItem, error) {
	var media []models.MediaItem
	q := m.DB.WithContext(ctx).Order("media_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&media).Error; err != nil {
		return nil, errors.Wrap(err, "fetch all media")
	}
	return media, nil
}

func (m *mediaRepo) FindByID(ctx context.Context, mediaID uint) (*models.MediaItem, error) {
	var media models.MediaItem
	if err := m.DB.WithContext(ctx).Where("media_id = ?", mediaID).First(&media).Error; err != nil {
		return nil, errors.Wrap(err, "fetch media by id")
	}
	return &media, nil
}

func (m *mediaRepo) FindByTagName(ctx context.Context, tagName string) ([]models.MediaItem, error) {
	var media []models.MediaItem
	err := m.DB.WithContext(ctx).
		Select("media_items.*").
		Joins("JOIN media_item_tags ON media_item_tags.media_id = media_items.media_id").
		Joins("JOIN tags ON tags.tag_id = media_item_tags.tag_id").
		Where("tags.tag_name = ?", tagName).
		Order("media_items.media_id ASC").
		Find(&media).Error
	if err != nil {
		return nil, errors.Wrap(err, "fetch media by tag")
	}
	return media, nil
}

func (m *mediaRepo) FindByTagID(ctx context.Context, tagID uint) ([]models.MediaItem, error) {
	var media []models.MediaItem
	err := m.DB.WithContext(ctx).
		Select("media_items.*").
		Joins("JOIN media_item_tags ON media_item_tags.media_id = media_items.media_id").
		Where("media_item_tags.tag_id = ?", tagID).
		Order("media_items.media_id ASC").
		Find(&media).Error
	if err != nil {
		return nil, errors.Wrap(err, "fetch media by tag id")
	}
	return media, nil
}

// FindRanked reads the single row exposed by one of the aggregate views.
func (m *mediaRepo) FindRanked(ctx context.Context, view string) (*models.RankedMediaItem, error) {
	var ranked models.RankedMediaItem
	if err := m.DB.WithContext(ctx).Table(view).Take(&ranked).Error; err != nil {
		return nil, errors.Wrapf(err, "fetch %s", view)
	}
	return &ranked, nil
}

func (m *mediaRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := m.DB.WithContext(ctx).Model(&models.MediaItem{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count media")
	}
	return count, nil
}

func (m *mediaRepo) IsOwnedBy(ctx context.Context, mediaID, userID uint) (bool, error) {
	var count int64
	err := m.DB.WithContext(ctx).Model(&models.MediaItem{}).
		Where("media_id = ?", mediaID).
		Scopes(policy.OwnedBy(userID)).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "check media owner")
	}
	return count > 0, nil
}

func (m *mediaRepo) Create(ctx context.Context, media *models.MediaItem) (int64, error) {
	result := m.DB.WithContext(ctx).Create(media)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "insert media")
	}
	return result.RowsAffected, nil
}

func (m *mediaRepo) Update(ctx context.Context, mediaID uint, caller policy.Caller, fields map[string]interface{}) (int64, error) {
	result := m.DB.WithContext(ctx).Model(&models.MediaItem{}).
		Where("media_id = ?", mediaID).
		Scopes(policy.OwnerScope(caller)).
		Updates(fields)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "update media")
	}
	return result.RowsAffected, nil
}

func (m *mediaRepo) Delete(ctx context.Context, mediaID uint, caller policy.Caller) (int64, error) {
	result := m.DB.WithContext(ctx).
		Where("media_id = ?", mediaID).
		Scopes(policy.OwnerScope(caller)).
		Delete(&models.MediaItem{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "delete media")
	}
	return result.RowsAffected, nil
}
