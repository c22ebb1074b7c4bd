package db

import (
	"context"

	"github.com/pkg/errors"
	"github.com/techagentng/mediahub/models"
	"gorm.io/gorm"
)

type TagRepository interface {
	FindAll(ctx context.Context) ([]models.Tag, error)
	FindByID(ctx context.Context, tagID uint) (*models.Tag, error)
	// FindByName compares with the store's default collation.
	FindByName(ctx context.Context, name string) (*models.Tag, error)
	FindByMediaID(ctx context.Context, mediaID uint) ([]models.TagResult, error)
	Create(ctx context.Context, tag *models.Tag) (int64, error)
	Attach(ctx context.Context, tagID, mediaID uint) (int64, error)
	Detach(ctx context.Context, tagID, mediaID uint) (int64, error)
	DeleteAssociationsByTagID(ctx context.Context, tagID uint) (int64, error)
	DeleteAssociationsByMediaID(ctx context.Context, mediaID uint) (int64, error)
	Delete(ctx context.Context, tagID uint) (int64, error)
	WithTx(tx *gorm.DB) TagRepository
}

type tagRepo struct {
	DB *gorm.DB
}

func NewTagRepo(db *GormDB) TagRepository {
	return &tagRepo{db.DB}
}

func (r *tagRepo) WithTx(tx *gorm.DB) TagRepository {
	return &tagRepo{tx}
}

func (r *tagRepo) FindAll(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.DB.WithContext(ctx).Order("tag_id ASC").Find(&tags).Error; err != nil {
		return nil, errors.Wrap(err, "fetch all tags")
	}
	return tags, nil
}

func (r *tagRepo) FindByID(ctx context.Context, tagID uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.DB.WithContext(ctx).Where("tag_id = ?", tagID).First(&tag).Error; err != nil {
		return nil, errors.Wrap(err, "fetch tag by id")
	}
	return &tag, nil
}

func (r *tagRepo) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.DB.WithContext(ctx).Where("tag_name = ?", name).First(&tag).Error; err != nil {
		return nil, errors.Wrap(err, "fetch tag by name")
	}
	return &tag, nil
}

func (r *tagRepo) FindByMediaID(ctx context.Context, mediaID uint) ([]models.TagResult, error) {
	var tags []models.TagResult
	err := r.DB.WithContext(ctx).Model(&models.Tag{}).
		Select("tags.tag_id, tags.tag_name, media_item_tags.media_id").
		Joins("JOIN media_item_tags ON media_item_tags.tag_id = tags.tag_id").
		Where("media_item_tags.media_id = ?", mediaID).
		Order("media_item_tags.id ASC").
		Scan(&tags).Error
	if err != nil {
		return nil, errors.Wrap(err, "fetch tags by media")
	}
	return tags, nil
}

func (r *tagRepo) Create(ctx context.Context, tag *models.Tag) (int64, error) {
	result := r.DB.WithContext(ctx).Create(tag)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "insert tag")
	}
	return result.RowsAffected, nil
}

func (r *tagRepo) Attach(ctx context.Context, tagID, mediaID uint) (int64, error) {
	result := r.DB.WithContext(ctx).Create(&models.MediaItemTag{TagID: tagID, MediaID: mediaID})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "insert media tag")
	}
	return result.RowsAffected, nil
}

// Detach removes every association between the tag and the media item.
func (r *tagRepo) Detach(ctx context.Context, tagID, mediaID uint) (int64, error) {
	result := r.DB.WithContext(ctx).
		Where("tag_id = ? AND media_id = ?", tagID, mediaID).
		Delete(&models.MediaItemTag{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "delete media tag")
	}
	return result.RowsAffected, nil
}

func (r *tagRepo) DeleteAssociationsByTagID(ctx context.Context, tagID uint) (int64, error) {
	result := r.DB.WithContext(ctx).Where("tag_id = ?", tagID).Delete(&models.MediaItemTag{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "delete media tags by tag")
	}
	return result.RowsAffected, nil
}

func (r *tagRepo) DeleteAssociationsByMediaID(ctx context.Context, mediaID uint) (int64, error) {
	result := r.DB.WithContext(ctx).Where("media_id = ?", mediaID).Delete(&models.MediaItemTag{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "delete media tags by media")
	}
	return result.RowsAffected, nil
}

func (r *tagRepo) Delete(ctx context.Context, tagID uint) (int64, error) {
	result := r.DB.WithContext(ctx).Where("tag_id = ?", tagID).Delete(&models.Tag{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "delete tag")
	}
	return result.RowsAffected, nil
}
