package db

import (
	"context"

	"github.com/pkg/errors"
	"github.com/techagentng/mediahub/models"
	"github.com/techagentng/mediahub/policy"
	"gorm.io/gorm"
)

type CommentRepository interface {
	FindAll(ctx context.Context) ([]models.Comment, error)
	FindByID(ctx context.Context, commentID uint) (*models.Comment, error)
	FindByMediaID(ctx context.Context, mediaID uint) ([]models.Comment, error)
	FindByUserID(ctx context.Context, userID uint) ([]models.Comment, error)
	CountByMediaID(ctx context.Context, mediaID uint) (int64, error)
	Create(ctx context.Context, comment *models.Comment) (int64, error)
	UpdateText(ctx context.Context, commentID uint, caller policy.Caller, text string) (int64, error)
	Delete(ctx context.Context, commentID uint, caller policy.Caller) (int64, error)
	DeleteByMediaID(ctx context.Context, mediaID uint) (int64, error)
	WithTx(tx *gorm.DB) CommentRepository
}

type commentRepo struct {
	DB *gorm.DB
}

func NewCommentRepo(db *GormDB) CommentRepository {
	return &commentRepo{db.DB}
}

func (r *commentRepo) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepo{tx}
}

func (r *commentRepo) FindAll(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.DB.WithContext(ctx).Order("comment_id ASC").Find(&comments).Error; err != nil {
		return nil, errors.Wrap(err, "fetch all comments")
	}
	return comments, nil
}

func (r *commentRepo) FindByID(ctx context.Context, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.DB.WithContext(ctx).Where("comment_id = ?", commentID).First(&comment).Error; err != nil {
		return nil, errors.Wrap(err, "fetch comment by id")
	}
	return &comment, nil
}

func (r *commentRepo) FindByMediaID(ctx context.Context, mediaID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.DB.WithContext(ctx).Where("media_id = ?", mediaID).Order("comment_id ASC").Find(&comments).Error; err != nil {
		return nil, errors.Wrap(err, "fetch comments by media")
	}
	return comments, nil
}

func (r *commentRepo) FindByUserID(ctx context.Context, userID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("comment_id ASC").Find(&comments).Error; err != nil {
		return nil, errors.Wrap(err, "fetch comments by user")
	}
	return comments, nil
}

func (r *commentRepo) CountByMediaID(ctx context.Context, mediaID uint) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Comment{}).Where("media_id = ?", mediaID).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count comments")
	}
	return count, nil
}

func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	result := r.DB.WithContext(ctx).Create(comment)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "insert comment")
	}
	return result.RowsAffected, nil
}

func (r *commentRepo) UpdateText(ctx context.Context, commentID uint, caller policy.Caller, text string) (int64, error) {
	result := r.DB.WithContext(ctx).Model(&models.Comment{}).
		Where("comment_id = ?", commentID).
		Scopes(policy.OwnerScope(caller)).
		Update("comment_text", text)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "update comment")
	}
	return result.RowsAffected, nil
}

func (r *commentRepo) Delete(ctx context.Context, commentID uint, caller policy.Caller) (int64, error) {
	result := r.DB.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Scopes(policy.OwnerScope(caller)).
		Delete(&models.Comment{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "delete comment")
	}
	return result.RowsAffected, nil
}

func (r *commentRepo) DeleteByMediaID(ctx context.Context, mediaID uint) (int64, error) {
	result := r.DB.WithContext(ctx).Where("media_id = ?", mediaID).Delete(&models.Comment{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "delete comments by media")
	}
	return result.RowsAffected, nil
}
