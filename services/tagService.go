package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/techagentng/mediahub/config"
	"github.com/techagentng/mediahub/db"
	errs "github.com/techagentng/mediahub/errors"
	"github.com/techagentng/mediahub/models"
	"github.com/techagentng/mediahub/policy"
	"github.com/techagentng/mediahub/services/utils"
	"gorm.io/gorm"
)

const (
	MsgTagExists      = "Tag already exists"
	MsgTagNotFound    = "Tag not found"
	MsgTagNotCreated  = "Tag not created"
	MsgTagNotDeleted  = "Tag not deleted"
	MsgTagDeleted     = "Tag deleted"
	MsgTagNotAttached = "Tag not attached to media item"
	MsgTagDetached    = "Tag removed from media item"
	MsgNotMediaOwner  = "Media item not found or user does not own media item"
)

type TagService interface {
	List(ctx context.Context) ([]models.Tag, error)
	FindByName(ctx context.Context, name string) (*models.Tag, error)
	ByMedia(ctx context.Context, mediaID uint) ([]models.TagResult, error)
	Create(ctx context.Context, name string) (*models.Tag, error)
	// Attach finds or creates the tag and links it to the media item.
	Attach(ctx context.Context, tagName string, mediaID uint) (*models.MediaItem, error)
	// Detach requires the caller to own the media item. Admins get no
	// override here.
	Detach(ctx context.Context, tagID, mediaID uint, caller policy.Caller) error
	// Delete removes the tag and every association to it in one
	// transaction. A tag with no associations is not deleted.
	Delete(ctx context.Context, tagID uint) error
}

type tagService struct {
	Config    *config.Config
	tx        db.Transactor
	tagRepo   db.TagRepository
	mediaRepo db.MediaRepository
	log       zerolog.Logger
}

func NewTagService(tx db.Transactor, tagRepo db.TagRepository, mediaRepo db.MediaRepository, conf *config.Config, log zerolog.Logger) TagService {
	return &tagService{
		Config:    conf,
		tx:        tx,
		tagRepo:   tagRepo,
		mediaRepo: mediaRepo,
		log:       log.With().Str("service", "tags").Logger(),
	}
}

func (s *tagService) List(ctx context.Context) ([]models.Tag, error) {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	tags, err := s.tagRepo.FindAll(ctx)
	if err != nil {
		return nil, storeFailure(s.log, "listTags", err)
	}
	if len(tags) == 0 {
		return nil, errs.NotFound("No tags found")
	}
	return tags, nil
}

func (s *tagService) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	tag, err := s.tagRepo.FindByName(ctx, name)
	if err != nil {
		return nil, notFoundAs(s.log, "findTag", err, MsgTagNotFound)
	}
	return tag, nil
}

func (s *tagService) ByMedia(ctx context.Context, mediaID uint) ([]models.TagResult, error) {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	tags, err := s.tagRepo.FindByMediaID(ctx, mediaID)
	if err != nil {
		return nil, storeFailure(s.log, "tagsByMedia", err)
	}
	if len(tags) == 0 {
		return nil, errs.NotFound("No tags found for media")
	}
	return tags, nil
}

func (s *tagService) Create(ctx context.Context, name string) (*models.Tag, error) {
	if name == "" {
		return nil, errs.Validation("tag_name is required")
	}
	if _, err := s.FindByName(ctx, name); err == nil {
		return nil, errs.Conflict(MsgTagExists)
	} else if !errs.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	tag := &models.Tag{TagName: name}
	rows, err := s.tagRepo.Create(ctx, tag)
	if err != nil {
		if utils.IsDuplicate(err) {
			return nil, errs.Conflict(MsgTagExists)
		}
		return nil, storeFailure(s.log, "createTag", err)
	}
	if rows == 0 {
		return nil, errs.OperationFailed(MsgTagNotCreated)
	}
	return tag, nil
}

func (s *tagService) Attach(ctx context.Context, tagName string, mediaID uint) (*models.MediaItem, error) {
	if tagName == "" {
		return nil, errs.Validation("tag_name is required")
	}

	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	if _, err := s.mediaRepo.FindByID(ctx, mediaID); err != nil {
		return nil, notFoundAs(s.log, "attachTag", err, MsgMediaNotFound)
	}

	tag, err := s.tagRepo.FindByName(ctx, tagName)
	if err != nil {
		if !utils.IsNotFound(err) {
			return nil, storeFailure(s.log, "attachTag", err)
		}
		tag = &models.Tag{TagName: tagName}
		if _, err := s.tagRepo.Create(ctx, tag); err != nil {
			if !utils.IsDuplicate(err) {
				return nil, storeFailure(s.log, "attachTag", err)
			}
			// created concurrently, use the winner
			if tag, err = s.tagRepo.FindByName(ctx, tagName); err != nil {
				return nil, storeFailure(s.log, "attachTag", err)
			}
		}
	}

	rows, err := s.tagRepo.Attach(ctx, tag.TagID, mediaID)
	if err != nil {
		return nil, storeFailure(s.log, "attachTag", err)
	}
	if rows == 0 {
		return nil, errs.OperationFailed("Tag not attached")
	}

	media, err := s.mediaRepo.FindByID(ctx, mediaID)
	if err != nil {
		return nil, notFoundAs(s.log, "attachTag", err, MsgMediaNotFound)
	}
	media.Filename, media.Thumbnail = utils.WithUploadURL(s.Config.UploadURL, media.Filename)
	return media, nil
}

func (s *tagService) Detach(ctx context.Context, tagID, mediaID uint, caller policy.Caller) error {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	owned, err := s.mediaRepo.IsOwnedBy(ctx, mediaID, caller.UserID)
	if err != nil {
		return storeFailure(s.log, "detachTag", err)
	}
	if !owned {
		return errs.Unauthorized(MsgNotMediaOwner)
	}

	rows, err := s.tagRepo.Detach(ctx, tagID, mediaID)
	if err != nil {
		return storeFailure(s.log, "detachTag", err)
	}
	if rows == 0 {
		return errs.NotFound(MsgTagNotAttached)
	}
	return nil
}

func (s *tagService) Delete(ctx context.Context, tagID uint) error {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	err := s.tx.WithTransaction(ctx, func(tx *gorm.DB) error {
		tags := s.tagRepo.WithTx(tx)
		rows, err := tags.DeleteAssociationsByTagID(ctx, tagID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return errs.NotFound(MsgTagNotDeleted)
		}
		rows, err = tags.Delete(ctx, tagID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return errs.NotFound(MsgTagNotDeleted)
		}
		return nil
	})
	if err != nil {
		return storeFailure(s.log, "deleteTag", err)
	}
	return nil
}
