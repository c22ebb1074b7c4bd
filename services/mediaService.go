package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/techagentng/mediahub/config"
	"github.com/techagentng/mediahub/db"
	errs "github.com/techagentng/mediahub/errors"
	"github.com/techagentng/mediahub/models"
	"github.com/techagentng/mediahub/policy"
	"github.com/techagentng/mediahub/services/utils"
	"github.com/techagentng/mediahub/storage"
	"gorm.io/gorm"
)

const (
	MsgMediaNotFound   = "Media not found"
	MsgMediaNotCreated = "Media not created"
	MsgMediaNotUpdated = "Media not updated"
	MsgMediaNotDeleted = "Media not deleted"
	MsgMediaDeleted    = "Media deleted"
	MsgFileNotDeleted  = "File not deleted"
)

// MediaService owns media items and the ranked views composed over their
// engagement.
type MediaService interface {
	ListAll(ctx context.Context, limit, offset int) ([]models.MediaItem, error)
	GetByID(ctx context.Context, mediaID uint) (*models.MediaItem, error)
	ListByTag(ctx context.Context, tagName string) ([]models.MediaItem, error)
	ListByTagID(ctx context.Context, tagID uint) ([]models.MediaItem, error)
	Create(ctx context.Context, ownerID uint, req *models.CreateMediaRequest) (*models.MediaItem, error)
	Update(ctx context.Context, mediaID uint, caller policy.Caller, req *models.UpdateMediaRequest) (*models.MediaItem, error)
	Delete(ctx context.Context, mediaID uint, caller policy.Caller, token string) error
	MostLiked(ctx context.Context) (*models.RankedMediaItem, error)
	MostCommented(ctx context.Context) (*models.RankedMediaItem, error)
	HighestRated(ctx context.Context) (*models.RankedMediaItem, error)
	Count(ctx context.Context) (int64, error)
}

type mediaService struct {
	Config      *config.Config
	tx          db.Transactor
	mediaRepo   db.MediaRepository
	likeRepo    db.LikeRepository
	commentRepo db.CommentRepository
	ratingRepo  db.RatingRepository
	tagRepo     db.TagRepository
	files       storage.FileStore
	notifier    Notifier
	log         zerolog.Logger
}

// MediaDeps groups the collaborators of the media service.
type MediaDeps struct {
	Tx       db.Transactor
	Media    db.MediaRepository
	Likes    db.LikeRepository
	Comments db.CommentRepository
	Ratings  db.RatingRepository
	Tags     db.TagRepository
	Files    storage.FileStore
	Notifier Notifier
}

func NewMediaService(deps MediaDeps, conf *config.Config, log zerolog.Logger) MediaService {
	return &mediaService{
		Config:      conf,
		tx:          deps.Tx,
		mediaRepo:   deps.Media,
		likeRepo:    deps.Likes,
		commentRepo: deps.Comments,
		ratingRepo:  deps.Ratings,
		tagRepo:     deps.Tags,
		files:       deps.Files,
		notifier:    deps.Notifier,
		log:         log.With().Str("service", "media").Logger(),
	}
}

func (m *mediaService) withUploadURL(media *models.MediaItem) {
	media.Filename, media.Thumbnail = utils.WithUploadURL(m.Config.UploadURL, media.Filename)
}

func (m *mediaService) ListAll(ctx context.Context, limit, offset int) ([]models.MediaItem, error) {
	ctx, cancel := utils.WithTimeout(ctx, m.Config.QueryTimeout)
	defer cancel()

	media, err := m.mediaRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, storeFailure(m.log, "listMedia", err)
	}
	if len(media) == 0 {
		return nil, errs.NotFound("No media found")
	}
	for i := range media {
		m.withUploadURL(&media[i])
	}
	return media, nil
}

func (m *mediaService) GetByID(ctx context.Context, mediaID uint) (*models.MediaItem, error) {
	ctx, cancel := utils.WithTimeout(ctx, m.Config.QueryTimeout)
	defer cancel()

	media, err := m.mediaRepo.FindByID(ctx, mediaID)
	if err != nil {
		return nil, notFoundAs(m.log, "getMedia", err, MsgMediaNotFound)
	}
	m.withUploadURL(media)
	return media, nil
}

func (m *mediaService) ListByTag(ctx context.Context, tagName string) ([]models.MediaItem, error) {
	ctx, cancel := utils.WithTimeout(ctx, m.Config.QueryTimeout)
	defer cancel()

	media, err := m.mediaRepo.FindByTagName(ctx, tagName)
	if err != nil {
		return nil, storeFailure(m.log, "listMediaByTag", err)
	}
	if len(media) == 0 {
		return nil, errs.NotFound("No media found for tag")
	}
	for i := range media {
		m.withUploadURL(&media[i])
	}
	return media, nil
}

func (m *mediaService) ListByTagID(ctx context.Context, tagID uint) ([]models.MediaItem, error) {
	ctx, cancel := utils.WithTimeout(ctx, m.Config.QueryTimeout)
	defer cancel()

	media, err := m.mediaRepo.FindByTagID(ctx, tagID)
	if err != nil {
		return nil, storeFailure(m.log, "listMediaByTagID", err)
	}
	if len(media) == 0 {
		return nil, errs.NotFound("No media found for tag")
	}
	for i := range media {
		m.withUploadURL(&media[i])
	}
	return media, nil
}

func (m *mediaService) Create(ctx context.Context, ownerID uint, req *models.CreateMediaRequest) (*models.MediaItem, error) {
	media := &models.MediaItem{
		UserID:      ownerID,
		Filename:    utils.StripUploadURL(m.Config.UploadURL, req.Filename),
		Filesize:    req.Filesize,
		MediaType:   req.MediaType,
		Title:       req.Title,
		Description: req.Description,
	}

	qctx, cancel := utils.WithTimeout(ctx, m.Config.QueryTimeout)
	rows, err := m.mediaRepo.Create(qctx, media)
	cancel()
	if err != nil {
		return nil, storeFailure(m.log, "createMedia", err)
	}
	if rows == 0 || media.MediaID == 0 {
		return nil, errs.OperationFailed(MsgMediaNotCreated)
	}

	created, err := m.GetByID(ctx, media.MediaID)
	if err != nil {
		return nil, err
	}
	m.notifyCount(ctx)
	return created, nil
}

func (m *mediaService) Update(ctx context.Context, mediaID uint, caller policy.Caller, req *models.UpdateMediaRequest) (*models.MediaItem, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, errs.Validation("title cannot be empty")
		}
		fields["title"] = title
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if len(fields) == 0 {
		return nil, errs.Validation("Nothing to update")
	}

	qctx, cancel := utils.WithTimeout(ctx, m.Config.QueryTimeout)
	rows, err := m.mediaRepo.Update(qctx, mediaID, caller, fields)
	cancel()
	if err != nil {
		return nil, storeFailure(m.log, "updateMedia", err)
	}
	if rows == 0 {
		return nil, errs.OperationFailed(MsgMediaNotUpdated)
	}
	return m.GetByID(ctx, mediaID)
}

// Delete removes a media item with all of its engagement and tag
// associations, then the stored file. Every row removal happens in one
// transaction that only commits once the file store confirms the delete.
func (m *mediaService) Delete(ctx context.Context, mediaID uint, caller policy.Caller, token string) error {
	qctx, cancel := utils.WithTimeout(ctx, m.Config.QueryTimeout)
	media, err := m.mediaRepo.FindByID(qctx, mediaID)
	cancel()
	if err != nil {
		return notFoundAs(m.log, "deleteMedia", err, MsgMediaNotFound)
	}
	if !policy.Permits(caller, media.UserID) {
		return errs.OperationFailed(MsgMediaNotDeleted)
	}
	key := utils.StripUploadURL(m.Config.UploadURL, media.Filename)

	tctx, cancel := utils.WithTimeout(ctx, m.Config.QueryTimeout+m.Config.StorageTimeout)
	defer cancel()

	err = m.tx.WithTransaction(tctx, func(tx *gorm.DB) error {
		if _, err := m.likeRepo.WithTx(tx).DeleteByMediaID(tctx, mediaID); err != nil {
			return err
		}
		if _, err := m.commentRepo.WithTx(tx).DeleteByMediaID(tctx, mediaID); err != nil {
			return err
		}
		if _, err := m.ratingRepo.WithTx(tx).DeleteByMediaID(tctx, mediaID); err != nil {
			return err
		}
		if _, err := m.tagRepo.WithTx(tx).DeleteAssociationsByMediaID(tctx, mediaID); err != nil {
			return err
		}
		rows, err := m.mediaRepo.WithTx(tx).Delete(tctx, mediaID, caller)
		if err != nil {
			return err
		}
		if rows == 0 {
			return errs.OperationFailed(MsgMediaNotDeleted)
		}

		sctx, scancel := utils.WithTimeout(tctx, m.Config.StorageTimeout)
		defer scancel()
		if err := m.files.Delete(sctx, key, token); err != nil {
			m.log.Error().Err(err).Uint("media_id", mediaID).Str("filename", key).Msg("file store rejected delete, rolling back")
			return errs.Dependency(MsgFileNotDeleted, err)
		}
		return nil
	})
	if err != nil {
		return storeFailure(m.log, "deleteMedia", err)
	}

	m.log.Info().Uint("media_id", mediaID).Uint("user_id", caller.UserID).Msg("media deleted")
	m.notifyCount(ctx)
	return nil
}

func (m *mediaService) MostLiked(ctx context.Context) (*models.RankedMediaItem, error) {
	return m.ranked(ctx, db.MostLikedView)
}

func (m *mediaService) MostCommented(ctx context.Context) (*models.RankedMediaItem, error) {
	return m.ranked(ctx, db.MostCommentedView)
}

func (m *mediaService) HighestRated(ctx context.Context) (*models.RankedMediaItem, error) {
	return m.ranked(ctx, db.HighestRatedView)
}

func (m *mediaService) ranked(ctx context.Context, view string) (*models.RankedMediaItem, error) {
	ctx, cancel := utils.WithTimeout(ctx, m.Config.QueryTimeout)
	defer cancel()

	media, err := m.mediaRepo.FindRanked(ctx, view)
	if err != nil {
		return nil, notFoundAs(m.log, view, err, "No media found")
	}
	m.withUploadURL(&media.MediaItem)
	return media, nil
}

func (m *mediaService) Count(ctx context.Context) (int64, error) {
	ctx, cancel := utils.WithTimeout(ctx, m.Config.QueryTimeout)
	defer cancel()

	count, err := m.mediaRepo.Count(ctx)
	if err != nil {
		return 0, storeFailure(m.log, "countMedia", err)
	}
	return count, nil
}

func (m *mediaService) notifyCount(ctx context.Context) {
	if m.notifier == nil {
		return
	}
	count, err := m.Count(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("unable to count media for notification")
		return
	}
	m.notifier.MediaCountChanged(count)
}
