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
)

const (
	MsgLikeExists     = "Like already exists"
	MsgLikeNotFound   = "Like not found"
	MsgLikeNotCreated = "Like not created"
	MsgLikeNotDeleted = "Like not deleted"
	MsgLikeDeleted    = "Like deleted"
)

// LikeService interface
type LikeService interface {
	List(ctx context.Context) ([]models.Like, error)
	ByMedia(ctx context.Context, mediaID uint) ([]models.Like, error)
	ByUser(ctx context.Context, userID uint) ([]models.Like, error)
	ByMediaAndUser(ctx context.Context, mediaID, userID uint) (*models.Like, error)
	Count(ctx context.Context, mediaID uint) (int64, error)
	// Create rejects a second like for the same user and media item.
	Create(ctx context.Context, userID uint, req *models.CreateLikeRequest) (*models.Like, error)
	Delete(ctx context.Context, likeID uint, caller policy.Caller) error
}

type likeService struct {
	Config   *config.Config
	likeRepo db.LikeRepository
	log      zerolog.Logger
}

func NewLikeService(likeRepo db.LikeRepository, conf *config.Config, log zerolog.Logger) LikeService {
	return &likeService{
		likeRepo: likeRepo,
		Config:   conf,
		log:      log.With().Str("service", "likes").Logger(),
	}
}

func (lk *likeService) List(ctx context.Context) ([]models.Like, error) {
	ctx, cancel := utils.WithTimeout(ctx, lk.Config.QueryTimeout)
	defer cancel()

	likes, err := lk.likeRepo.FindAll(ctx)
	if err != nil {
		return nil, storeFailure(lk.log, "listLikes", err)
	}
	if len(likes) == 0 {
		return nil, errs.NotFound("No likes found")
	}
	return likes, nil
}

func (lk *likeService) ByMedia(ctx context.Context, mediaID uint) ([]models.Like, error) {
	ctx, cancel := utils.WithTimeout(ctx, lk.Config.QueryTimeout)
	defer cancel()

	likes, err := lk.likeRepo.FindByMediaID(ctx, mediaID)
	if err != nil {
		return nil, storeFailure(lk.log, "likesByMedia", err)
	}
	if len(likes) == 0 {
		return nil, errs.NotFound("No likes found for media")
	}
	return likes, nil
}

func (lk *likeService) ByUser(ctx context.Context, userID uint) ([]models.Like, error) {
	ctx, cancel := utils.WithTimeout(ctx, lk.Config.QueryTimeout)
	defer cancel()

	likes, err := lk.likeRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storeFailure(lk.log, "likesByUser", err)
	}
	if len(likes) == 0 {
		return nil, errs.NotFound("No likes found for user")
	}
	return likes, nil
}

func (lk *likeService) ByMediaAndUser(ctx context.Context, mediaID, userID uint) (*models.Like, error) {
	ctx, cancel := utils.WithTimeout(ctx, lk.Config.QueryTimeout)
	defer cancel()

	like, err := lk.likeRepo.FindByMediaAndUser(ctx, mediaID, userID)
	if err != nil {
		return nil, notFoundAs(lk.log, "likeByMediaAndUser", err, MsgLikeNotFound)
	}
	return like, nil
}

func (lk *likeService) Count(ctx context.Context, mediaID uint) (int64, error) {
	ctx, cancel := utils.WithTimeout(ctx, lk.Config.QueryTimeout)
	defer cancel()

	count, err := lk.likeRepo.CountByMediaID(ctx, mediaID)
	if err != nil {
		return 0, storeFailure(lk.log, "countLikes", err)
	}
	return count, nil
}

func (lk *likeService) Create(ctx context.Context, userID uint, req *models.CreateLikeRequest) (*models.Like, error) {
	ctx, cancel := utils.WithTimeout(ctx, lk.Config.QueryTimeout)
	defer cancel()

	_, err := lk.likeRepo.FindByMediaAndUser(ctx, req.MediaID, userID)
	switch {
	case err == nil:
		return nil, errs.Conflict(MsgLikeExists)
	case !utils.IsNotFound(err):
		return nil, storeFailure(lk.log, "createLike", err)
	}

	like := &models.Like{UserID: userID, MediaID: req.MediaID}
	rows, err := lk.likeRepo.Create(ctx, like)
	if err != nil {
		// a concurrent like can still win the race to the unique index
		if utils.IsDuplicate(err) {
			return nil, errs.Conflict(MsgLikeExists)
		}
		return nil, storeFailure(lk.log, "createLike", err)
	}
	if rows == 0 {
		return nil, errs.OperationFailed(MsgLikeNotCreated)
	}
	return like, nil
}

func (lk *likeService) Delete(ctx context.Context, likeID uint, caller policy.Caller) error {
	ctx, cancel := utils.WithTimeout(ctx, lk.Config.QueryTimeout)
	defer cancel()

	rows, err := lk.likeRepo.Delete(ctx, likeID, caller)
	if err != nil {
		return storeFailure(lk.log, "deleteLike", err)
	}
	if rows == 0 {
		return errs.OperationFailed(MsgLikeNotDeleted)
	}
	return nil
}
