package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/techagentng/mediahub/config"
	"github.com/techagentng/mediahub/db"
	errs "github.com/techagentng/mediahub/errors"
	"github.com/techagentng/mediahub/models"
	"github.com/techagentng/mediahub/policy"
	"github.com/techagentng/mediahub/services/utils"
)

const (
	MsgRatingNotFound   = "Rating not found"
	MsgRatingNotCreated = "Rating not created"
	MsgRatingNotDeleted = "Rating not deleted"
	MsgRatingDeleted    = "Rating deleted"
	MsgNoRatings        = "No ratings found"
)

type RatingService interface {
	List(ctx context.Context) ([]models.Rating, error)
	ByMedia(ctx context.Context, mediaID uint) ([]models.Rating, error)
	ByUser(ctx context.Context, userID uint) ([]models.Rating, error)
	Average(ctx context.Context, mediaID uint) (float64, error)
	// Create replaces any earlier rating the user gave the media item.
	Create(ctx context.Context, userID uint, req *models.CreateRatingRequest) (*models.Rating, error)
	Delete(ctx context.Context, ratingID uint, caller policy.Caller) error
}

type ratingService struct {
	Config     *config.Config
	ratingRepo db.RatingRepository
	log        zerolog.Logger
}

func NewRatingService(ratingRepo db.RatingRepository, conf *config.Config, log zerolog.Logger) RatingService {
	return &ratingService{
		Config:     conf,
		ratingRepo: ratingRepo,
		log:        log.With().Str("service", "ratings").Logger(),
	}
}

func (s *ratingService) List(ctx context.Context) ([]models.Rating, error) {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	ratings, err := s.ratingRepo.FindAll(ctx)
	if err != nil {
		return nil, storeFailure(s.log, "listRatings", err)
	}
	if len(ratings) == 0 {
		return nil, errs.NotFound(MsgNoRatings)
	}
	return ratings, nil
}

func (s *ratingService) ByMedia(ctx context.Context, mediaID uint) ([]models.Rating, error) {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	ratings, err := s.ratingRepo.FindByMediaID(ctx, mediaID)
	if err != nil {
		return nil, storeFailure(s.log, "ratingsByMedia", err)
	}
	if len(ratings) == 0 {
		return nil, errs.NotFound("No ratings found for media")
	}
	return ratings, nil
}

func (s *ratingService) ByUser(ctx context.Context, userID uint) ([]models.Rating, error) {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	ratings, err := s.ratingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storeFailure(s.log, "ratingsByUser", err)
	}
	if len(ratings) == 0 {
		return nil, errs.NotFound("No ratings found for user")
	}
	return ratings, nil
}

func (s *ratingService) Average(ctx context.Context, mediaID uint) (float64, error) {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	avg, err := s.ratingRepo.AverageByMediaID(ctx, mediaID)
	if err != nil {
		return 0, storeFailure(s.log, "averageRating", err)
	}
	if !avg.Valid {
		return 0, errs.NotFound(MsgNoRatings)
	}
	return avg.Float64, nil
}

func (s *ratingService) Create(ctx context.Context, userID uint, req *models.CreateRatingRequest) (*models.Rating, error) {
	if req.RatingValue < models.MinRating || req.RatingValue > models.MaxRating {
		return nil, errs.Validation(fmt.Sprintf("rating_value must be between %d and %d", models.MinRating, models.MaxRating))
	}

	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	existing, err := s.ratingRepo.FindByMediaAndUser(ctx, req.MediaID, userID)
	switch {
	case err == nil:
		if _, err := s.ratingRepo.Delete(ctx, existing.RatingID, policy.Caller{UserID: userID}); err != nil {
			return nil, storeFailure(s.log, "replaceRating", err)
		}
	case !utils.IsNotFound(err):
		return nil, storeFailure(s.log, "createRating", err)
	}

	rating := &models.Rating{UserID: userID, MediaID: req.MediaID, RatingValue: req.RatingValue}
	rows, err := s.ratingRepo.Create(ctx, rating)
	if err != nil {
		if utils.IsDuplicate(err) {
			return nil, errs.Conflict("Rating was replaced concurrently, retry")
		}
		return nil, storeFailure(s.log, "createRating", err)
	}
	if rows == 0 {
		return nil, errs.OperationFailed(MsgRatingNotCreated)
	}
	return rating, nil
}

func (s *ratingService) Delete(ctx context.Context, ratingID uint, caller policy.Caller) error {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	rows, err := s.ratingRepo.Delete(ctx, ratingID, caller)
	if err != nil {
		return storeFailure(s.log, "deleteRating", err)
	}
	if rows == 0 {
		return errs.OperationFailed(MsgRatingNotDeleted)
	}
	return nil
}
