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
	MsgCommentNotFound   = "Comment not found"
	MsgCommentNotCreated = "Comment not created"
	MsgCommentNotUpdated = "Comment not updated"
	MsgCommentNotDeleted = "Comment not deleted"
	MsgCommentDeleted    = "Comment deleted"
)

type CommentService interface {
	List(ctx context.Context) ([]models.Comment, error)
	GetByID(ctx context.Context, commentID uint) (*models.Comment, error)
	ByMedia(ctx context.Context, mediaID uint) ([]models.Comment, error)
	ByUser(ctx context.Context, userID uint) ([]models.Comment, error)
	Count(ctx context.Context, mediaID uint) (int64, error)
	Create(ctx context.Context, userID uint, req *models.CreateCommentRequest) (*models.Comment, error)
	Update(ctx context.Context, commentID uint, caller policy.Caller, req *models.UpdateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, commentID uint, caller policy.Caller) error
}

type commentService struct {
	Config      *config.Config
	commentRepo db.CommentRepository
	log         zerolog.Logger
}

func NewCommentService(commentRepo db.CommentRepository, conf *config.Config, log zerolog.Logger) CommentService {
	return &commentService{
		Config:      conf,
		commentRepo: commentRepo,
		log:         log.With().Str("service", "comments").Logger(),
	}
}

func (s *commentService) List(ctx context.Context) ([]models.Comment, error) {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	comments, err := s.commentRepo.FindAll(ctx)
	if err != nil {
		return nil, storeFailure(s.log, "listComments", err)
	}
	if len(comments) == 0 {
		return nil, errs.NotFound("No comments found")
	}
	return comments, nil
}

func (s *commentService) GetByID(ctx context.Context, commentID uint) (*models.Comment, error) {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, notFoundAs(s.log, "getComment", err, MsgCommentNotFound)
	}
	return comment, nil
}

func (s *commentService) ByMedia(ctx context.Context, mediaID uint) ([]models.Comment, error) {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	comments, err := s.commentRepo.FindByMediaID(ctx, mediaID)
	if err != nil {
		return nil, storeFailure(s.log, "commentsByMedia", err)
	}
	if len(comments) == 0 {
		return nil, errs.NotFound("No comments found for media")
	}
	return comments, nil
}

func (s *commentService) ByUser(ctx context.Context, userID uint) ([]models.Comment, error) {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	comments, err := s.commentRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storeFailure(s.log, "commentsByUser", err)
	}
	if len(comments) == 0 {
		return nil, errs.NotFound("No comments found for user")
	}
	return comments, nil
}

func (s *commentService) Count(ctx context.Context, mediaID uint) (int64, error) {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	count, err := s.commentRepo.CountByMediaID(ctx, mediaID)
	if err != nil {
		return 0, storeFailure(s.log, "countComments", err)
	}
	return count, nil
}

func (s *commentService) Create(ctx context.Context, userID uint, req *models.CreateCommentRequest) (*models.Comment, error) {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	comment := &models.Comment{UserID: userID, MediaID: req.MediaID, CommentText: req.CommentText}
	rows, err := s.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, storeFailure(s.log, "createComment", err)
	}
	if rows == 0 {
		return nil, errs.OperationFailed(MsgCommentNotCreated)
	}
	return comment, nil
}

// Update only touches comment_text, scoped to the caller unless admin.
func (s *commentService) Update(ctx context.Context, commentID uint, caller policy.Caller, req *models.UpdateCommentRequest) (*models.Comment, error) {
	qctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	rows, err := s.commentRepo.UpdateText(qctx, commentID, caller, req.CommentText)
	cancel()
	if err != nil {
		return nil, storeFailure(s.log, "updateComment", err)
	}
	if rows == 0 {
		return nil, errs.OperationFailed(MsgCommentNotUpdated)
	}
	return s.GetByID(ctx, commentID)
}

func (s *commentService) Delete(ctx context.Context, commentID uint, caller policy.Caller) error {
	ctx, cancel := utils.WithTimeout(ctx, s.Config.QueryTimeout)
	defer cancel()

	rows, err := s.commentRepo.Delete(ctx, commentID, caller)
	if err != nil {
		return storeFailure(s.log, "deleteComment", err)
	}
	if rows == 0 {
		return errs.OperationFailed(MsgCommentNotDeleted)
	}
	return nil
}
