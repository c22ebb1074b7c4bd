package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "github.com/techagentng/mediahub/errors"
	"github.com/techagentng/mediahub/models"
	"github.com/techagentng/mediahub/services"
)

func TestLikeTwiceIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := f.createMedia(t, owner.UserID, "x.jpg")

	like, err := f.likes.Create(ctx, other.UserID, &models.CreateLikeRequest{MediaID: media.MediaID})
	require.NoError(t, err)
	assert.NotZero(t, like.LikeID)

	_, err = f.likes.Create(ctx, other.UserID, &models.CreateLikeRequest{MediaID: media.MediaID})
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindConflict, e.Kind)
	assert.Equal(t, services.MsgLikeExists, e.Message)

	count, err := f.likes.Count(ctx, media.MediaID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	mine, err := f.likes.ByMediaAndUser(ctx, media.MediaID, other.UserID)
	require.NoError(t, err)
	assert.Equal(t, like.LikeID, mine.LikeID)

	_, err = f.likes.ByMediaAndUser(ctx, media.MediaID, owner.UserID)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestLikeCountWithoutLikes(t *testing.T) {
	f := newFixture(t)
	count, err := f.likes.Count(context.Background(), 7)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLikeDeleteIsOwnerScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := f.createMedia(t, owner.UserID, "x.jpg")
	like, err := f.likes.Create(ctx, owner.UserID, &models.CreateLikeRequest{MediaID: media.MediaID})
	require.NoError(t, err)

	err = f.likes.Delete(ctx, like.LikeID, other)
	assert.True(t, errors.Is(err, errs.ErrOperationFailed))

	require.NoError(t, f.likes.Delete(ctx, like.LikeID, owner))

	_, err = f.likes.List(ctx)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestRatingTwiceReplaces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := f.createMedia(t, owner.UserID, "x.jpg")

	first, err := f.ratings.Create(ctx, other.UserID, &models.CreateRatingRequest{MediaID: media.MediaID, RatingValue: 2})
	require.NoError(t, err)
	second, err := f.ratings.Create(ctx, other.UserID, &models.CreateRatingRequest{MediaID: media.MediaID, RatingValue: 5})
	require.NoError(t, err)
	assert.NotEqual(t, first.RatingID, second.RatingID)

	ratings, err := f.ratings.ByMedia(ctx, media.MediaID)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 5, ratings[0].RatingValue)
	assert.Equal(t, second.RatingID, ratings[0].RatingID)
}

func TestRatingValueRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, v := range []int{0, 6, -1} {
		_, err := f.ratings.Create(ctx, owner.UserID, &models.CreateRatingRequest{MediaID: 1, RatingValue: v})
		assert.True(t, errors.Is(err, errs.ErrValidation), "value %d", v)
	}
}

func TestRatingAverage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := f.createMedia(t, owner.UserID, "x.jpg")

	_, err := f.ratings.Average(ctx, media.MediaID)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, services.MsgNoRatings, e.Message)

	for user, v := range map[uint]int{1: 5, 2: 4, 3: 3} {
		_, err := f.ratings.Create(ctx, user, &models.CreateRatingRequest{MediaID: media.MediaID, RatingValue: v})
		require.NoError(t, err)
	}
	avg, err := f.ratings.Average(ctx, media.MediaID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, avg, 0.001)

	byUser, err := f.ratings.ByUser(ctx, 2)
	require.NoError(t, err)
	require.Len(t, byUser, 1)

	err = f.ratings.Delete(ctx, byUser[0].RatingID, other)
	require.NoError(t, err)
	err = f.ratings.Delete(ctx, byUser[0].RatingID, other)
	assert.True(t, errors.Is(err, errs.ErrOperationFailed))
}

func TestCommentUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := f.createMedia(t, owner.UserID, "x.jpg")

	comment, err := f.comments.Create(ctx, owner.UserID, &models.CreateCommentRequest{MediaID: media.MediaID, CommentText: "first"})
	require.NoError(t, err)

	_, err = f.comments.Update(ctx, comment.CommentID, other, &models.UpdateCommentRequest{CommentText: "hijack"})
	assert.True(t, errors.Is(err, errs.ErrOperationFailed))

	updated, err := f.comments.Update(ctx, comment.CommentID, owner, &models.UpdateCommentRequest{CommentText: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.CommentText)

	updated, err = f.comments.Update(ctx, comment.CommentID, admin, &models.UpdateCommentRequest{CommentText: "moderated"})
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.CommentText)

	count, err := f.comments.Count(ctx, media.MediaID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	mine, err := f.comments.ByUser(ctx, owner.UserID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	err = f.comments.Delete(ctx, comment.CommentID, other)
	assert.True(t, errors.Is(err, errs.ErrOperationFailed))
	require.NoError(t, f.comments.Delete(ctx, comment.CommentID, admin))

	_, err = f.comments.GetByID(ctx, comment.CommentID)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	_, err = f.comments.ByMedia(ctx, media.MediaID)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}
