package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "github.com/techagentng/mediahub/errors"
	"github.com/techagentng/mediahub/models"
	"github.com/techagentng/mediahub/services"
	"github.com/techagentng/mediahub/storage/storagetest"
)

func strPtr(s string) *string { return &s }

func TestCreateMediaReturnsStoredRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.createMedia(t, owner.UserID, "x.jpg")
	assert.NotZero(t, created.MediaID)
	assert.Equal(t, owner.UserID, created.UserID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, uploadURL+"x.jpg", created.Filename)
	assert.Equal(t, uploadURL+"x.jpg-thumb.png", created.Thumbnail)

	got, err := f.media.GetByID(ctx, created.MediaID)
	require.NoError(t, err)
	assert.Equal(t, created.MediaID, got.MediaID)
	assert.Equal(t, "A", got.Title)

	stored, err := f.mediaRepo.FindByID(ctx, created.MediaID)
	require.NoError(t, err)
	assert.Equal(t, "x.jpg", stored.Filename)

	assert.Equal(t, []int64{1}, f.notifier.Counts())
}

func TestCreateMediaStripsUploadURL(t *testing.T) {
	f := newFixture(t)
	created := f.createMedia(t, owner.UserID, uploadURL+"y.png")

	stored, err := f.mediaRepo.FindByID(context.Background(), created.MediaID)
	require.NoError(t, err)
	assert.Equal(t, "y.png", stored.Filename)
	assert.Equal(t, uploadURL+"y.png", created.Filename)
}

func TestListAllPrefixesEveryRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.media.ListAll(ctx, 0, 0)
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	f.createMedia(t, owner.UserID, "a.jpg")
	f.createMedia(t, other.UserID, "b.jpg")

	media, err := f.media.ListAll(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, media, 2)
	for _, m := range media {
		assert.True(t, strings.HasPrefix(m.Filename, uploadURL))
		assert.True(t, strings.HasPrefix(m.Thumbnail, uploadURL))
	}

	page, err := f.media.ListAll(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, uploadURL+"b.jpg", page[0].Filename)
}

func TestGetMissingMedia(t *testing.T) {
	f := newFixture(t)
	_, err := f.media.GetByID(context.Background(), 42)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindNotFound, e.Kind)
	assert.Equal(t, services.MsgMediaNotFound, e.Message)
}

func TestUpdateMediaIsOwnerScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := f.createMedia(t, owner.UserID, "x.jpg")

	_, err := f.media.Update(ctx, media.MediaID, other, &models.UpdateMediaRequest{Title: strPtr("B")})
	assert.True(t, errors.Is(err, errs.ErrOperationFailed))

	updated, err := f.media.Update(ctx, media.MediaID, owner, &models.UpdateMediaRequest{Title: strPtr("B")})
	require.NoError(t, err)
	assert.Equal(t, "B", updated.Title)
	assert.Equal(t, owner.UserID, updated.UserID)

	updated, err = f.media.Update(ctx, media.MediaID, admin, &models.UpdateMediaRequest{Description: strPtr("by admin")})
	require.NoError(t, err)
	assert.Equal(t, "by admin", updated.Description)
	assert.Equal(t, "B", updated.Title)

	_, err = f.media.Update(ctx, media.MediaID, owner, &models.UpdateMediaRequest{})
	assert.True(t, errors.Is(err, errs.ErrValidation))
}

func seedEngagement(t *testing.T, f *fixture, mediaID uint) {
	t.Helper()
	ctx := context.Background()
	_, err := f.likes.Create(ctx, other.UserID, &models.CreateLikeRequest{MediaID: mediaID})
	require.NoError(t, err)
	_, err = f.comments.Create(ctx, other.UserID, &models.CreateCommentRequest{MediaID: mediaID, CommentText: "nice"})
	require.NoError(t, err)
	_, err = f.ratings.Create(ctx, other.UserID, &models.CreateRatingRequest{MediaID: mediaID, RatingValue: 4})
	require.NoError(t, err)
	_, err = f.tags.Attach(ctx, "cats", mediaID)
	require.NoError(t, err)
}

func engagementCounts(t *testing.T, f *fixture, mediaID uint) (likes, comments, ratings, tags int) {
	t.Helper()
	ctx := context.Background()
	l, err := f.likeRepo.FindByMediaID(ctx, mediaID)
	require.NoError(t, err)
	c, err := f.commentRepo.FindByMediaID(ctx, mediaID)
	require.NoError(t, err)
	r, err := f.ratingRepo.FindByMediaID(ctx, mediaID)
	require.NoError(t, err)
	tg, err := f.tagRepo.FindByMediaID(ctx, mediaID)
	require.NoError(t, err)
	return len(l), len(c), len(r), len(tg)
}

func TestDeleteMediaCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := f.createMedia(t, owner.UserID, "x.jpg")
	keep := f.createMedia(t, owner.UserID, "keep.jpg")
	seedEngagement(t, f, media.MediaID)
	seedEngagement(t, f, keep.MediaID)

	require.NoError(t, f.media.Delete(ctx, media.MediaID, owner, "token-1"))

	_, err := f.media.GetByID(ctx, media.MediaID)
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	l, c, r, tg := engagementCounts(t, f, media.MediaID)
	assert.Zero(t, l+c+r+tg)

	l, c, r, tg = engagementCounts(t, f, keep.MediaID)
	assert.Equal(t, []int{1, 1, 1, 1}, []int{l, c, r, tg})

	assert.Equal(t, []storagetest.Deletion{{Filename: "x.jpg", Token: "token-1"}}, f.files.Deleted())
	assert.Equal(t, []int64{1, 2, 1}, f.notifier.Counts())
}

func TestDeleteMediaRollsBackWhenFileStoreFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := f.createMedia(t, owner.UserID, "x.jpg")
	seedEngagement(t, f, media.MediaID)

	f.files.Err = errors.New("upload server down")
	err := f.media.Delete(ctx, media.MediaID, owner, "token-1")
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindDependency, e.Kind)
	assert.Equal(t, services.MsgFileNotDeleted, e.Message)

	_, err = f.media.GetByID(ctx, media.MediaID)
	require.NoError(t, err)
	l, c, r, tg := engagementCounts(t, f, media.MediaID)
	assert.Equal(t, []int{1, 1, 1, 1}, []int{l, c, r, tg})
	assert.Equal(t, []int64{1}, f.notifier.Counts())
}

func TestDeleteMediaByNonOwnerFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := f.createMedia(t, owner.UserID, "x.jpg")
	seedEngagement(t, f, media.MediaID)

	err := f.media.Delete(ctx, media.MediaID, other, "token-2")
	assert.True(t, errors.Is(err, errs.ErrOperationFailed))
	assert.Empty(t, f.files.Deleted())

	l, c, r, tg := engagementCounts(t, f, media.MediaID)
	assert.Equal(t, []int{1, 1, 1, 1}, []int{l, c, r, tg})

	require.NoError(t, f.media.Delete(ctx, media.MediaID, admin, "admin-token"))
	assert.Equal(t, []storagetest.Deletion{{Filename: "x.jpg", Token: "admin-token"}}, f.files.Deleted())
}

func TestDeleteMissingMedia(t *testing.T) {
	f := newFixture(t)
	err := f.media.Delete(context.Background(), 404, owner, "t")
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindNotFound, e.Kind)
	assert.Equal(t, services.MsgMediaNotFound, e.Message)
}

func TestRankedMedia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.media.MostLiked(ctx)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	_, err = f.media.MostCommented(ctx)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	_, err = f.media.HighestRated(ctx)
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	a := f.createMedia(t, owner.UserID, "a.jpg")
	b := f.createMedia(t, owner.UserID, "b.jpg")

	for _, user := range []uint{1, 2, 3} {
		_, err := f.likes.Create(ctx, user, &models.CreateLikeRequest{MediaID: b.MediaID})
		require.NoError(t, err)
	}
	_, err = f.likes.Create(ctx, 1, &models.CreateLikeRequest{MediaID: a.MediaID})
	require.NoError(t, err)
	_, err = f.comments.Create(ctx, 1, &models.CreateCommentRequest{MediaID: a.MediaID, CommentText: "one"})
	require.NoError(t, err)
	_, err = f.ratings.Create(ctx, 1, &models.CreateRatingRequest{MediaID: a.MediaID, RatingValue: 5})
	require.NoError(t, err)
	_, err = f.ratings.Create(ctx, 1, &models.CreateRatingRequest{MediaID: b.MediaID, RatingValue: 2})
	require.NoError(t, err)

	liked, err := f.media.MostLiked(ctx)
	require.NoError(t, err)
	assert.Equal(t, b.MediaID, liked.MediaID)
	require.NotNil(t, liked.LikesCount)
	assert.EqualValues(t, 3, *liked.LikesCount)
	assert.Equal(t, uploadURL+"b.jpg", liked.Filename)
	assert.Equal(t, uploadURL+"b.jpg-thumb.png", liked.Thumbnail)

	commented, err := f.media.MostCommented(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.MediaID, commented.MediaID)

	rated, err := f.media.HighestRated(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.MediaID, rated.MediaID)
	require.NotNil(t, rated.AverageRating)
	assert.InDelta(t, 5.0, *rated.AverageRating, 0.001)
	assert.Equal(t, uploadURL+"a.jpg", rated.Filename)
}

func TestListMediaByTag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := f.createMedia(t, owner.UserID, "x.jpg")
	f.createMedia(t, owner.UserID, "untagged.jpg")

	_, err := f.media.ListByTag(ctx, "cats")
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	_, err = f.tags.Attach(ctx, "cats", media.MediaID)
	require.NoError(t, err)

	byName, err := f.media.ListByTag(ctx, "cats")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, uploadURL+"x.jpg", byName[0].Filename)

	tag, err := f.tags.FindByName(ctx, "cats")
	require.NoError(t, err)
	byID, err := f.media.ListByTagID(ctx, tag.TagID)
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, media.MediaID, byID[0].MediaID)
}
