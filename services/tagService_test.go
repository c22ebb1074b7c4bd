package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "github.com/techagentng/mediahub/errors"
	"github.com/techagentng/mediahub/policy"
	"github.com/techagentng/mediahub/services"
)

func TestAttachSameTagTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := f.createMedia(t, owner.UserID, "x.jpg")

	refreshed, err := f.tags.Attach(ctx, "cats", media.MediaID)
	require.NoError(t, err)
	assert.Equal(t, media.MediaID, refreshed.MediaID)
	assert.Equal(t, uploadURL+"x.jpg", refreshed.Filename)

	_, err = f.tags.Attach(ctx, "cats", media.MediaID)
	require.NoError(t, err)

	tags, err := f.tags.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	attached, err := f.tags.ByMedia(ctx, media.MediaID)
	require.NoError(t, err)
	require.Len(t, attached, 2)
	assert.Equal(t, "cats", attached[0].TagName)
	assert.Equal(t, attached[0].TagID, attached[1].TagID)
}

func TestAttachToMissingMedia(t *testing.T) {
	f := newFixture(t)
	_, err := f.tags.Attach(context.Background(), "cats", 99)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestCreateTagRejectsDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tag, err := f.tags.Create(ctx, "dogs")
	require.NoError(t, err)
	assert.NotZero(t, tag.TagID)

	_, err = f.tags.Create(ctx, "dogs")
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindConflict, e.Kind)
	assert.Equal(t, services.MsgTagExists, e.Message)

	_, err = f.tags.FindByName(ctx, "birds")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestDetachRequiresMediaOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := f.createMedia(t, owner.UserID, "x.jpg")
	_, err := f.tags.Attach(ctx, "cats", media.MediaID)
	require.NoError(t, err)
	tag, err := f.tags.FindByName(ctx, "cats")
	require.NoError(t, err)

	for _, caller := range []policy.Caller{other, admin} {
		err := f.tags.Detach(ctx, tag.TagID, media.MediaID, caller)
		e, ok := errs.As(err)
		require.True(t, ok, caller.Role)
		assert.Equal(t, errs.KindUnauthorized, e.Kind, caller.Role)
		assert.Equal(t, services.MsgNotMediaOwner, e.Message, caller.Role)
	}

	require.NoError(t, f.tags.Detach(ctx, tag.TagID, media.MediaID, owner))

	err = f.tags.Detach(ctx, tag.TagID, media.MediaID, owner)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestDeleteTag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := f.createMedia(t, owner.UserID, "x.jpg")

	unused, err := f.tags.Create(ctx, "unused")
	require.NoError(t, err)
	err = f.tags.Delete(ctx, unused.TagID)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, services.MsgTagNotDeleted, e.Message)
	_, err = f.tags.FindByName(ctx, "unused")
	require.NoError(t, err, "failed delete must not remove the tag")

	_, err = f.tags.Attach(ctx, "cats", media.MediaID)
	require.NoError(t, err)
	cats, err := f.tags.FindByName(ctx, "cats")
	require.NoError(t, err)

	require.NoError(t, f.tags.Delete(ctx, cats.TagID))
	_, err = f.tags.FindByName(ctx, "cats")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	_, err = f.tags.ByMedia(ctx, media.MediaID)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}
