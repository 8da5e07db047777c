package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTagCaseInsensitiveDuplicate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tags.CreateTag("Sunset")
	require.NoError(t, err)

	_, err = env.tags.CreateTag("sunset")
	assert.True(t, errors.Is(err, ErrInvalidOperation))
}

func TestTagImageOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	other := env.createUser(t, "other")
	image := env.createImage(t, owner.ID)
	tag, err := env.tags.CreateTag("nature")
	require.NoError(t, err)

	err = env.tags.TagImage(image.ID, tag.ID, other.ID)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	require.NoError(t, env.tags.TagImage(image.ID, tag.ID, owner.ID))

	// same tag twice is a conflict
	err = env.tags.TagImage(image.ID, tag.ID, owner.ID)
	assert.True(t, errors.Is(err, ErrInvalidOperation))

	tags, err := env.tags.GetTagsByImageID(image.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "nature", tags[0].Name)
}

func TestUntagImage(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	image := env.createImage(t, owner.ID)
	tag, err := env.tags.CreateTag("nature")
	require.NoError(t, err)

	require.NoError(t, env.tags.TagImage(image.ID, tag.ID, owner.ID))
	require.NoError(t, env.tags.UntagImage(image.ID, tag.ID, owner.ID))

	err = env.tags.UntagImage(image.ID, tag.ID, owner.ID)
	assert.True(t, errors.Is(err, ErrInvalidOperation))
}

func TestDeleteTagAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	admin := env.createAdmin(t, "moderator")
	image := env.createImage(t, owner.ID)
	tag, err := env.tags.CreateTag("nature")
	require.NoError(t, err)
	require.NoError(t, env.tags.TagImage(image.ID, tag.ID, owner.ID))

	err = env.tags.DeleteTag(tag.ID, owner.ID)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	require.NoError(t, env.tags.DeleteTag(tag.ID, admin.ID))

	tags, err := env.tags.GetTagsByImageID(image.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestGetImagesByTagPublicOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	public := env.createImage(t, owner.ID)
	private := env.createImage(t, owner.ID)
	private.IsPublic = false
	require.NoError(t, env.imageRepo.UpdateImage(private))

	tag, err := env.tags.CreateTag("nature")
	require.NoError(t, err)
	require.NoError(t, env.tags.TagImage(public.ID, tag.ID, owner.ID))
	require.NoError(t, env.tags.TagImage(private.ID, tag.ID, owner.ID))

	views, err := env.tags.GetImagesByTag(tag.ID, &owner.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, public.ID, views[0].ID)
}

func TestGetPopularTags(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	first := env.createImage(t, owner.ID)
	second := env.createImage(t, owner.ID)

	popular, err := env.tags.CreateTag("popular")
	require.NoError(t, err)
	rare, err := env.tags.CreateTag("rare")
	require.NoError(t, err)

	require.NoError(t, env.tags.TagImage(first.ID, popular.ID, owner.ID))
	require.NoError(t, env.tags.TagImage(second.ID, popular.ID, owner.ID))
	require.NoError(t, env.tags.TagImage(first.ID, rare.ID, owner.ID))

	tags, err := env.tags.GetPopularTags(10)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "popular", tags[0].Name)
}
