package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeCommentTwice(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	liker := env.createUser(t, "liker")
	image := env.createImage(t, owner.ID)

	comment, err := env.comments.CreateComment(owner.ID, image.ID, "likeable", nil)
	require.NoError(t, err)

	require.NoError(t, env.commentLikes.LikeComment(comment.ID, liker.ID))
	err = env.commentLikes.LikeComment(comment.ID, liker.ID)
	assert.True(t, errors.Is(err, ErrInvalidOperation))

	count, err := env.commentLikes.GetLikesCount(comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLikeOwnCommentNoNotification(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	image := env.createImage(t, owner.ID)

	comment, err := env.comments.CreateComment(owner.ID, image.ID, "mine", nil)
	require.NoError(t, err)
	require.NoError(t, env.commentLikes.LikeComment(comment.ID, owner.ID))

	views, err := env.notifications.GetNotificationsByUserID(owner.ID, false)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestUnlikeComment(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	liker := env.createUser(t, "liker")
	image := env.createImage(t, owner.ID)

	comment, err := env.comments.CreateComment(owner.ID, image.ID, "likeable", nil)
	require.NoError(t, err)

	require.NoError(t, env.commentLikes.LikeComment(comment.ID, liker.ID))
	require.NoError(t, env.commentLikes.UnlikeComment(comment.ID, liker.ID))

	err = env.commentLikes.UnlikeComment(comment.ID, liker.ID)
	assert.True(t, errors.Is(err, ErrInvalidOperation))
}

func TestLikeMissingComment(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	err := env.commentLikes.LikeComment(9999, user.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetLikesByCommentID(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	liker := env.createUser(t, "liker")
	image := env.createImage(t, owner.ID)

	comment, err := env.comments.CreateComment(owner.ID, image.ID, "likeable", nil)
	require.NoError(t, err)
	require.NoError(t, env.commentLikes.LikeComment(comment.ID, liker.ID))

	views, err := env.commentLikes.GetLikesByCommentID(comment.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "liker", views[0].Username)
}
