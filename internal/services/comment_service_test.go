package services

import (
	"errors"
	"testing"
	"time"

	"github.com/socialpicture/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	commenter := env.createUser(t, "commenter")
	image := env.createImage(t, owner.ID)

	view, err := env.comments.CreateComment(commenter.ID, image.ID, "nice shot", nil)
	require.NoError(t, err)
	assert.Equal(t, commenter.ID, view.UserID)
	assert.Equal(t, image.ID, view.ImageID)
	assert.Equal(t, "nice shot", view.Content)
	assert.Nil(t, view.ParentCommentID)
	assert.Equal(t, "commenter", view.Username)
	assert.NotNil(t, view.Replies)
	assert.Empty(t, view.Replies)
}

func TestCreateCommentMissingImage(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	_, err := env.comments.CreateComment(user.ID, 9999, "hello", nil)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCreateReply(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	image := env.createImage(t, owner.ID)

	root, err := env.comments.CreateComment(owner.ID, image.ID, "root", nil)
	require.NoError(t, err)

	reply, err := env.comments.CreateComment(owner.ID, image.ID, "reply", &root.ID)
	require.NoError(t, err)
	require.NotNil(t, reply.ParentCommentID)
	assert.Equal(t, root.ID, *reply.ParentCommentID)
}

func TestCreateReplyParentOnOtherImage(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	imageA := env.createImage(t, owner.ID)
	imageB := env.createImage(t, owner.ID)

	root, err := env.comments.CreateComment(owner.ID, imageA.ID, "on image A", nil)
	require.NoError(t, err)

	// a reply must live on the same image as its parent
	_, err = env.comments.CreateComment(owner.ID, imageB.ID, "wrong image", &root.ID)
	assert.True(t, errors.Is(err, ErrInvalidOperation))
}

func TestCreateReplyMissingParent(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	image := env.createImage(t, owner.ID)

	missing := uint(9999)
	_, err := env.comments.CreateComment(owner.ID, image.ID, "orphan", &missing)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetCommentsByImageIDOrdering(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	image := env.createImage(t, owner.ID)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	oldRoot := env.createCommentAt(t, owner.ID, image.ID, nil, "old root", base)
	newRoot := env.createCommentAt(t, owner.ID, image.ID, nil, "new root", base.Add(time.Hour))

	// replies come back oldest first under each root
	env.createCommentAt(t, owner.ID, image.ID, &oldRoot.ID, "second reply", base.Add(30*time.Minute))
	env.createCommentAt(t, owner.ID, image.ID, &oldRoot.ID, "first reply", base.Add(10*time.Minute))

	views, err := env.comments.GetCommentsByImageID(image.ID, nil)
	require.NoError(t, err)
	require.Len(t, views, 2)

	// roots newest first
	assert.Equal(t, newRoot.ID, views[0].ID)
	assert.Equal(t, oldRoot.ID, views[1].ID)

	require.Len(t, views[1].Replies, 2)
	assert.Equal(t, "first reply", views[1].Replies[0].Content)
	assert.Equal(t, "second reply", views[1].Replies[1].Content)
	assert.Equal(t, int64(2), views[1].RepliesCount)
}

func TestGetCommentsByImageIDNestedReplies(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	image := env.createImage(t, owner.ID)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	root := env.createCommentAt(t, owner.ID, image.ID, nil, "root", base)
	child := env.createCommentAt(t, owner.ID, image.ID, &root.ID, "child", base.Add(time.Minute))
	grandchild := env.createCommentAt(t, owner.ID, image.ID, &child.ID, "grandchild", base.Add(2*time.Minute))

	views, err := env.comments.GetCommentsByImageID(image.ID, nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Replies, 1)
	require.Len(t, views[0].Replies[0].Replies, 1)
	assert.Equal(t, grandchild.ID, views[0].Replies[0].Replies[0].ID)
	assert.Empty(t, views[0].Replies[0].Replies[0].Replies)
}

func TestGetCommentsByImageIDMissingImage(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.comments.GetCommentsByImageID(9999, nil)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUpdateCommentOnlyAuthor(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	other := env.createUser(t, "other")
	admin := env.createAdmin(t, "admin")
	image := env.createImage(t, owner.ID)

	comment, err := env.comments.CreateComment(owner.ID, image.ID, "original", nil)
	require.NoError(t, err)

	updated, err := env.comments.UpdateComment(comment.ID, owner.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	_, err = env.comments.UpdateComment(comment.ID, other.ID, "hijack")
	assert.True(t, errors.Is(err, ErrUnauthorized))

	// even admins cannot edit someone else's comment
	_, err = env.comments.UpdateComment(comment.ID, admin.ID, "moderated")
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestDeleteCommentAuthorization(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	other := env.createUser(t, "other")
	admin := env.createAdmin(t, "admin")
	image := env.createImage(t, owner.ID)

	first, err := env.comments.CreateComment(owner.ID, image.ID, "first", nil)
	require.NoError(t, err)
	second, err := env.comments.CreateComment(owner.ID, image.ID, "second", nil)
	require.NoError(t, err)

	err = env.comments.DeleteComment(first.ID, other.ID)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	require.NoError(t, env.comments.DeleteComment(first.ID, owner.ID))
	require.NoError(t, env.comments.DeleteComment(second.ID, admin.ID))

	views, err := env.comments.GetCommentsByImageID(image.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestDeleteCommentRemovesSubtreeAndLikes(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	liker := env.createUser(t, "liker")
	image := env.createImage(t, owner.ID)

	root, err := env.comments.CreateComment(owner.ID, image.ID, "root", nil)
	require.NoError(t, err)
	child, err := env.comments.CreateComment(owner.ID, image.ID, "child", &root.ID)
	require.NoError(t, err)
	grandchild, err := env.comments.CreateComment(owner.ID, image.ID, "grandchild", &child.ID)
	require.NoError(t, err)

	require.NoError(t, env.commentLikes.LikeComment(grandchild.ID, liker.ID))

	require.NoError(t, env.comments.DeleteComment(root.ID, owner.ID))

	for _, id := range []uint{root.ID, child.ID, grandchild.ID} {
		_, err := env.comments.GetCommentByID(id, nil)
		assert.True(t, errors.Is(err, ErrNotFound))
	}

	count, err := env.commentLikeRepo.GetLikesCount(grandchild.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCommentNotifiesImageOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	commenter := env.createUser(t, "commenter")
	image := env.createImage(t, owner.ID)

	comment, err := env.comments.CreateComment(commenter.ID, image.ID, "hello", nil)
	require.NoError(t, err)

	views, err := env.notifications.GetNotificationsByUserID(owner.ID, false)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, models.NotificationComment, views[0].Type)
	assert.Equal(t, comment.ID, views[0].ReferenceID)
	assert.False(t, views[0].IsRead)
}

func TestCommentOnOwnImageNoNotification(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	image := env.createImage(t, owner.ID)

	_, err := env.comments.CreateComment(owner.ID, image.ID, "talking to myself", nil)
	require.NoError(t, err)

	views, err := env.notifications.GetNotificationsByUserID(owner.ID, false)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestCommentViewLikeFields(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	liker := env.createUser(t, "liker")
	image := env.createImage(t, owner.ID)

	comment, err := env.comments.CreateComment(owner.ID, image.ID, "likeable", nil)
	require.NoError(t, err)
	require.NoError(t, env.commentLikes.LikeComment(comment.ID, liker.ID))

	view, err := env.comments.GetCommentByID(comment.ID, &liker.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.LikesCount)
	assert.True(t, view.IsLikedByCurrentUser)

	anon, err := env.comments.GetCommentByID(comment.ID, nil)
	require.NoError(t, err)
	assert.False(t, anon.IsLikedByCurrentUser)
}
