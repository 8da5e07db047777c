package services

import (
	"errors"
	"testing"
	"time"

	"github.com/socialpicture/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAsReadIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	n, err := env.notifications.CreateNotification(user.ID, models.NotificationFollow, user.ID, "someone followed you")
	require.NoError(t, err)
	assert.False(t, n.IsRead)

	require.NoError(t, env.notifications.MarkAsRead(n.ID))
	require.NoError(t, env.notifications.MarkAsRead(n.ID))

	view, err := env.notifications.GetNotificationByID(n.ID)
	require.NoError(t, err)
	assert.True(t, view.IsRead)
}

func TestMarkAsReadMissing(t *testing.T) {
	env := newTestEnv(t)

	err := env.notifications.MarkAsRead(9999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMarkAllAsRead(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	other := env.createUser(t, "bob")

	for i := 0; i < 3; i++ {
		_, err := env.notifications.CreateNotification(user.ID, models.NotificationFollow, other.ID, "followed")
		require.NoError(t, err)
	}
	otherN, err := env.notifications.CreateNotification(other.ID, models.NotificationFollow, user.ID, "followed")
	require.NoError(t, err)

	require.NoError(t, env.notifications.MarkAllAsRead(user.ID))

	count, err := env.notifications.GetUnreadCount(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// other users' notifications are untouched
	view, err := env.notifications.GetNotificationByID(otherN.ID)
	require.NoError(t, err)
	assert.False(t, view.IsRead)

	// no unread notifications left is still a success
	require.NoError(t, env.notifications.MarkAllAsRead(user.ID))
}

func TestGetSummary(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	other := env.createUser(t, "bob")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var newest *models.Notification
	for i := 0; i < 7; i++ {
		newest = env.createNotificationAt(t, user.ID, models.NotificationFollow, other.ID, base.Add(time.Duration(i)*time.Minute))
	}
	require.NoError(t, env.notifications.MarkAsRead(newest.ID))

	summary, err := env.notifications.GetSummary(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), summary.UnreadCount)
	require.Len(t, summary.RecentNotifications, 5)

	// recent list is newest first and includes read entries
	assert.Equal(t, newest.ID, summary.RecentNotifications[0].ID)
	for i := 1; i < len(summary.RecentNotifications); i++ {
		assert.True(t, !summary.RecentNotifications[i].CreatedAt.After(summary.RecentNotifications[i-1].CreatedAt))
	}
}

func TestGetNotificationsUnreadOnly(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	other := env.createUser(t, "bob")

	read, err := env.notifications.CreateNotification(user.ID, models.NotificationFollow, other.ID, "first")
	require.NoError(t, err)
	require.NoError(t, env.notifications.MarkAsRead(read.ID))
	unread, err := env.notifications.CreateNotification(user.ID, models.NotificationFollow, other.ID, "second")
	require.NoError(t, err)

	views, err := env.notifications.GetNotificationsByUserID(user.ID, true)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, unread.ID, views[0].ID)

	all, err := env.notifications.GetNotificationsByUserID(user.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreateNotificationUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.notifications.CreateNotification(9999, models.NotificationFollow, 1, "ghost")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSenderPictureForLike(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	first := env.createUser(t, "first")
	second := env.createUser(t, "second")
	image := env.createImage(t, owner.ID)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, env.db.Create(&models.Like{ImageID: image.ID, UserID: first.ID, CreatedAt: base}).Error)
	require.NoError(t, env.db.Create(&models.Like{ImageID: image.ID, UserID: second.ID, CreatedAt: base.Add(time.Minute)}).Error)

	n, err := env.notifications.CreateNotification(owner.ID, models.NotificationLike, image.ID, "liked")
	require.NoError(t, err)

	view, err := env.notifications.GetNotificationByID(n.ID)
	require.NoError(t, err)
	// the most recent liker wins
	require.NotNil(t, view.SenderProfilePicture)
	assert.Contains(t, *view.SenderProfilePicture, "second")
}

func TestSenderPictureForCommentLike(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	liker := env.createUser(t, "liker")
	image := env.createImage(t, owner.ID)

	comment, err := env.comments.CreateComment(owner.ID, image.ID, "likeable", nil)
	require.NoError(t, err)
	require.NoError(t, env.commentLikes.LikeComment(comment.ID, liker.ID))

	views, err := env.notifications.GetNotificationsByUserID(owner.ID, false)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, models.NotificationCommentLike, views[0].Type)
	require.NotNil(t, views[0].SenderProfilePicture)
	assert.Contains(t, *views[0].SenderProfilePicture, "liker")
}

func TestSenderPictureForComment(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	commenter := env.createUser(t, "commenter")
	image := env.createImage(t, owner.ID)

	_, err := env.comments.CreateComment(commenter.ID, image.ID, "hello", nil)
	require.NoError(t, err)

	views, err := env.notifications.GetNotificationsByUserID(owner.ID, false)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].SenderProfilePicture)
	assert.Contains(t, *views[0].SenderProfilePicture, "commenter")
}

func TestSenderPictureForFollow(t *testing.T) {
	env := newTestEnv(t)
	followed := env.createUser(t, "followed")
	follower := env.createUser(t, "follower")

	require.NoError(t, env.follows.FollowUser(follower.ID, followed.ID))

	views, err := env.notifications.GetNotificationsByUserID(followed.ID, false)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, follower.ID, views[0].ReferenceID)
	require.NotNil(t, views[0].SenderProfilePicture)
	assert.Contains(t, *views[0].SenderProfilePicture, "follower")
}

func TestSenderPictureForReportResolution(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	reporter := env.createUser(t, "reporter")
	admin := env.createAdmin(t, "moderator")
	image := env.createImage(t, owner.ID)

	report, err := env.reports.CreateReport(reporter.ID, image.ID, "spam")
	require.NoError(t, err)
	_, err = env.reports.ResolveReport(report.ID, admin.ID, models.ReportResolved)
	require.NoError(t, err)

	views, err := env.notifications.GetNotificationsByUserID(reporter.ID, false)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, models.NotificationReportResolution, views[0].Type)
	require.NotNil(t, views[0].SenderProfilePicture)
	assert.Contains(t, *views[0].SenderProfilePicture, "moderator")
}

func TestSenderPictureAfterUnlike(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	liker := env.createUser(t, "liker")
	image := env.createImage(t, owner.ID)

	require.NoError(t, env.likes.LikeImage(image.ID, liker.ID))
	require.NoError(t, env.likes.UnlikeImage(image.ID, liker.ID))

	// the notification survives the unlike; only the picture degrades
	views, err := env.notifications.GetNotificationsByUserID(owner.ID, false)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].SenderProfilePicture)
}

func TestSenderPictureStaleReferenceIsNil(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	// like notification whose image no longer has any likes
	n, err := env.notifications.CreateNotification(user.ID, models.NotificationLike, 9999, "liked")
	require.NoError(t, err)

	view, err := env.notifications.GetNotificationByID(n.ID)
	require.NoError(t, err)
	assert.Nil(t, view.SenderProfilePicture)
}

func TestSenderPictureReservedTypeIsNil(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	n, err := env.notifications.CreateNotification(user.ID, models.NotificationImageDeletion, 1, "image removed")
	require.NoError(t, err)

	view, err := env.notifications.GetNotificationByID(n.ID)
	require.NoError(t, err)
	assert.Nil(t, view.SenderProfilePicture)
}
