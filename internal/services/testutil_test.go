package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Image{},
		&models.Comment{},
		&models.CommentLike{},
		&models.Like{},
		&models.Follow{},
		&models.SavedImage{},
		&models.Tag{},
		&models.ImageTag{},
		&models.Report{},
		&models.Notification{},
	)
	require.NoError(t, err)

	return db
}

// testEnv bundles the repositories and services wired against one test
// database.
type testEnv struct {
	db *gorm.DB

	userRepo         repositories.UserRepository
	imageRepo        repositories.ImageRepository
	commentRepo      repositories.CommentRepository
	commentLikeRepo  repositories.CommentLikeRepository
	likeRepo         repositories.LikeRepository
	followRepo       repositories.FollowRepository
	savedImageRepo   repositories.SavedImageRepository
	tagRepo          repositories.TagRepository
	reportRepo       repositories.ReportRepository
	notificationRepo repositories.NotificationRepository

	notifications *NotificationService
	images        *ImageService
	comments      *CommentService
	commentLikes  *CommentLikeService
	likes         *LikeService
	follows       *FollowService
	saved         *SavedImageService
	tags          *TagService
	reports       *ReportService
	users         *UserService
	search        *SearchService
	auth          *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	env := &testEnv{db: db}

	env.userRepo = repositories.NewPostgresUserRepository(db)
	env.imageRepo = repositories.NewPostgresImageRepository(db)
	env.commentRepo = repositories.NewPostgresCommentRepository(db)
	env.commentLikeRepo = repositories.NewPostgresCommentLikeRepository(db)
	env.likeRepo = repositories.NewPostgresLikeRepository(db)
	env.followRepo = repositories.NewPostgresFollowRepository(db)
	env.savedImageRepo = repositories.NewPostgresSavedImageRepository(db)
	env.tagRepo = repositories.NewPostgresTagRepository(db)
	env.reportRepo = repositories.NewPostgresReportRepository(db)
	env.notificationRepo = repositories.NewPostgresNotificationRepository(db)

	urls := NewURLResolver("https://cdn.example.com")
	env.notifications = NewNotificationService(env.notificationRepo, env.userRepo, env.likeRepo, env.commentLikeRepo, env.commentRepo, env.reportRepo, urls)
	env.images = NewImageService(env.imageRepo, env.userRepo, env.likeRepo, env.commentRepo, env.commentLikeRepo, env.savedImageRepo, env.tagRepo, env.reportRepo, env.followRepo, urls)
	env.comments = NewCommentService(env.commentRepo, env.commentLikeRepo, env.imageRepo, env.userRepo, env.notifications, urls)
	env.commentLikes = NewCommentLikeService(env.commentLikeRepo, env.commentRepo, env.userRepo, env.notifications, urls)
	env.likes = NewLikeService(env.likeRepo, env.imageRepo, env.userRepo, env.notifications, urls)
	env.follows = NewFollowService(env.followRepo, env.userRepo, env.notifications, urls)
	env.saved = NewSavedImageService(env.savedImageRepo, env.imageRepo, env.images)
	env.tags = NewTagService(env.tagRepo, env.imageRepo, env.userRepo, env.images)
	env.reports = NewReportService(env.reportRepo, env.imageRepo, env.userRepo, env.notifications, urls)
	env.users = NewUserService(env.userRepo, env.imageRepo, env.followRepo, urls)
	env.search = NewSearchService(env.userRepo, env.imageRepo, env.images, urls)
	env.auth = NewAuthService(env.userRepo, "test-secret")

	return env
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:       username,
		Email:          username + "@example.com",
		Password:       string(hash),
		Role:           models.RoleUser,
		ProfilePicture: "avatars/" + username + ".jpg",
	}
	require.NoError(t, e.userRepo.CreateUser(user))
	return user
}

func (e *testEnv) createAdmin(t *testing.T, username string) *models.User {
	t.Helper()

	user := e.createUser(t, username)
	user.Role = models.RoleAdmin
	require.NoError(t, e.userRepo.UpdateUser(user))
	return user
}

func (e *testEnv) createImage(t *testing.T, userID uint) *models.Image {
	t.Helper()

	image := &models.Image{
		UserID:   userID,
		ImageURL: fmt.Sprintf("uploads/user%d.jpg", userID),
		Caption:  "test image",
		IsPublic: true,
	}
	require.NoError(t, e.imageRepo.CreateImage(image))
	return image
}

// createCommentAt inserts a comment with an explicit timestamp so
// ordering assertions don't depend on clock resolution.
func (e *testEnv) createCommentAt(t *testing.T, userID, imageID uint, parentID *uint, content string, at time.Time) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		UserID:          userID,
		ImageID:         imageID,
		Content:         content,
		ParentCommentID: parentID,
		CreatedAt:       at,
		UpdatedAt:       at,
	}
	require.NoError(t, e.commentRepo.CreateComment(comment))
	return comment
}

// createNotificationAt inserts a notification with an explicit timestamp.
func (e *testEnv) createNotificationAt(t *testing.T, userID uint, notificationType models.NotificationType, referenceID uint, at time.Time) *models.Notification {
	t.Helper()

	n := &models.Notification{
		UserID:      userID,
		Type:        notificationType,
		ReferenceID: referenceID,
		Content:     "test notification",
		CreatedAt:   at,
	}
	require.NoError(t, e.notificationRepo.CreateNotification(n))
	return n
}
