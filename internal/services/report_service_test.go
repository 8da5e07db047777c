package services

import (
	"errors"
	"testing"

	"github.com/socialpicture/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReport(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	reporter := env.createUser(t, "reporter")
	image := env.createImage(t, owner.ID)

	view, err := env.reports.CreateReport(reporter.ID, image.ID, "spam")
	require.NoError(t, err)
	assert.Equal(t, models.ReportPending, view.Status)
	assert.Equal(t, "reporter", view.ReporterUsername)
	assert.Nil(t, view.ResolvedByID)
	assert.Nil(t, view.ResolvedAt)
}

func TestCreateReportDuplicatePending(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	reporter := env.createUser(t, "reporter")
	image := env.createImage(t, owner.ID)

	_, err := env.reports.CreateReport(reporter.ID, image.ID, "spam")
	require.NoError(t, err)

	_, err = env.reports.CreateReport(reporter.ID, image.ID, "spam again")
	assert.True(t, errors.Is(err, ErrInvalidOperation))
}

func TestCreateReportAfterResolution(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	reporter := env.createUser(t, "reporter")
	admin := env.createAdmin(t, "moderator")
	image := env.createImage(t, owner.ID)

	first, err := env.reports.CreateReport(reporter.ID, image.ID, "spam")
	require.NoError(t, err)
	_, err = env.reports.ResolveReport(first.ID, admin.ID, models.ReportRejected)
	require.NoError(t, err)

	// only pending reports block a new one
	_, err = env.reports.CreateReport(reporter.ID, image.ID, "still spam")
	assert.NoError(t, err)
}

func TestResolveReport(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	reporter := env.createUser(t, "reporter")
	admin := env.createAdmin(t, "moderator")
	image := env.createImage(t, owner.ID)

	report, err := env.reports.CreateReport(reporter.ID, image.ID, "spam")
	require.NoError(t, err)

	resolved, err := env.reports.ResolveReport(report.ID, admin.ID, models.ReportResolved)
	require.NoError(t, err)
	assert.Equal(t, models.ReportResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedByID)
	assert.Equal(t, admin.ID, *resolved.ResolvedByID)
	assert.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, "moderator", resolved.ResolvedByUsername)
}

func TestResolveReportTwice(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	reporter := env.createUser(t, "reporter")
	admin := env.createAdmin(t, "moderator")
	image := env.createImage(t, owner.ID)

	report, err := env.reports.CreateReport(reporter.ID, image.ID, "spam")
	require.NoError(t, err)

	_, err = env.reports.ResolveReport(report.ID, admin.ID, models.ReportResolved)
	require.NoError(t, err)

	_, err = env.reports.ResolveReport(report.ID, admin.ID, models.ReportRejected)
	assert.True(t, errors.Is(err, ErrInvalidOperation))
}

func TestResolveReportNotifiesReporter(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	reporter := env.createUser(t, "reporter")
	admin := env.createAdmin(t, "moderator")
	image := env.createImage(t, owner.ID)

	report, err := env.reports.CreateReport(reporter.ID, image.ID, "spam")
	require.NoError(t, err)
	_, err = env.reports.ResolveReport(report.ID, admin.ID, models.ReportRejected)
	require.NoError(t, err)

	views, err := env.notifications.GetNotificationsByUserID(reporter.ID, false)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, models.NotificationReportResolution, views[0].Type)
	assert.Equal(t, report.ID, views[0].ReferenceID)
	assert.Contains(t, views[0].Content, "rejected")
}

func TestResolveMissingReport(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t, "moderator")

	_, err := env.reports.ResolveReport(9999, admin.ID, models.ReportResolved)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetReportsPendingOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	reporter := env.createUser(t, "reporter")
	other := env.createUser(t, "other")
	admin := env.createAdmin(t, "moderator")
	image := env.createImage(t, owner.ID)

	first, err := env.reports.CreateReport(reporter.ID, image.ID, "spam")
	require.NoError(t, err)
	_, err = env.reports.CreateReport(other.ID, image.ID, "offensive")
	require.NoError(t, err)
	_, err = env.reports.ResolveReport(first.ID, admin.ID, models.ReportResolved)
	require.NoError(t, err)

	pending, err := env.reports.GetReports(false)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := env.reports.GetReports(true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
