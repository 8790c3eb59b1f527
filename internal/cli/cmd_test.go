package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arowley/prepsprint/internal/dateinput"
	"github.com/arowley/prepsprint/internal/domain"
	"github.com/arowley/prepsprint/internal/repository"
	"github.com/arowley/prepsprint/internal/service"
	"github.com/arowley/prepsprint/internal/testutil"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	appRepo := repository.NewSQLiteApplicationRepo(database)
	roundRepo := repository.NewSQLiteRoundRepo(database)
	sprintRepo := repository.NewSQLiteSprintRepo(database)
	progressRepo := repository.NewSQLiteProgressRepo(database)
	uow := testutil.NewTestUoW(database)

	return &App{
		Applications: service.NewApplicationService(appRepo, roundRepo, sprintRepo, uow),
		Sprints:      service.NewSprintService(appRepo, sprintRepo, uow),
		Plans:        service.NewPlanService(appRepo, roundRepo, sprintRepo),
		Progress:     service.NewProgressService(appRepo, sprintRepo, progressRepo, uow),
		Dates:        dateinput.NewResolver(),
		// IsInteractive left nil so prompts are skipped in tests.
	}
}

// executeCmd runs a cobra command and returns the error.
func executeCmd(t *testing.T, app *App, args ...string) error {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	return root.Execute()
}

func seedTrackedApplication(t *testing.T, app *App, company string) *domain.Application {
	t.Helper()
	a := testutil.NewTestApplication(company, testutil.WithRoleType(domain.RoleBackend))
	require.NoError(t, app.Applications.Create(context.Background(), a))
	return a
}

// --- app commands ---

func TestAppAddCmd_CreatesApplication(t *testing.T) {
	app := testApp(t)

	err := executeCmd(t, app, "app", "add",
		"--company", "Acme", "--role", "Backend Engineer", "--type", "backend")
	require.NoError(t, err)

	apps, err := app.Applications.List(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Acme", apps[0].Company)
	assert.Equal(t, domain.StatusApplied, apps[0].Status)
}

func TestAppAddCmd_RequiresCompany(t *testing.T) {
	app := testApp(t)

	err := executeCmd(t, app, "app", "add", "--role", "Backend Engineer")
	assert.Error(t, err)
}

func TestAppSetStatusCmd_RejectsUnknownStatus(t *testing.T) {
	app := testApp(t)
	seedTrackedApplication(t, app, "Acme")

	err := executeCmd(t, app, "app", "set-status", "Acme", "ghosted")
	assert.Error(t, err)
}

func TestAppRemoveCmd_DeletesApplication(t *testing.T) {
	app := testApp(t)
	a := seedTrackedApplication(t, app, "Acme")

	require.NoError(t, executeCmd(t, app, "app", "remove", a.ID))

	apps, err := app.Applications.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, apps)
}

// --- application reference resolution ---

func TestResolveApplicationID_ByCompanyNameCaseInsensitive(t *testing.T) {
	app := testApp(t)
	a := seedTrackedApplication(t, app, "Acme")

	got, err := resolveApplicationID(context.Background(), app, "acme")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got)
}

func TestResolveApplicationID_ByUUIDPrefix(t *testing.T) {
	app := testApp(t)
	a := seedTrackedApplication(t, app, "Acme")

	got, err := resolveApplicationID(context.Background(), app, a.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, a.ID, got)
}

func TestResolveApplicationID_NotFound(t *testing.T) {
	app := testApp(t)
	seedTrackedApplication(t, app, "Acme")

	_, err := resolveApplicationID(context.Background(), app, "globex")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestResolveApplicationID_AmbiguousPrefix(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	a := testutil.NewTestApplication("Acme")
	a.ID = "deadbeef-0000-0000-0000-000000000001"
	require.NoError(t, app.Applications.Create(ctx, a))

	b := testutil.NewTestApplication("Initech")
	b.ID = "deadbeef-0000-0000-0000-000000000002"
	require.NoError(t, app.Applications.Create(ctx, b))

	_, err := resolveApplicationID(ctx, app, "deadbeef")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

// --- interview + sprint flow ---

func TestInterviewScheduleCmd_BuildsSprint(t *testing.T) {
	app := testApp(t)
	a := seedTrackedApplication(t, app, "Acme")
	date := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

	err := executeCmd(t, app, "interview", "schedule", "Acme", "--date", date)
	require.NoError(t, err)

	s, err := app.Sprints.ActiveForApplication(context.Background(), a.ID)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, domain.SprintActive, s.Status)
	assert.NotEmpty(t, s.DailyPlans)
}

func TestInterviewScheduleCmd_ConfirmationWithoutTerminalFails(t *testing.T) {
	app := testApp(t)
	a := seedTrackedApplication(t, app, "Acme")
	date := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

	require.NoError(t, executeCmd(t, app, "interview", "schedule", "Acme", "--date", date))

	// Complete a task so the next regenerate needs confirmation.
	require.NoError(t, executeCmd(t, app, "task", "done", "Acme", "1", "1", "1"))

	err := executeCmd(t, app, "interview", "schedule", "Acme", "--date", date)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	// The original sprint survives the declined replace.
	s, err := app.Sprints.ActiveForApplication(context.Background(), a.ID)
	require.NoError(t, err)
	done, _ := s.TaskCounts()
	assert.Equal(t, 1, done)
}

func TestInterviewScheduleCmd_DeclinedReplaceRestoresSchedule(t *testing.T) {
	app := testApp(t)
	a := seedTrackedApplication(t, app, "Acme")
	first := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	second := time.Now().UTC().AddDate(0, 0, 9).Format("2006-01-02")

	require.NoError(t, executeCmd(t, app, "interview", "schedule", "Acme", "--date", first))
	require.NoError(t, executeCmd(t, app, "task", "done", "Acme", "1", "1", "1"))

	err := executeCmd(t, app, "interview", "schedule", "Acme", "--date", second)
	require.Error(t, err)

	// Neither the sprint nor the application moved to the new date.
	got, err := app.Applications.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.InterviewDate)
	assert.Equal(t, first, got.InterviewDate.Format("2006-01-02"))

	s, err := app.Sprints.ActiveForApplication(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, first, s.InterviewDate.Format("2006-01-02"))
}

func TestInterviewScheduleCmd_YesReplacesSprint(t *testing.T) {
	app := testApp(t)
	a := seedTrackedApplication(t, app, "Acme")
	date := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

	require.NoError(t, executeCmd(t, app, "interview", "schedule", "Acme", "--date", date))
	require.NoError(t, executeCmd(t, app, "task", "done", "Acme", "1", "1", "1"))

	err := executeCmd(t, app, "interview", "schedule", "Acme", "--date", date, "--yes")
	require.NoError(t, err)

	s, err := app.Sprints.ActiveForApplication(context.Background(), a.ID)
	require.NoError(t, err)
	done, _ := s.TaskCounts()
	assert.Equal(t, 0, done)
}

func TestInterviewScheduleCmd_BadDate(t *testing.T) {
	app := testApp(t)
	seedTrackedApplication(t, app, "Acme")

	err := executeCmd(t, app, "interview", "schedule", "Acme", "--date", "next tuesday")
	assert.Error(t, err)
}

// --- task commands ---

func TestTaskDoneCmd_ThenUndo(t *testing.T) {
	app := testApp(t)
	seedTrackedApplication(t, app, "Acme")
	date := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	require.NoError(t, executeCmd(t, app, "interview", "schedule", "Acme", "--date", date))

	require.NoError(t, executeCmd(t, app, "task", "done", "Acme", "1", "1", "1"))
	require.NoError(t, executeCmd(t, app, "task", "undo", "Acme", "1", "1", "1"))
}

func TestTaskDoneCmd_NonNumericPosition(t *testing.T) {
	app := testApp(t)
	seedTrackedApplication(t, app, "Acme")

	err := executeCmd(t, app, "task", "done", "Acme", "one", "1", "1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected a number")
}

// --- plan + progress commands ---

func TestPlanTodayCmd_NoActiveSprints(t *testing.T) {
	app := testApp(t)

	err := executeCmd(t, app, "plan", "today")
	assert.Error(t, err)
}

func TestPlanTodayCmd_WithSprint(t *testing.T) {
	app := testApp(t)
	seedTrackedApplication(t, app, "Acme")
	date := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	require.NoError(t, executeCmd(t, app, "interview", "schedule", "Acme", "--date", date))

	require.NoError(t, executeCmd(t, app, "plan", "today"))
	require.NoError(t, executeCmd(t, app, "plan", "day", date, "--app", "Acme"))
}

func TestProgressCmd_EmptyStore(t *testing.T) {
	app := testApp(t)

	require.NoError(t, executeCmd(t, app, "progress"))
}
