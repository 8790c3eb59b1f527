package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arowley/prepsprint/internal/db"
	"github.com/arowley/prepsprint/internal/domain"
	"github.com/arowley/prepsprint/internal/repository"
	"github.com/arowley/prepsprint/internal/testutil"
)

type testEnv struct {
	db       *sql.DB
	uow      db.UnitOfWork
	apps     *repository.SQLiteApplicationRepo
	rounds   *repository.SQLiteRoundRepo
	sprints  *repository.SQLiteSprintRepo
	progress *repository.SQLiteProgressRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:       database,
		uow:      testutil.NewTestUoW(database),
		apps:     repository.NewSQLiteApplicationRepo(database),
		rounds:   repository.NewSQLiteRoundRepo(database),
		sprints:  repository.NewSQLiteSprintRepo(database),
		progress: repository.NewSQLiteProgressRepo(database),
	}
}

func (e *testEnv) sprintService() SprintService {
	return NewSprintService(e.apps, e.sprints, e.uow)
}

func (e *testEnv) planService() PlanService {
	return NewPlanService(e.apps, e.rounds, e.sprints)
}

func (e *testEnv) progressService() ProgressService {
	return NewProgressService(e.apps, e.sprints, e.progress, e.uow)
}

func (e *testEnv) applicationService() ApplicationService {
	return NewApplicationService(e.apps, e.rounds, e.sprints, e.uow)
}

// seedApplication stores an application whose interview is daysOut days
// after anchor.
func (e *testEnv) seedApplication(t *testing.T, anchor time.Time, daysOut int) *domain.Application {
	t.Helper()
	a := testutil.NewTestApplication("Initech",
		testutil.WithInterviewDate(anchor.AddDate(0, 0, daysOut)),
		testutil.WithApplicationStatus(domain.StatusInterview),
	)
	require.NoError(t, e.apps.Create(context.Background(), a))
	return a
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func timePtr(t time.Time) *time.Time { return &t }
