package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arowley/prepsprint/internal/contract"
	"github.com/arowley/prepsprint/internal/domain"
	"github.com/arowley/prepsprint/internal/testutil"
)

func seedSprint(t *testing.T, env *testEnv) (*domain.Application, *domain.Sprint) {
	t.Helper()
	ctx := context.Background()
	a := testutil.NewTestApplication("Initech")
	require.NoError(t, env.apps.Create(ctx, a))
	sp := testutil.NewTestSprint(a.ID)
	require.NoError(t, env.sprints.Create(ctx, sp))
	return a, sp
}

func setTask(t *testing.T, svc ProgressService, appID string, day, block, task int, done bool, now time.Time) (*contract.SetTaskResponse, error) {
	t.Helper()
	req := contract.NewSetTaskRequest(appID, day, block, task)
	req.Done = done
	req.Now = timePtr(now)
	return svc.SetTaskDone(context.Background(), req)
}

func TestSetTaskDone_CompletesAndCountsOnce(t *testing.T) {
	env := newTestEnv(t)
	a, sp := seedSprint(t, env)
	svc := env.progressService()
	ctx := context.Background()

	resp, err := setTask(t, svc, a.ID, 1, 1, 1, true, date("2025-03-10"))
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, 1, resp.Progress.TotalTasksCompleted)
	assert.Equal(t, 1, resp.Progress.CurrentStreak)
	assert.False(t, resp.DayComplete)

	// Completing an already-complete task changes nothing.
	resp, err = setTask(t, svc, a.ID, 1, 1, 1, true, date("2025-03-10"))
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Equal(t, 1, resp.Progress.TotalTasksCompleted)

	stored, err := env.sprints.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	done, total := stored.TaskCounts()
	assert.Equal(t, 1, done)
	assert.Equal(t, 6, total)
}

func TestSetTaskDone_DayCompleteWhenAllBlocksDone(t *testing.T) {
	env := newTestEnv(t)
	a, _ := seedSprint(t, env)
	svc := env.progressService()
	day := date("2025-03-10")

	_, err := setTask(t, svc, a.ID, 1, 1, 1, true, day)
	require.NoError(t, err)
	_, err = setTask(t, svc, a.ID, 1, 1, 2, true, day)
	require.NoError(t, err)

	resp, err := setTask(t, svc, a.ID, 1, 2, 1, true, day)
	require.NoError(t, err)
	assert.True(t, resp.DayComplete)
}

func TestSetTaskDone_StreakAcrossDays(t *testing.T) {
	env := newTestEnv(t)
	a, _ := seedSprint(t, env)
	svc := env.progressService()

	resp, err := setTask(t, svc, a.ID, 1, 1, 1, true, date("2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Progress.CurrentStreak)

	resp, err = setTask(t, svc, a.ID, 1, 1, 2, true, date("2025-03-11"))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Progress.CurrentStreak)
	assert.Equal(t, 2, resp.Progress.LongestStreak)

	resp, err = setTask(t, svc, a.ID, 1, 2, 1, true, date("2025-03-16"))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Progress.CurrentStreak, "a gap resets the streak")
	assert.Equal(t, 2, resp.Progress.LongestStreak)
	assert.Equal(t, 3, resp.Progress.TotalTasksCompleted)
}

func TestSetTaskDone_UndoDecrementsTotalOnly(t *testing.T) {
	env := newTestEnv(t)
	a, sp := seedSprint(t, env)
	svc := env.progressService()
	ctx := context.Background()

	_, err := setTask(t, svc, a.ID, 1, 1, 1, true, date("2025-03-10"))
	require.NoError(t, err)
	_, err = setTask(t, svc, a.ID, 2, 1, 1, true, date("2025-03-11"))
	require.NoError(t, err)

	resp, err := setTask(t, svc, a.ID, 2, 1, 1, false, date("2025-03-11"))
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, 1, resp.Progress.TotalTasksCompleted)
	assert.Equal(t, 2, resp.Progress.CurrentStreak, "undo never rewinds the streak")

	stored, err := env.sprints.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	done, _ := stored.TaskCounts()
	assert.Equal(t, 1, done)

	// Undoing an already-incomplete task is a no-op.
	resp, err = setTask(t, svc, a.ID, 2, 1, 1, false, date("2025-03-11"))
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Equal(t, 1, resp.Progress.TotalTasksCompleted)
}

func TestSetTaskDone_OutOfRangeLeavesStoreUntouched(t *testing.T) {
	env := newTestEnv(t)
	a, sp := seedSprint(t, env)
	svc := env.progressService()
	ctx := context.Background()

	cases := [][3]int{
		{0, 1, 1},
		{3, 1, 1},
		{1, 5, 1},
		{1, 1, 9},
		{-1, -1, -1},
	}
	for _, c := range cases {
		_, err := setTask(t, svc, a.ID, c[0], c[1], c[2], true, date("2025-03-10"))
		var terr *contract.TaskError
		require.ErrorAs(t, err, &terr, "day=%d block=%d task=%d", c[0], c[1], c[2])
		assert.Equal(t, contract.TaskErrOutOfRange, terr.Code)
	}

	stored, err := env.sprints.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	done, _ := stored.TaskCounts()
	assert.Zero(t, done)

	p, err := env.progress.Get(ctx)
	require.NoError(t, err)
	assert.Zero(t, p.TotalTasksCompleted)
}

func TestSetTaskDone_AddressedBySprintID(t *testing.T) {
	env := newTestEnv(t)
	_, sp := seedSprint(t, env)
	svc := env.progressService()

	req := contract.SetTaskRequest{SprintID: sp.ID, Day: 1, Block: 1, Task: 1, Done: true}
	req.Now = timePtr(date("2025-03-10"))
	resp, err := svc.SetTaskDone(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, 1, resp.Progress.TotalTasksCompleted)

	req.SprintID = "missing"
	_, err = svc.SetTaskDone(context.Background(), req)
	var terr *contract.TaskError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, contract.TaskErrSprintNotFound, terr.Code)
}

func TestSetTaskDone_NoActiveSprint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := testutil.NewTestApplication("Initech")
	require.NoError(t, env.apps.Create(ctx, a))

	_, err := setTask(t, env.progressService(), a.ID, 1, 1, 1, true, date("2025-03-10"))
	var terr *contract.TaskError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, contract.TaskErrSprintNotFound, terr.Code)
}

func TestSetTaskDone_PartialWriteRollsBack(t *testing.T) {
	env := newTestEnv(t)
	a, sp := seedSprint(t, env)
	ctx := context.Background()

	failing := &testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 2,
		Err:    errors.New("disk full"),
	}
	svc := NewProgressService(env.apps, env.sprints, env.progress, failing)

	_, err := setTask(t, svc, a.ID, 1, 1, 1, true, date("2025-03-10"))
	require.Error(t, err)

	stored, err := env.sprints.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	done, _ := stored.TaskCounts()
	assert.Zero(t, done, "task flag rolled back with the progress write")

	p, err := env.progress.Get(ctx)
	require.NoError(t, err)
	assert.Zero(t, p.TotalTasksCompleted)

	// Retry on a healthy store succeeds.
	resp, err := setTask(t, env.progressService(), a.ID, 1, 1, 1, true, date("2025-03-10"))
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, 1, resp.Progress.TotalTasksCompleted)
}

func TestGetProgress_SummarizesActiveSprints(t *testing.T) {
	env := newTestEnv(t)
	a, _ := seedSprint(t, env)
	svc := env.progressService()

	_, err := setTask(t, svc, a.ID, 1, 1, 1, true, date("2025-03-10"))
	require.NoError(t, err)

	resp, err := svc.GetProgress(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Progress.TotalTasksCompleted)
	require.Len(t, resp.ActiveSprints, 1)
	view := resp.ActiveSprints[0]
	assert.Equal(t, "Initech", view.Company)
	assert.Equal(t, 1, view.TasksCompleted)
	assert.Equal(t, 6, view.TasksTotal)
	require.NotNil(t, view.InterviewDate)
}

func TestGetProgress_EmptyStore(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.progressService().GetProgress(context.Background())
	require.NoError(t, err)

	assert.Zero(t, resp.Progress.CurrentStreak)
	assert.Zero(t, resp.Progress.TotalTasksCompleted)
	assert.Nil(t, resp.Progress.LastActiveDate)
	assert.Empty(t, resp.ActiveSprints)
}
