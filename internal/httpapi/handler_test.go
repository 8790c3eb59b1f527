package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arowley/prepsprint/internal/repository"
	"github.com/arowley/prepsprint/internal/service"
	"github.com/arowley/prepsprint/internal/testutil"
)

func setupTest(t *testing.T) chi.Router {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	apps := repository.NewSQLiteApplicationRepo(database)
	rounds := repository.NewSQLiteRoundRepo(database)
	sprints := repository.NewSQLiteSprintRepo(database)
	progress := repository.NewSQLiteProgressRepo(database)

	h := New(
		service.NewApplicationService(apps, rounds, sprints, uow),
		service.NewSprintService(apps, sprints, uow),
		service.NewPlanService(apps, rounds, sprints),
		service.NewProgressService(apps, sprints, progress, uow),
	)
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func doJSON(t *testing.T, r chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createApplication(t *testing.T, r chi.Router) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/applications",
		`{"company":"Initech","role":"Backend Engineer","role_type":"backend"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func scheduleInterview(t *testing.T, r chi.Router, appID, date string, confirm bool) *httptest.ResponseRecorder {
	t.Helper()
	body := fmt.Sprintf(`{"date":%q,"role_type":"backend","confirm":%t}`, date, confirm)
	return doJSON(t, r, http.MethodPost, "/applications/"+appID+"/interview", body)
}

func TestHealth(t *testing.T) {
	r := setupTest(t)
	w := doJSON(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateApplication_Validation(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/applications", `{"role":"Backend Engineer"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/applications", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/applications", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code, "missing content type is rejected")
}

func TestApplicationLifecycle(t *testing.T) {
	r := setupTest(t)
	id := createApplication(t, r)

	w := doJSON(t, r, http.MethodGet, "/applications/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var app applicationView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&app))
	assert.Equal(t, "Initech", app.Company)
	assert.Equal(t, "applied", app.Status)

	w = doJSON(t, r, http.MethodPost, "/applications/"+id+"/status", `{"status":"shortlisted"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/applications/"+id+"/status", `{"status":"ghosted"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/applications/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/applications/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleInterview_CreatesSprint(t *testing.T) {
	r := setupTest(t)
	id := createApplication(t, r)

	w := scheduleInterview(t, r, id, "tomorrow", false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Outcome string     `json:"outcome"`
		Sprint  sprintView `json:"sprint"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "created", resp.Outcome)
	assert.Equal(t, 1, resp.Sprint.TotalDays, "interview tomorrow leaves one prep day")

	w = doJSON(t, r, http.MethodGet, "/applications/"+id+"/sprint", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestScheduleInterview_ConflictAndConfirm(t *testing.T) {
	r := setupTest(t)
	id := createApplication(t, r)

	w := scheduleInterview(t, r, id, "tomorrow", false)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/applications/"+id+"/tasks",
		`{"day":1,"block":1,"task":1,"done":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = scheduleInterview(t, r, id, "tomorrow", false)
	require.Equal(t, http.StatusConflict, w.Code)
	var conflict struct {
		RequiresConfirmation bool `json:"requires_confirmation"`
		CompletedTasks       int  `json:"completed_tasks"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&conflict))
	assert.True(t, conflict.RequiresConfirmation)
	assert.Equal(t, 1, conflict.CompletedTasks)

	w = scheduleInterview(t, r, id, "tomorrow", true)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Outcome string `json:"outcome"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "replaced", resp.Outcome)
}

func TestScheduleInterview_ConflictLeavesScheduleUnchanged(t *testing.T) {
	r := setupTest(t)
	id := createApplication(t, r)

	require.Equal(t, http.StatusCreated, scheduleInterview(t, r, id, "tomorrow", false).Code)

	w := doJSON(t, r, http.MethodGet, "/applications/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var before applicationView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&before))
	require.NotNil(t, before.InterviewDate)

	// An unconfirmed reschedule to a later date is rejected, and the
	// application keeps the date its sprint was built for.
	w = scheduleInterview(t, r, id, "2030-06-01", false)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/applications/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var after applicationView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&after))
	require.NotNil(t, after.InterviewDate)
	assert.Equal(t, *before.InterviewDate, *after.InterviewDate)
}

func TestScheduleInterview_BadInputs(t *testing.T) {
	r := setupTest(t)
	id := createApplication(t, r)

	w := scheduleInterview(t, r, "nope", "tomorrow", false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/applications/"+id+"/interview",
		`{"date":"next tuesday","role_type":"backend"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/applications/"+id+"/interview",
		`{"date":"tomorrow","role_type":"astronaut"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetTask_Errors(t *testing.T) {
	r := setupTest(t)
	id := createApplication(t, r)

	w := doJSON(t, r, http.MethodPost, "/applications/"+id+"/tasks",
		`{"day":1,"block":1,"task":1,"done":true}`)
	assert.Equal(t, http.StatusNotFound, w.Code, "no active sprint yet")

	require.Equal(t, http.StatusCreated, scheduleInterview(t, r, id, "tomorrow", false).Code)

	w = doJSON(t, r, http.MethodPost, "/applications/"+id+"/tasks",
		`{"day":99,"block":1,"task":1,"done":true}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSprintTaskRoutes(t *testing.T) {
	r := setupTest(t)
	id := createApplication(t, r)
	require.Equal(t, http.StatusCreated, scheduleInterview(t, r, id, "tomorrow", false).Code)

	w := doJSON(t, r, http.MethodGet, "/applications/"+id+"/sprint", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sprint sprintView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sprint))

	w = doJSON(t, r, http.MethodPost, "/sprints/"+sprint.ID+"/tasks/complete",
		`{"day":1,"block":1,"task":1}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Changed  bool `json:"changed"`
		Progress struct {
			TotalTasksCompleted int `json:"total_tasks_completed"`
		} `json:"progress"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Changed)
	assert.Equal(t, 1, resp.Progress.TotalTasksCompleted)

	w = doJSON(t, r, http.MethodPost, "/sprints/"+sprint.ID+"/tasks/uncomplete",
		`{"day":1,"block":1,"task":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Changed)
	assert.Equal(t, 0, resp.Progress.TotalTasksCompleted)

	w = doJSON(t, r, http.MethodPost, "/sprints/nope/tasks/complete",
		`{"day":1,"block":1,"task":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlansAndProgress(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodGet, "/plans", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "no active sprints anywhere")

	id := createApplication(t, r)
	require.Equal(t, http.StatusCreated, scheduleInterview(t, r, id, "tomorrow", false).Code)

	w = doJSON(t, r, http.MethodGet, "/plans?date=today", "")
	require.Equal(t, http.StatusOK, w.Code)
	var plans planResponseView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&plans))
	require.Len(t, plans.Plans, 1)
	assert.Equal(t, "Initech", plans.Plans[0].Company)
	assert.NotEmpty(t, plans.Plans[0].Blocks)

	w = doJSON(t, r, http.MethodGet, "/plans?date=bogus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/applications/"+id+"/tasks",
		`{"day":1,"block":1,"task":1,"done":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/progress", "")
	require.Equal(t, http.StatusOK, w.Code)
	var prog progressView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&prog))
	assert.Equal(t, 1, prog.TotalTasksCompleted)
	assert.Equal(t, 1, prog.CurrentStreak)
	require.Len(t, prog.ActiveSprints, 1)
	assert.Equal(t, 1, prog.ActiveSprints[0].TasksCompleted)
}

func TestExportSprintPDF(t *testing.T) {
	r := setupTest(t)
	id := createApplication(t, r)
	require.Equal(t, http.StatusCreated, scheduleInterview(t, r, id, "tomorrow", false).Code)

	w := doJSON(t, r, http.MethodGet, "/applications/"+id+"/sprint.pdf", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = doJSON(t, r, http.MethodGet, "/applications/nope/sprint.pdf", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
