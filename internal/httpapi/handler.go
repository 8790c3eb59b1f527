package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arowley/prepsprint/internal/contract"
	"github.com/arowley/prepsprint/internal/dateinput"
	"github.com/arowley/prepsprint/internal/domain"
	"github.com/arowley/prepsprint/internal/export"
	"github.com/arowley/prepsprint/internal/service"
)

const maxBodyBytes = 1 << 20 // 1 MB

// progressPort is the slice of the progress service the handler needs.
type progressPort interface {
	contract.TaskUseCase
	contract.ProgressUseCase
}

type Handler struct {
	apps     service.ApplicationService
	sprints  service.SprintService
	plans    contract.PlanUseCase
	progress progressPort
	dates    dateinput.Resolver
}

func New(
	apps service.ApplicationService,
	sprints service.SprintService,
	plans contract.PlanUseCase,
	progress progressPort,
) *Handler {
	return &Handler{
		apps:     apps,
		sprints:  sprints,
		plans:    plans,
		progress: progress,
		dates:    dateinput.NewResolver(),
	}
}

func requireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			ct := r.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, "application/json") {
				respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func maxBodyMiddleware(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.health)
	// The PDF route sets its own content type and takes no body.
	r.Get("/applications/{id}/sprint.pdf", h.exportSprintPDF)

	r.Group(func(r chi.Router) {
		r.Use(maxBodyMiddleware(maxBodyBytes))
		r.Use(requireJSON)

		r.Get("/applications", h.listApplications)
		r.Post("/applications", h.createApplication)
		r.Get("/applications/{id}", h.getApplication)
		r.Delete("/applications/{id}", h.deleteApplication)
		r.Post("/applications/{id}/status", h.setStatus)
		r.Post("/applications/{id}/interview", h.scheduleInterview)
		r.Post("/applications/{id}/rounds", h.addRound)
		r.Post("/applications/{id}/tasks", h.setTask)
		r.Get("/applications/{id}/sprint", h.getSprint)
		r.Post("/sprints/{id}/tasks/complete", h.setSprintTask(true))
		r.Post("/sprints/{id}/tasks/uncomplete", h.setSprintTask(false))
		r.Post("/rounds/{id}/feedback", h.recordFeedback)
		r.Get("/plans", h.getPlans)
		r.Get("/progress", h.getProgress)
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.apps.List(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	views := make([]applicationView, 0, len(apps))
	for _, a := range apps {
		views = append(views, toApplicationView(a))
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *Handler) createApplication(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Company  string `json:"company"`
		Role     string `json:"role"`
		RoleType string `json:"role_type"`
		Notes    string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	a := &domain.Application{
		Company:  body.Company,
		Role:     body.Role,
		RoleType: domain.RoleType(body.RoleType),
		Notes:    body.Notes,
	}
	if err := h.apps.Create(r.Context(), a); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, toApplicationView(a))
}

func (h *Handler) getApplication(w http.ResponseWriter, r *http.Request) {
	a, err := h.apps.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toApplicationView(a))
}

func (h *Handler) deleteApplication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.apps.GetByID(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := h.apps.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	id := chi.URLParam(r, "id")
	if _, err := h.apps.GetByID(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := h.apps.SetStatus(r.Context(), id, domain.ApplicationStatus(body.Status)); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := h.apps.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toApplicationView(a))
}

// scheduleInterview records the interview and immediately regenerates the
// sprint. When the existing sprint has completed work, the response is 409
// with requires_confirmation set; retry with {"confirm": true}.
func (h *Handler) scheduleInterview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date     string `json:"date"`
		RoleType string `json:"role_type"`
		Confirm  bool   `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	when, err := h.dates.Resolve(body.Date, time.Now().UTC())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	prior, err := h.apps.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := h.apps.ScheduleInterview(r.Context(), id, when, domain.RoleType(body.RoleType)); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := contract.NewRegenerateRequest(id)
	req.Confirmed = body.Confirm
	resp, err := h.sprints.Regenerate(r.Context(), req)
	if err != nil {
		// The 409 tells the client nothing was replaced; undo the schedule
		// so the application does not drift from its sprint.
		if restoreErr := h.apps.Update(r.Context(), prior); restoreErr != nil {
			slog.Error("restoring application after failed regeneration", "error", restoreErr)
		}
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"outcome":            string(resp.Outcome),
		"expired_sprint_ids": resp.ExpiredSprintIDs,
		"warnings":           resp.Warnings,
		"sprint":             toSprintView(resp.Sprint),
	})
}

func (h *Handler) addRound(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RoundType     string   `json:"round_type"`
		ScheduledDate string   `json:"scheduled_date"`
		Notes         string   `json:"notes"`
		Questions     []string `json:"questions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	round := &domain.InterviewRound{
		RoundType: domain.RoundType(body.RoundType),
		Notes:     body.Notes,
		Questions: body.Questions,
	}
	if body.ScheduledDate != "" {
		when, err := h.dates.Resolve(body.ScheduledDate, time.Now().UTC())
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		round.ScheduledDate = &when
	}

	id := chi.URLParam(r, "id")
	if _, err := h.apps.GetByID(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := h.apps.AddRound(r.Context(), id, round); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toRoundView(round))
}

func (h *Handler) recordFeedback(w http.ResponseWriter, r *http.Request) {
	var body feedbackView
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	fb := domain.Feedback{
		Rating:          body.Rating,
		Pros:            body.Pros,
		Cons:            body.Cons,
		StruggledTopics: body.StruggledTopics,
		Notes:           body.Notes,
	}
	if err := h.apps.RecordFeedback(r.Context(), chi.URLParam(r, "id"), fb); err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getSprint(w http.ResponseWriter, r *http.Request) {
	sp, err := h.sprints.ActiveForApplication(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toSprintView(sp))
}

func (h *Handler) setTask(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Day   int   `json:"day"`
		Block int   `json:"block"`
		Task  int   `json:"task"`
		Done  *bool `json:"done"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req := contract.NewSetTaskRequest(chi.URLParam(r, "id"), body.Day, body.Block, body.Task)
	if body.Done != nil {
		req.Done = *body.Done
	}
	resp, err := h.progress.SetTaskDone(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"changed":      resp.Changed,
		"description":  resp.Description,
		"day_complete": resp.DayComplete,
		"progress": map[string]any{
			"current_streak":        resp.Progress.CurrentStreak,
			"longest_streak":        resp.Progress.LongestStreak,
			"total_tasks_completed": resp.Progress.TotalTasksCompleted,
		},
	})
}

// setSprintTask is the sprint-addressed variant of setTask for callers that
// already hold a sprint ID, completed or expired sprints included.
func (h *Handler) setSprintTask(done bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Day   int `json:"day"`
			Block int `json:"block"`
			Task  int `json:"task"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		req := contract.SetTaskRequest{
			SprintID: chi.URLParam(r, "id"),
			Day:      body.Day,
			Block:    body.Block,
			Task:     body.Task,
			Done:     done,
		}
		resp, err := h.progress.SetTaskDone(r.Context(), req)
		if err != nil {
			h.respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"changed":      resp.Changed,
			"description":  resp.Description,
			"day_complete": resp.DayComplete,
			"progress": map[string]any{
				"current_streak":        resp.Progress.CurrentStreak,
				"longest_streak":        resp.Progress.LongestStreak,
				"total_tasks_completed": resp.Progress.TotalTasksCompleted,
			},
		})
	}
}

func (h *Handler) getPlans(w http.ResponseWriter, r *http.Request) {
	req := contract.NewPlanRequest()
	req.ApplicationID = r.URL.Query().Get("application_id")
	if raw := r.URL.Query().Get("date"); raw != "" {
		when, err := h.dates.Resolve(raw, time.Now().UTC())
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Date = &when
	}

	resp, err := h.plans.PlanForDate(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPlanResponseView(resp))
}

func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	resp, err := h.progress.GetProgress(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProgressView(resp))
}

func (h *Handler) exportSprintPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, err := h.apps.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	sp, err := h.sprints.ActiveForApplication(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "sprint_"+a.Company+".pdf"))
	if err := export.WriteSchedulePDF(w, export.SprintPDF{
		Company:  a.Company,
		Position: a.Role,
		Sprint:   sp,
	}); err != nil {
		slog.Error("writing sprint pdf", "error", err)
	}
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// A confirmation-required reconciliation is 409 so clients can retry with
// confirm set.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	var rerr *contract.ReconcileError
	if errors.As(err, &rerr) {
		switch rerr.Code {
		case contract.ReconcileErrConfirmationRequired:
			respondJSON(w, http.StatusConflict, map[string]any{
				"error":                 rerr.Message,
				"requires_confirmation": true,
				"completed_tasks":       rerr.CompletedTasks,
			})
		case contract.ReconcileErrApplicationNotFound:
			respondError(w, http.StatusNotFound, rerr.Message)
		case contract.ReconcileErrMissingInterview, contract.ReconcileErrUnknownRole:
			respondError(w, http.StatusUnprocessableEntity, rerr.Message)
		default:
			respondError(w, http.StatusInternalServerError, rerr.Message)
		}
		return
	}

	var perr *contract.PlanError
	if errors.As(err, &perr) {
		respondError(w, http.StatusNotFound, perr.Message)
		return
	}

	var terr *contract.TaskError
	if errors.As(err, &terr) {
		switch terr.Code {
		case contract.TaskErrSprintNotFound:
			respondError(w, http.StatusNotFound, terr.Message)
		default:
			respondError(w, http.StatusUnprocessableEntity, terr.Message)
		}
		return
	}

	respondError(w, http.StatusInternalServerError, err.Error())
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
