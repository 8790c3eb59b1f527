package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arowley/prepsprint/internal/contract"
	"github.com/arowley/prepsprint/internal/db"
	"github.com/arowley/prepsprint/internal/domain"
	"github.com/arowley/prepsprint/internal/planning"
	"github.com/arowley/prepsprint/internal/repository"
)

type progressService struct {
	apps     repository.ApplicationRepo
	sprints  repository.SprintRepo
	progress repository.ProgressRepo
	uow      db.UnitOfWork
	observer UseCaseObserver

	// mu serializes completion events so streak arithmetic always sees
	// the latest aggregate.
	mu sync.Mutex
}

func NewProgressService(
	apps repository.ApplicationRepo,
	sprints repository.SprintRepo,
	progress repository.ProgressRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ProgressService {
	return &progressService{
		apps:     apps,
		sprints:  sprints,
		progress: progress,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// SetTaskDone flips one task's completion flag and folds the event into the
// progress aggregate. The task flag and the aggregate commit in one
// transaction; a failure leaves both untouched. Setting a task to the state
// it is already in changes nothing.
func (s *progressService) SetTaskDone(ctx context.Context, req contract.SetTaskRequest) (*contract.SetTaskResponse, error) {
	started := time.Now()
	resp, err := s.setTaskDone(ctx, req)

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:     "task.set_done",
		Duration: time.Since(started),
		Success:  err == nil,
		Err:      err,
		Fields: map[string]any{
			"application_id": req.ApplicationID,
			"day":            req.Day,
			"done":           req.Done,
		},
		StartedAt: started,
	})
	return resp, err
}

func (s *progressService) setTaskDone(ctx context.Context, req contract.SetTaskRequest) (*contract.SetTaskResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if req.Now != nil {
		now = req.Now.UTC()
	}

	sprint, err := s.resolveSprint(ctx, req)
	if err != nil {
		return nil, err
	}

	task, ok := sprint.TaskAt(req.Day, req.Block, req.Task)
	if !ok {
		return nil, &contract.TaskError{
			Code: contract.TaskErrOutOfRange,
			Message: fmt.Sprintf("no task at day %d, block %d, task %d in a %d-day sprint",
				req.Day, req.Block, req.Task, sprint.TotalDays),
		}
	}

	if task.Completed == req.Done {
		p, err := s.progress.Get(ctx)
		if err != nil {
			return nil, err
		}
		return &contract.SetTaskResponse{
			Changed:     false,
			Description: task.Description,
			DayComplete: sprint.DailyPlans[req.Day-1].Completed(),
			Progress:    *p,
		}, nil
	}

	var resp contract.SetTaskResponse
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		txProgress := repository.NewSQLiteProgressRepo(tx)

		if err := txSprints.SetTaskCompleted(ctx, task.ID, req.Done); err != nil {
			return err
		}

		p, err := txProgress.Get(ctx)
		if err != nil {
			return err
		}
		if req.Done {
			*p = planning.AdvanceStreak(*p, now)
		} else {
			*p = planning.RetreatCompletion(*p)
		}
		p.UpdatedAt = now
		if err := txProgress.Upsert(ctx, p); err != nil {
			return err
		}

		task.Completed = req.Done
		resp = contract.SetTaskResponse{
			Changed:     true,
			Description: task.Description,
			DayComplete: sprint.DailyPlans[req.Day-1].Completed(),
			Progress:    *p,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// resolveSprint finds the sprint a task request addresses: by ID when one
// is given, otherwise the application's canonical active sprint.
func (s *progressService) resolveSprint(ctx context.Context, req contract.SetTaskRequest) (*domain.Sprint, error) {
	if req.SprintID != "" {
		sprint, err := s.sprints.GetByID(ctx, req.SprintID)
		if err != nil {
			return nil, &contract.TaskError{
				Code:    contract.TaskErrSprintNotFound,
				Message: fmt.Sprintf("sprint %s not found", req.SprintID),
			}
		}
		return sprint, nil
	}

	sprints, err := s.sprints.ListByApplication(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	active := activeSprints(sprints)
	if len(active) == 0 {
		return nil, &contract.TaskError{
			Code:    contract.TaskErrSprintNotFound,
			Message: fmt.Sprintf("no active sprint for application %s", req.ApplicationID),
		}
	}
	return canonicalSprint(active), nil
}

func (s *progressService) GetProgress(ctx context.Context) (*contract.ProgressResponse, error) {
	p, err := s.progress.Get(ctx)
	if err != nil {
		return nil, err
	}
	resp := &contract.ProgressResponse{Progress: *p}

	active, err := s.sprints.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, sp := range active {
		view := contract.SprintProgressView{
			ApplicationID: sp.ApplicationID,
			SprintID:      sp.ID,
		}
		if !sp.InterviewDate.IsZero() {
			d := sp.InterviewDate
			view.InterviewDate = &d
		}
		view.TasksCompleted, view.TasksTotal = sp.TaskCounts()
		if a, err := s.apps.GetByID(ctx, sp.ApplicationID); err == nil {
			view.Company = a.Company
			view.Position = a.Role
		}
		resp.ActiveSprints = append(resp.ActiveSprints, view)
	}
	return resp, nil
}
