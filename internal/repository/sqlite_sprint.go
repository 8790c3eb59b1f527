package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arowley/prepsprint/internal/db"
	"github.com/arowley/prepsprint/internal/domain"
)

// SQLiteSprintRepo implements SprintRepo over SQLite. The aggregate is
// normalized across sprints, daily_plans, blocks and tasks; reads reassemble
// it in (day, position) order so plan ordering is stable.
type SQLiteSprintRepo struct {
	db db.DBTX
}

// NewSQLiteSprintRepo creates a new SQLiteSprintRepo.
func NewSQLiteSprintRepo(conn db.DBTX) *SQLiteSprintRepo {
	return &SQLiteSprintRepo{db: conn}
}

const sprintColumns = `id, application_id, interview_date, role_type, total_days, status, created_at, updated_at`

func (r *SQLiteSprintRepo) Create(ctx context.Context, s *domain.Sprint) error {
	query := `INSERT INTO sprints (` + sprintColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ApplicationID,
		s.InterviewDate.Format(dateLayout),
		string(s.RoleType),
		s.TotalDays,
		string(s.Status),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting sprint: %w", err)
	}
	return r.insertPlans(ctx, s)
}

func (r *SQLiteSprintRepo) GetByID(ctx context.Context, id string) (*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	s, err := scanSprintRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sprint not found")
		}
		return nil, err
	}
	if err := r.loadPlans(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSprintRepo) ListByApplication(ctx context.Context, applicationID string) ([]*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints
		WHERE application_id = ? ORDER BY created_at, id`
	return r.listSprints(ctx, query, applicationID)
}

func (r *SQLiteSprintRepo) ListActive(ctx context.Context) ([]*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints
		WHERE status = 'active' ORDER BY created_at, id`
	return r.listSprints(ctx, query)
}

func (r *SQLiteSprintRepo) listSprints(ctx context.Context, query string, args ...any) ([]*domain.Sprint, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sprints: %w", err)
	}
	defer rows.Close()

	var sprints []*domain.Sprint
	for rows.Next() {
		s, err := scanSprintRow(rows)
		if err != nil {
			return nil, err
		}
		sprints = append(sprints, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sprints: %w", err)
	}

	for _, s := range sprints {
		if err := r.loadPlans(ctx, s); err != nil {
			return nil, err
		}
	}
	return sprints, nil
}

func (r *SQLiteSprintRepo) ReplacePlans(ctx context.Context, s *domain.Sprint) error {
	query := `UPDATE sprints SET interview_date = ?, role_type = ?, total_days = ?, status = ?, created_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.InterviewDate.Format(dateLayout),
		string(s.RoleType),
		s.TotalDays,
		string(s.Status),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating sprint: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("sprint not found")
	}

	// Cascades down to blocks and tasks.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM daily_plans WHERE sprint_id = ?`, s.ID); err != nil {
		return fmt.Errorf("clearing daily plans: %w", err)
	}
	return r.insertPlans(ctx, s)
}

func (r *SQLiteSprintRepo) SetStatus(ctx context.Context, id string, status domain.SprintStatus) error {
	query := `UPDATE sprints SET status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, string(status), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating sprint status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("sprint not found")
	}
	return nil
}

func (r *SQLiteSprintRepo) SetTaskCompleted(ctx context.Context, taskID string, completed bool) error {
	query := `UPDATE tasks SET completed = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, boolToInt(completed), taskID)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task not found")
	}
	return nil
}

func (r *SQLiteSprintRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM daily_plans WHERE sprint_id = ?`, id); err != nil {
		return fmt.Errorf("deleting daily plans: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sprints WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting sprint: %w", err)
	}
	return nil
}

func (r *SQLiteSprintRepo) insertPlans(ctx context.Context, s *domain.Sprint) error {
	for _, plan := range s.DailyPlans {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO daily_plans (sprint_id, day, date, focus) VALUES (?, ?, ?, ?)`,
			s.ID, plan.Day, plan.Date.Format(dateLayout), string(plan.Focus),
		)
		if err != nil {
			return fmt.Errorf("inserting daily plan %d: %w", plan.Day, err)
		}
		for pos, block := range plan.Blocks {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO blocks (id, sprint_id, day, position, type, duration) VALUES (?, ?, ?, ?, ?, ?)`,
				block.ID, s.ID, plan.Day, pos, string(block.Type), block.Duration,
			)
			if err != nil {
				return fmt.Errorf("inserting block %s: %w", block.ID, err)
			}
			for tpos, task := range block.Tasks {
				_, err := r.db.ExecContext(ctx,
					`INSERT INTO tasks (id, block_id, position, description, category, completed) VALUES (?, ?, ?, ?, ?, ?)`,
					task.ID, block.ID, tpos, task.Description, task.Category, boolToInt(task.Completed),
				)
				if err != nil {
					return fmt.Errorf("inserting task %s: %w", task.ID, err)
				}
			}
		}
	}
	return nil
}

func (r *SQLiteSprintRepo) loadPlans(ctx context.Context, s *domain.Sprint) error {
	planRows, err := r.db.QueryContext(ctx,
		`SELECT day, date, focus FROM daily_plans WHERE sprint_id = ? ORDER BY day`, s.ID)
	if err != nil {
		return fmt.Errorf("loading daily plans: %w", err)
	}
	defer planRows.Close()

	planIndex := make(map[int]int)
	s.DailyPlans = nil
	for planRows.Next() {
		var plan domain.DailyPlan
		var dateStr, focusStr string
		if err := planRows.Scan(&plan.Day, &dateStr, &focusStr); err != nil {
			return fmt.Errorf("scanning daily plan: %w", err)
		}
		plan.Focus = domain.FocusArea(focusStr)
		// A zero Date marks an unparseable stored value; the selector
		// reports those as a distinct not-found condition.
		if t, err := time.Parse(dateLayout, dateStr); err == nil {
			plan.Date = t
		}
		planIndex[plan.Day] = len(s.DailyPlans)
		s.DailyPlans = append(s.DailyPlans, plan)
	}
	if err := planRows.Err(); err != nil {
		return fmt.Errorf("iterating daily plans: %w", err)
	}

	blockRows, err := r.db.QueryContext(ctx,
		`SELECT id, day, type, duration FROM blocks WHERE sprint_id = ? ORDER BY day, position`, s.ID)
	if err != nil {
		return fmt.Errorf("loading blocks: %w", err)
	}
	defer blockRows.Close()

	blockPlan := make(map[string]int)
	blockPos := make(map[string]int)
	for blockRows.Next() {
		var block domain.Block
		var day int
		var typeStr string
		if err := blockRows.Scan(&block.ID, &day, &typeStr, &block.Duration); err != nil {
			return fmt.Errorf("scanning block: %w", err)
		}
		block.Type = domain.BlockType(typeStr)
		idx, ok := planIndex[day]
		if !ok {
			return fmt.Errorf("block %s references missing day %d", block.ID, day)
		}
		blockPlan[block.ID] = idx
		blockPos[block.ID] = len(s.DailyPlans[idx].Blocks)
		s.DailyPlans[idx].Blocks = append(s.DailyPlans[idx].Blocks, block)
	}
	if err := blockRows.Err(); err != nil {
		return fmt.Errorf("iterating blocks: %w", err)
	}

	taskRows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.block_id, t.description, t.category, t.completed
		FROM tasks t JOIN blocks b ON b.id = t.block_id
		WHERE b.sprint_id = ? ORDER BY b.day, b.position, t.position`, s.ID)
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	defer taskRows.Close()

	for taskRows.Next() {
		var task domain.Task
		var blockID string
		var completed int
		if err := taskRows.Scan(&task.ID, &blockID, &task.Description, &task.Category, &completed); err != nil {
			return fmt.Errorf("scanning task: %w", err)
		}
		task.Completed = completed != 0
		idx, ok := blockPlan[blockID]
		if !ok {
			return fmt.Errorf("task %s references missing block %s", task.ID, blockID)
		}
		block := &s.DailyPlans[idx].Blocks[blockPos[blockID]]
		block.Tasks = append(block.Tasks, task)
	}
	if err := taskRows.Err(); err != nil {
		return fmt.Errorf("iterating tasks: %w", err)
	}
	return nil
}

func scanSprintRow(scanner rowScanner) (*domain.Sprint, error) {
	var s domain.Sprint
	var interviewDateStr, roleTypeStr, statusStr, createdAtStr, updatedAtStr string

	err := scanner.Scan(
		&s.ID, &s.ApplicationID,
		&interviewDateStr, &roleTypeStr, &s.TotalDays,
		&statusStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning sprint: %w", err)
	}

	s.RoleType = domain.RoleType(roleTypeStr)
	s.Status = domain.SprintStatus(statusStr)

	var parseErr error
	s.InterviewDate, parseErr = time.Parse(dateLayout, interviewDateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing interview_date: %w", parseErr)
	}
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &s, nil
}
