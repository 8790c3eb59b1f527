package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arowley/prepsprint/internal/db"
	"github.com/arowley/prepsprint/internal/domain"
)

// SQLiteProgressRepo implements ProgressRepo over a single-row table.
type SQLiteProgressRepo struct {
	db db.DBTX
}

// NewSQLiteProgressRepo creates a new SQLiteProgressRepo.
func NewSQLiteProgressRepo(conn db.DBTX) *SQLiteProgressRepo {
	return &SQLiteProgressRepo{db: conn}
}

func (r *SQLiteProgressRepo) Get(ctx context.Context) (*domain.UserProgress, error) {
	query := `SELECT current_streak, longest_streak, last_active_date, total_tasks_completed, updated_at
		FROM user_progress WHERE id = 1`
	row := r.db.QueryRowContext(ctx, query)

	var p domain.UserProgress
	var lastActiveStr sql.NullString
	var updatedAtStr string
	err := row.Scan(&p.CurrentStreak, &p.LongestStreak, &lastActiveStr, &p.TotalTasksCompleted, &updatedAtStr)
	if err == sql.ErrNoRows {
		return &domain.UserProgress{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user progress: %w", err)
	}

	p.LastActiveDate = parseNullableTime(lastActiveStr, dateLayout)
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

func (r *SQLiteProgressRepo) Upsert(ctx context.Context, p *domain.UserProgress) error {
	query := `INSERT INTO user_progress (id, current_streak, longest_streak, last_active_date, total_tasks_completed, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			last_active_date = excluded.last_active_date,
			total_tasks_completed = excluded.total_tasks_completed,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.CurrentStreak,
		p.LongestStreak,
		nullableTimeToString(p.LastActiveDate, dateLayout),
		p.TotalTasksCompleted,
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting user progress: %w", err)
	}
	return nil
}
