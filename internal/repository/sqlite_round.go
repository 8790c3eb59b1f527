package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arowley/prepsprint/internal/db"
	"github.com/arowley/prepsprint/internal/domain"
)

// SQLiteRoundRepo implements RoundRepo over SQLite. Questions and feedback
// are stored as JSON text; round_type is stored verbatim so values outside
// the known stage set survive a round-trip.
type SQLiteRoundRepo struct {
	db db.DBTX
}

// NewSQLiteRoundRepo creates a new SQLiteRoundRepo.
func NewSQLiteRoundRepo(conn db.DBTX) *SQLiteRoundRepo {
	return &SQLiteRoundRepo{db: conn}
}

const roundColumns = `id, application_id, round_number, round_type, scheduled_date, notes, questions, feedback, created_at`

func (r *SQLiteRoundRepo) Create(ctx context.Context, round *domain.InterviewRound) error {
	questions, err := stringSliceToJSON(round.Questions)
	if err != nil {
		return err
	}
	feedback, err := feedbackToJSON(round.Feedback)
	if err != nil {
		return err
	}
	query := `INSERT INTO interview_rounds (` + roundColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		round.ID,
		round.ApplicationID,
		round.RoundNumber,
		string(round.RoundType),
		nullableTimeToString(round.ScheduledDate, dateLayout),
		round.Notes,
		questions,
		feedback,
		round.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting interview round: %w", err)
	}
	return nil
}

func (r *SQLiteRoundRepo) GetByID(ctx context.Context, id string) (*domain.InterviewRound, error) {
	query := `SELECT ` + roundColumns + ` FROM interview_rounds WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	round, err := scanRound(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("interview round not found")
		}
		return nil, err
	}
	return round, nil
}

func (r *SQLiteRoundRepo) ListByApplication(ctx context.Context, applicationID string) ([]domain.InterviewRound, error) {
	query := `SELECT ` + roundColumns + ` FROM interview_rounds
		WHERE application_id = ? ORDER BY round_number`
	rows, err := r.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("listing interview rounds: %w", err)
	}
	defer rows.Close()

	var rounds []domain.InterviewRound
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, *round)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating interview rounds: %w", err)
	}
	return rounds, nil
}

func (r *SQLiteRoundRepo) Update(ctx context.Context, round *domain.InterviewRound) error {
	questions, err := stringSliceToJSON(round.Questions)
	if err != nil {
		return err
	}
	feedback, err := feedbackToJSON(round.Feedback)
	if err != nil {
		return err
	}
	query := `UPDATE interview_rounds SET round_type = ?, scheduled_date = ?, notes = ?, questions = ?, feedback = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		string(round.RoundType),
		nullableTimeToString(round.ScheduledDate, dateLayout),
		round.Notes,
		questions,
		feedback,
		round.ID,
	)
	if err != nil {
		return fmt.Errorf("updating interview round: %w", err)
	}
	return nil
}

func feedbackToJSON(f *domain.Feedback) (interface{}, error) {
	if f == nil {
		return nil, nil
	}
	raw, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshaling feedback: %w", err)
	}
	return string(raw), nil
}

func scanRound(scanner rowScanner) (*domain.InterviewRound, error) {
	var round domain.InterviewRound
	var roundTypeStr, createdAtStr string
	var scheduledDateStr, questionsStr, feedbackStr sql.NullString

	err := scanner.Scan(
		&round.ID, &round.ApplicationID, &round.RoundNumber,
		&roundTypeStr, &scheduledDateStr, &round.Notes,
		&questionsStr, &feedbackStr, &createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning interview round: %w", err)
	}

	round.RoundType = domain.RoundType(roundTypeStr)
	round.ScheduledDate = parseNullableTime(scheduledDateStr, dateLayout)

	round.Questions, err = jsonToStringSlice(questionsStr)
	if err != nil {
		return nil, err
	}

	if feedbackStr.Valid && feedbackStr.String != "" {
		var f domain.Feedback
		if err := json.Unmarshal([]byte(feedbackStr.String), &f); err != nil {
			return nil, fmt.Errorf("unmarshaling feedback: %w", err)
		}
		round.Feedback = &f
	}

	round.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &round, nil
}
