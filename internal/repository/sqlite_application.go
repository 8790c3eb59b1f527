package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arowley/prepsprint/internal/db"
	"github.com/arowley/prepsprint/internal/domain"
)

// SQLiteApplicationRepo implements ApplicationRepo over SQLite.
type SQLiteApplicationRepo struct {
	db db.DBTX
}

// NewSQLiteApplicationRepo creates a new SQLiteApplicationRepo.
func NewSQLiteApplicationRepo(conn db.DBTX) *SQLiteApplicationRepo {
	return &SQLiteApplicationRepo{db: conn}
}

const applicationColumns = `id, company, role, role_type, status, interview_date, notes, created_at, updated_at`

func (r *SQLiteApplicationRepo) Create(ctx context.Context, a *domain.Application) error {
	query := `INSERT INTO applications (` + applicationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Company,
		a.Role,
		string(a.RoleType),
		string(a.Status),
		nullableTimeToString(a.InterviewDate, dateLayout),
		a.Notes,
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting application: %w", err)
	}
	return nil
}

func (r *SQLiteApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanApplication(row)
}

func (r *SQLiteApplicationRepo) List(ctx context.Context) ([]*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*domain.Application
	for rows.Next() {
		a, err := scanApplicationFromRows(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating applications: %w", err)
	}
	return apps, nil
}

func (r *SQLiteApplicationRepo) Update(ctx context.Context, a *domain.Application) error {
	query := `UPDATE applications SET company = ?, role = ?, role_type = ?, status = ?, interview_date = ?, notes = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		a.Company,
		a.Role,
		string(a.RoleType),
		string(a.Status),
		nullableTimeToString(a.InterviewDate, dateLayout),
		a.Notes,
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating application: %w", err)
	}
	return nil
}

func (r *SQLiteApplicationRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM applications WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting application: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplicationRow(scanner rowScanner) (*domain.Application, error) {
	var a domain.Application
	var roleTypeStr, statusStr, createdAtStr, updatedAtStr string
	var interviewDateStr sql.NullString

	err := scanner.Scan(
		&a.ID, &a.Company, &a.Role,
		&roleTypeStr, &statusStr,
		&interviewDateStr, &a.Notes,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	a.RoleType = domain.RoleType(roleTypeStr)
	a.Status = domain.ApplicationStatus(statusStr)
	a.InterviewDate = parseNullableTime(interviewDateStr, dateLayout)

	var parseErr error
	a.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	a.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &a, nil
}

func scanApplication(row *sql.Row) (*domain.Application, error) {
	a, err := scanApplicationRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("application not found")
		}
		return nil, fmt.Errorf("scanning application: %w", err)
	}
	return a, nil
}

func scanApplicationFromRows(rows *sql.Rows) (*domain.Application, error) {
	a, err := scanApplicationRow(rows)
	if err != nil {
		return nil, fmt.Errorf("scanning application row: %w", err)
	}
	return a, nil
}
