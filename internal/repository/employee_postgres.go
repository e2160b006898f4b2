package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portal-identity/internal/domain"
)

const uniqueViolationCode = "23505"

// ErrEmailTaken is returned when the employees email unique index rejects a write.
var ErrEmailTaken = errors.New("email already in use")

const employeeColumns = `id, name, email, gender, position, project, start_date, end_date,
        grade, secret, first_login_pending, survey, created_at, updated_at`

// DB is the subset of pgxpool.Pool the repository uses; pgxmock satisfies it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type postgresEmployeeRepository struct {
	db DB
}

// NewPostgresEmployeeRepository returns a Postgres-backed directory.
func NewPostgresEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &postgresEmployeeRepository{db: pool}
}

// NewPostgresEmployeeRepositoryWithDB allows injecting a mock connection in tests.
func NewPostgresEmployeeRepositoryWithDB(db DB) EmployeeRepository {
	return &postgresEmployeeRepository{db: db}
}

func (r *postgresEmployeeRepository) Insert(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (id, name, email, gender, position, project, start_date, end_date,
            grade, secret, first_login_pending, survey)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING created_at, updated_at`

	survey, err := marshalSurvey(employee.Survey)
	if err != nil {
		return err
	}

	if err := r.db.QueryRow(ctx, query,
		employee.ID,
		employee.Name,
		employee.Email,
		employee.Gender,
		employee.Position,
		employee.Project,
		employee.StartDate,
		employee.EndDate,
		employee.Grade,
		employee.Secret,
		employee.FirstLoginPending,
		survey,
	).Scan(&employee.CreatedAt, &employee.UpdatedAt); err != nil {
		return translatePgError(err)
	}
	return nil
}

// Update merges the patch onto the current row inside a transaction; the row
// lock serializes concurrent read-modify-write on the same employee.
func (r *postgresEmployeeRepository) Update(ctx context.Context, id string, patch EmployeePatch) (*domain.Employee, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	current, err := scanEmployee(tx.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id=$1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}

	applyPatch(current, patch, current.UpdatedAt)

	survey, err := marshalSurvey(current.Survey)
	if err != nil {
		return nil, err
	}

	const query = `
        UPDATE employees SET name=$1, email=$2, gender=$3, position=$4, project=$5,
            start_date=$6, end_date=$7, grade=$8, secret=$9, first_login_pending=$10,
            survey=$11, updated_at=NOW()
        WHERE id=$12
        RETURNING updated_at`

	if err := tx.QueryRow(ctx, query,
		current.Name,
		current.Email,
		current.Gender,
		current.Position,
		current.Project,
		current.StartDate,
		current.EndDate,
		current.Grade,
		current.Secret,
		current.FirstLoginPending,
		survey,
		id,
	).Scan(&current.UpdatedAt); err != nil {
		return nil, translatePgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return current, nil
}

func (r *postgresEmployeeRepository) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *postgresEmployeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return scanEmployee(r.db.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id=$1`, id))
}

// GetByEmail matches exactly: the email column is queried without
// normalization, preserving case-sensitive lookup semantics.
func (r *postgresEmployeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return scanEmployee(r.db.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE email=$1`, email))
}

func (r *postgresEmployeeRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var (
		employee domain.Employee
		survey   []byte
	)
	if err := row.Scan(
		&employee.ID,
		&employee.Name,
		&employee.Email,
		&employee.Gender,
		&employee.Position,
		&employee.Project,
		&employee.StartDate,
		&employee.EndDate,
		&employee.Grade,
		&employee.Secret,
		&employee.FirstLoginPending,
		&survey,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		return nil, translatePgError(err)
	}
	if len(survey) > 0 {
		var result domain.SurveyResult
		if err := json.Unmarshal(survey, &result); err != nil {
			return nil, fmt.Errorf("decode survey: %w", err)
		}
		employee.Survey = &result
	}
	return &employee, nil
}

func marshalSurvey(survey *domain.SurveyResult) ([]byte, error) {
	if survey == nil {
		return nil, nil
	}
	data, err := json.Marshal(survey)
	if err != nil {
		return nil, fmt.Errorf("encode survey: %w", err)
	}
	return data, nil
}

func translatePgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrEmailTaken
	}
	return err
}
