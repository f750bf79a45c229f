package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/skillforge/resumekeeper/internal/common"
	"github.com/skillforge/resumekeeper/internal/dbx"
	"github.com/skillforge/resumekeeper/internal/server/models"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = `id, username, password_hash, failed_login_attempts, lockout_until,
	first_name, last_name, email, mobile_number, portfolio, objective, address,
	education, skills, experience, projects, certificates, courses, cocurricular, interests,
	created_at, updated_at`

func scanAccount(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.FailedLoginAttempts, &a.LockoutUntil,
		&a.FirstName, &a.LastName, &a.Email, &a.MobileNumber, &a.Portfolio, &a.Objective, &a.Address,
		&a.Education, &a.Skills, &a.Experience, &a.Projects, &a.Certificates, &a.Courses, &a.Cocurricular, &a.Interests,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO accounts (id, username, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Username, account.PasswordHash).Scan(&account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`
	return scanAccount(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) UpdateLoginState(ctx context.Context, id string, failedAttempts int, lockoutUntil *time.Time) error {
	query :=
		`UPDATE accounts
		 SET failed_login_attempts = $2, lockout_until = $3
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, failedAttempts, lockoutUntil)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, account *models.Account) (*models.Account, error) {
	query :=
		`UPDATE accounts
		 SET first_name = $2, last_name = $3, email = $4, mobile_number = $5,
		     portfolio = $6, objective = $7, address = $8,
		     education = $9, skills = $10, experience = $11, projects = $12,
		     certificates = $13, courses = $14, cocurricular = $15, interests = $16,
		     updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.ID,
		account.FirstName, account.LastName, account.Email, account.MobileNumber,
		account.Portfolio, account.Objective, account.Address,
		account.Education, account.Skills, account.Experience, account.Projects,
		account.Certificates, account.Courses, account.Cocurricular, account.Interests,
	).Scan(&account.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}
