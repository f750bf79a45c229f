package db

import (
	"context"
	"database/sql"

	"github.com/skillforge/resumekeeper/internal/server/repositories/accounts"
)

// RepositoryManager owns the database handle and hands out repositories.
type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Accounts() accounts.Repository
	Close() error
}
