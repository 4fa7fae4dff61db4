package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Migrate applies all pending goose migrations from dir against the given
// connection.  The schema (services, staff, customers, appointments,
// messages, admins) and the scheduled-slot uniqueness guard both live in
// plain SQL files so they can be reviewed and replayed outside the server.
func Migrate(ctx context.Context, log *zap.Logger, db *sql.DB, dir string) error {
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("get migration version: %w", err)
	}
	log.Info("migrations applied", zap.Int64("version", version))
	return nil
}
