package shadow

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/mvoronin/authgate/internal/shadow/migrations"
)

// RunMigrations points goose at the embedded migrations and brings the
// shadow schema up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
