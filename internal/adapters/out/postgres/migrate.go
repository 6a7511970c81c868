package postgres

import (
	"database/sql"
	"embed"
	"fmt"

	"waterdelivery/internal/adapters/out/postgres/assignmentrepo"
	"waterdelivery/internal/adapters/out/postgres/localityrepo"
	"waterdelivery/internal/adapters/out/postgres/reportrepo"
	"waterdelivery/internal/adapters/out/postgres/requestrepo"
	"waterdelivery/internal/adapters/out/postgres/ticketrepo"

	_ "github.com/lib/pq" // registers the "postgres" driver used by goose
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// OpenMigrationDB opens a database/sql handle through lib/pq for goose.
func OpenMigrationDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db error: %w", err)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db error: %w", err)
	}
	return db, nil
}

// Migrate applies every pending embedded migration.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect error: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up error: %w", err)
	}
	return nil
}

// MigrationVersion reports the current schema version.
func MigrationVersion(db *sql.DB) (int64, error) {
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(db)
}

// AutoMigrate creates the schema from the DTOs. It backs SQLite test
// databases, where the PostgreSQL migrations do not apply.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&localityrepo.LocalityDTO{},
		&requestrepo.RequestDTO{},
		&assignmentrepo.AssignmentDTO{},
		&ticketrepo.TicketDTO{},
		&reportrepo.ReportDTO{},
	)
}
