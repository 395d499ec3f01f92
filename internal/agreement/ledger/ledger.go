// Package ledger persists resources, processed markers, detail documents and actor registrations
// in a relational store (PostgreSQL or SQLite) shared by the scanner, orchestrator and router.
package ledger

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	// DriverPostgres selects PostgreSQL through lib/pq.
	DriverPostgres = "postgres"
	// DriverSQLite selects the pure-Go SQLite driver.
	DriverSQLite = "sqlite"

	detailCacheSize = 1024
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

//go:embed migrations/postgres/*.sql
var postgresMigrations embed.FS

//go:embed migrations/sqlite/*.sql
var sqliteMigrations embed.FS

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Ledger is the relational store behind the daemon.
type Ledger struct {
	db      *sqlx.DB
	driver  string
	metrics Metrics
	details *lru.Cache[string, string]
}

// Open connects to the database, applies the embedded migrations and returns a Ledger.
func Open(ctx context.Context, driver, dsn string, metrics Metrics) (*Ledger, error) {
	if dsn == "" {
		return nil, errors.New("database dsn is required")
	}
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", driver, err)
	}
	if driver == DriverSQLite {
		// modernc sqlite serializes writers; an in-memory database exists per connection.
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", driver, err)
	}

	l, err := New(db, driver, metrics)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := l.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return l, nil
}

// New wraps an existing connection without migrating it.
func New(db *sqlx.DB, driver string, metrics Metrics) (*Ledger, error) {
	cache, err := lru.New[string, string](detailCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create detail cache: %w", err)
	}
	return &Ledger{db: db, driver: driver, metrics: metrics, details: cache}, nil
}

// Migrate applies all pending schema migrations for the configured driver. The shared pool stays
// open; only the connection and source held by the migration are released.
func (l *Ledger) Migrate(ctx context.Context) (err error) {
	var (
		src     source.Driver
		dbDrv   database.Driver
		release func() error
	)
	switch l.driver {
	case DriverPostgres:
		conn, cerr := l.db.Conn(ctx)
		if cerr != nil {
			return fmt.Errorf("acquire migration connection: %w", cerr)
		}
		pg, derr := migratepg.WithConnection(ctx, conn, &migratepg.Config{})
		if derr != nil {
			_ = conn.Close()
			return fmt.Errorf("init postgres migration driver: %w", derr)
		}
		dbDrv, release = pg, pg.Close
		src, err = iofs.New(postgresMigrations, "migrations/postgres")
	case DriverSQLite:
		sq, derr := migratesqlite.WithInstance(l.db.DB, &migratesqlite.Config{})
		if derr != nil {
			return fmt.Errorf("init sqlite migration driver: %w", derr)
		}
		// Closing the sqlite driver closes the pool it was given.
		dbDrv, release = sq, func() error { return nil }
		src, err = iofs.New(sqliteMigrations, "migrations/sqlite")
	default:
		return fmt.Errorf("unsupported database driver %q", l.driver)
	}
	defer func() {
		if rerr := release(); rerr != nil && err == nil {
			err = fmt.Errorf("release %s migration driver: %w", l.driver, rerr)
		}
	}()
	if err != nil {
		return fmt.Errorf("embed %s migrations: %w", l.driver, err)
	}
	defer func() {
		if serr := src.Close(); serr != nil && err == nil {
			err = fmt.Errorf("close %s migration source: %w", l.driver, serr)
		}
	}()

	m, err := migrate.NewWithInstance("iofs", src, l.driver, dbDrv)
	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run %s migrations: %w", l.driver, err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) rebind(query string) string {
	return l.db.Rebind(query)
}
