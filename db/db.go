package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/crc32"

	"fuzzydates/config"
	"fuzzydates/db/dbw"
	"fuzzydates/db/migrations"
	"fuzzydates/log"
	"fuzzydates/oops"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var sqlitePragmas = []string{
	`PRAGMA journal_mode = WAL`,
	`PRAGMA synchronous = normal`,
	`PRAGMA busy_timeout = 1000`,
	`PRAGMA foreign_keys = on`,
}

func Open(ctx context.Context, cfg config.DBConfig) (*dbw.Pool, error) {
	var dialect dbw.Dialect
	switch cfg.Driver {
	case config.DriverSqlite:
		dialect = dbw.DialectSqlite
	case config.DriverPostgres:
		dialect = dbw.DialectPostgres
	default:
		return nil, oops.Newf("Unknown database driver: %s", cfg.Driver)
	}

	impl, err := sql.Open(string(cfg.Driver), cfg.DataSourceName())
	if err != nil {
		return nil, oops.Wrap(err)
	}
	if dialect == dbw.DialectSqlite {
		// Pragmas are per connection, keep a single one so they stick
		impl.SetMaxOpenConns(1)
		for _, pragma := range sqlitePragmas {
			if _, err := impl.ExecContext(ctx, pragma); err != nil {
				_ = impl.Close()
				return nil, oops.Wrapf(err, "%s", pragma)
			}
		}
	}

	pool := dbw.NewPool(ctx, impl, dialect, cfg.Name(), log.Default)
	if err := pool.Ping(); err != nil {
		_ = impl.Close()
		return nil, oops.Wrap(err)
	}
	return pool, nil
}

func MustOpen(ctx context.Context, cfg config.DBConfig) *dbw.Pool {
	pool, err := Open(ctx, cfg)
	if err != nil {
		panic(err)
	}
	return pool
}

func ensureSchemaMigrations(pool *dbw.Pool) error {
	_, err := pool.Exec(`create table if not exists schema_migrations (version varchar(14) primary key)`)
	return oops.Wrap(err)
}

func appliedVersions(pool *dbw.Pool) (map[string]bool, string, error) {
	rows, err := pool.Query("select version from schema_migrations order by version asc")
	if err != nil {
		return nil, "", oops.Wrap(err)
	}
	defer rows.Close()

	versions := make(map[string]bool)
	var latestVersion string
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, "", oops.Wrap(err)
		}
		versions[version] = true
		if version > latestVersion {
			latestVersion = version
		}
	}
	if err := rows.Err(); err != nil {
		return nil, "", oops.Wrap(err)
	}

	return versions, latestVersion, nil
}

func EnsureLatestMigration(pool *dbw.Pool) error {
	if err := ensureSchemaMigrations(pool); err != nil {
		return err
	}
	_, latestDbVersion, err := appliedVersions(pool)
	if err != nil {
		return err
	}

	for _, migration := range migrations.All() {
		version := migration.Version()
		if version > latestDbVersion {
			return oops.Newf("Migration is not in db: %s", version)
		}
	}

	return nil
}

type MigrationStatus struct {
	Version   string
	IsApplied bool
}

func Status(pool *dbw.Pool) ([]MigrationStatus, error) {
	if err := ensureSchemaMigrations(pool); err != nil {
		return nil, err
	}
	dbVersions, _, err := appliedVersions(pool)
	if err != nil {
		return nil, err
	}

	var result []MigrationStatus
	for _, migration := range migrations.All() {
		result = append(result, MigrationStatus{
			Version:   migration.Version(),
			IsApplied: dbVersions[migration.Version()],
		})
	}
	return result, nil
}

// Migrate applies every migration newer than the latest one in the db and returns their versions.
func Migrate(pool *dbw.Pool) (applied []string, err error) {
	if err := ensureSchemaMigrations(pool); err != nil {
		return nil, err
	}
	unlock, err := migrationLock(pool)
	if err != nil {
		return nil, err
	}
	defer func() {
		if unlockErr := unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}()

	dbVersions, latestDbVersion, err := appliedVersions(pool)
	if err != nil {
		return nil, err
	}

	all := migrations.All()
	for _, migration := range all {
		version := migration.Version()
		if version <= latestDbVersion && !dbVersions[version] {
			return nil, oops.Newf("Old migration is not in db: %s", version)
		}
	}

	for _, migration := range all {
		version := migration.Version()
		if version <= latestDbVersion {
			continue
		}

		err := runInTx(pool, func(tx *dbw.Tx) {
			migration.Up(migrations.WrapTx(tx))
			insertSql, args, err := tx.Builder().
				Insert("schema_migrations").Columns("version").Values(version).
				ToSql()
			if err != nil {
				panic(err)
			}
			tx.MustExec(insertSql, args...)
		})
		if err != nil {
			return applied, oops.Wrapf(err, "migration %s", version)
		}

		pool.Logger().Info().Str("version", version).Msg("Migrated")
		applied = append(applied, version)
	}

	return applied, nil
}

// Rollback reverts the latest applied migration and returns its version.
func Rollback(pool *dbw.Pool) (version string, err error) {
	if err := ensureSchemaMigrations(pool); err != nil {
		return "", err
	}
	unlock, err := migrationLock(pool)
	if err != nil {
		return "", err
	}
	defer func() {
		if unlockErr := unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}()

	_, maxVersion, err := appliedVersions(pool)
	if err != nil {
		return "", err
	}
	if maxVersion == "" {
		return "", oops.New("No migrations to roll back")
	}

	for _, migration := range migrations.All() {
		if migration.Version() != maxVersion {
			continue
		}

		err := runInTx(pool, func(tx *dbw.Tx) {
			migration.Down(migrations.WrapTx(tx))
			deleteSql, args, err := tx.Builder().
				Delete("schema_migrations").Where("version = ?", maxVersion).
				ToSql()
			if err != nil {
				panic(err)
			}
			result := tx.MustExec(deleteSql, args...)
			rowsAffected, err := result.RowsAffected()
			if err != nil {
				panic(err)
			}
			if rowsAffected != 1 {
				panic(fmt.Errorf("Expected to delete a single row, got %d", rowsAffected))
			}
		})
		if err != nil {
			return "", oops.Wrapf(err, "rollback %s", maxVersion)
		}

		pool.Logger().Info().Str("version", maxVersion).Msg("Rolled back")
		return maxVersion, nil
	}

	return "", oops.Newf("Migration version %s not found in code", maxVersion)
}

func runInTx(pool *dbw.Pool, f func(tx *dbw.Tx)) (err error) {
	tx, err := pool.Begin()
	if err != nil {
		return oops.Wrap(err)
	}
	defer func() {
		if rvr := recover(); rvr != nil {
			rvrErr, ok := rvr.(error)
			if !ok {
				rvrErr = fmt.Errorf("%v", rvr)
			}
			err = oops.Wrap(rvrErr)
		}
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, dbw.ErrTxClosed) {
				pool.Logger().Error().Err(rollbackErr).Msg("Rollback error")
			}
		}
	}()

	f(tx)
	return oops.Wrap(tx.Commit())
}

func migrationLockId(dbName string) int64 {
	dbNameHash := crc32.ChecksumIEEE([]byte(dbName))
	const migratorSalt = 2053462845
	return migratorSalt * int64(dbNameHash)
}

// Postgres advisory lock so that two deploys don't migrate at once. sqlite serializes writers on
// its own.
func migrationLock(pool *dbw.Pool) (unlock func() error, err error) {
	if pool.Dialect() != dbw.DialectPostgres {
		return func() error { return nil }, nil
	}

	lockId := migrationLockId(pool.Name())
	lockRow := pool.QueryRow("select pg_try_advisory_lock($1)", lockId)
	var gotLock bool
	if err := lockRow.Scan(&gotLock); err != nil {
		return nil, oops.Wrap(err)
	}
	if !gotLock {
		return nil, oops.New("Cannot run migrations because another migration process is currently running")
	}

	return func() error {
		row := pool.QueryRow("select pg_advisory_unlock($1)", lockId)
		var unlocked bool
		if err := row.Scan(&unlocked); err != nil {
			return oops.Wrap(err)
		}
		if !unlocked {
			return oops.New("Failed to release advisory lock")
		}
		return nil
	}, nil
}
