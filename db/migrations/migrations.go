package migrations

import (
	"sort"

	"fuzzydates/db/dbw"
)

type Migration interface {
	Version() string
	Up(tx *Tx)
	Down(tx *Tx)
}

var registered []Migration

func registerMigration(migration Migration) {
	registered = append(registered, migration)
}

// All returns the registered migrations ordered by version.
func All() []Migration {
	result := make([]Migration, len(registered))
	copy(result, registered)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Version() < result[j].Version()
	})
	return result
}

func Latest() Migration {
	all := All()
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

// Tx limits migrations to statements that panic on failure.
type Tx struct {
	impl *dbw.Tx
}

func WrapTx(tx *dbw.Tx) *Tx {
	return &Tx{impl: tx}
}

func (tx *Tx) MustExec(sql string, args ...any) {
	tx.impl.MustExec(sql, args...)
}

func (tx *Tx) Dialect() dbw.Dialect {
	return tx.impl.Dialect()
}
