package cmd

import (
	"bytes"
	"context"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"fuzzydates/config"
	"fuzzydates/db"
	"fuzzydates/db/dbw"
	"fuzzydates/oops"

	"github.com/spf13/cobra"
)

var Db *cobra.Command

func init() {
	Db = &cobra.Command{
		Use:   "db",
		Short: "Manage the table_records database",
	}

	generateMigrationCmd := &cobra.Command{
		Use:     "generate-migration [name]",
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"gm"},
		RunE: func(_ *cobra.Command, args []string) error {
			filename, err := generateMigration("db/migrations", args[0], time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Println("Created", filename)
			return nil
		},
	}

	migrateCmd := &cobra.Command{
		Use: "migrate",
		Run: func(_ *cobra.Command, _ []string) {
			migrate()
		},
	}

	rollbackCmd := &cobra.Command{
		Use: "rollback",
		Run: func(_ *cobra.Command, _ []string) {
			rollback()
		},
	}

	statusCmd := &cobra.Command{
		Use: "status",
		Run: func(_ *cobra.Command, _ []string) {
			status()
		},
	}

	Db.AddCommand(generateMigrationCmd)
	Db.AddCommand(migrateCmd)
	Db.AddCommand(rollbackCmd)
	Db.AddCommand(statusCmd)
}

func mustOpenPool() *dbw.Pool {
	return db.MustOpen(context.Background(), config.Cfg.DB)
}

var migrationTemplate = template.Must(template.New("migration").Parse(`package migrations

type {{.StructName}} struct{}

func init() {
	registerMigration(&{{.StructName}}{})
}

func (m *{{.StructName}}) Version() string {
	return "{{.Version}}"
}

func (m *{{.StructName}}) Up(tx *Tx) {
	panic("Not implemented")
}

func (m *{{.StructName}}) Down(tx *Tx) {
	panic("Not implemented")
}
`))

func generateMigration(dir string, name string, now time.Time) (string, error) {
	if !token.IsIdentifier(name) {
		return "", oops.Newf("migration name is not a valid identifier: %s", name)
	}
	if !token.IsExported(name) {
		return "", oops.Newf("migration name is not an exported identifier: %s", name)
	}

	version := now.Format("20060102150405")
	templateParams := struct {
		Version    string
		StructName string
	}{
		Version:    version,
		StructName: name,
	}

	var buf bytes.Buffer
	if err := migrationTemplate.Execute(&buf, templateParams); err != nil {
		return "", oops.Wrap(err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("%s_%s.go", version, name))
	if err := os.WriteFile(filename, buf.Bytes(), 0666); err != nil {
		return "", oops.Wrap(err)
	}
	return filename, nil
}

func migrate() {
	pool := mustOpenPool()
	defer pool.Close()

	applied, err := db.Migrate(pool)
	if err != nil {
		panic(err)
	}
	if len(applied) == 0 {
		fmt.Println("Already up to date")
	}
	for _, version := range applied {
		fmt.Println("Migrated", version)
	}
}

func rollback() {
	pool := mustOpenPool()
	defer pool.Close()

	version, err := db.Rollback(pool)
	if err != nil {
		panic(err)
	}
	fmt.Println("Rolled back", version)
}

func status() {
	pool := mustOpenPool()
	defer pool.Close()

	statuses, err := db.Status(pool)
	if err != nil {
		panic(err)
	}
	for _, migrationStatus := range statuses {
		state := "down"
		if migrationStatus.IsApplied {
			state = "up"
		}
		fmt.Printf("%-4s %s\n", state, migrationStatus.Version)
	}
}
