//go:build testing

package config

import (
	"os"
	"path/filepath"
)

const isTesting = true

func testingConfig() Config {
	return Config{
		Env:      EnvTesting,
		DB:       SqliteConfig(filepath.Join(os.TempDir(), "fuzzydates_test.db")),
		HttpAddr: "localhost:3001",
	}
}
