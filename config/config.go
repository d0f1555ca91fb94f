package config

import (
	"net/url"
	"os"
	"path/filepath"
)

type Config struct {
	Env      Env
	DB       DBConfig
	HttpAddr string
}

type Env int

const (
	EnvDevelopment Env = iota
	EnvTesting
	EnvProduction
)

func (e Env) IsDevOrTest() bool {
	return e == EnvDevelopment || e == EnvTesting
}

func (e Env) String() string {
	switch e {
	case EnvDevelopment:
		return "development"
	case EnvTesting:
		return "testing"
	case EnvProduction:
		return "production"
	default:
		return "unknown"
	}
}

type Driver string

const (
	DriverSqlite   Driver = "sqlite"
	DriverPostgres Driver = "pgx"
)

type DBConfig struct {
	Driver      Driver
	SqlitePath  string
	PostgresUrl string
}

// DataSourceName is what database/sql.Open expects for the configured driver.
func (c DBConfig) DataSourceName() string {
	if c.Driver == DriverPostgres {
		return c.PostgresUrl
	}
	return c.SqlitePath
}

// Name identifies the database without credentials.
func (c DBConfig) Name() string {
	if c.Driver == DriverPostgres {
		dbUri, err := url.Parse(c.PostgresUrl)
		if err != nil || len(dbUri.Path) < 2 {
			return ""
		}
		return dbUri.Path[1:]
	}
	return filepath.Base(c.SqlitePath)
}

func SqliteConfig(path string) DBConfig {
	return DBConfig{
		Driver:      DriverSqlite,
		SqlitePath:  path,
		PostgresUrl: "",
	}
}

var Cfg Config

func init() {
	if isTesting {
		Cfg = testingConfig()
		return
	}

	_, ok := os.LookupEnv("FUZZYDATES_ENV")
	if !ok {
		Cfg = developmentConfig()
		return
	}

	Cfg = productionConfig()
}
