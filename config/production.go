package config

import (
	"fmt"
	"net/url"
	"os"
)

func productionConfig() Config {
	databaseUrl := mustLookupEnv("DATABASE_URL")
	dbUri, err := url.Parse(databaseUrl)
	if err != nil {
		panic(err)
	}
	if dbUri.Scheme != "postgres" && dbUri.Scheme != "postgresql" {
		panic(fmt.Errorf("DATABASE_URL must be a postgres url, got scheme %q", dbUri.Scheme))
	}

	return Config{
		Env: EnvProduction,
		DB: DBConfig{
			Driver:      DriverPostgres,
			SqlitePath:  "",
			PostgresUrl: databaseUrl,
		},
		HttpAddr: ":" + mustLookupEnv("PORT"),
	}
}

func mustLookupEnv(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		panic(fmt.Errorf("%s environment variable not set", key))
	}
	return value
}
