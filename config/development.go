package config

import "os"

func developmentConfig() Config {
	sqlitePath, ok := os.LookupEnv("FUZZYDATES_SQLITE_PATH")
	if !ok {
		sqlitePath = "fuzzydates.db"
	}

	return Config{
		Env:      EnvDevelopment,
		DB:       SqliteConfig(sqlitePath),
		HttpAddr: "localhost:3000",
	}
}
