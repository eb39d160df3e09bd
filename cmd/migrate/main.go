// cmd/migrate/main.go
package main

import (
	"flag"
	"os"

	"kumbara-api/internal/config"
	"kumbara-api/internal/util"
	"kumbara-api/pkg/db"
)

func main() {
	schemaPath := flag.String("schema", "db/schema.sql", "path to the schema file")
	flag.Parse()

	util.InitLogger()
	logger := util.GetLogger()

	cfg, err := config.LoadDBConfig()
	if err != nil {
		logger.Error("Failed to load database configuration", "error", err)
		os.Exit(1)
	}

	conn, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	schema, err := os.ReadFile(*schemaPath)
	if err != nil {
		logger.Error("Failed to read schema file", "path", *schemaPath, "error", err)
		os.Exit(1)
	}

	if _, err := conn.Exec(string(schema)); err != nil {
		logger.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Migration completed.", "schema", *schemaPath)
}
