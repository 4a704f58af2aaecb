package main

import (
	"context"
	"log"
	"os"

	"github.com/vncsmyrnk/quickpoll/internal/adapters/repository/sqlstore"
	"github.com/vncsmyrnk/quickpoll/internal/config"
)

// Usage: migrations [flags] [migration-name]
//
// Without a name every pending up migration is applied. With a name, the
// matching file (for example "create_votes.down") is executed as is.
func main() {
	cfg, err := config.Load("migrations", os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	dialect, err := sqlstore.ParseDialect(cfg.DatabaseDriver)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := sqlstore.Open(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if len(cfg.Args) == 0 {
		if err := sqlstore.Migrate(ctx, db, dialect); err != nil {
			log.Fatal(err)
		}
		log.Println("Migrations applied successfully.")
		return
	}

	name, content, err := sqlstore.MigrationFile(dialect, cfg.Args[0])
	if err != nil {
		log.Fatal(err)
	}

	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		log.Fatalf("Failed to execute SQL file %s: %v", name, err)
	}

	log.Printf("Migration file %s executed successfully.", name)
}
