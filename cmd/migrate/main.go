package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"mscp/internal/config"
)

const usage = `usage: migrate <command>

commands:
  up        apply every pending migration
  down      revert every applied migration
  steps N   move N migrations forward (negative N moves back)
  version   print the current schema version`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	m, err := migrate.New("file://db/migrations", cfg.DB.DSN())
	if err != nil {
		log.Fatalf("open migration source: %v", err)
	}
	defer m.Close()

	switch os.Args[1] {
	case "up":
		apply(m.Up())
		log.Println("schema is up to date")

	case "down":
		apply(m.Down())
		log.Println("schema reverted")

	case "steps":
		if len(os.Args) < 3 {
			log.Fatal("steps needs a count, e.g. migrate steps -1")
		}
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatalf("bad step count %q: %v", os.Args[2], err)
		}
		apply(m.Steps(n))
		log.Printf("moved %d step(s)", n)

	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("read schema version: %v", err)
		}
		fmt.Printf("schema version %d (dirty=%v)\n", v, dirty)

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}
}

// apply treats ErrNoChange as success so reruns are idempotent.
func apply(err error) {
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migration failed: %v", err)
	}
}
