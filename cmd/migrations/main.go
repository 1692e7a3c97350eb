package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const migrationsDir = "internal/adapters/repository/postgres/migrations"

// Applies every pending *.up.sql migration in lexical order. When a name
// fragment is given as the first argument, only matching files are applied.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	filter := ""
	if len(os.Args) > 1 {
		filter = os.Args[1]
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := ensureMigrationsTable(db); err != nil {
		log.Fatal(err)
	}

	files, err := pendingMigrations(db, filter)
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		fmt.Println("No pending migrations.")
		return
	}

	for _, file := range files {
		if err := applyMigration(db, file); err != nil {
			log.Fatalf("Migration %s failed: %v", file, err)
		}
		fmt.Printf("Applied %s\n", file)
	}
}

func ensureMigrationsTable(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	return err
}

func pendingMigrations(db *sql.DB, filter string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return nil, err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		if filter != "" && !strings.Contains(name, filter) {
			continue
		}
		if applied[name] {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

func appliedMigrations(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query("SELECT name FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func applyMigration(db *sql.DB, file string) error {
	content, err := os.ReadFile(filepath.Join(migrationsDir, file))
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(content)); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (name) VALUES ($1)", file); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func dbConnString() string {
	dbName := os.Getenv("POSTGRES_DB")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}
