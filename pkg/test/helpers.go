package test

import (
	"database/sql"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"todoapp/internal/adapter/database/sqlite"
	"todoapp/pkg"
)

type TestSetup[T any] struct {
	DB   *sql.DB
	Repo *T
}

func InitTestDB() *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		log.Fatal(err)
	}

	// Every connection of an in-memory sqlite database sees its own
	// empty schema, so keep the pool at a single connection.
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		log.Fatal(err)
	}

	migrationsPath := filepath.Join(pkg.FindProjectRoot(), "db", "migrations")
	sqlite.RunMigrations(db, migrationsPath)

	return db
}

func SetupTest[T any](t *testing.T, repo *T) *TestSetup[T] {
	db := InitTestDB()

	return &TestSetup[T]{
		DB:   db,
		Repo: repo,
	}
}

func TeardownTest[T any](t *testing.T, setup *TestSetup[T]) {
	if setup.DB != nil {
		CleanDB(t, setup)
		setup.DB.Close()
	}
}

func CleanDB[T any](t *testing.T, setup *TestSetup[T]) {
	rows, err := setup.DB.Query("SELECT name FROM sqlite_master WHERE type = 'table' and name not in ('sqlite_sequence', 'schema_migrations')")
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			t.Fatalf("Failed to scan table name: %v", err)
		}
		tables = append(tables, strings.TrimSpace(table))
	}

	if err := rows.Err(); err != nil {
		t.Fatalf("Error iterating over rows: %v", err)
	}

	// Reverse creation order so referencing tables are cleaned before
	// the tables they point at.
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := setup.DB.Exec("DELETE FROM " + tables[i]); err != nil {
			t.Fatalf("Failed to clean table %s: %v", tables[i], err)
		}
	}
}
