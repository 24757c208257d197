package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidID    = errors.New("invalid task id")
	ErrInvalidTask  = errors.New("task validation failed")
)

func InitDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("Error trying to open DB: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("Error trying to connect: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	schema := `
    CREATE TABLE IF NOT EXISTS tasks (
        id TEXT PRIMARY KEY,
        title TEXT NOT NULL DEFAULT '',
        description TEXT NOT NULL DEFAULT '',
        priority TEXT NOT NULL DEFAULT 'Low' CHECK (priority IN ('High', 'Medium', 'Low')),
        completed INTEGER NOT NULL DEFAULT 0,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("Error trying to create tables: %w", err)
	}
	return nil
}

// Store is a TaskStore together with the handle that releases it.
type Store struct {
	Backend string
	Tasks   TaskStore
	closeFn func(ctx context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}

// OpenStore selects the backend from the URI: mongodb:// and mongodb+srv://
// go to MongoDB, anything else is treated as a SQLite database path.
func OpenStore(ctx context.Context, uri, database string) (*Store, error) {
	if strings.HasPrefix(uri, "mongodb://") || strings.HasPrefix(uri, "mongodb+srv://") {
		client, err := ConnectMongo(ctx, uri)
		if err != nil {
			return nil, err
		}
		return &Store{
			Backend: "mongodb",
			Tasks:   NewMongoTaskRepository(client.Database(database)),
			closeFn: client.Disconnect,
		}, nil
	}

	db, err := InitDB(strings.TrimPrefix(uri, "sqlite://"))
	if err != nil {
		return nil, err
	}
	return &Store{
		Backend: "sqlite",
		Tasks:   NewSQLiteTaskRepository(db),
		closeFn: func(context.Context) error { return db.Close() },
	}, nil
}
