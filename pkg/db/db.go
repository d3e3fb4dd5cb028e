package db

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
	log "github.com/sirupsen/logrus"
)

// Connect opens and pings a PostgreSQL connection pool.
func Connect(dbURL string) (*sqlx.DB, error) {
	conn, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Errorf("Failed to connect to database: %v", err)
		return nil, err
	}

	if err = conn.Ping(); err != nil {
		log.Errorf("Failed to ping database: %v", err)
		conn.Close()
		return nil, err
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	log.Info("Database connection pool initialized successfully.")
	return conn, nil
}

// Close closes the pool, logging rather than returning any error.
func Close(conn *sqlx.DB) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil {
		log.Errorf("Error closing database connection: %v", err)
		return
	}
	log.Info("Database connection pool closed.")
}
