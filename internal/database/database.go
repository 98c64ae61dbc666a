package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name TEXT,
		role TEXT NOT NULL DEFAULT 'user',
		last_login TEXT,
		reset_token TEXT,
		reset_token_expiry TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS maintenance (
		id TEXT NOT NULL PRIMARY KEY,
		aircraft_registration TEXT NOT NULL,
		maintenance_type TEXT NOT NULL,
		scheduled_date TEXT,
		technician_name TEXT,
		hours_spent REAL,
		cost REAL,
		status TEXT,
		priority TEXT,
		description TEXT,
		created_by TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS safety_incidents (
		id TEXT NOT NULL PRIMARY KEY,
		incident_date TEXT,
		incident_type TEXT NOT NULL,
		severity TEXT,
		aircraft_registration TEXT,
		flight_number TEXT,
		location TEXT,
		description TEXT,
		investigation_status TEXT,
		created_by TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS flights (
		id TEXT NOT NULL PRIMARY KEY,
		flight_number TEXT NOT NULL,
		aircraft_registration TEXT,
		departure_airport TEXT,
		arrival_airport TEXT,
		scheduled_departure TEXT,
		scheduled_arrival TEXT,
		passengers_count INTEGER,
		flight_status TEXT,
		created_by TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		actor TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
