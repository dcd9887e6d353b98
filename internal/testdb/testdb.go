// Package testdb opens in-memory SQLite databases carrying the application
// schema, for tests of the repository, service and HTTP layers.
package testdb

import (
	"database/sql"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"sharedesk/internal/models"
)

const schema = `
CREATE TABLE spaces (
    id                 INTEGER PRIMARY KEY AUTOINCREMENT,
    name               TEXT    NOT NULL,
    city               TEXT    NOT NULL,
    price              REAL    NOT NULL,
    max_capacity       INTEGER NOT NULL,
    available_capacity INTEGER NOT NULL,
    description        TEXT,
    address            TEXT    NOT NULL,
    renter_user_id     INTEGER NOT NULL,
    contact_number     TEXT    NOT NULL,
    benefits           TEXT
);
CREATE TABLE rentals (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    space_id        INTEGER NOT NULL REFERENCES spaces (id),
    user_id         TEXT    NOT NULL,
    email           TEXT,
    start_date      DATE    NOT NULL,
    end_date        DATE    NOT NULL,
    custom_price    REAL    NOT NULL,
    rental_approval TEXT    NOT NULL DEFAULT 'pending',
    created_at      DATETIME NOT NULL
);
CREATE TABLE notification_preferences (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    space_id INTEGER NOT NULL REFERENCES spaces (id),
    user_id  TEXT    NOT NULL,
    email    TEXT    NOT NULL,
    UNIQUE (space_id, user_id)
);
CREATE TABLE space_images (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    space_id     INTEGER NOT NULL REFERENCES spaces (id),
    path         TEXT    NOT NULL,
    content_type TEXT    NOT NULL,
    created_at   DATETIME NOT NULL
)`

// Open returns a fresh database that is closed when the test ends.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)&_time_format=sqlite")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("apply schema: %v\n%s", err, stmt)
		}
	}
	return db
}

// SeedSpace inserts a space and returns it with its id.
func SeedSpace(t testing.TB, db *sql.DB, s models.Space) models.Space {
	t.Helper()

	res, err := db.Exec(`INSERT INTO spaces (name, city, price, max_capacity, available_capacity, description, address, renter_user_id, contact_number, benefits)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Name, s.City, s.Price, s.MaxCapacity, s.AvailableCapacity, s.Description, s.Address, s.RenterUserID, s.ContactNumber, s.Benefits)
	if err != nil {
		t.Fatalf("seed space: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("seed space id: %v", err)
	}
	s.ID = int(id)
	return s
}

// Space returns a valid space owned by ownerID.
func Space(name string, ownerID, max, available int) models.Space {
	return models.Space{
		Name:              name,
		City:              "Skopje",
		Price:             300,
		MaxCapacity:       max,
		AvailableCapacity: available,
		Description:       "Quiet desks near the river",
		Address:           "Makedonija 12",
		RenterUserID:      ownerID,
		ContactNumber:     "+38970000000",
		Benefits:          "wifi, coffee,parking",
	}
}

// CountRows runs SELECT COUNT(*) against table with an optional WHERE clause.
func CountRows(t testing.TB, db *sql.DB, table, where string, args ...interface{}) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
