// Package store provides a SQLite-backed cache for parsed activity data,
// so large heartbeat exports are only reparsed when the file changes.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache provides SQLite-backed activity caching.
type Cache struct {
	db *sql.DB
}

// DayRow is one cached per-day activity total.
type DayRow struct {
	Day        string // YYYY-MM-DD
	ActiveSecs int64
}

// HourRow is one cached (weekday, hour-of-day) activity total.
type HourRow struct {
	Weekday    int
	Hour       int
	ActiveSecs int64
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Fresh reports whether the tracked mtime and size for the file still match.
func (c *Cache) Fresh(path string, mtimeNs, sizeBytes int64) bool {
	var m, s int64
	err := c.db.QueryRow(
		"SELECT mtime_ns, size_bytes FROM file_tracker WHERE file_path = ?", path,
	).Scan(&m, &s)
	return err == nil && m == mtimeNs && s == sizeBytes
}

// SaveSource replaces all cached rows for one source file in a single
// transaction and updates its tracker entry.
func (c *Cache) SaveSource(source, path string, mtimeNs, sizeBytes int64, days []DayRow, hours []HourRow) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM activity_days WHERE source = ?", source); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM hour_totals WHERE source = ?", source); err != nil {
		return err
	}

	for _, d := range days {
		if _, err := tx.Exec(
			"INSERT INTO activity_days (source, day, active_secs) VALUES (?, ?, ?)",
			source, d.Day, d.ActiveSecs,
		); err != nil {
			return err
		}
	}
	for _, h := range hours {
		if _, err := tx.Exec(
			"INSERT INTO hour_totals (source, weekday, hour, active_secs) VALUES (?, ?, ?, ?)",
			source, h.Weekday, h.Hour, h.ActiveSecs,
		); err != nil {
			return err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO file_tracker (file_path, mtime_ns, size_bytes, parsed_at) VALUES (?, ?, ?, ?)",
		path, mtimeNs, sizeBytes, now,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// LoadSource reads all cached rows for one source.
func (c *Cache) LoadSource(source string) ([]DayRow, []HourRow, error) {
	rows, err := c.db.Query(
		"SELECT day, active_secs FROM activity_days WHERE source = ? ORDER BY day", source)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = rows.Close() }()

	var days []DayRow
	for rows.Next() {
		var d DayRow
		if err := rows.Scan(&d.Day, &d.ActiveSecs); err != nil {
			return nil, nil, err
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	hourRows, err := c.db.Query(
		"SELECT weekday, hour, active_secs FROM hour_totals WHERE source = ? ORDER BY weekday, hour", source)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = hourRows.Close() }()

	var hours []HourRow
	for hourRows.Next() {
		var h HourRow
		if err := hourRows.Scan(&h.Weekday, &h.Hour, &h.ActiveSecs); err != nil {
			return nil, nil, err
		}
		hours = append(hours, h)
	}
	return days, hours, hourRows.Err()
}
