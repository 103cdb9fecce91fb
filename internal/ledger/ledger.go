// Package ledger is the append-only earnings record store, backed by a flat
// CSV log. The full log is read at startup and rewritten on persist; no
// diffing, last writer wins.
package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/simonSlamka/wolter/internal/cycle"
	"github.com/simonSlamka/wolter/internal/model"
)

// Log holds the in-memory record sequence for one backing file.
type Log struct {
	path    string
	records []model.Record
}

// Open loads the record log at path. A missing file yields an empty log,
// not an error — empty state is valid.
func Open(path string) (*Log, error) {
	l := &Log{path: path}

	f, err := os.Open(path) //nolint:gosec // path comes from config
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("opening record log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // older logs cached extra derived columns
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading record log: %w", err)
	}
	if len(rows) == 0 {
		return l, nil
	}

	cols := columnIndex(rows[0])
	for _, row := range rows[1:] {
		rec, err := recordFromRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("record log %s: %w", path, err)
		}
		l.records = append(l.records, rec)
	}

	sort.SliceStable(l.records, func(i, j int) bool {
		return l.records[i].Date.Before(l.records[j].Date)
	})
	return l, nil
}

// Records returns the full date-ordered record sequence.
func (l *Log) Records() []model.Record {
	return l.records
}

// Append validates and adds one record to the in-memory sequence. On
// failure nothing is written: the sequence is untouched.
func (l *Log) Append(rec model.Record) error {
	if rec.Date.IsZero() {
		return fmt.Errorf("%w: missing date", model.ErrValidation)
	}
	if strings.TrimSpace(rec.Hour) == "" {
		return fmt.Errorf("%w: empty hour slot", model.ErrValidation)
	}
	if rec.Amount < 0 {
		return fmt.Errorf("%w: negative amount %.2f", model.ErrValidation, rec.Amount)
	}
	l.records = append(l.records, rec)
	return nil
}

// Persist rewrites the whole log file from the current sequence. Derived
// columns (month, year, cycle_index) are cached alongside the raw fields
// but are always re-derivable from dt.
func (l *Log) Persist() error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating log dir: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating record log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"dt", "hour", "amount", "month", "year", "cycle_index"}); err != nil {
		return err
	}
	for _, rec := range l.records {
		c := cycle.Of(rec.Date)
		row := []string{
			rec.Date.Format("2006-01-02"),
			rec.Hour,
			strconv.FormatFloat(rec.Amount, 'f', -1, 64),
			strconv.Itoa(int(c.Month)),
			strconv.Itoa(c.Year),
			strconv.Itoa(c.Index),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ParseEntry parses one interactive input line of the form
// "<hour_slot>|<amount>" into a record dated to the given day.
func ParseEntry(line string, day time.Time) (model.Record, error) {
	hour, amount, ok := strings.Cut(line, "|")
	if !ok {
		return model.Record{}, fmt.Errorf("%w: expected <hour>|<amount>, got %q", model.ErrValidation, line)
	}
	hour = strings.TrimSpace(hour)
	if hour == "" {
		return model.Record{}, fmt.Errorf("%w: empty hour slot", model.ErrValidation)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return model.Record{}, fmt.Errorf("%w: amount %q is not a number", model.ErrValidation, strings.TrimSpace(amount))
	}
	if v < 0 {
		return model.Record{}, fmt.Errorf("%w: negative amount %.2f", model.ErrValidation, v)
	}
	return model.Record{
		Date:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local),
		Hour:   hour,
		Amount: v,
	}, nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func recordFromRow(row []string, cols map[string]int) (model.Record, error) {
	field := func(name string) string {
		if i, ok := cols[name]; ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	dt := field("dt")
	if dt == "" {
		return model.Record{}, fmt.Errorf("%w: missing dt", model.ErrValidation)
	}
	// Early revisions wrote full datetimes; only the day matters.
	date, err := parseDay(dt)
	if err != nil {
		return model.Record{}, fmt.Errorf("%w: bad date %q", model.ErrValidation, dt)
	}

	amountStr := field("amount")
	if amountStr == "" {
		amountStr = field("rimmediate") // pre-rename column
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		return model.Record{}, fmt.Errorf("%w: bad amount %q", model.ErrValidation, amountStr)
	}
	if amount < 0 {
		return model.Record{}, fmt.Errorf("%w: negative amount %.2f", model.ErrValidation, amount)
	}

	hour := field("hour")
	if hour == "" {
		return model.Record{}, fmt.Errorf("%w: empty hour slot", model.ErrValidation)
	}

	return model.Record{Date: date, Hour: hour, Amount: amount}, nil
}

func parseDay(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
