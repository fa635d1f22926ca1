// Package history keeps benchmark results in a SQLite database so runs can
// be compared over time.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/wesleyorama2/pagelat/internal/bench"
	"github.com/wesleyorama2/pagelat/pkg/jsonpath"
)

// ErrNotFound is returned when no run has the requested ID.
var ErrNotFound = errors.New("history: run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	start_time      TEXT NOT NULL,
	size_bytes      INTEGER NOT NULL,
	pages           INTEGER NOT NULL,
	page_size       INTEGER NOT NULL,
	repeats         INTEGER NOT NULL,
	order_mode      TEXT NOT NULL,
	seed            TEXT NOT NULL,
	policy          TEXT NOT NULL,
	cold_mean_ns    REAL NOT NULL,
	cold_stddev_ns  REAL NOT NULL,
	hot_mean_ns     REAL NOT NULL,
	hot_stddev_ns   REAL NOT NULL,
	residency_hints INTEGER NOT NULL,
	result          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_start_time ON runs(start_time);
`

// Entry is one recorded run.
type Entry struct {
	ID             string    `json:"id" yaml:"id"`
	StartTime      time.Time `json:"startTime" yaml:"startTime"`
	SizeBytes      int64     `json:"sizeBytes" yaml:"sizeBytes"`
	Pages          int       `json:"pages" yaml:"pages"`
	PageSize       int       `json:"pageSize" yaml:"pageSize"`
	Repeats        int       `json:"repeats" yaml:"repeats"`
	Order          string    `json:"order" yaml:"order"`
	Seed           uint64    `json:"seed" yaml:"seed"`
	Policy         string    `json:"policy" yaml:"policy"`
	ColdMean       float64   `json:"coldMeanNs" yaml:"coldMeanNs"`
	ColdStdDev     float64   `json:"coldStddevNs" yaml:"coldStddevNs"`
	HotMean        float64   `json:"hotMeanNs" yaml:"hotMeanNs"`
	HotStdDev      float64   `json:"hotStddevNs" yaml:"hotStddevNs"`
	ResidencyHints int       `json:"residencyHints" yaml:"residencyHints"`

	// Result is the full result as JSON.
	Result json.RawMessage `json:"-" yaml:"-"`
}

// Store is a SQLite-backed run history.
type Store struct {
	*sql.DB
	insert *sql.Stmt
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history tables: %w", err)
	}

	insert, err := db.Prepare(`INSERT INTO runs (
		id, start_time, size_bytes, pages, page_size, repeats, order_mode, seed,
		policy, cold_mean_ns, cold_stddev_ns, hot_mean_ns, hot_stddev_ns,
		residency_hints, result
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare history insert: %w", err)
	}

	return &Store{DB: db, insert: insert}, nil
}

// Close releases the prepared statement and the database.
func (s *Store) Close() error {
	if err := s.insert.Close(); err != nil {
		s.DB.Close()
		return err
	}
	return s.DB.Close()
}

// Record appends a run.
func (s *Store) Record(res *bench.Result) error {
	if res == nil {
		return fmt.Errorf("result cannot be nil")
	}

	doc, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	tx, err := s.Begin()
	if err != nil {
		return err
	}
	_, err = tx.Stmt(s.insert).Exec(
		res.RunID,
		res.StartTime.UTC().Format(time.RFC3339Nano),
		res.SizeBytes,
		res.Pages,
		res.PageSize,
		res.Repeats,
		res.Order.String(),
		strconv.FormatUint(res.Seed, 10),
		res.Policy.String(),
		res.Cold.Summary.Mean,
		res.Cold.Summary.StdDev,
		res.Hot.Summary.Mean,
		res.Hot.Summary.StdDev,
		res.ResidencyHints,
		string(doc),
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("record run %s: %w", res.RunID, err)
	}
	return tx.Commit()
}

const selectColumns = `id, start_time, size_bytes, pages, page_size, repeats,
	order_mode, seed, policy, cold_mean_ns, cold_stddev_ns, hot_mean_ns,
	hot_stddev_ns, residency_hints, result`

// List returns up to limit runs, newest first. A non-positive limit
// returns every run.
func (s *Store) List(limit int) ([]Entry, error) {
	query := `SELECT ` + selectColumns + ` FROM runs ORDER BY start_time DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the run with the given ID.
func (s *Store) Get(id string) (Entry, error) {
	row := s.QueryRow(`SELECT `+selectColumns+` FROM runs WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, err
}

// Extract evaluates a JSONPath expression such as $.cold.summary.meanNs
// against the stored result of run id.
func (s *Store) Extract(id, path string) (string, error) {
	e, err := s.Get(id)
	if err != nil {
		return "", err
	}
	return jsonpath.Extract(string(e.Result), path)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e      Entry
		start  string
		seed   string
		result string
	)
	err := row.Scan(
		&e.ID, &start, &e.SizeBytes, &e.Pages, &e.PageSize, &e.Repeats,
		&e.Order, &seed, &e.Policy, &e.ColdMean, &e.ColdStdDev, &e.HotMean,
		&e.HotStdDev, &e.ResidencyHints, &result,
	)
	if err != nil {
		return Entry{}, err
	}

	if e.StartTime, err = time.Parse(time.RFC3339Nano, start); err != nil {
		return Entry{}, fmt.Errorf("run %s: bad start time %q: %w", e.ID, start, err)
	}
	if e.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return Entry{}, fmt.Errorf("run %s: bad seed %q: %w", e.ID, seed, err)
	}
	e.Result = json.RawMessage(result)
	return e, nil
}
