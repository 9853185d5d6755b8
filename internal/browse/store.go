// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browse serves generated catalog CSVs as searchable, sortable HTML
// tables. Each CSV is loaded into an in-memory SQLite table and reloaded
// when the file changes on disk.
package browse

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/partcatalog/internal/sink"
)

// ErrUnknownTable is returned by Query for a table name never loaded.
var ErrUnknownTable = errors.New("unknown table")

// Store holds loaded CSVs. The in-memory database lives on a single
// connection; mu serialises reloads against queries.
type Store struct {
	db   *sql.DB
	root string
	mu   sync.RWMutex
}

// TableInfo describes one loaded CSV.
type TableInfo struct {
	Name    string
	Path    string
	Columns []string
	Rows    int
}

// QueryOptions selects one page of a table.
type QueryOptions struct {
	// Q filters rows to those with any cell containing Q, case-insensitively.
	Q        string
	Sort     string
	Desc     bool
	Page     int
	PageSize int
}

// Page is one page of query results.
type Page struct {
	Table   TableInfo
	Rows    [][]string
	Matched int
	Page    int
	Pages   int
}

// NewStore opens an empty in-memory store. Table names are CSV paths
// relative to root without the .csv extension.
func NewStore(root string) (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db, root: root}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS sources (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		path TEXT NOT NULL,
		columns TEXT NOT NULL,
		file_mod_time TEXT NOT NULL,
		row_count INTEGER NOT NULL
	)`)
	return err
}

// TableName maps a CSV path to its table name.
func (s *Store) TableName(path string) string {
	rel, err := filepath.Rel(s.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
}

// Load reads the CSV at path into its table, replacing any earlier load.
// A file whose modification time matches the last load is skipped; loaded
// reports whether the table changed.
func (s *Store) Load(ctx context.Context, path string) (loaded bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, &sink.SinkIOError{Op: "stat csv", Path: path, Err: err}
	}
	modTime := info.ModTime().UTC().Format(time.RFC3339Nano)
	name := s.TableName(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	var existing string
	err = s.db.QueryRowContext(ctx, `SELECT file_mod_time FROM sources WHERE name = ?`, name).Scan(&existing)
	if err == nil && existing == modTime {
		return false, nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("checking %s: %w", name, err)
	}

	table, err := sink.ReadCSV(path)
	if err != nil {
		return false, err
	}
	if err := s.replace(ctx, name, path, modTime, table.Header, table.Rows); err != nil {
		return false, fmt.Errorf("loading %s: %w", name, err)
	}
	return true, nil
}

func (s *Store) replace(ctx context.Context, name, path, modTime string, header []string, rows [][]string) error {
	cols, err := json.Marshal(header)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := dropTable(ctx, tx, name); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sources (name, path, columns, file_mod_time, row_count) VALUES (?, ?, ?, ?, ?)`,
		name, path, string(cols), modTime, len(rows))
	if err != nil {
		return fmt.Errorf("recording source: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	defs := make([]string, len(header))
	marks := make([]string, len(header))
	for i := range header {
		defs[i] = fmt.Sprintf("c%d TEXT", i)
		marks[i] = "?"
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE %s (%s)`, dataTable(id), strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s VALUES (%s)`, dataTable(id), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(header))
	for _, r := range rows {
		for i := range args {
			args[i] = ""
			if i < len(r) {
				args[i] = r[i]
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting row: %w", err)
		}
	}
	return tx.Commit()
}

// Remove drops the table loaded from path, if any.
func (s *Store) Remove(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := dropTable(ctx, tx, s.TableName(path)); err != nil {
		return err
	}
	return tx.Commit()
}

func dropTable(ctx context.Context, tx *sql.Tx, name string) error {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM sources WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("looking up %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, dataTable(id))); err != nil {
		return fmt.Errorf("dropping %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sources WHERE id = ?`, id); err != nil {
		return fmt.Errorf("forgetting %s: %w", name, err)
	}
	return nil
}

func dataTable(id int64) string { return fmt.Sprintf("rows_%d", id) }

// Tables lists loaded tables sorted by name.
func (s *Store) Tables(ctx context.Context) ([]TableInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT name, path, columns, row_count FROM sources ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var out []TableInfo
	for rows.Next() {
		var info TableInfo
		var cols string
		if err := rows.Scan(&info.Name, &info.Path, &cols, &info.Rows); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(cols), &info.Columns); err != nil {
			return nil, fmt.Errorf("decoding columns of %s: %w", info.Name, err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Query returns one page of the named table. An unknown sort column keeps
// file order; page numbers are clamped to the available range.
func (s *Store) Query(ctx context.Context, name string, opts QueryOptions) (Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id int64
	var cols string
	info := TableInfo{Name: name}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, path, columns, row_count FROM sources WHERE name = ?`, name,
	).Scan(&id, &info.Path, &cols, &info.Rows)
	if errors.Is(err, sql.ErrNoRows) {
		return Page{}, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	if err != nil {
		return Page{}, fmt.Errorf("looking up %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(cols), &info.Columns); err != nil {
		return Page{}, fmt.Errorf("decoding columns of %s: %w", name, err)
	}

	where, args := filterClause(len(info.Columns), opts.Q)

	var matched int
	if err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT count(*) FROM %s%s`, dataTable(id), where), args...,
	).Scan(&matched); err != nil {
		return Page{}, fmt.Errorf("counting %s: %w", name, err)
	}

	size := opts.PageSize
	if size <= 0 {
		size = 50
	}
	pages := max(1, (matched+size-1)/size)
	page := min(max(1, opts.Page), pages)

	order := "rowid"
	if i := indexOf(info.Columns, opts.Sort); i >= 0 {
		dir := "ASC"
		if opts.Desc {
			dir = "DESC"
		}
		order = fmt.Sprintf("c%d COLLATE NOCASE %s, rowid", i, dir)
	}

	q := fmt.Sprintf(`SELECT * FROM %s%s ORDER BY %s LIMIT ? OFFSET ?`, dataTable(id), where, order)
	rows, err := s.db.QueryContext(ctx, q, append(args, size, (page-1)*size)...)
	if err != nil {
		return Page{}, fmt.Errorf("querying %s: %w", name, err)
	}
	defer rows.Close()

	result := Page{Table: info, Matched: matched, Page: page, Pages: pages}
	for rows.Next() {
		cells := make([]string, len(info.Columns))
		ptrs := make([]any, len(cells))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Page{}, err
		}
		result.Rows = append(result.Rows, cells)
	}
	return result, rows.Err()
}

// filterClause matches q against every column with LIKE.
func filterClause(ncols int, q string) (string, []any) {
	q = strings.TrimSpace(q)
	if q == "" || ncols == 0 {
		return "", nil
	}
	pattern := "%" + likeEscaper.Replace(q) + "%"
	terms := make([]string, ncols)
	args := make([]any, ncols)
	for i := range terms {
		terms[i] = fmt.Sprintf(`c%d LIKE ? ESCAPE '\'`, i)
		args[i] = pattern
	}
	return " WHERE " + strings.Join(terms, " OR "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func indexOf(cols []string, name string) int {
	if name == "" {
		return -1
	}
	for i, c := range cols {
		if c == name {
			return i
		}
	}
	return -1
}
