package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reqshift/reqshift/internal/history"
	_ "modernc.org/sqlite"
)

// Store implements history.Store using SQLite.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// New creates a new SQLite-based history store.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// NewInMemory creates a new in-memory SQLite store (useful for testing).
func NewInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables and indexes.
func (s *Store) initialize() error {
	schema := `
		CREATE TABLE IF NOT EXISTS operations (
			id TEXT PRIMARY KEY,
			timestamp DATETIME NOT NULL,
			operation TEXT NOT NULL,
			source_format TEXT,
			target_format TEXT,
			source_path TEXT,
			collection_id TEXT,
			collection_name TEXT,
			request_count INTEGER DEFAULT 0,
			folder_count INTEGER DEFAULT 0,
			variable_count INTEGER DEFAULT 0,
			detail TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_operations_timestamp ON operations(timestamp DESC);
		CREATE INDEX IF NOT EXISTS idx_operations_operation ON operations(operation);
		CREATE INDEX IF NOT EXISTS idx_operations_collection ON operations(collection_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Add adds a new history entry and returns its ID.
func (s *Store) Add(ctx context.Context, entry history.Entry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", history.ErrStoreClosed
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO operations (
			id, timestamp, operation, source_format, target_format, source_path,
			collection_id, collection_name, request_count, folder_count,
			variable_count, detail
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID, entry.Timestamp, string(entry.Operation), entry.SourceFormat,
		entry.TargetFormat, entry.SourcePath, entry.CollectionID, entry.CollectionName,
		entry.RequestCount, entry.FolderCount, entry.VariableCount, entry.Detail,
	)

	if err != nil {
		return "", fmt.Errorf("failed to insert history entry: %w", err)
	}

	return entry.ID, nil
}

// Get retrieves a single history entry by ID.
func (s *Store) Get(ctx context.Context, id string) (history.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return history.Entry{}, history.ErrStoreClosed
	}

	if id == "" {
		return history.Entry{}, history.ErrInvalidID
	}

	row := s.db.QueryRowContext(ctx, selectColumns+` FROM operations WHERE id = ?`, id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return history.Entry{}, history.ErrNotFound
	}
	if err != nil {
		return history.Entry{}, fmt.Errorf("failed to get history entry: %w", err)
	}

	return entry, nil
}

// List retrieves history entries matching the query options, newest first.
func (s *Store) List(ctx context.Context, opts history.QueryOptions) ([]history.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, history.ErrStoreClosed
	}

	query, args := buildListQuery(opts, false)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Count returns the number of entries matching the query options.
func (s *Store) Count(ctx context.Context, opts history.QueryOptions) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, history.ErrStoreClosed
	}

	query, args := buildListQuery(opts, true)
	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history entries: %w", err)
	}

	return count, nil
}

// Delete removes a history entry by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return history.ErrStoreClosed
	}

	if id == "" {
		return history.ErrInvalidID
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM operations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return history.ErrNotFound
	}

	return nil
}

// Prune removes old entries based on the prune options.
func (s *Store) Prune(ctx context.Context, opts history.PruneOptions) (history.PruneResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return history.PruneResult{}, history.ErrStoreClosed
	}

	var deleted int64

	cutoff := opts.Before
	if opts.OlderThan > 0 {
		byAge := time.Now().UTC().Add(-opts.OlderThan)
		if cutoff.IsZero() || byAge.Before(cutoff) {
			cutoff = byAge
		}
	}

	if !cutoff.IsZero() {
		result, err := s.db.ExecContext(ctx, `DELETE FROM operations WHERE timestamp < ?`, cutoff)
		if err != nil {
			return history.PruneResult{}, fmt.Errorf("failed to prune history: %w", err)
		}
		n, _ := result.RowsAffected()
		deleted += n
	}

	if opts.KeepLast > 0 {
		result, err := s.db.ExecContext(ctx, `
			DELETE FROM operations WHERE id NOT IN (
				SELECT id FROM operations ORDER BY timestamp DESC LIMIT ?
			)
		`, opts.KeepLast)
		if err != nil {
			return history.PruneResult{}, fmt.Errorf("failed to prune history: %w", err)
		}
		n, _ := result.RowsAffected()
		deleted += n
	}

	return history.PruneResult{DeletedCount: deleted}, nil
}

// Clear removes all history entries.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return history.ErrStoreClosed
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM operations`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	return nil
}

// Close closes the store and releases resources.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	return s.db.Close()
}

const selectColumns = `
	SELECT id, timestamp, operation, source_format, target_format, source_path,
		collection_id, collection_name, request_count, folder_count,
		variable_count, detail`

// buildListQuery assembles the WHERE clause shared by List and Count.
func buildListQuery(opts history.QueryOptions, count bool) (string, []interface{}) {
	var query strings.Builder
	if count {
		query.WriteString(`SELECT COUNT(*)`)
	} else {
		query.WriteString(selectColumns)
	}
	query.WriteString(` FROM operations`)

	var conditions []string
	var args []interface{}

	if opts.Operation != "" {
		conditions = append(conditions, `operation = ?`)
		args = append(args, string(opts.Operation))
	}
	if opts.CollectionID != "" {
		conditions = append(conditions, `collection_id = ?`)
		args = append(args, opts.CollectionID)
	}
	if !opts.After.IsZero() {
		conditions = append(conditions, `timestamp > ?`)
		args = append(args, opts.After)
	}
	if !opts.Before.IsZero() {
		conditions = append(conditions, `timestamp < ?`)
		args = append(args, opts.Before)
	}

	if len(conditions) > 0 {
		query.WriteString(` WHERE `)
		query.WriteString(strings.Join(conditions, ` AND `))
	}

	if !count {
		query.WriteString(` ORDER BY timestamp DESC`)
		if opts.Limit > 0 {
			query.WriteString(` LIMIT ?`)
			args = append(args, opts.Limit)
			if opts.Offset > 0 {
				query.WriteString(` OFFSET ?`)
				args = append(args, opts.Offset)
			}
		}
	}

	return query.String(), args
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (history.Entry, error) {
	var entry history.Entry
	var operation string

	err := row.Scan(
		&entry.ID, &entry.Timestamp, &operation, &entry.SourceFormat,
		&entry.TargetFormat, &entry.SourcePath, &entry.CollectionID,
		&entry.CollectionName, &entry.RequestCount, &entry.FolderCount,
		&entry.VariableCount, &entry.Detail,
	)
	if err != nil {
		return history.Entry{}, err
	}

	entry.Operation = history.Operation(operation)
	return entry, nil
}

// Verify Store implements history.Store interface
var _ history.Store = (*Store)(nil)
