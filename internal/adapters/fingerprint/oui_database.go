package fingerprint

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// OUIDatabase provides vendor lookup from an SQLite OUI registry with an LRU
// cache in front and an optional fallback repository behind.
type OUIDatabase struct {
	db       *sql.DB
	cache    *OUICache
	mu       sync.RWMutex
	fallback VendorRepository
	closed   bool

	lookupStmt *sql.Stmt
}

// OUIEntry represents a single OUI registry entry
type OUIEntry struct {
	Prefix      string
	Vendor      string
	LastUpdated time.Time
}

// RepositoryStats contains statistics about the registry
type RepositoryStats struct {
	TotalEntries int
	CacheHits    int64
	CacheMisses  int64
}

// NewOUIDatabase opens (or creates) the registry at dbPath.
func NewOUIDatabase(dbPath string, cacheSize int, fallback VendorRepository) (*OUIDatabase, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, &DatabaseError{Op: "open", Err: err}
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &DatabaseError{Op: "ping", Err: err}
	}

	oui := &OUIDatabase{
		db:       db,
		cache:    NewOUICache(cacheSize),
		fallback: fallback,
	}

	if err := oui.initializeSchema(); err != nil {
		db.Close()
		return nil, &DatabaseError{Op: "initialize_schema", Err: err}
	}

	stmt, err := db.Prepare("SELECT vendor FROM oui_registry WHERE prefix = ?")
	if err != nil {
		db.Close()
		return nil, &DatabaseError{Op: "prepare_statement", Err: err}
	}
	oui.lookupStmt = stmt

	return oui, nil
}

func (o *OUIDatabase) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS oui_registry (
		prefix TEXT PRIMARY KEY,
		vendor TEXT NOT NULL,
		last_updated INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_vendor ON oui_registry(vendor);
	`
	if _, err := o.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SeedIfEmpty loads entries when the registry holds none and reports how
// many were inserted.
func (o *OUIDatabase) SeedIfEmpty(ctx context.Context, entries []OUIEntry) (int, error) {
	stats, err := o.GetStats(ctx)
	if err != nil {
		return 0, err
	}
	if stats.TotalEntries > 0 {
		return 0, nil
	}
	if err := o.BulkInsertOUIs(ctx, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// LookupVendor implements VendorRepository.
func (o *OUIDatabase) LookupVendor(ctx context.Context, mac MACAddress) (string, error) {
	o.mu.RLock()
	closed := o.closed
	o.mu.RUnlock()
	if closed {
		return "", ErrRepositoryClosed
	}

	if !mac.IsValid() {
		return "", ErrInvalidMAC
	}

	prefix := mac.OUI()
	if vendor, ok := o.cache.Get(prefix); ok {
		return vendor, nil
	}

	var vendor string
	err := o.lookupStmt.QueryRowContext(ctx, prefix).Scan(&vendor)
	switch {
	case err == nil:
		o.cache.Set(prefix, vendor)
		return vendor, nil
	case errors.Is(err, sql.ErrNoRows):
		if o.fallback != nil {
			if v, ferr := o.fallback.LookupVendor(ctx, mac); ferr == nil && v != "" && v != Unknown {
				o.cache.Set(prefix, v)
				return v, nil
			}
		}
		return Unknown, ErrVendorNotFound
	}

	if o.fallback != nil {
		if v, ferr := o.fallback.LookupVendor(ctx, mac); ferr == nil {
			return v, nil
		}
	}
	return "", &DatabaseError{Op: "lookup", Err: err}
}

// BulkInsertOUIs inserts or replaces entries in one transaction.
func (o *OUIDatabase) BulkInsertOUIs(ctx context.Context, entries []OUIEntry) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrRepositoryClosed
	}

	tx, err := o.db.BeginTx(ctx, nil)
	if err != nil {
		return &DatabaseError{Op: "begin_transaction", Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO oui_registry (prefix, vendor, last_updated) VALUES (?, ?, ?)`)
	if err != nil {
		return &DatabaseError{Op: "prepare_bulk_insert", Err: err}
	}
	defer stmt.Close()

	for _, entry := range entries {
		updated := entry.LastUpdated
		if updated.IsZero() {
			updated = time.Now()
		}
		if _, err := stmt.ExecContext(ctx, entry.Prefix, entry.Vendor, updated.Unix()); err != nil {
			return &DatabaseError{Op: "bulk_insert_entry", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &DatabaseError{Op: "commit_transaction", Err: err}
	}
	o.cache.Clear()
	return nil
}

// GetStats returns the entry count and cache counters.
func (o *OUIDatabase) GetStats(ctx context.Context) (RepositoryStats, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.closed {
		return RepositoryStats{}, ErrRepositoryClosed
	}

	var count int
	if err := o.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM oui_registry").Scan(&count); err != nil {
		return RepositoryStats{}, &DatabaseError{Op: "get_stats", Err: err}
	}

	cs := o.cache.Stats()
	return RepositoryStats{TotalEntries: count, CacheHits: cs.Hits, CacheMisses: cs.Misses}, nil
}

// Close implements VendorRepository.
func (o *OUIDatabase) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true

	if o.lookupStmt != nil {
		o.lookupStmt.Close()
	}
	o.cache.Clear()
	return o.db.Close()
}
