package db

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/themobileprof/listpilot/pkg/models"
)

//go:embed migration.sql
var migrationSQL string

// DB wraps the SQLite connection holding the shopping list and the
// interaction history. A single connection serializes concurrent mutations
// to the same canonical item name.
type DB struct {
	conn *sql.DB
	path string
}

// New opens (creating if needed) the database at dbPath and runs migrations.
func New(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single connection
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	db := &DB{conn: conn, path: dbPath}

	if err := db.Migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return db, nil
}

// Migrate runs database migrations.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(migrationSQL); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Ping checks connectivity for readiness probes.
func (db *DB) Ping() error {
	return db.conn.Ping()
}

const itemColumns = "id, name, quantity, category, brand, price, size, created_at, updated_at"

func scanItem(row interface{ Scan(...any) error }) (models.ShoppingItem, error) {
	var item models.ShoppingItem
	var created, updated int64
	err := row.Scan(&item.ID, &item.Name, &item.Quantity, &item.Category,
		&item.Brand, &item.Price, &item.Size, &created, &updated)
	if err != nil {
		return item, err
	}
	item.CreatedAt = time.Unix(created, 0)
	item.UpdatedAt = time.Unix(updated, 0)
	return item, nil
}

// GetAllItems returns the shopping list in insertion order.
func (db *DB) GetAllItems() ([]models.ShoppingItem, error) {
	rows, err := db.conn.Query("SELECT " + itemColumns + " FROM shopping_items ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []models.ShoppingItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetItem returns the item with the given canonical name, or nil when the
// list has no such item.
func (db *DB) GetItem(name string) (*models.ShoppingItem, error) {
	row := db.conn.QueryRow("SELECT "+itemColumns+" FROM shopping_items WHERE name = ?", name)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", name, err)
	}
	return &item, nil
}

// UpsertItem creates or updates the item with the given canonical name.
// In accumulate mode the quantity is added to the existing one; in replace
// mode it overwrites it. Attributes only apply on first insert: existing
// catalog data is not overwritten by later adds.
func (db *DB) UpsertItem(name string, quantity int, mode models.UpsertMode, attrs models.CatalogEntry) (*models.ShoppingItem, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Ignore error as we might commit
	}()

	quantityExpr := "?"
	if mode == models.UpsertAccumulate {
		quantityExpr = "shopping_items.quantity + ?"
	}

	category := attrs.Category
	if category == "" {
		category = "other"
	}

	_, err = tx.Exec(`
		INSERT INTO shopping_items (name, quantity, category, brand, price, size)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			quantity = `+quantityExpr+`,
			updated_at = strftime('%s', 'now')
	`, name, quantity, category, attrs.Brand, attrs.Price, attrs.Size, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert item %s: %w", name, err)
	}

	row := tx.QueryRow("SELECT "+itemColumns+" FROM shopping_items WHERE name = ?", name)
	item, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("failed to read back item %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit upsert: %w", err)
	}
	return &item, nil
}

// SetQuantity overwrites an item's quantity, e.g. after clamping.
func (db *DB) SetQuantity(name string, quantity int) error {
	_, err := db.conn.Exec(`
		UPDATE shopping_items SET quantity = ?, updated_at = strftime('%s', 'now')
		WHERE name = ?
	`, quantity, name)
	if err != nil {
		return fmt.Errorf("failed to set quantity for %s: %w", name, err)
	}
	return nil
}

// DeleteItem removes an item by canonical name. Deleting a missing item is
// a no-op; the return value reports whether a row was removed.
func (db *DB) DeleteItem(name string) (bool, error) {
	result, err := db.conn.Exec("DELETE FROM shopping_items WHERE name = ?", name)
	if err != nil {
		return false, fmt.Errorf("failed to delete item %s: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to count deleted rows: %w", err)
	}
	return n > 0, nil
}

// DeleteItemByID removes an item by surrogate key.
func (db *DB) DeleteItemByID(id int64) (bool, error) {
	result, err := db.conn.Exec("DELETE FROM shopping_items WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to count deleted rows: %w", err)
	}
	return n > 0, nil
}

// ClearItems empties the shopping list. History is preserved.
func (db *DB) ClearItems() error {
	if _, err := db.conn.Exec("DELETE FROM shopping_items"); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	return nil
}

// AppendHistory records one interaction for the canonical item name.
func (db *DB) AppendHistory(name string, at time.Time) error {
	_, err := db.conn.Exec("INSERT INTO history (item_name, created_at) VALUES (?, ?)", name, at.Unix())
	if err != nil {
		return fmt.Errorf("failed to append history for %s: %w", name, err)
	}
	return nil
}

// HistorySnapshot returns the full interaction log, oldest first.
func (db *DB) HistorySnapshot() ([]models.HistoryEntry, error) {
	rows, err := db.conn.Query("SELECT item_name, created_at FROM history ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var name string
		var created int64
		if err := rows.Scan(&name, &created); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, models.HistoryEntry{Name: name, At: time.Unix(created, 0)})
	}
	return entries, rows.Err()
}
