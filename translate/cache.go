package translate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const cacheSchema = `CREATE TABLE IF NOT EXISTS translations (
	key     TEXT PRIMARY KEY,
	engine  TEXT NOT NULL,
	value   TEXT NOT NULL,
	created INTEGER NOT NULL
)`

// Cache keeps successful translations between runs, so re-running a book
// after a crash or a configuration change of later stages does not pay for
// translation again.
type Cache struct {
	mu   sync.Mutex
	conn *sqlite.Conn
}

// OpenCache opens (creating when necessary) cache database.
func OpenCache(path string) (*Cache, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate, sqlite.OpenWAL)
	if err != nil {
		return nil, fmt.Errorf("unable to open translation cache: %w", err)
	}
	if err := sqlitex.Execute(conn, cacheSchema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare translation cache: %w", err)
	}
	return &Cache{conn: conn}, nil
}

// CacheKey identifies translation of text by engine and model.
func CacheKey(engine, model, text string) string {
	h := sha256.New()
	for _, s := range []string{engine, model, text} {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) Get(key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		value string
		found bool
	)
	err := sqlitex.Execute(c.conn, `SELECT value FROM translations WHERE key = ?`, &sqlitex.ExecOptions{
		Args: []any{key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			value, found = stmt.ColumnText(0), true
			return nil
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("unable to query translation cache: %w", err)
	}
	return value, found, nil
}

func (c *Cache) Put(key, engine, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := sqlitex.Execute(c.conn,
		`INSERT INTO translations (key, engine, value, created) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, created = excluded.created`,
		&sqlitex.ExecOptions{Args: []any{key, engine, value, time.Now().Unix()}})
	if err != nil {
		return fmt.Errorf("unable to store translation: %w", err)
	}
	return nil
}

// Len returns number of cached translations.
func (c *Cache) Len() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	err := sqlitex.Execute(c.conn, `SELECT count(*) FROM translations`, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			n = stmt.ColumnInt(0)
			return nil
		},
	})
	return n, err
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}
