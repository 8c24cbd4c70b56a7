package cartitems

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tryanzu/cart/modules/cart"
)

// Dialect is the SQL flavour a store talks.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLStore keeps cart rows in a relational table.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	table   string
}

// NewSQLStore binds a store to table. The table is created by Migrate.
func NewSQLStore(db *sql.DB, dialect Dialect, table string) (*SQLStore, error) {
	if dialect != Postgres && dialect != SQLite {
		return nil, fmt.Errorf("cartitems: unsupported dialect %q", dialect)
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("cartitems: invalid table name %q", table)
	}
	return &SQLStore{db: db, dialect: dialect, table: table}, nil
}

var _ cart.RecordStore = (*SQLStore)(nil)

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS %[1]s (
	id BIGSERIAL PRIMARY KEY,
	session_id TEXT NULL,
	user_id TEXT NULL,
	item_id TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	price NUMERIC(12,2) NOT NULL DEFAULT 0,
	quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1),
	options TEXT NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	CHECK ((session_id IS NULL) <> (user_id IS NULL))
)`

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS %[1]s (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NULL,
	user_id TEXT NULL,
	item_id TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	price REAL NOT NULL DEFAULT 0,
	quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1),
	options TEXT NOT NULL DEFAULT '{}',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	CHECK ((session_id IS NULL) <> (user_id IS NULL))
)`

// One line per (owner, item). NULL never equals NULL in a plain unique
// index, so the scope columns are coalesced.
const scopeIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS %[1]s_scope_item
	ON %[1]s (COALESCE(user_id, ''), COALESCE(session_id, ''), item_id)`

// conflictTarget names scopeIndex in an upsert. Postgres wants each
// expression parenthesized.
func (s *SQLStore) conflictTarget() string {
	if s.dialect == Postgres {
		return "((COALESCE(user_id, '')), (COALESCE(session_id, '')), item_id)"
	}
	return "(COALESCE(user_id, ''), COALESCE(session_id, ''), item_id)"
}

// Migrate creates the table and its indexes when missing.
func (s *SQLStore) Migrate(ctx context.Context) (err error) {
	schema := schemaPostgres
	if s.dialect == SQLite {
		schema = schemaSQLite
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{schema, scopeIndex} {
		if _, err = tx.ExecContext(ctx, fmt.Sprintf(stmt, s.table)); err != nil {
			return fmt.Errorf("migrate %s: %w", s.table, err)
		}
	}

	return tx.Commit()
}

// rebind turns ? placeholders into the dialect's form.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// scopeWhere filters on both scope columns so rows never cross owners.
func scopeWhere(scope cart.Scope) (string, []interface{}) {
	if scope.UserID != "" {
		return "user_id = ? AND session_id IS NULL", []interface{}{scope.UserID}
	}
	return "session_id = ? AND user_id IS NULL", []interface{}{scope.SessionID}
}

func itemWhere(scope cart.Scope, itemID string) (string, []interface{}) {
	where, args := scopeWhere(scope)
	return where + " AND item_id = ?", append(args, itemID)
}
