// Package mysql provides the scs session store for MySQL databases. The caller must register a MySQL driver.
package mysql

import (
	"database/sql"
	"fmt"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"
)

// NewSessionStore creates the sessions table if required.
func NewSessionStore(db *sql.DB) (scs.Store, error) {

	// MySQL does not support multiple statements in one Exec by default
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			token CHAR(43) PRIMARY KEY,
			data BLOB NOT NULL,
			expiry TIMESTAMP(6) NOT NULL,
			INDEX sessions_expiry_idx (expiry)
		)`)
	if err != nil {
		return nil, fmt.Errorf("creating sessions table: %w", err)
	}

	return mysqlstore.New(db), nil
}
