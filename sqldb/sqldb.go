// Package sqldb implements the database interfaces of package core with database/sql.
// Tables are created on startup if they don't exist. SQLite and MySQL are supported,
// the statements differ in the table definitions only.
package sqldb

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/wansing/patriam/core"
)

type dialect struct {
	name         string
	idColumn     string // integer primary key which is assigned on insert
	tableOptions string
}

var (
	sqliteDialect = dialect{
		name:     "sqlite3",
		idColumn: "id INTEGER PRIMARY KEY",
	}
	mysqlDialect = dialect{
		name:         "mysql",
		idColumn:     "id INTEGER PRIMARY KEY AUTO_INCREMENT",
		tableOptions: " DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci",
	}
)

// dialectOf returns the dialect of the driver which db has been opened with. Everything except MySQL is treated as SQLite.
func dialectOf(db *sql.DB) dialect {
	if _, ok := db.Driver().(*mysql.MySQLDriver); ok {
		return mysqlDialect
	}
	return sqliteDialect
}

func schema(d dialect) []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS usr (
			` + d.idColumn + `,
			name varchar(128) NOT NULL,
			email varchar(255) NOT NULL DEFAULT '',
			role varchar(16) NOT NULL,
			password varchar(255) NOT NULL DEFAULT '',
			UNIQUE(name)
		)` + d.tableOptions,
		`CREATE TABLE IF NOT EXISTS article (
			` + d.idColumn + `,
			title varchar(255) NOT NULL,
			content TEXT NOT NULL,
			image_url varchar(255) NOT NULL DEFAULT '',
			status INTEGER NOT NULL,
			author INTEGER NOT NULL,
			created BIGINT NOT NULL
		)` + d.tableOptions,
		`CREATE TABLE IF NOT EXISTS comment (
			` + d.idColumn + `,
			article INTEGER NOT NULL,
			author INTEGER NOT NULL,
			text TEXT NOT NULL,
			created BIGINT NOT NULL
		)` + d.tableOptions,
		`CREATE TABLE IF NOT EXISTS page (
			slug varchar(64) PRIMARY KEY,
			title varchar(255) NOT NULL,
			content TEXT NOT NULL,
			updated BIGINT NOT NULL
		)` + d.tableOptions,
	}
}

// createTables is called by every constructor, because the statements of one table may join others.
func createTables(db *sql.DB) {
	for _, query := range schema(dialectOf(db)) {
		if _, err := db.Exec(query); err != nil {
			panic(fmt.Errorf("creating table: %w", err))
		}
	}
}

// mustPrepare panics on error. It is used during startup only.
func mustPrepare(db *sql.DB, query string) *sql.Stmt {
	stmt, err := db.Prepare(query)
	if err != nil {
		panic(fmt.Errorf("preparing %q: %w", query, err))
	}
	return stmt
}

// notFound maps sql.ErrNoRows to core.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	return err
}

// mustAffect returns core.ErrNotFound if no row has been changed.
func mustAffect(result sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// New creates all tables and returns a CoreDB whose databases are backed by db.
func New(db *sql.DB) *core.CoreDB {
	return &core.CoreDB{
		ArticleDB: NewArticleDB(db),
		CommentDB: NewCommentDB(db),
		PageDB:    NewPageDB(db),
		UserDB:    NewUserDB(db),
	}
}
