package sqldb

import (
	"database/sql"
	"errors"
	"time"

	"github.com/wansing/patriam/core"
)

type PageDB struct {
	*sql.DB
	get    *sql.Stmt
	insert *sql.Stmt
	update *sql.Stmt
}

func NewPageDB(db *sql.DB) *PageDB {

	createTables(db)

	var pageDB = &PageDB{}
	pageDB.DB = db
	pageDB.get = mustPrepare(db, "SELECT slug, title, content, updated FROM page WHERE slug = ?")
	pageDB.insert = mustPrepare(db, "INSERT INTO page (slug, title, content, updated) VALUES (?, ?, ?, ?)")
	pageDB.update = mustPrepare(db, "UPDATE page SET title = ?, content = ?, updated = ? WHERE slug = ?")
	return pageDB
}

func (db *PageDB) GetPage(slug string) (*core.Page, error) {
	var p = &core.Page{}
	var updated int64
	if err := db.get.QueryRow(slug).Scan(&p.Slug, &p.Title, &p.Content, &updated); err != nil {
		return nil, notFound(err)
	}
	p.UpdatedAt = time.Unix(updated, 0)
	return p, nil
}

// SavePage inserts or updates the page in one transaction.
func (db *PageDB) SavePage(p *core.Page) error {

	var now = time.Now().Truncate(time.Second)

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	var slug string
	switch err := tx.Stmt(db.get).QueryRow(p.Slug).Scan(&slug, new(string), new(string), new(int64)); {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.Stmt(db.insert).Exec(p.Slug, p.Title, p.Content, now.Unix())
		if err != nil {
			tx.Rollback()
			return err
		}
	case err != nil:
		tx.Rollback()
		return err
	default:
		_, err = tx.Stmt(db.update).Exec(p.Title, p.Content, now.Unix(), p.Slug)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	p.UpdatedAt = now
	return nil
}
