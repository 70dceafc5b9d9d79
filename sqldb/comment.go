package sqldb

import (
	"database/sql"
	"time"

	"github.com/wansing/patriam/core"
)

const commentColumns = `c.id, c.text, c.article, c.author, c.created, COALESCE(u.name, '')`

type CommentDB struct {
	*sql.DB
	delete *sql.Stmt
	get    *sql.Stmt
	getAll *sql.Stmt
	insert *sql.Stmt
	update *sql.Stmt
}

func NewCommentDB(db *sql.DB) *CommentDB {

	createTables(db)

	var commentDB = &CommentDB{}
	commentDB.DB = db
	commentDB.delete = mustPrepare(db, "DELETE FROM comment WHERE id = ?")
	commentDB.get = mustPrepare(db, "SELECT "+commentColumns+" FROM comment c LEFT JOIN usr u ON u.id = c.author WHERE c.id = ?")
	commentDB.getAll = mustPrepare(db, "SELECT "+commentColumns+" FROM comment c LEFT JOIN usr u ON u.id = c.author WHERE c.article = ? ORDER BY c.created, c.id")
	commentDB.insert = mustPrepare(db, "INSERT INTO comment (text, article, author, created) VALUES (?, ?, ?, ?)")
	commentDB.update = mustPrepare(db, "UPDATE comment SET text = ? WHERE id = ?")
	return commentDB
}

func scanComment(row scanner) (*core.Comment, error) {
	var c = &core.Comment{}
	var created int64
	if err := row.Scan(&c.ID, &c.Text, &c.ArticleID, &c.UserID, &created, &c.Username); err != nil {
		return nil, err
	}
	c.CreatedAt = time.Unix(created, 0)
	return c, nil
}

func (db *CommentDB) DeleteComment(id int) error {
	return mustAffect(db.delete.Exec(id))
}

func (db *CommentDB) GetComment(id int) (*core.Comment, error) {
	c, err := scanComment(db.get.QueryRow(id))
	return c, notFound(err)
}

func (db *CommentDB) GetComments(articleID int) ([]*core.Comment, error) {

	var comments = []*core.Comment{}

	rows, err := db.getAll.Query(articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (db *CommentDB) InsertComment(c *core.Comment) error {

	var now = time.Now().Truncate(time.Second)

	result, err := db.insert.Exec(c.Text, c.ArticleID, c.UserID, now.Unix())
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	c.ID = int(id)
	c.CreatedAt = now
	return nil
}

func (db *CommentDB) UpdateComment(id int, text string) error {
	if _, err := db.GetComment(id); err != nil {
		return err
	}
	_, err := db.update.Exec(text, id)
	return err
}
