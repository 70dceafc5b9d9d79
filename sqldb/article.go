package sqldb

import (
	"database/sql"
	"time"

	"github.com/wansing/patriam/auth"
	"github.com/wansing/patriam/core"
)

const articleColumns = `a.id, a.title, a.content, a.image_url, a.status, a.author, a.created, COALESCE(u.name, ''), (SELECT COUNT(*) FROM comment c WHERE c.article = a.id)`

// filterClause matches everything if a parameter is zero. Parameters: status, status, author, author.
const filterClause = `(? = 0 OR a.status = ?) AND (? = 0 OR a.author = ?)`

type ArticleDB struct {
	*sql.DB
	count          *sql.Stmt
	deleteArticle  *sql.Stmt
	deleteComments *sql.Stmt
	get            *sql.Stmt
	getAll         *sql.Stmt
	insert         *sql.Stmt
	update         *sql.Stmt
}

func NewArticleDB(db *sql.DB) *ArticleDB {

	createTables(db)

	var articleDB = &ArticleDB{}
	articleDB.DB = db
	articleDB.count = mustPrepare(db, "SELECT COUNT(*) FROM article a WHERE "+filterClause)
	articleDB.deleteArticle = mustPrepare(db, "DELETE FROM article WHERE id = ?")
	articleDB.deleteComments = mustPrepare(db, "DELETE FROM comment WHERE article = ?")
	articleDB.get = mustPrepare(db, "SELECT "+articleColumns+" FROM article a LEFT JOIN usr u ON u.id = a.author WHERE a.id = ?")
	articleDB.getAll = mustPrepare(db, "SELECT "+articleColumns+" FROM article a LEFT JOIN usr u ON u.id = a.author WHERE "+filterClause+" ORDER BY a.created DESC, a.id DESC LIMIT ? OFFSET ?")
	articleDB.insert = mustPrepare(db, "INSERT INTO article (title, content, image_url, status, author, created) VALUES (?, ?, ?, ?, ?, ?)")
	articleDB.update = mustPrepare(db, "UPDATE article SET title = COALESCE(?, title), content = COALESCE(?, content), image_url = COALESCE(?, image_url), status = COALESCE(?, status) WHERE id = ?")
	return articleDB
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row scanner) (*core.Article, error) {
	var a = &core.Article{}
	var created int64
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.ImageURL, &a.Status, &a.AuthorID, &created, &a.AuthorName, &a.CommentCount); err != nil {
		return nil, err
	}
	a.CreatedAt = time.Unix(created, 0)
	return a, nil
}

func (db *ArticleDB) CountArticles(filter core.ArticleFilter) (int, error) {
	var count int
	err := db.count.QueryRow(filter.Status, filter.Status, filter.AuthorID, filter.AuthorID).Scan(&count)
	return count, err
}

// DeleteArticle deletes the article and its comments in one transaction.
func (db *ArticleDB) DeleteArticle(id int) error {

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Stmt(db.deleteComments).Exec(id); err != nil {
		tx.Rollback()
		return err
	}

	if err := mustAffect(tx.Stmt(db.deleteArticle).Exec(id)); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (db *ArticleDB) GetArticle(id int) (*core.Article, error) {
	a, err := scanArticle(db.get.QueryRow(id))
	return a, notFound(err)
}

func (db *ArticleDB) GetArticles(filter core.ArticleFilter, limit, offset int) ([]*core.Article, error) {

	var articles = []*core.Article{}

	rows, err := db.getAll.Query(filter.Status, filter.Status, filter.AuthorID, filter.AuthorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

func (db *ArticleDB) InsertArticle(a *core.Article) error {

	var now = time.Now().Truncate(time.Second)

	result, err := db.insert.Exec(a.Title, a.Content, a.ImageURL, a.Status, a.AuthorID, now.Unix())
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	a.ID = int(id)
	a.CreatedAt = now
	return nil
}

// UpdateArticle writes the non-nil fields of u in one statement and returns the updated article.
func (db *ArticleDB) UpdateArticle(id int, u core.ArticleUpdate) (*core.Article, error) {
	if _, err := db.update.Exec(nullString(u.Title), nullString(u.Content), nullString(u.ImageURL), nullStatus(u.Status), id); err != nil {
		return nil, err
	}
	return db.GetArticle(id) // ErrNotFound if it does not exist
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullStatus(s *auth.Status) sql.NullInt64 {
	if s == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*s), Valid: true}
}
