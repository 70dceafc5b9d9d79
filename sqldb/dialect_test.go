package sqldb

import (
	"database/sql"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wansing/patriam/auth"
	"github.com/wansing/patriam/core"
)

func TestDialectOf(t *testing.T) {
	assert.Equal(t, sqliteDialect, dialectOf(openTestDB(t)))

	// sql.Open does not connect
	db, err := sql.Open("mysql", "patriam:secret@tcp(127.0.0.1:3306)/patriam")
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, mysqlDialect, dialectOf(db))
}

func TestSchema(t *testing.T) {
	for _, query := range schema(mysqlDialect) {
		assert.Contains(t, query, "utf8mb4", query)
		if !strings.Contains(query, "TABLE IF NOT EXISTS page") {
			assert.Contains(t, query, "AUTO_INCREMENT", query)
		}
	}
	for _, query := range schema(sqliteDialect) {
		assert.NotContains(t, query, "AUTO_INCREMENT", query)
		assert.NotContains(t, query, "CHARSET", query)
	}
}

// TestMySQL runs against a real server if PATRIAM_TEST_MYSQL contains a DSN like "user:pass@tcp(127.0.0.1:3306)/patriam_test".
func TestMySQL(t *testing.T) {

	dsn := os.Getenv("PATRIAM_TEST_MYSQL")
	if dsn == "" {
		t.Skip("PATRIAM_TEST_MYSQL not set")
	}

	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Ping())

	coreDB := New(db)

	name := "mysql" + strconv.FormatInt(time.Now().UnixNano(), 36)
	u, err := coreDB.UserDB.InsertUser(name, "", "secret", auth.Writer)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	_, err = coreDB.UserDB.LoginUser(name, "secret")
	require.NoError(t, err)

	a := &core.Article{Title: "T", Content: "C", Status: auth.Published, AuthorID: u.ID}
	require.NoError(t, coreDB.ArticleDB.InsertArticle(a))
	assert.NotZero(t, a.ID)

	c := &core.Comment{Text: "hi", ArticleID: a.ID, UserID: u.ID}
	require.NoError(t, coreDB.CommentDB.InsertComment(c))

	got, err := coreDB.ArticleDB.GetArticle(a.ID)
	require.NoError(t, err)
	assert.Equal(t, name, got.AuthorName)
	assert.Equal(t, 1, got.CommentCount)

	require.NoError(t, coreDB.UserDB.DeleteUser(u))
	_, err = coreDB.ArticleDB.GetArticle(a.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
