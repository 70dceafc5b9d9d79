package sqldb

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wansing/patriam/auth"
	"github.com/wansing/patriam/core"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1) // every connection would get its own in-memory database
	t.Cleanup(func() { db.Close() })
	return db
}

func insertTestUser(t *testing.T, users *UserDB, name string, role auth.Role) *core.User {
	t.Helper()
	u, err := users.InsertUser(name, "", name+"-secret", role)
	require.NoError(t, err)
	return u
}

func TestArticleRoundTrip(t *testing.T) {
	db := openTestDB(t)
	users := NewUserDB(db)
	articles := NewArticleDB(db)

	writer := insertTestUser(t, users, "wendy", auth.Writer)

	a := &core.Article{Title: "Hello", Content: "World", Status: auth.Draft, AuthorID: writer.ID}
	require.NoError(t, articles.InsertArticle(a))
	assert.NotZero(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	got, err := articles.GetArticle(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, auth.Draft, got.Status)
	assert.Equal(t, "wendy", got.AuthorName)
	assert.Equal(t, 0, got.CommentCount)

	_, err = articles.GetArticle(a.ID + 100)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateArticle(t *testing.T) {
	db := openTestDB(t)
	articles := NewArticleDB(db)

	a := &core.Article{Title: "Old", Content: "Body", Status: auth.Draft, AuthorID: 1}
	require.NoError(t, articles.InsertArticle(a))

	title := "New"
	published := auth.Published
	updated, err := articles.UpdateArticle(a.ID, core.ArticleUpdate{Title: &title, Status: &published})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "Body", updated.Content) // untouched
	assert.Equal(t, auth.Published, updated.Status)

	_, err = articles.UpdateArticle(a.ID+100, core.ArticleUpdate{Title: &title})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestArticleFilter(t *testing.T) {
	db := openTestDB(t)
	articles := NewArticleDB(db)

	for _, a := range []*core.Article{
		{Title: "a", Content: "x", Status: auth.Published, AuthorID: 7},
		{Title: "b", Content: "x", Status: auth.Draft, AuthorID: 7},
		{Title: "c", Content: "x", Status: auth.Draft, AuthorID: 8},
		{Title: "d", Content: "x", Status: auth.Published, AuthorID: 8},
	} {
		require.NoError(t, articles.InsertArticle(a))
	}

	count, err := articles.CountArticles(core.ArticleFilter{})
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	count, err = articles.CountArticles(core.ArticleFilter{Status: auth.Draft, AuthorID: 7})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	published, err := articles.GetArticles(core.ArticleFilter{Status: auth.Published}, 10, 0)
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, "d", published[0].Title) // newest first
	assert.Equal(t, "a", published[1].Title)

	page, err := articles.GetArticles(core.ArticleFilter{}, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b", page[0].Title)
}

func TestDeleteArticleCascadesComments(t *testing.T) {
	db := openTestDB(t)
	articles := NewArticleDB(db)
	comments := NewCommentDB(db)

	a := &core.Article{Title: "t", Content: "c", Status: auth.Published, AuthorID: 7}
	require.NoError(t, articles.InsertArticle(a))
	other := &core.Article{Title: "o", Content: "c", Status: auth.Published, AuthorID: 7}
	require.NoError(t, articles.InsertArticle(other))

	for i := 0; i < 3; i++ {
		require.NoError(t, comments.InsertComment(&core.Comment{Text: "hi", ArticleID: a.ID, UserID: 9}))
	}
	require.NoError(t, comments.InsertComment(&core.Comment{Text: "stay", ArticleID: other.ID, UserID: 9}))

	got, err := articles.GetArticle(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CommentCount)

	require.NoError(t, articles.DeleteArticle(a.ID))

	_, err = articles.GetArticle(a.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	left, err := comments.GetComments(a.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	kept, err := comments.GetComments(other.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	assert.ErrorIs(t, articles.DeleteArticle(a.ID), core.ErrNotFound)
}

func TestComments(t *testing.T) {
	db := openTestDB(t)
	users := NewUserDB(db)
	comments := NewCommentDB(db)

	reader := insertTestUser(t, users, "rita", auth.Reader)

	first := &core.Comment{Text: "first", ArticleID: 1, UserID: reader.ID}
	second := &core.Comment{Text: "second", ArticleID: 1, UserID: reader.ID}
	require.NoError(t, comments.InsertComment(first))
	require.NoError(t, comments.InsertComment(second))

	all, err := comments.GetComments(1)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "first", all[0].Text) // oldest first
	assert.Equal(t, "rita", all[0].Username)

	require.NoError(t, comments.UpdateComment(first.ID, "edited"))
	got, err := comments.GetComment(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)

	assert.ErrorIs(t, comments.UpdateComment(999, "x"), core.ErrNotFound)

	require.NoError(t, comments.DeleteComment(first.ID))
	_, err = comments.GetComment(first.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, comments.DeleteComment(first.ID), core.ErrNotFound)
}

func TestLogin(t *testing.T) {
	db := openTestDB(t)
	users := NewUserDB(db)

	u := insertTestUser(t, users, "alice", auth.Admin)

	got, err := users.LoginUser("alice", "alice-secret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, auth.Admin, got.Role)

	_, err = users.LoginUser("alice", "wrong")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = users.LoginUser("bob", "alice-secret")
	assert.ErrorIs(t, err, core.ErrNotFound)

	// users are never stored without password
	_, err = users.InsertUser("nopass", "", "", auth.Reader)
	assert.Error(t, err)
	_, err = users.GetUserByName("nopass")
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.ErrorIs(t, users.ChangePassword(u, "wrong", "new"), core.ErrNotFound)
	require.NoError(t, users.ChangePassword(u, "alice-secret", "new"))
	_, err = users.LoginUser("alice", "new")
	assert.NoError(t, err)
}

func TestUsers(t *testing.T) {
	db := openTestDB(t)
	users := NewUserDB(db)

	insertTestUser(t, users, "zoe", auth.Reader)
	admin := insertTestUser(t, users, "adam", auth.Admin)

	_, err := users.InsertUser("zoe", "", "zoe-secret", auth.Writer)
	assert.Error(t, err) // unique name

	all, err := users.GetAllUsers(10, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "adam", all[0].Name)

	count, err := users.CountUsersWithRole(auth.Admin)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, users.SetRole(admin, auth.Writer))
	got, err := users.GetUser(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, auth.Writer, got.Role)

	_, err = users.GetUserByName("nobody")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	db := openTestDB(t)
	users := NewUserDB(db)
	articles := NewArticleDB(db)
	comments := NewCommentDB(db)

	writer := insertTestUser(t, users, "wendy", auth.Writer)
	reader := insertTestUser(t, users, "rita", auth.Reader)

	own := &core.Article{Title: "own", Content: "c", Status: auth.Published, AuthorID: writer.ID}
	require.NoError(t, articles.InsertArticle(own))
	foreign := &core.Article{Title: "foreign", Content: "c", Status: auth.Published, AuthorID: 99}
	require.NoError(t, articles.InsertArticle(foreign))

	require.NoError(t, comments.InsertComment(&core.Comment{Text: "on own", ArticleID: own.ID, UserID: reader.ID}))
	require.NoError(t, comments.InsertComment(&core.Comment{Text: "by writer", ArticleID: foreign.ID, UserID: writer.ID}))
	require.NoError(t, comments.InsertComment(&core.Comment{Text: "by reader", ArticleID: foreign.ID, UserID: reader.ID}))

	require.NoError(t, users.DeleteUser(writer))

	_, err := users.GetUser(writer.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = articles.GetArticle(own.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	left, err := comments.GetComments(foreign.ID)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "by reader", left[0].Text)

	onOwn, err := comments.GetComments(own.ID)
	require.NoError(t, err)
	assert.Empty(t, onOwn)
}

func TestPages(t *testing.T) {
	db := openTestDB(t)
	pages := NewPageDB(db)

	_, err := pages.GetPage("about")
	assert.ErrorIs(t, err, core.ErrNotFound)

	p := &core.Page{Slug: "about", Title: "About", Content: "first"}
	require.NoError(t, pages.SavePage(p))
	assert.False(t, p.UpdatedAt.IsZero())

	p.Content = "second"
	require.NoError(t, pages.SavePage(p))

	got, err := pages.GetPage("about")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Content)
}
