package core

import (
	"strings"
	"time"

	"github.com/wansing/patriam/auth"
)

type Article struct {
	ID        int
	Title     string
	Content   string
	ImageURL  string // optional
	Status    auth.Status
	AuthorID  int
	CreatedAt time.Time

	// read-only, filled by the ArticleDB
	AuthorName   string
	CommentCount int
}

// OwnerID implements auth.Entity. It is nil-safe.
func (a *Article) OwnerID() int {
	if a == nil {
		return 0
	}
	return a.AuthorID
}

// ReleaseStatus implements auth.Releasable. It is nil-safe.
func (a *Article) ReleaseStatus() auth.Status {
	if a == nil {
		return 0
	}
	return a.Status
}

func (a *Article) Published() bool {
	return a.ReleaseStatus() == auth.Published
}

// ArticleFilter selects articles. Zero values don't filter.
type ArticleFilter struct {
	Status   auth.Status
	AuthorID int
}

// ArticleUpdate contains the fields to change. Nil fields are left untouched.
type ArticleUpdate struct {
	Title    *string
	Content  *string
	ImageURL *string
	Status   *auth.Status
}

func (u ArticleUpdate) Empty() bool {
	return u.Title == nil && u.Content == nil && u.ImageURL == nil && u.Status == nil
}

type ArticleDB interface {
	CountArticles(filter ArticleFilter) (int, error)
	DeleteArticle(id int) error // deletes its comments too
	GetArticle(id int) (*Article, error)
	GetArticles(filter ArticleFilter, limit, offset int) ([]*Article, error) // newest first
	InsertArticle(a *Article) error                                       // sets ID and CreatedAt
	UpdateArticle(id int, u ArticleUpdate) (*Article, error)
}

// ArticleInput contains the fields of a new article.
type ArticleInput struct {
	Title    string
	Content  string
	ImageURL string
	Status   auth.Status // requested, zero means draft
}

func (in *ArticleInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if in.Title == "" {
		return &ValidationError{"title"}
	}
	if in.Content == "" {
		return &ValidationError{"content"}
	}
	return nil
}

// ArticleEdit is an ArticleUpdate before validation.
type ArticleEdit ArticleUpdate

func (e ArticleEdit) normalize() (ArticleUpdate, error) {
	var u = ArticleUpdate(e)
	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		if title == "" {
			return u, &ValidationError{"title"}
		}
		u.Title = &title
	}
	if u.Content != nil {
		content := strings.TrimSpace(*u.Content)
		if content == "" {
			return u, &ValidationError{"content"}
		}
		u.Content = &content
	}
	if u.ImageURL != nil {
		imageURL := strings.TrimSpace(*u.ImageURL)
		u.ImageURL = &imageURL
	}
	return u, nil
}

// OpenArticle returns the article if the principal may read it, else ErrNotFound.
func (c *CoreDB) OpenArticle(p *auth.Principal, id int) (*Article, error) {
	a, err := c.ArticleDB.GetArticle(id)
	if err != nil {
		return nil, adapterError("get article", err)
	}
	if !auth.CanPerform(p, auth.Read, auth.Articles, a) {
		return nil, ErrNotFound // don't reveal drafts
	}
	return a, nil
}

// ListArticles returns a page of articles which the principal may read, and the total count.
//
// Anonymous users and non-admins get published articles. With status Draft, they get their own drafts.
// Admins can filter by any status, or get all articles if status is zero.
func (c *CoreDB) ListArticles(p *auth.Principal, status auth.Status, limit, offset int) ([]*Article, int, error) {

	var filter = ArticleFilter{}

	switch {
	case p.IsAdmin():
		filter.Status = status
	case status == auth.Draft:
		if p == nil {
			return nil, 0, auth.ErrUnauthenticated
		}
		filter.Status = auth.Draft
		filter.AuthorID = p.ID
	default:
		filter.Status = auth.Published
	}

	total, err := c.ArticleDB.CountArticles(filter)
	if err != nil {
		return nil, 0, adapterError("count articles", err)
	}

	articles, err := c.ArticleDB.GetArticles(filter, limit, offset)
	if err != nil {
		return nil, 0, adapterError("get articles", err)
	}

	return articles, total, nil
}

// ListOwnArticles returns the articles written by the principal. If status is zero, articles of any status are returned.
func (c *CoreDB) ListOwnArticles(p *auth.Principal, status auth.Status, limit, offset int) ([]*Article, int, error) {
	if p == nil {
		return nil, 0, auth.ErrUnauthenticated
	}
	var filter = ArticleFilter{Status: status, AuthorID: p.ID}
	total, err := c.ArticleDB.CountArticles(filter)
	if err != nil {
		return nil, 0, adapterError("count articles", err)
	}
	articles, err := c.ArticleDB.GetArticles(filter, limit, offset)
	if err != nil {
		return nil, 0, adapterError("get articles", err)
	}
	return articles, total, nil
}

// CreateArticle inserts a new article written by the principal.
func (c *CoreDB) CreateArticle(p *auth.Principal, in ArticleInput) (*Article, error) {

	if err := auth.Require(p, auth.Create, auth.Articles, nil); err != nil {
		return nil, err
	}

	if err := in.normalize(); err != nil {
		return nil, err
	}

	status, err := auth.InitialStatus(p, in.Status)
	if err != nil {
		return nil, err
	}

	var a = &Article{
		Title:    in.Title,
		Content:  in.Content,
		ImageURL: in.ImageURL,
		Status:   status,
		AuthorID: p.ID,
	}

	if err := c.ArticleDB.InsertArticle(a); err != nil {
		return nil, adapterError("insert article", err)
	}

	c.Log.Info("article created", "article", a.ID, "principal", p.ID, "status", a.Status.String())
	return a, nil
}

// EditArticle changes the fields of an article and optionally its status.
// All checks are done before the update is written, so either everything or nothing is changed.
func (c *CoreDB) EditArticle(p *auth.Principal, id int, edit ArticleEdit) (*Article, error) {

	if p == nil {
		return nil, auth.ErrUnauthenticated
	}

	a, err := c.OpenArticle(p, id)
	if err != nil {
		return nil, err
	}

	if err := auth.Require(p, auth.Edit, auth.Articles, a); err != nil {
		return nil, err
	}

	update, err := edit.normalize()
	if err != nil {
		return nil, err
	}

	if update.Status != nil {
		if err := auth.Transition(p, a, *update.Status); err != nil {
			return nil, err
		}
		if *update.Status == a.Status {
			update.Status = nil
		}
	}

	if update.Empty() {
		return a, nil
	}

	updated, err := c.ArticleDB.UpdateArticle(id, update)
	if err != nil {
		return nil, adapterError("update article", err)
	}

	if update.Status != nil {
		c.Log.Info("article status changed", "article", id, "principal", p.ID, "from", a.Status.String(), "to", updated.Status.String())
	} else {
		c.Log.Info("article edited", "article", id, "principal", p.ID)
	}
	return updated, nil
}

// PublishArticle moves a draft to published. Publishing a published article is an invalid state change.
func (c *CoreDB) PublishArticle(p *auth.Principal, id int) (*Article, error) {

	if p == nil {
		return nil, auth.ErrUnauthenticated
	}

	a, err := c.OpenArticle(p, id)
	if err != nil {
		return nil, err
	}

	if a.Published() {
		if err := auth.Require(p, auth.Edit, auth.Articles, a); err != nil {
			return nil, err
		}
		return nil, auth.ErrInvalidState
	}

	var published = auth.Published
	return c.EditArticle(p, id, ArticleEdit{Status: &published})
}

// DeleteArticle shadows ArticleDB.DeleteArticle. The comments of the article are deleted as well.
func (c *CoreDB) DeleteArticle(p *auth.Principal, id int) error {

	if p == nil {
		return auth.ErrUnauthenticated
	}

	a, err := c.OpenArticle(p, id)
	if err != nil {
		return err
	}

	if err := auth.Require(p, auth.Delete, auth.Articles, a); err != nil {
		return err
	}

	if err := c.ArticleDB.DeleteArticle(id); err != nil {
		return adapterError("delete article", err)
	}

	c.Log.Info("article deleted", "article", id, "principal", p.ID, "comments", a.CommentCount)
	return nil
}
