package core

import (
	"strings"
	"time"

	"github.com/wansing/patriam/auth"
)

type Comment struct {
	ID        int
	Text      string
	ArticleID int
	UserID    int
	CreatedAt time.Time

	Username string // read-only, filled by the CommentDB
}

// OwnerID implements auth.Entity. It is nil-safe.
func (c *Comment) OwnerID() int {
	if c == nil {
		return 0
	}
	return c.UserID
}

type CommentDB interface {
	DeleteComment(id int) error
	GetComment(id int) (*Comment, error)
	GetComments(articleID int) ([]*Comment, error) // oldest first
	InsertComment(c *Comment) error                // sets ID and CreatedAt
	UpdateComment(id int, text string) error
}

func normalizeText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ValidationError{"text"}
	}
	return text, nil
}

// Comments returns the comments of an article which the principal may read.
func (c *CoreDB) Comments(p *auth.Principal, articleID int) ([]*Comment, error) {
	if _, err := c.OpenArticle(p, articleID); err != nil {
		return nil, err
	}
	comments, err := c.CommentDB.GetComments(articleID)
	return comments, adapterError("get comments", err)
}

// PostComment adds a comment to a published article.
func (c *CoreDB) PostComment(p *auth.Principal, articleID int, text string) (*Comment, error) {

	if p == nil {
		return nil, auth.ErrUnauthenticated
	}

	a, err := c.OpenArticle(p, articleID)
	if err != nil {
		return nil, err
	}

	if !a.Published() {
		return nil, auth.ErrInvalidState
	}

	if err := auth.Require(p, auth.Comment, auth.Articles, a); err != nil {
		return nil, err
	}

	if err := auth.Require(p, auth.Create, auth.Comments, nil); err != nil {
		return nil, err
	}

	text, err = normalizeText(text)
	if err != nil {
		return nil, err
	}

	var comment = &Comment{
		Text:      text,
		ArticleID: a.ID,
		UserID:    p.ID,
	}

	if err := c.CommentDB.InsertComment(comment); err != nil {
		return nil, adapterError("insert comment", err)
	}

	c.Log.V(1).Info("comment posted", "comment", comment.ID, "article", a.ID, "principal", p.ID)
	return comment, nil
}

// openComment returns the comment if the principal may perform the action on it.
func (c *CoreDB) openComment(p *auth.Principal, action auth.Action, id int) (*Comment, error) {

	if p == nil {
		return nil, auth.ErrUnauthenticated
	}

	comment, err := c.CommentDB.GetComment(id)
	if err != nil {
		return nil, adapterError("get comment", err)
	}

	if _, err := c.OpenArticle(p, comment.ArticleID); err != nil {
		return nil, err
	}

	if err := auth.Require(p, action, auth.Comments, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// EditComment changes the text of a comment.
func (c *CoreDB) EditComment(p *auth.Principal, id int, text string) (*Comment, error) {

	comment, err := c.openComment(p, auth.Edit, id)
	if err != nil {
		return nil, err
	}

	text, err = normalizeText(text)
	if err != nil {
		return nil, err
	}

	if err := c.CommentDB.UpdateComment(id, text); err != nil {
		return nil, adapterError("update comment", err)
	}

	comment.Text = text
	c.Log.V(1).Info("comment edited", "comment", id, "principal", p.ID)
	return comment, nil
}

// RemoveComment deletes a comment. It returns the deleted comment, so the caller knows its article.
func (c *CoreDB) RemoveComment(p *auth.Principal, id int) (*Comment, error) {

	comment, err := c.openComment(p, auth.Delete, id)
	if err != nil {
		return nil, err
	}

	if err := c.CommentDB.DeleteComment(id); err != nil {
		return nil, adapterError("delete comment", err)
	}

	c.Log.Info("comment deleted", "comment", id, "article", comment.ArticleID, "principal", p.ID, "author", comment.UserID)
	return comment, nil
}
