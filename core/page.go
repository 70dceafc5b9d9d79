package core

import (
	"errors"
	"strings"
	"time"

	"github.com/wansing/patriam/auth"
)

const AboutSlug = "about"

type Page struct {
	Slug      string
	Title     string
	Content   string
	UpdatedAt time.Time
}

type PageDB interface {
	GetPage(slug string) (*Page, error)
	SavePage(p *Page) error // inserts or updates by slug, sets UpdatedAt
}

// AboutPage returns the about page. If it has never been saved, a page with empty content is returned.
func (c *CoreDB) AboutPage() (*Page, error) {
	page, err := c.PageDB.GetPage(AboutSlug)
	if errors.Is(err, ErrNotFound) {
		return &Page{
			Slug:  AboutSlug,
			Title: "About Patriam",
		}, nil
	}
	return page, adapterError("get page", err)
}

// SaveAboutPage stores the content of the about page. Only admins can do that.
func (c *CoreDB) SaveAboutPage(p *auth.Principal, content string) (*Page, error) {

	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &ValidationError{"content"}
	}

	var page = &Page{
		Slug:    AboutSlug,
		Title:   "About Patriam",
		Content: content,
	}

	if err := c.PageDB.SavePage(page); err != nil {
		return nil, adapterError("save page", err)
	}

	c.Log.Info("page saved", "page", AboutSlug, "principal", p.ID)
	return page, nil
}
