package core

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-logr/logr"
)

// CoreDB gates every access to the embedded databases through the auth package.
// Methods which take an *auth.Principal are the operations that handlers should use.
type CoreDB struct {
	ArticleDB
	CommentDB
	PageDB
	UserDB
	Log            logr.Logger
	SessionManager *scs.SessionManager
}

func (c *CoreDB) Init(sessionStore scs.Store, cookiePath string, log logr.Logger) error {

	c.Log = log

	c.SessionManager = scs.New()
	c.SessionManager.Store = sessionStore
	c.SessionManager.Cookie.Path = cookiePath + "/"         // 'The default value is "/". Passing the empty string "" will result in it being set to the path that the cookie was issued from.'
	c.SessionManager.Cookie.Persist = false                 // Don't store cookie across browser sessions. Required for GDPR cookie consent exemption criterion B. https://ec.europa.eu/justice/article-29/documentation/opinion-recommendation/files/2012/wp194_en.pdf
	c.SessionManager.Cookie.SameSite = http.SameSiteLaxMode // good CSRF protection if HTTP GET doesn't modify anything
	c.SessionManager.Cookie.Secure = false                  // else running on localhost or behind a http proxy fails
	c.SessionManager.IdleTimeout = 12 * time.Hour
	c.SessionManager.Lifetime = 720 * time.Hour

	return nil
}
