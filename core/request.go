package core

import (
	"encoding/gob"
	"errors"
	"fmt"
	"html"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/wansing/patriam/auth"
	"golang.org/x/text/language"
)

type Notification struct {
	Message string
	Style   string
}

func init() {
	gob.Register([]Notification{}) // required for storing Notifications in a session
}

var langMatcher = language.NewMatcher([]language.Tag{
	language.AmericanEnglish, // default
	language.German,
})

var monthNamesDe = strings.NewReplacer(
	"January", "Januar",
	"February", "Februar",
	"March", "März",
	"May", "Mai",
	"June", "Juni",
	"July", "Juli",
	"October", "Oktober",
	"December", "Dezember",
)

// A Request is created by CoreDB.NewRequest. It connects the session with the auth package.
type Request struct {
	db   *CoreDB // unexported, so it can't be accessed in templates
	User *User   // nil if anonymous

	// http
	writer  http.ResponseWriter
	request *http.Request

	// robustness
	redirected    bool
	statusWritten bool

	// caching
	language language.Tag
}

// NewRequest creates a Request with the given http.ResponseWriter and http.Request.
// If a user is logged in, it sets Request.User.
func (c *CoreDB) NewRequest(w http.ResponseWriter, httpreq *http.Request) *Request {

	var req = &Request{
		db:      c,
		writer:  w,
		request: httpreq,
	}

	req.language, _ = language.MatchStrings(langMatcher, httpreq.Header.Get("Accept-Language"))

	if uid := c.SessionManager.GetInt(httpreq.Context(), "uid"); uid != 0 {
		u, err := c.UserDB.GetUser(uid)
		if u != nil && err == nil {
			req.User = u
		} else if !errors.Is(err, ErrNotFound) {
			c.Log.Error(err, "loading session user", "uid", uid)
		}
	}

	return req
}

// Principal returns the acting identity, or nil if nobody is logged in.
func (req *Request) Principal() *auth.Principal {
	return req.User.Principal()
}

// Danger adds a "danger" notification to the session.
func (req *Request) Danger(err error) {
	req.addNotification(err.Error(), "danger")
}

// Success adds a "success" notification to the session.
func (req *Request) Success(format string, args ...interface{}) {
	req.addNotification(fmt.Sprintf(format, args...), "success")
}

// style should be a bootstrap alert style without the leading "alert-"
func (req *Request) addNotification(message, style string) {
	notifications, _ := req.db.SessionManager.Get(req.request.Context(), "notifications").([]Notification)
	notifications = append(notifications, Notification{message, style})
	req.db.SessionManager.Put(req.request.Context(), "notifications", notifications)
}

// RenderNotification removes all notifications from the session
// and renders them into an HTML string.
// After a redirect, it does nothing, so the notifications are shown on the next page.
func (req *Request) RenderNotifications() template.HTML {
	var r string
	if !req.redirected {
		notifications, _ := req.db.SessionManager.Pop(req.request.Context(), "notifications").([]Notification)
		for _, n := range notifications {
			r += `<div class="alert alert-` + n.Style + ` mt-3" role="alert">` + html.EscapeString(n.Message) + `</div>`
		}
	}
	return template.HTML(r)
}

// Destroys the session (which means re-setting the cookie with zero lifetime) if the session has been modified and is empty now.
func (req *Request) Cleanup() {
	sessMan := req.db.SessionManager
	if sessMan.Status(req.request.Context()) == scs.Modified && len(sessMan.Keys(req.request.Context())) == 0 {
		_ = sessMan.Destroy(req.request.Context())
	}
}

// SeeOther sets the HTTP header to redirect to an URL.
func (req *Request) SeeOther(format string, args ...interface{}) {
	if req.statusWritten {
		return
	}
	var url = fmt.Sprintf(format, args...)
	http.Redirect(req.writer, req.request, url, http.StatusSeeOther)
	req.redirected = true
	req.statusWritten = true
}

// Redirected returns true if SeeOther has been called.
func (req *Request) Redirected() bool {
	return req.redirected
}

// WriteHeader writes the HTTP status code once.
func (req *Request) WriteHeader(statusCode int) {
	if req.statusWritten {
		return
	}
	req.writer.WriteHeader(statusCode)
	req.statusWritten = true
}

// Login tries to log in a user. On success, the user id is stored in the session.
func (req *Request) Login(name string, enteredPass string) error {
	if req.LoggedIn() {
		return nil
	}
	u, err := req.db.UserDB.LoginUser(strings.ToLower(strings.TrimSpace(name)), enteredPass)
	if err != nil {
		return err // ErrNotFound if name or enteredPass is wrong
	}
	if err := req.db.SessionManager.RenewToken(req.request.Context()); err != nil {
		return err
	}
	req.User = u
	req.Success("Welcome %s!", req.User.Name)
	req.db.SessionManager.Put(req.request.Context(), "uid", req.User.ID)
	req.db.Log.V(1).Info("login", "user", u.ID)
	return nil
}

func (req *Request) LoggedIn() bool {
	return req.User != nil
}

// Logout removes the user id from the session and calls req.Cleanup().
func (req *Request) Logout() {
	if req.LoggedIn() {
		req.db.SessionManager.Remove(req.request.Context(), "uid")
		req.User = nil
	}
	req.Cleanup()
}

// IsAdmin returns true if an admin is logged in.
func (req *Request) IsAdmin() bool {
	return req.Principal().IsAdmin()
}

// CanCreateArticle gates the "new article" link.
func (req *Request) CanCreateArticle() bool {
	return auth.CanPerform(req.Principal(), auth.Create, auth.Articles, nil)
}

// ReleaseState returns what the current user can do with the article.
func (req *Request) ReleaseState(a *Article) *auth.ReleaseState {
	return auth.GetReleaseState(req.Principal(), a)
}

func (req *Request) FormatDateTime(t time.Time) string {
	b, _ := req.language.Base()
	switch b.String() {
	case "de":
		return monthNamesDe.Replace(t.Format("2. January 2006 15:04 Uhr"))
	default:
		return t.Format("January 2, 2006 3:04 PM")
	}
}

func (req *Request) FormatDate(t time.Time) string {
	b, _ := req.language.Base()
	switch b.String() {
	case "de":
		return monthNamesDe.Replace(t.Format("2. January 2006"))
	default:
		return t.Format("January 2, 2006")
	}
}
