// Package frontend serves the public pages: the article index, articles with their comments and the about page.
package frontend

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/julienschmidt/httprouter"
	"github.com/wansing/patriam/auth"
	"github.com/wansing/patriam/core"
	"github.com/wansing/patriam/util"
)

var ErrInternal = errors.New("internal error")

const perPage = 10

type context struct {
	*core.Request
	Prefix string // with trailing slash
	db     *core.CoreDB
	log    logr.Logger
}

// fail writes the status code of err. Unauthenticated users are sent to the login form of the backend.
func (ctx *context) fail(w http.ResponseWriter, req *http.Request, err error) {

	if errors.Is(err, auth.ErrUnauthenticated) {
		ctx.Danger(errors.New("please log in first"))
		ctx.SeeOther("/backend/login")
		return
	}

	var status = core.StatusCode(err)
	if status == http.StatusInternalServerError {
		ctx.log.Error(err, "request failed", "method", req.Method, "path", req.URL.Path)
		err = ErrInternal
	}

	if ctx.Redirected() {
		return
	}

	ctx.WriteHeader(status)
	errorTmpl.Execute(w, struct {
		*context
		Err error
	}{
		context: ctx,
		Err:     err,
	})
}

func middleware(db *core.CoreDB, log logr.Logger, prefix string, f func(http.ResponseWriter, *http.Request, *context, httprouter.Params) error) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		var ctx = &context{
			Prefix:  prefix + "/",
			Request: db.NewRequest(w, req),
			db:      db,
			log:     log,
		}
		defer ctx.Cleanup()

		if err := f(w, req, ctx, params); err != nil {
			ctx.fail(w, req, err)
		}
	}
}

var errorTmpl = tmpl(`
	<div class="alert alert-danger mt-3" role="alert">
		{{ .Err }}
	</div>`)

func NewRouter(db *core.CoreDB, log logr.Logger, prefix string) http.Handler {

	var router = httprouter.New()

	router.GET("/", middleware(db, log, prefix, index))
	router.GET("/about", middleware(db, log, prefix, about))
	router.GET("/article/:id", middleware(db, log, prefix, article))
	router.POST("/article/:id/comment", middleware(db, log, prefix, postComment))
	router.POST("/comment/:id/delete", middleware(db, log, prefix, deleteComment))
	router.POST("/comment/:id/edit", middleware(db, log, prefix, editComment))

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		middleware(db, log, prefix, func(http.ResponseWriter, *http.Request, *context, httprouter.Params) error {
			return core.ErrNotFound
		})(w, req, nil)
	})

	return router
}

// paramID returns core.ErrNotFound if the id parameter is not a number.
func paramID(params httprouter.Params) (int, error) {
	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		return 0, core.ErrNotFound
	}
	return id, nil
}

func tmpl(text string) *template.Template {
	t := template.Must(frontendTmpl.Clone())
	t = template.Must(t.Parse(`{{ define "content" }}` + text + `{{ end }}`))
	return t
}

var frontendTmpl = template.Must(template.New("frontend").Funcs(
	template.FuncMap{
		"Excerpt": func(content string) string {
			return util.Excerpt(content, 240)
		},
		"Markdown": util.Markdown,
	},
).Parse(`<!DOCTYPE html>
<html>
	<head>
		<base href="{{ .Prefix }}">
		<meta charset="utf-8">
		<meta name="viewport" content="width=device-width, initial-scale=1, shrink-to-fit=no">
		<link rel="stylesheet" type="text/css" href="static/bootstrap-4.4.1.min.css">
		<title>Patriam</title>
	</head>
	<body>
		<nav class="navbar navbar-expand-md navbar-dark bg-dark">
			<a class="navbar-brand" href="./">Patriam</a>
			<ul class="navbar-nav mr-auto">
				<li class="nav-item">
					<a class="nav-link" href="about">About</a>
				</li>
			</ul>
			<ul class="navbar-nav">
				{{ if .LoggedIn }}
					{{ if .CanCreateArticle }}
						<li class="nav-item">
							<a class="nav-link" href="backend/create">Write</a>
						</li>
					{{ end }}
					<li class="nav-item">
						<a class="nav-link" href="backend/">{{ .User.Name }}</a>
					</li>
					<li class="nav-item">
						<a class="nav-link" href="backend/logout">Logout</a>
					</li>
				{{ else }}
					<li class="nav-item">
						<a class="nav-link" href="backend/login">Login</a>
					</li>
				{{ end }}
			</ul>
		</nav>

		<main class="container">
			{{ .RenderNotifications }}
			{{ template "content" . }}
		</main>
	</body>
</html>`))
