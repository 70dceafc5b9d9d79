package backend

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

const perPage = 20

// we need the CoreDB in the backend
type context struct {
	*core.Request
	Prefix string // with trailing slash
	db     *core.CoreDB
	log    logr.Logger
}

func (ctx *context) CanEditAbout() bool {
	return ctx.IsAdmin()
}

// fail writes the status code of err. Unauthenticated users are sent to the login form.
func (ctx *context) fail(w http.ResponseWriter, req *http.Request, err error) {

	if errors.Is(err, auth.ErrUnauthenticated) {
		ctx.SeeOther("/login")
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

// formError returns true if err is caused by user input. Then it adds a danger notification
// and writes the status code, so the caller can re-render the form.
func (ctx *context) formError(err error) bool {
	switch status := core.StatusCode(err); status {
	case http.StatusBadRequest, http.StatusConflict:
		ctx.Danger(err)
		ctx.WriteHeader(status)
		return true
	default:
		return false
	}
}

func middleware(db *core.CoreDB, log logr.Logger, prefix string, requireLoggedIn bool, f func(http.ResponseWriter, *http.Request, *context, httprouter.Params) error) func(http.ResponseWriter, *http.Request, httprouter.Params) {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		var ctx = &context{
			Prefix:  prefix + "/backend/",
			Request: db.NewRequest(w, req),
			db:      db,
			log:     log,
		}
		defer ctx.Cleanup()

		if requireLoggedIn && !ctx.LoggedIn() {
			ctx.SeeOther("/login")
			return
		}

		if err := f(w, req, ctx, params); err != nil {
			// probably no template has been executed, so execute error template
			ctx.fail(w, req, err)
		}
	}
}

var errorTmpl = tmpl(`
	<div class="alert alert-danger" role="alert">
		{{ .Err }}
	</div>`)

func NewBackendRouter(db *core.CoreDB, log logr.Logger, prefix string) http.Handler {

	var router = httprouter.New()

	var GETAndPOST = func(path string, handle httprouter.Handle) {
		router.GET(path, handle)
		router.POST(path, handle)
	}

	// public
	GETAndPOST("/login", middleware(db, log, prefix, false, login))

	// private
	router.GET("/", middleware(db, log, prefix, true, dashboard))
	GETAndPOST("/about", middleware(db, log, prefix, true, about))
	GETAndPOST("/create", middleware(db, log, prefix, true, create))
	GETAndPOST("/delete/:id", middleware(db, log, prefix, true, del))
	GETAndPOST("/edit/:id", middleware(db, log, prefix, true, edit))
	router.GET("/logout", middleware(db, log, prefix, true, logout))
	router.POST("/publish/:id", middleware(db, log, prefix, true, publish))
	GETAndPOST("/users", middleware(db, log, prefix, true, users))
	GETAndPOST("/user/:id", middleware(db, log, prefix, true, user))

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
	t := template.Must(backendTmpl.Clone())
	t = template.Must(t.Parse(`{{ define "content" }}` + text + `{{ end }}`))
	return t
}

var backendTmpl = template.Must(template.New("backend").Funcs(
	template.FuncMap{
		"Markdown": util.Markdown,
	},
).Parse(`
<!DOCTYPE html>
<html>
	<head>
		<base href="{{ .Prefix }}">
		<link rel="stylesheet" type="text/css" href="../static/bootstrap-4.4.1.min.css">
		<meta charset="utf-8">
		<title>Patriam Backend</title>

		<style>

			/* bootstrap enhancements */

			.bg-light, .table-light, .table-light > td, .table-light > th {
				background-color: #f4f5f6 !important;
			}

			.col-form-label {
				text-align: right;
			}

			/* html tags */

			body {
				padding-bottom: 1rem;
			}

			h1 {
				font-size: 1.5rem !important;
				margin: 1rem 0 0.7rem !important;
			}

			h2 {
				font-size: 1.3rem !important;
				margin: 0.2rem 0 0.5rem !important;
			}

			table {
				margin-top: 0.5rem;
				border-bottom: 1px solid #dee2e6;
			}

			textarea {
				tab-size: 4;
				-moz-tab-size: 4;
			}

		</style>
	</head>
	<body>

		{{ if .LoggedIn }}

			<nav class="navbar navbar-expand-md bg-light">
				<ul class="navbar-nav">
					<li class="nav-item">
						<a class="nav-link" href="../" target="_blank">View site</a>
					</li>
					<li class="nav-item">
						<a class="nav-link" href="./">Articles</a>
					</li>
					{{ if .CanCreateArticle }}
						<li class="nav-item">
							<a class="nav-link" href="create">New article</a>
						</li>
					{{ end }}
					<li class="nav-item">
						<a class="nav-link" href="user/{{ .User.ID }}">{{ .User.Name }}</a>
					</li>

					{{ if .IsAdmin }}
						<li class="nav-item">
							<a class="nav-link" href="users">Users</a>
						</li>
					{{ end }}

					{{ if .CanEditAbout }}
						<li class="nav-item">
							<a class="nav-link" href="about">About page</a>
						</li>
					{{ end }}

					<li class="nav-item">
						<a class="nav-link" href="logout">Logout</a>
					</li>
				</ul>
			</nav>

		{{ end }}

		<div class="container pt-3">
			{{ .RenderNotifications }}
			{{ template "content" . }}
		</div>

		{{ if .LoggedIn }}

			<script>

				var textareas = document.getElementsByTagName('textarea');

				for(var i = 0; i < textareas.length; i++) {
					textareas[i].setAttribute('style', 'height:' + Math.max(textareas[i].scrollHeight, 200) + 'px;overflow-y:hidden;');
					textareas[i].addEventListener("input", onTextareaInput, false);
				}

				function onTextareaInput() {

					var scrollLeft = window.pageXOffset || (document.documentElement || document.body.parentNode || document.body).scrollLeft;
					var scrollTop  = window.pageYOffset || (document.documentElement || document.body.parentNode || document.body).scrollTop;

					this.style.height = 'auto';
					this.style.height = (this.scrollHeight) + 'px';

					window.scrollTo(scrollLeft, scrollTop);
				}

			</script>

		{{ end }}
	</body>
</html>`))
