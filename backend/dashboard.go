package backend

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/patriam/auth"
	"github.com/wansing/patriam/core"
	"github.com/wansing/patriam/util"
)

var dashboardTmpl = tmpl(`<h1>Articles</h1>

	<ul class="nav nav-pills">
		<li class="nav-item"><a class="nav-link {{ if eq .Filter "" }}active{{ end }}" href="./">{{ if .IsAdmin }}All{{ else }}Mine{{ end }}</a></li>
		<li class="nav-item"><a class="nav-link {{ if eq .Filter "draft" }}active{{ end }}" href="?status=draft">Drafts</a></li>
		<li class="nav-item"><a class="nav-link {{ if eq .Filter "published" }}active{{ end }}" href="?status=published">Published</a></li>
	</ul>

	{{ with .Articles }}
		<div class="table-responsive-sm">
			<table class="table table-sm">
				<thead>
					<tr>
						<th>Title</th>
						<th>Author</th>
						<th>Status</th>
						<th>Created</th>
						<th>Comments</th>
						<th></th>
					</tr>
				</thead>
				<tbody>
					{{ range . }}
						{{ $state := $.ReleaseState . }}
						<tr>
							<td>{{ if .Published }}<a href="../article/{{ .ID }}" target="_blank">{{ .Title }}</a>{{ else }}{{ .Title }}{{ end }}</td>
							<td>{{ .AuthorName }}</td>
							<td>{{ .Status }}</td>
							<td>{{ $.FormatDateTime .CreatedAt }}</td>
							<td>{{ .CommentCount }}</td>
							<td>
								{{ if $state.CanEdit }}<a class="btn btn-sm btn-secondary" href="edit/{{ .ID }}">Edit</a>{{ end }}
								{{ if $state.CanPublish }}
									<form style="display: inline;" action="publish/{{ .ID }}" method="post">
										<button type="submit" class="btn btn-sm btn-primary">Publish</button>
									</form>
								{{ end }}
								{{ if $state.CanDelete }}<a class="btn btn-sm btn-danger" href="delete/{{ .ID }}">Delete</a>{{ end }}
							</td>
						</tr>
					{{ end }}
				</tbody>
			</table>
		</div>
	{{ else }}
		<p>No articles.</p>
	{{ end }}

	{{ with .PageLinks }}
		<nav>
			<ul class="pagination">
				{{ range . }}{{ . }}{{ end }}
			</ul>
		</nav>
	{{ end }}`)

type dashboardData struct {
	*context
	Articles  []*core.Article
	Filter    string
	PageLinks []template.HTML
}

func dashboard(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var status auth.Status
	var filter string // canonical name of status, never the raw query value
	if raw := req.URL.Query().Get("status"); raw != "" {
		var err error
		if status, err = auth.ParseStatus(raw); err != nil {
			return &core.ValidationError{Field: "status"}
		}
		filter = status.String()
	}

	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	var articles []*core.Article
	var total int
	var err error
	var p = ctx.Principal()

	if p.IsAdmin() {
		articles, total, err = ctx.db.ListArticles(p, status, perPage, (page-1)*perPage)
	} else {
		articles, total, err = ctx.db.ListOwnArticles(p, status, perPage, (page-1)*perPage)
	}
	if err != nil {
		return err
	}

	var numPages = (total + perPage - 1) / perPage

	return dashboardTmpl.Execute(w, &dashboardData{
		context:  ctx,
		Articles: articles,
		Filter:   filter,
		PageLinks: util.PageLinks(page, numPages,
			func(page int, name string) string {
				return fmt.Sprintf(`<li class="page-item"><a class="page-link" href="%s">%s</a></li>`, pageHref(filter, page), name)
			},
			func(page int, name string) string {
				return fmt.Sprintf(`<li class="page-item active"><span class="page-link">%s</span></li>`, name)
			},
		),
	})
}

// pageHref returns the escaped query string of a dashboard page.
func pageHref(filter string, page int) string {
	var query = url.Values{}
	if filter != "" {
		query.Set("status", filter)
	}
	query.Set("page", strconv.Itoa(page))
	return template.HTMLEscapeString("?" + query.Encode())
}
