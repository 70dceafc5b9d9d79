package frontend

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/patriam/core"
	"github.com/wansing/patriam/util"
)

var indexTmpl = tmpl(`
	{{ range .Articles }}
		<article class="card my-3">
			{{ with .ImageURL }}
				<img class="card-img-top" src="{{ . }}" alt="">
			{{ end }}
			<div class="card-body">
				<h2 class="card-title"><a href="article/{{ .ID }}">{{ .Title }}</a></h2>
				<p class="card-subtitle text-muted mb-2">{{ .AuthorName }} &middot; {{ $.FormatDate .CreatedAt }} &middot; {{ .CommentCount }} comments</p>
				<p class="card-text">{{ Excerpt .Content }}</p>
				<a href="article/{{ .ID }}">Read more</a>
			</div>
		</article>
	{{ else }}
		<p class="mt-3">Nothing has been published yet.</p>
	{{ end }}

	{{ with .PageLinks }}
		<nav>
			<ul class="pagination">
				{{ range . }}{{ . }}{{ end }}
			</ul>
		</nav>
	{{ end }}`)

type indexData struct {
	*context
	Articles  []*core.Article
	PageLinks []template.HTML
}

func index(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	// the public index shows published articles only, admins included
	articles, total, err := ctx.db.ListArticles(nil, 0, perPage, (page-1)*perPage)
	if err != nil {
		return err
	}

	var numPages = (total + perPage - 1) / perPage
	if page > 1 && page > numPages {
		return core.ErrNotFound
	}

	return indexTmpl.Execute(w, &indexData{
		context:  ctx,
		Articles: articles,
		PageLinks: util.PageLinks(page, numPages,
			func(page int, name string) string {
				return fmt.Sprintf(`<li class="page-item"><a class="page-link" href="?page=%d">%s</a></li>`, page, name)
			},
			func(page int, name string) string {
				return fmt.Sprintf(`<li class="page-item active"><span class="page-link">%s</span></li>`, name)
			},
		),
	})
}
