package frontend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/patriam/core"
)

var aboutTmpl = tmpl(`<h1 class="mt-3">{{ .Page.Title }}</h1>
	{{ Markdown .Page.Content }}
	{{ if .IsAdmin }}
		<p><a class="btn btn-sm btn-secondary" href="backend/about">Edit</a></p>
	{{ end }}`)

type aboutData struct {
	*context
	Page *core.Page
}

func about(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {
	page, err := ctx.db.AboutPage()
	if err != nil {
		return err
	}
	return aboutTmpl.Execute(w, &aboutData{
		context: ctx,
		Page:    page,
	})
}
