package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/patriam/auth"
	"github.com/wansing/patriam/core"
)

var deleteTmpl = tmpl(`<h1>Delete &raquo;{{ .Selected.Title }}&laquo;</h1>

	<p>
		The article and its {{ .Selected.CommentCount }} comments will be deleted permanently.
	</p>

	<p>
		<a class="btn btn-secondary" href="edit/{{ .Selected.ID }}">Cancel</a>
	</p>

	<form method="post">
		<input type="submit" class="btn btn-danger" name="delete" value="Delete">
	</form>`)

type deleteData struct {
	*context
	Selected *core.Article
}

func del(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return err
	}

	selected, err := ctx.db.OpenArticle(ctx.Principal(), id)
	if err != nil {
		return err
	}

	if !ctx.ReleaseState(selected).CanDelete() {
		return auth.ErrForbidden
	}

	if req.Method == http.MethodPost && req.PostFormValue("delete") != "" {
		if err := ctx.db.DeleteArticle(ctx.Principal(), id); err != nil {
			return err
		}
		ctx.Success("article %s has been deleted", selected.Title)
		ctx.SeeOther("/")
		return nil
	}

	return deleteTmpl.Execute(w, &deleteData{
		context:  ctx,
		Selected: selected,
	})
}
