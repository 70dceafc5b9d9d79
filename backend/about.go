package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/patriam/auth"
)

var aboutTmpl = tmpl(`<h1>About page</h1>

	<form method="post">
		<div class="form-group">
			<textarea class="form-control" id="content" name="content" required>{{ .Content }}</textarea>
		</div>
		<button type="submit" class="btn btn-primary">Save</button>
		<a class="btn btn-secondary" href="../about" target="_blank">View</a>
	</form>`)

type aboutData struct {
	*context
	Content string
}

func about(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if !ctx.CanEditAbout() {
		return auth.ErrForbidden
	}

	page, err := ctx.db.AboutPage()
	if err != nil {
		return err
	}

	var data = &aboutData{
		context: ctx,
		Content: page.Content,
	}

	if req.Method == http.MethodPost {
		data.Content = req.PostFormValue("content")
		_, err := ctx.db.SaveAboutPage(ctx.Principal(), data.Content)
		switch {
		case err == nil:
			ctx.Success("the about page has been saved")
			ctx.SeeOther("/about")
			return nil
		case ctx.formError(err):
			// re-render
		default:
			return err
		}
	}

	return aboutTmpl.Execute(w, data)
}
