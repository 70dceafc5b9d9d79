package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/patriam/auth"
	"github.com/wansing/patriam/core"
)

var createTmpl = tmpl(`<h1>New article</h1>

	<form method="post">
		<div class="form-group">
			<label for="title">Title</label>
			<input type="text" class="form-control" id="title" name="title" value="{{ .Input.Title }}" required maxlength="255">
		</div>
		<div class="form-group">
			<label for="image_url">Image URL (optional)</label>
			<input type="url" class="form-control" id="image_url" name="image_url" value="{{ .Input.ImageURL }}" maxlength="255">
		</div>
		<div class="form-group">
			<label for="content">Content (Markdown)</label>
			<textarea class="form-control" id="content" name="content" required>{{ .Input.Content }}</textarea>
		</div>

		{{ if .CanPublishNow }}
			<div class="form-group form-check">
				<input type="checkbox" class="form-check-input" id="publish" name="publish" value="1" {{ if .PublishRequested }}checked{{ end }}>
				<label class="form-check-label" for="publish">Publish immediately</label>
			</div>
		{{ end }}

		<button type="submit" class="btn btn-primary">Save</button>
		<a class="btn btn-secondary" href="./">Cancel</a>
	</form>`)

type createData struct {
	*context
	Input core.ArticleInput
}

func (data *createData) PublishRequested() bool {
	return data.Input.Status == auth.Published
}

// CanPublishNow gates the "publish immediately" checkbox.
func (data *createData) CanPublishNow() bool {
	return auth.CanPerform(data.Principal(), auth.Publish, auth.Articles, nil)
}

func create(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if err := auth.Require(ctx.Principal(), auth.Create, auth.Articles, nil); err != nil {
		return err
	}

	var input core.ArticleInput

	if req.Method == http.MethodPost {

		input = core.ArticleInput{
			Title:    req.PostFormValue("title"),
			Content:  req.PostFormValue("content"),
			ImageURL: req.PostFormValue("image_url"),
		}
		if req.PostFormValue("publish") != "" {
			input.Status = auth.Published
		}

		a, err := ctx.db.CreateArticle(ctx.Principal(), input)
		switch {
		case err == nil:
			ctx.Success("article %s has been created", a.Title)
			ctx.SeeOther("/edit/%d", a.ID)
			return nil
		case ctx.formError(err):
			// re-render
		default:
			return err
		}
	}

	return createTmpl.Execute(w, &createData{
		context: ctx,
		Input:   input,
	})
}
