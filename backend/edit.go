package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/patriam/auth"
	"github.com/wansing/patriam/core"
)

var editTmpl = tmpl(`<h1>Edit article</h1>

	<div class="mb-3">
		ID: {{ .Selected.ID }}
		&middot; Author: {{ .Selected.AuthorName }}
		&middot; Created: {{ .FormatDateTime .Selected.CreatedAt }}
		&middot; Status: <strong>{{ .Selected.Status }}</strong>
		{{ if .Selected.Published }}
			&middot; <a href="../article/{{ .Selected.ID }}" target="_blank">View</a>
			&middot; {{ .Selected.CommentCount }} comments
		{{ end }}

		{{ if .State.CanPublish }}
			&middot;
			<form style="display: inline;" action="publish/{{ .Selected.ID }}" method="post">
				<button type="submit" class="btn btn-sm btn-secondary" id="publish_button">Publish</button>
			</form>
		{{ end }}

		{{ if .State.CanDelete }}
			&middot; <a class="btn btn-sm btn-danger" href="delete/{{ .Selected.ID }}">Delete</a>
		{{ end }}
	</div>

	<form method="post">
		<div class="form-group">
			<label for="title">Title</label>
			<input type="text" class="form-control" id="title" name="title" value="{{ .Title }}" required maxlength="255">
		</div>
		<div class="form-group">
			<label for="image_url">Image URL (optional)</label>
			<input type="url" class="form-control" id="image_url" name="image_url" value="{{ .ImageURL }}" maxlength="255">
		</div>
		<div class="form-group">
			<label for="content">Content (Markdown)</label>
			<textarea class="form-control" id="content" name="content" required>{{ .Content }}</textarea>
		</div>
		<button type="submit" class="btn btn-primary">Save</button>
	</form>

	<h2 class="mt-4">Preview</h2>
	<div class="border rounded p-3">
		{{ Markdown .Selected.Content }}
	</div>`)

type editData struct {
	*context
	Selected *core.Article
	State    *auth.ReleaseState

	// form values, might differ from Selected after a failed POST
	Title    string
	Content  string
	ImageURL string
}

func edit(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return err
	}

	selected, err := ctx.db.OpenArticle(ctx.Principal(), id)
	if err != nil {
		return err
	}

	var state = ctx.ReleaseState(selected)
	if !state.CanEdit() {
		return auth.ErrForbidden
	}

	var data = &editData{
		context:  ctx,
		Selected: selected,
		State:    state,
		Title:    selected.Title,
		Content:  selected.Content,
		ImageURL: selected.ImageURL,
	}

	if req.Method == http.MethodPost {

		data.Title = req.PostFormValue("title")
		data.Content = req.PostFormValue("content")
		data.ImageURL = req.PostFormValue("image_url")

		edited, err := ctx.db.EditArticle(ctx.Principal(), id, core.ArticleEdit{
			Title:    &data.Title,
			Content:  &data.Content,
			ImageURL: &data.ImageURL,
		})
		switch {
		case err == nil:
			ctx.Success("article %s has been saved", edited.Title)
			ctx.SeeOther("/edit/%d", id)
			return nil
		case ctx.formError(err):
			// re-render
		default:
			return err
		}
	}

	return editTmpl.Execute(w, data)
}
