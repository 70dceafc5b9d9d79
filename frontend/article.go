package frontend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/patriam/auth"
	"github.com/wansing/patriam/core"
)

var articleTmpl = tmpl(`<article class="my-3">
		<h1>{{ .Article.Title }}</h1>
		<p class="text-muted">
			{{ .Article.AuthorName }} &middot; {{ .FormatDateTime .Article.CreatedAt }}
			{{ if not .Article.Published }}&middot; <span class="badge badge-warning">{{ .Article.Status }}</span>{{ end }}
			{{ if .State.CanEdit }}&middot; <a href="backend/edit/{{ .Article.ID }}">Edit</a>{{ end }}
		</p>
		{{ with .Article.ImageURL }}
			<img class="img-fluid mb-3" src="{{ . }}" alt="">
		{{ end }}
		{{ Markdown .Article.Content }}
	</article>

	{{ if .Article.Published }}

		<section class="my-4">
			<h2>{{ len .Comments }} comments</h2>

			{{ range .Comments }}
				<div class="card my-2" id="comment-{{ .ID }}">
					<div class="card-body">
						<p class="card-subtitle text-muted mb-2">{{ .Username }} &middot; {{ $.FormatDateTime .CreatedAt }}</p>
						<p class="card-text" style="white-space: pre-wrap;">{{ .Text }}</p>

						{{ if $.CanEditComment . }}
							<details>
								<summary>Edit</summary>
								<form method="post" action="comment/{{ .ID }}/edit">
									<div class="form-group">
										<textarea class="form-control" name="text" required>{{ .Text }}</textarea>
									</div>
									<button type="submit" class="btn btn-sm btn-primary">Save</button>
								</form>
							</details>
						{{ end }}

						{{ if $.CanDeleteComment . }}
							<form method="post" action="comment/{{ .ID }}/delete" class="mt-2">
								<button type="submit" class="btn btn-sm btn-outline-danger">Delete</button>
							</form>
						{{ end }}
					</div>
				</div>
			{{ end }}

			{{ if .State.CanComment }}
				<form method="post" action="article/{{ .Article.ID }}/comment" class="mt-3">
					<div class="form-group">
						<label for="text">Your comment</label>
						<textarea class="form-control" id="text" name="text" required>{{ .Text }}</textarea>
					</div>
					<button type="submit" class="btn btn-primary">Post comment</button>
				</form>
			{{ else if not .LoggedIn }}
				<p><a href="backend/login">Log in</a> to comment.</p>
			{{ end }}
		</section>

	{{ end }}`)

type articleData struct {
	*context
	Article  *core.Article
	Comments []*core.Comment
	State    *auth.ReleaseState
	Text     string // comment form value after a failed POST
}

func (data *articleData) CanEditComment(c *core.Comment) bool {
	return auth.CanPerform(data.Principal(), auth.Edit, auth.Comments, c)
}

func (data *articleData) CanDeleteComment(c *core.Comment) bool {
	return data.State.CanManageComment(c)
}

func article(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return err
	}

	return renderArticle(w, ctx, id, "")
}

// renderArticle executes the article template. The comment form is filled with text.
func renderArticle(w http.ResponseWriter, ctx *context, id int, text string) error {

	a, err := ctx.db.OpenArticle(ctx.Principal(), id)
	if err != nil {
		return err
	}

	comments, err := ctx.db.Comments(ctx.Principal(), id)
	if err != nil {
		return err
	}

	return articleTmpl.Execute(w, &articleData{
		context:  ctx,
		Article:  a,
		Comments: comments,
		State:    ctx.ReleaseState(a),
		Text:     text,
	})
}
