package backend

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/patriam/auth"
	"github.com/wansing/patriam/core"
)

var ErrPasswordMismatch = errors.New("new passwords don't match")

var userTmpl = tmpl(`<h1>User &raquo;{{ .Selected.Name }}&laquo;</h1>

	<p>
		Role: <strong>{{ .Selected.Role }}</strong>
		{{ with .Selected.Email }}&middot; Email: {{ . }}{{ end }}
	</p>

	<h2>Change Password</h2>

	<form method="post">

		<input type="hidden" name="action" value="password">

		{{ if not .IsAdmin }}
			<div class="form-group row">
				<label class="col-sm-6 col-form-label">Current password</label>
				<div class="col-sm-6">
					<input type="password" class="form-control" name="old">
				</div>
			</div>
		{{ end }}

		<div class="form-group row">
			<label class="col-sm-6 col-form-label">New password</label>
			<div class="col-sm-6">
				<input type="password" class="form-control" name="new1">
			</div>
		</div>

		<div class="form-group row">
			<label class="col-sm-6 col-form-label">Repeat new password</label>
			<div class="col-sm-6">
				<input type="password" class="form-control" name="new2">
			</div>
		</div>

		<button type="submit" class="btn btn-primary">Change password</button>

	</form>

	{{ if .CanManage }}

		<h2 class="mt-4">Role</h2>

		<form method="post" class="form-inline">
			<input type="hidden" name="action" value="role">
			<select class="form-control mr-sm-3" name="role">
				{{ range .Roles }}
					<option value="{{ . }}" {{ if eq . $.Selected.Role }}selected{{ end }}>{{ . }}</option>
				{{ end }}
			</select>
			<button type="submit" class="btn btn-primary">Change role</button>
		</form>

		<h2 class="mt-4">Delete</h2>

		<p>The articles and comments of the user will be deleted as well.</p>

		<form method="post">
			<input type="hidden" name="action" value="delete">
			<button type="submit" class="btn btn-danger">Delete user</button>
		</form>

	{{ end }}`)

type userData struct {
	*context
	Selected *core.User
}

// CanManage returns true if the role of the selected user can be changed and the user can be deleted.
func (data *userData) CanManage() bool {
	return data.IsAdmin() && data.Selected.ID != data.User.ID
}

func (data *userData) Roles() []auth.Role {
	return auth.Roles
}

func user(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return err
	}

	selected, err := ctx.db.OpenUser(ctx.Principal(), id)
	if err != nil {
		return err
	}

	if req.Method == http.MethodPost {

		err := changeUser(req, ctx, selected)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrPasswordMismatch):
			ctx.Danger(err)
			ctx.WriteHeader(http.StatusBadRequest)
		case ctx.formError(err):
			// re-render
		default:
			return err
		}
	}

	return userTmpl.Execute(w, &userData{
		context:  ctx,
		Selected: selected,
	})
}

// changeUser performs the form action and redirects on success.
func changeUser(req *http.Request, ctx *context, selected *core.User) error {

	switch req.PostFormValue("action") {

	case "password":

		var new1 = req.PostFormValue("new1")
		var new2 = req.PostFormValue("new2")

		if new1 != new2 {
			return ErrPasswordMismatch
		}

		if err := ctx.db.ChangePassword(ctx.Principal(), selected.ID, req.PostFormValue("old"), new1); err != nil {
			return err
		}

		ctx.Success("password of %s has been changed", selected.Name)
		ctx.SeeOther("/user/%d", selected.ID)

	case "role":

		role, err := auth.ParseRole(req.PostFormValue("role"))
		if err != nil {
			return &core.ValidationError{Field: "role"}
		}

		if err := ctx.db.SetUserRole(ctx.Principal(), selected.ID, role); err != nil {
			return err
		}

		ctx.Success("%s is now %s", selected.Name, role)
		ctx.SeeOther("/user/%d", selected.ID)

	case "delete":

		if err := ctx.db.DeleteUser(ctx.Principal(), selected.ID); err != nil {
			return err
		}

		ctx.Success("user %s has been deleted", selected.Name)
		ctx.SeeOther("/users")

	default:
		return &core.ValidationError{Field: "action"}
	}

	return nil
}
