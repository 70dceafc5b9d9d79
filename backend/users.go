package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/patriam/auth"
	"github.com/wansing/patriam/core"
)

var usersTmpl = tmpl(`<h1>Users</h1>

	<div class="table-responsive-sm">
		<table class="table table-sm">
			<thead>
				<tr>
					<th>Name</th>
					<th>Email</th>
					<th>Role</th>
				</tr>
			</thead>
			<tbody>
				{{ range .Users }}
					<tr>
						<td><a href="user/{{ .ID }}">{{ .Name }}</a></td>
						<td>{{ .Email }}</td>
						<td>{{ .Role }}</td>
					</tr>
				{{ end }}
			</tbody>
		</table>
	</div>

	<h2>Create User</h2>

	<form method="post">
		<div class="form-row">
			<div class="col-md-3">
				<input type="text" class="form-control" name="name" placeholder="Username" value="{{ .Name }}" required>
			</div>
			<div class="col-md-3">
				<input type="email" class="form-control" name="email" placeholder="Email address (optional)" value="{{ .Email }}">
			</div>
			<div class="col-md-2">
				<input type="password" class="form-control" name="password" placeholder="Password" required>
			</div>
			<div class="col-md-2">
				<select class="form-control" name="role">
					{{ range .Roles }}
						<option value="{{ . }}" {{ if eq . $.Role }}selected{{ end }}>{{ . }}</option>
					{{ end }}
				</select>
			</div>
			<div class="col-md-2">
				<button type="submit" class="btn btn-primary form-control">Create user</button>
			</div>
		</div>
	</form>`)

type usersData struct {
	*context
	Users []*core.User

	// form values
	Name  string
	Email string
	Role  auth.Role
}

func (data *usersData) Roles() []auth.Role {
	return auth.Roles
}

func users(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var data = &usersData{
		context: ctx,
		Role:    auth.Reader,
	}

	if req.Method == http.MethodPost {

		data.Name = req.PostFormValue("name")
		data.Email = req.PostFormValue("email")

		role, err := auth.ParseRole(req.PostFormValue("role"))
		if err != nil {
			return &core.ValidationError{Field: "role"}
		}
		data.Role = role

		u, err := ctx.db.RegisterUser(ctx.Principal(), data.Name, data.Email, req.PostFormValue("password"), role)
		switch {
		case err == nil:
			ctx.Success("user %s has been created", u.Name)
			ctx.SeeOther("/users")
			return nil
		case ctx.formError(err):
			// re-render
		default:
			return err
		}
	}

	all, err := ctx.db.Users(ctx.Principal(), 100000, 0) // assuming there are not more than 100k users
	if err != nil {
		return err
	}
	data.Users = all

	return usersTmpl.Execute(w, data)
}
