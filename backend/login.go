package backend

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/patriam/core"
)

var ErrLogin = errors.New("wrong username or password")

var loginTmpl = tmpl(`<h1>Login</h1>
	<form method="post" style="max-width: 20rem; margin: auto;">
		<div class="form-group">
			<label>Username</label>
			<input type="text" class="form-control" name="name" value="{{ .Name }}" required autofocus>
		</div>
		<div class="form-group">
			<label>Password</label>
			<input type="password" class="form-control" name="password" required>
		</div>
		<div class="form-group">
			<button type="submit" class="btn btn-primary" name="login">Login</button>
		</div>
	</form>`)

type loginData struct {
	*context
	Name string
}

func login(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if ctx.LoggedIn() {
		ctx.SeeOther("/")
		return nil
	}

	var name string

	if req.Method == http.MethodPost {

		name = req.PostFormValue("name")
		password := req.PostFormValue("password")

		err := ctx.Login(name, password)
		switch {
		case err == nil:
			ctx.SeeOther("/")
			return nil
		case errors.Is(err, core.ErrNotFound):
			ctx.log.V(1).Info("login failed", "name", name)
			ctx.Danger(ErrLogin)
			ctx.WriteHeader(http.StatusUnauthorized)
			// keep POST data for name field
		default:
			return err
		}
	}

	return loginTmpl.Execute(w, &loginData{
		context: ctx,
		Name:    name,
	})
}
