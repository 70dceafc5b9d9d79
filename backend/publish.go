package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func publish(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return err
	}

	published, err := ctx.db.PublishArticle(ctx.Principal(), id)
	if err != nil {
		return err
	}

	ctx.Success("article %s has been published", published.Title)
	ctx.SeeOther("/edit/%d", id)
	return nil
}
