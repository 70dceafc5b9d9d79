package frontend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/patriam/core"
)

func postComment(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	articleID, err := paramID(params)
	if err != nil {
		return err
	}

	var text = req.PostFormValue("text")

	c, err := ctx.db.PostComment(ctx.Principal(), articleID, text)
	switch {
	case err == nil:
		ctx.Success("your comment has been posted")
		ctx.SeeOther("/article/%d#comment-%d", articleID, c.ID)
		return nil
	case core.IsValidation(err):
		ctx.Danger(err)
		ctx.WriteHeader(http.StatusBadRequest)
		return renderArticle(w, ctx, articleID, text)
	default:
		return err
	}
}

func editComment(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return err
	}

	c, err := ctx.db.EditComment(ctx.Principal(), id, req.PostFormValue("text"))
	switch {
	case err == nil:
		ctx.Success("your comment has been saved")
		ctx.SeeOther("/article/%d#comment-%d", c.ArticleID, c.ID)
		return nil
	case core.IsValidation(err):
		// permissions have been checked before the text is validated
		comment, getErr := ctx.db.GetComment(id)
		if getErr != nil {
			return getErr
		}
		ctx.Danger(err)
		ctx.WriteHeader(http.StatusBadRequest)
		return renderArticle(w, ctx, comment.ArticleID, "")
	default:
		return err
	}
}

func deleteComment(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return err
	}

	c, err := ctx.db.RemoveComment(ctx.Principal(), id)
	if err != nil {
		return err
	}

	ctx.Success("the comment has been deleted")
	ctx.SeeOther("/article/%d", c.ArticleID)
	return nil
}
