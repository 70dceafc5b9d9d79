package auth

import (
	"fmt"
	"strings"
)

type Status int

const (
	Draft     Status = 1
	Published Status = 2
)

func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "draft":
		return Draft, nil
	case "published":
		return Published, nil
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

func (s Status) String() string {
	switch s {
	case Draft:
		return "draft"
	case Published:
		return "published"
	}
	return "unknown"
}

func (s Status) Valid() bool {
	return s == Draft || s == Published
}

// transitions lists the permitted status changes. Published is final.
var transitions = map[Status][]Status{
	Draft: {Published},
}

func validTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// InitialStatus returns the status of an article which the principal creates.
// Writers always create drafts. Admins may create published articles right away.
func InitialStatus(p *Principal, requested Status) (Status, error) {
	if err := Require(p, Create, Articles, nil); err != nil {
		return 0, err
	}
	switch requested {
	case 0, Draft:
		return Draft, nil
	case Published:
		if !CanPerform(p, Publish, Articles, nil) {
			return 0, ErrInvalidState
		}
		return Published, nil
	default:
		return 0, ErrInvalidState
	}
}

// Transition checks whether the principal may change the status of the article to the given status.
// Requesting the current status is allowed for everyone who may edit the article.
func Transition(p *Principal, article Releasable, to Status) error {

	var from = article.ReleaseStatus()

	if from == to {
		return Require(p, Edit, Articles, article)
	}

	if !to.Valid() || !validTransition(from, to) {
		return ErrInvalidState
	}

	return Require(p, Publish, Articles, article)
}

// A ReleaseState describes what a principal can do with an article. It is meant for gating the UI.
type ReleaseState struct {
	principal *Principal
	article   Releasable
}

func GetReleaseState(p *Principal, article Releasable) *ReleaseState {
	return &ReleaseState{
		principal: p,
		article:   article,
	}
}

func (rs *ReleaseState) CanRead() bool {
	return CanPerform(rs.principal, Read, Articles, rs.article)
}

func (rs *ReleaseState) CanEdit() bool {
	return CanPerform(rs.principal, Edit, Articles, rs.article)
}

func (rs *ReleaseState) CanDelete() bool {
	return CanPerform(rs.principal, Delete, Articles, rs.article)
}

func (rs *ReleaseState) CanComment() bool {
	return CanPerform(rs.principal, Comment, Articles, rs.article) && CanPerform(rs.principal, Create, Comments, nil)
}

// CanPublish returns whether the principal can release the article to the public now.
func (rs *ReleaseState) CanPublish() bool {
	return rs.article.ReleaseStatus() != Published && Transition(rs.principal, rs.article, Published) == nil
}

// CanManageComment returns whether the principal can edit and delete the given comment.
func (rs *ReleaseState) CanManageComment(c Entity) bool {
	return CanPerform(rs.principal, Delete, Comments, c)
}

func (rs *ReleaseState) Status() Status {
	return rs.article.ReleaseStatus()
}
