package auth

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("ownership", func() {

	It("matches the article author", func() {
		Expect(IsOwner(writer7, testArticle{authorID: 7})).To(BeTrue())
		Expect(IsOwner(writer8, testArticle{authorID: 7})).To(BeFalse())
	})

	It("matches the comment user", func() {
		Expect(IsOwner(reader9, testComment{userID: 9})).To(BeTrue())
		Expect(IsOwner(reader5, testComment{userID: 9})).To(BeFalse())
	})

	It("is false without principal or entity", func() {
		Expect(IsOwner(nil, testComment{userID: 0})).To(BeFalse())
		Expect(IsOwner(writer7, nil)).To(BeFalse())
	})
})

var _ = Describe("permission evaluator", func() {

	var (
		draftBy7     = testArticle{authorID: 7, status: Draft}
		publishedBy7 = testArticle{authorID: 7, status: Published}
		commentBy9   = testComment{userID: 9}
	)

	It("denies anonymous principals every mutating action", func() {
		for _, action := range allActions {
			if !action.Mutating() {
				continue
			}
			for _, resource := range allResources {
				Expect(CanPerform(nil, action, resource, nil)).To(BeFalse())
				Expect(CanPerform(nil, action, resource, publishedBy7)).To(BeFalse())
				Expect(CanPerform(nil, action, resource, commentBy9)).To(BeFalse())
			}
		}
	})

	DescribeTable("reading",
		func(p *Principal, target Entity, expected bool) {
			Expect(CanPerform(p, Read, Articles, target)).To(Equal(expected))
		},
		Entry("anonymous reads published", nil, publishedBy7, true),
		Entry("anonymous can't read drafts", nil, draftBy7, false),
		Entry("author reads own draft", writer7, draftBy7, true),
		Entry("other writer can't read draft", writer8, draftBy7, false),
		Entry("reader can't read draft", reader5, draftBy7, false),
		Entry("admin reads any draft", admin, draftBy7, true),
	)

	It("requires ownership for writers editing articles", func() {
		Expect(CanPerform(writer8, Edit, Articles, draftBy7)).To(BeFalse())
		Expect(CanPerform(writer8, Edit, Articles, publishedBy7)).To(BeFalse())
		Expect(CanPerform(writer7, Edit, Articles, draftBy7)).To(BeTrue())
		Expect(CanPerform(writer7, Edit, Articles, publishedBy7)).To(BeTrue())
	})

	It("lets admins bypass ownership for every action in their row", func() {
		var targets = []Entity{nil, publishedBy7, commentBy9}
		for _, resource := range allResources {
			for _, action := range AllowedActions(Admin, resource) {
				for _, target := range targets {
					if action == Comment && target == nil {
						continue
					}
					Expect(CanPerform(admin, action, resource, target)).To(BeTrue(), "%s %s", action, resource)
				}
			}
		}
		Expect(CanPerform(admin, Edit, Articles, draftBy7)).To(BeTrue())
		Expect(CanPerform(admin, Delete, Articles, draftBy7)).To(BeTrue())
	})

	DescribeTable("end-to-end decisions",
		func(p *Principal, action Action, resource Resource, target Entity, expected bool) {
			Expect(CanPerform(p, action, resource, target)).To(Equal(expected))
		},
		Entry("reader 5 can't delete an article by author 7", reader5, Delete, Articles, publishedBy7, false),
		Entry("writer can't delete own article", writer7, Delete, Articles, publishedBy7, false),
		Entry("admin deletes a comment by reader 9", admin, Delete, Comments, commentBy9, true),
		Entry("reader 9 deletes own comment", reader9, Delete, Comments, commentBy9, true),
		Entry("reader 5 can't delete comment by 9", reader5, Delete, Comments, commentBy9, false),
		Entry("writer can't edit comment by 9", writer7, Edit, Comments, commentBy9, false),
		Entry("reader can't create articles", reader5, Create, Articles, nil, false),
		Entry("writer creates articles", writer7, Create, Articles, nil, true),
		Entry("reader comments on published article", reader5, Comment, Articles, publishedBy7, true),
		Entry("unknown role is denied", &Principal{ID: 3, Role: Role(99)}, Comment, Articles, publishedBy7, false),
		Entry("unknown action is denied", admin, Action(0), Articles, nil, false),
	)

	It("denies comments on drafts, even for the author", func() {
		Expect(CanPerform(writer7, Comment, Articles, draftBy7)).To(BeFalse())
		Expect(CanPerform(reader5, Comment, Articles, draftBy7)).To(BeFalse())
		Expect(CanPerform(admin, Comment, Articles, draftBy7)).To(BeFalse())
	})

	It("is idempotent", func() {
		for _, p := range []*Principal{nil, admin, writer7, writer8, reader5} {
			for _, action := range allActions {
				for _, target := range []Entity{nil, draftBy7, publishedBy7, commentBy9} {
					first := CanPerform(p, action, Articles, target)
					Expect(CanPerform(p, action, Articles, target)).To(Equal(first))
				}
			}
		}
	})

	It("maps denials to error kinds", func() {
		Expect(Require(nil, Edit, Articles, publishedBy7)).To(MatchError(ErrUnauthenticated))
		Expect(Require(writer8, Edit, Articles, publishedBy7)).To(MatchError(ErrForbidden))
		Expect(Require(writer7, Edit, Articles, publishedBy7)).To(Succeed())
	})
})
