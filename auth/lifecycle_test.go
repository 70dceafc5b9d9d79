package auth

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("article lifecycle", func() {

	var draftBy7 = testArticle{authorID: 7, status: Draft}

	DescribeTable("initial status",
		func(p *Principal, requested Status, expected Status, expectedErr error) {
			status, err := InitialStatus(p, requested)
			if expectedErr != nil {
				Expect(err).To(MatchError(expectedErr))
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(expected))
		},
		Entry("writer gets a draft by default", writer7, Status(0), Draft, nil),
		Entry("writer asks for a draft", writer7, Draft, Draft, nil),
		Entry("writer can't start published", writer7, Published, Status(0), ErrInvalidState),
		Entry("admin starts published", admin, Published, Published, nil),
		Entry("admin starts as draft", admin, Draft, Draft, nil),
		Entry("reader can't create", reader5, Draft, Status(0), ErrForbidden),
		Entry("anonymous can't create", nil, Draft, Status(0), ErrUnauthenticated),
	)

	It("lets the owning writer publish a draft", func() {
		Expect(CanPerform(writer7, Publish, Articles, draftBy7)).To(BeTrue())
		Expect(Transition(writer7, draftBy7, Published)).To(Succeed())
	})

	It("denies other writers publishing a draft", func() {
		Expect(CanPerform(writer8, Publish, Articles, draftBy7)).To(BeFalse())
		Expect(Transition(writer8, draftBy7, Published)).To(MatchError(ErrForbidden))
	})

	It("lets any admin publish a draft", func() {
		Expect(Transition(admin, draftBy7, Published)).To(Succeed())
		Expect(Transition(&Principal{ID: 2, Role: Admin}, draftBy7, Published)).To(Succeed())
	})

	It("never lets readers publish", func() {
		Expect(Transition(reader5, draftBy7, Published)).To(MatchError(ErrForbidden))
		Expect(Transition(&Principal{ID: 7, Role: Reader}, draftBy7, Published)).To(MatchError(ErrForbidden))
	})

	It("does not go back from published to draft", func() {
		var published = testArticle{authorID: 7, status: Published}
		Expect(Transition(admin, published, Draft)).To(MatchError(ErrInvalidState))
		Expect(Transition(writer7, published, Draft)).To(MatchError(ErrInvalidState))
	})

	It("treats keeping the status as an edit", func() {
		Expect(Transition(writer7, draftBy7, Draft)).To(Succeed())
		Expect(Transition(writer8, draftBy7, Draft)).To(MatchError(ErrForbidden))
	})

	It("rejects unknown statuses", func() {
		Expect(Transition(admin, draftBy7, Status(9))).To(MatchError(ErrInvalidState))
		_, err := ParseStatus("archived")
		Expect(err).To(HaveOccurred())
	})

	Describe("release state", func() {

		It("gates the editor for the author", func() {
			rs := GetReleaseState(writer7, draftBy7)
			Expect(rs.CanRead()).To(BeTrue())
			Expect(rs.CanEdit()).To(BeTrue())
			Expect(rs.CanPublish()).To(BeTrue())
			Expect(rs.CanDelete()).To(BeFalse())
			Expect(rs.CanComment()).To(BeFalse())
		})

		It("offers nothing to other writers on a draft", func() {
			rs := GetReleaseState(writer8, draftBy7)
			Expect(rs.CanRead()).To(BeFalse())
			Expect(rs.CanEdit()).To(BeFalse())
			Expect(rs.CanPublish()).To(BeFalse())
		})

		It("offers commenting on published articles", func() {
			rs := GetReleaseState(reader5, testArticle{authorID: 7, status: Published})
			Expect(rs.CanComment()).To(BeTrue())
			Expect(rs.CanPublish()).To(BeFalse())
			Expect(rs.CanManageComment(testComment{userID: 5})).To(BeTrue())
			Expect(rs.CanManageComment(testComment{userID: 9})).To(BeFalse())
		})
	})
})
