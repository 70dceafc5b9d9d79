package auth

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("registry", func() {

	DescribeTable("allowed actions",
		func(role Role, resource Resource, expected []Action) {
			Expect(AllowedActions(role, resource)).To(Equal(expected))
		},
		Entry("admin on articles", Admin, Articles, []Action{Create, Edit, Delete, Publish, Comment}),
		Entry("admin on comments", Admin, Comments, []Action{Create, Edit, Delete}),
		Entry("writer on articles", Writer, Articles, []Action{Create, Edit, Comment}),
		Entry("writer on comments", Writer, Comments, []Action{Create, Edit, Delete}),
		Entry("reader on articles", Reader, Articles, []Action{Comment}),
		Entry("reader on comments", Reader, Comments, []Action{Create, Edit, Delete}),
	)

	It("denies every pair outside of a role's row", func() {
		for _, role := range Roles {
			for _, resource := range allResources {
				var row = map[Action]bool{}
				for _, a := range AllowedActions(role, resource) {
					row[a] = true
				}
				for _, action := range allActions {
					if !row[action] {
						Expect(IsRoleAllowed(role, action, resource)).To(BeFalse(), "%s %s %s", role, action, resource)
					}
				}
			}
		}
	})

	DescribeTable("fails closed on unknown values",
		func(role Role, action Action, resource Resource) {
			Expect(IsRoleAllowed(role, action, resource)).To(BeFalse())
		},
		Entry("unknown role", Role(0), Create, Articles),
		Entry("unknown action", Admin, Action(42), Articles),
		Entry("unknown resource", Admin, Create, Resource(42)),
		Entry("read is not in the registry", Admin, Read, Articles),
	)

	It("does not list owner-scoped publishing in the writer row", func() {
		Expect(IsRoleAllowed(Writer, Publish, Articles)).To(BeFalse())
	})
})

var _ = Describe("role parsing", func() {

	DescribeTable("normalizes casing",
		func(input string, expected Role) {
			role, err := ParseRole(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(role).To(Equal(expected))
		},
		Entry("lower admin", "admin", Admin),
		Entry("upper admin", "ADMIN", Admin),
		Entry("upper writer", "WRITER", Writer),
		Entry("mixed reader with spaces", " Reader ", Reader),
	)

	It("rejects unknown roles", func() {
		_, err := ParseRole("editor")
		Expect(err).To(HaveOccurred())
	})

	It("round-trips every role through its name", func() {
		for _, role := range Roles {
			parsed, err := ParseRole(role.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(role))
		}
	})
})
