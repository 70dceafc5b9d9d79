package auth

type grant struct {
	role     Role
	action   Action
	resource Resource
}

// registry contains the actions which a role may perform unconditionally, apart from ownership checks on existing entities.
// It is read-only after package initialization.
var registry = makeGrants(
	[]grant{
		{Admin, Create, Articles},
		{Admin, Edit, Articles},
		{Admin, Delete, Articles},
		{Admin, Publish, Articles},
		{Admin, Comment, Articles},
		{Admin, Create, Comments},
		{Admin, Edit, Comments},
		{Admin, Delete, Comments},

		{Writer, Create, Articles},
		{Writer, Edit, Articles},
		{Writer, Comment, Articles},
		{Writer, Create, Comments},
		{Writer, Edit, Comments},
		{Writer, Delete, Comments},

		{Reader, Comment, Articles},
		{Reader, Create, Comments},
		{Reader, Edit, Comments},
		{Reader, Delete, Comments},
	},
)

// ownerGrants contains actions which a role may perform only on entities it owns.
var ownerGrants = makeGrants(
	[]grant{
		{Writer, Publish, Articles},
	},
)

func makeGrants(grants []grant) map[grant]struct{} {
	var m = make(map[grant]struct{}, len(grants))
	for _, g := range grants {
		m[g] = struct{}{}
	}
	return m
}

// IsRoleAllowed returns whether the registry allows the role to perform the action on the resource.
// Unknown combinations are not allowed.
func IsRoleAllowed(role Role, action Action, resource Resource) bool {
	_, ok := registry[grant{role, action, resource}]
	return ok
}

func isOwnerAllowed(role Role, action Action, resource Resource) bool {
	_, ok := ownerGrants[grant{role, action, resource}]
	return ok
}

// AllowedActions returns the actions which the role may perform on the resource according to the registry, in ascending order.
func AllowedActions(role Role, resource Resource) []Action {
	var actions = []Action{}
	for a := Read; a <= Comment; a++ {
		if IsRoleAllowed(role, a, resource) {
			actions = append(actions, a)
		}
	}
	return actions
}
