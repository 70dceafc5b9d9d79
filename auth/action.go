package auth

// Action is an operation category.
type Action int

const (
	Read    Action = 1 // non-mutating, not part of the registry
	Create  Action = 2
	Edit    Action = 3
	Delete  Action = 4
	Publish Action = 5
	Comment Action = 6
)

func (a Action) String() string {
	switch a {
	case Read:
		return "read"
	case Create:
		return "create"
	case Edit:
		return "edit"
	case Delete:
		return "delete"
	case Publish:
		return "publish"
	case Comment:
		return "comment"
	}
	return "unknown"
}

func (a Action) Valid() bool {
	return a >= Read && a <= Comment
}

// Mutating returns whether the action changes stored data.
func (a Action) Mutating() bool {
	return a.Valid() && a != Read
}

// Resource is the type of entity an action is performed on.
type Resource int

const (
	Articles Resource = 1
	Comments Resource = 2
)

func (r Resource) String() string {
	switch r {
	case Articles:
		return "article"
	case Comments:
		return "comment"
	}
	return "unknown"
}

func (r Resource) Valid() bool {
	return r == Articles || r == Comments
}
