package auth

// A Principal is the authenticated actor of a request. A nil *Principal is anonymous.
type Principal struct {
	ID   int
	Role Role
}

// IsAdmin is nil-safe.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == Admin
}

// Entity is an article or a comment which has already been loaded.
type Entity interface {
	OwnerID() int // article author or comment user
}

// Releasable is an entity with a lifecycle status, i.e. an article.
type Releasable interface {
	Entity
	ReleaseStatus() Status
}

// IsOwner returns whether the principal owns the entity.
func IsOwner(p *Principal, e Entity) bool {
	if p == nil || e == nil {
		return false
	}
	return e.OwnerID() == p.ID
}
