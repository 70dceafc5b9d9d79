package auth

// CanPerform decides whether the principal may perform the action on the resource.
// The target is the existing entity which is acted upon, or nil (e.g. when creating).
// Every mutating operation must call it before touching storage.
func CanPerform(p *Principal, action Action, resource Resource, target Entity) bool {

	if !action.Valid() || !resource.Valid() {
		return false
	}

	if action == Read {
		return canRead(p, target)
	}

	if p == nil || !p.Role.Valid() {
		return false
	}

	if !IsRoleAllowed(p.Role, action, resource) {
		// owner-scoped grants need an owned target
		if !(isOwnerAllowed(p.Role, action, resource) && IsOwner(p, target)) {
			return false
		}
	}

	// comments require a published article, regardless of the role
	if action == Comment && resource == Articles && target != nil {
		if !isPublished(target) {
			return false
		}
	}

	if (action == Edit || action == Delete) && target != nil {
		if p.Role != Admin && !IsOwner(p, target) {
			return false
		}
	}

	return true
}

// canRead allows everyone to read published articles and comments. Drafts are readable by their owner and by admins.
func canRead(p *Principal, target Entity) bool {
	if target == nil || isPublished(target) {
		return true
	}
	return p.IsAdmin() || IsOwner(p, target)
}

// isPublished returns true for entities without a lifecycle, like comments.
func isPublished(e Entity) bool {
	if r, ok := e.(Releasable); ok {
		return r.ReleaseStatus() == Published
	}
	return true
}
