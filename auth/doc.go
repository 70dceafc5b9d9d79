/*
Package auth is for authorization. It contains the role registry, the ownership predicate, the permission evaluator and the article lifecycle.
Nothing in here does I/O: entities must be loaded by the caller, and the principal is supplied by the session layer.

Roles

There are three roles: Admin, Writer and Reader. Each role may perform a fixed set of actions on a resource (articles or comments).
The set is a static table, see IsRoleAllowed. Role names are parsed once (case-insensitive) and compared as Role values afterwards.

Ownership

Articles are owned by their author, comments by the user who wrote them.
Editing and deleting an existing entity requires ownership, unless the principal is an Admin.
A Writer may additionally publish articles it owns.

Lifecycle

An article is either a draft or published. Drafts are visible to their author and to admins only.
Writers create drafts, admins may publish right away. A draft is published by its owning writer or by an admin.
There is no way back from published to draft.

  Example: writer 7 creates a draft, writer 8 can neither see nor publish it, writer 7 publishes it, now everybody can read and comment it.
*/
package auth
