package util

import (
	"github.com/microcosm-cc/bluemonday"
)

// policy is an allowlist of the elements and attributes which user generated content needs.
// Everything else is dropped, for example script, style, svg, meta and form elements, event handler attributes
// and URLs whose scheme is not http, https or mailto. Links get rel="nofollow".
// A Policy is safe for concurrent use once it is built.
var policy = bluemonday.UGCPolicy()

// Sanitize removes everything from an HTML fragment which is not on the allowlist.
func Sanitize(fragment string) string {
	return policy.Sanitize(fragment)
}
