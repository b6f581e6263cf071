package standings

import (
	"strings"

	"github.com/gosimple/slug"
)

// MakeSlug normalizes a display name into a URL and filename safe
// token.
func MakeSlug(name string) string {
	return slug.Make(strings.TrimSpace(name))
}
