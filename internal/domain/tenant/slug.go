package tenant

import "strings"

// Slugify derives the URL-safe slug for a store name. The function is
// deterministic and idempotent: the same name always yields the same slug,
// and slugifying a slug returns it unchanged.
//
// Rules: lowercase, trim, strip everything that is not a letter, digit,
// space, underscore or hyphen, collapse runs of spaces/underscores/hyphens
// into a single hyphen, trim leading and trailing hyphens.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '_' || r == '-':
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	return strings.Join(fields, "-")
}
