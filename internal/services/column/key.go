package column

import "strings"

// DeriveKey turns a human title into the column's machine slug: lowercase,
// runs of characters outside [a-z0-9] collapse to a single underscore,
// leading and trailing underscores are trimmed.
//
//	"A Fazer"      -> "a_fazer"
//	"  Blocked!! " -> "blocked"
//	"Q&A / Triage" -> "q_a_triage"
func DeriveKey(title string) string {
	lower := strings.ToLower(title)

	var b strings.Builder
	lastUnderscore := false
	for _, r := range lower {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	return strings.Trim(b.String(), "_")
}
