package tabular

import "strings"

// NormalizeCode derives a canonical code from a display name: lower-cased
// with every run of non-alphanumeric characters collapsed to a single
// underscore. "First Class" and "first-class" both become "first_class",
// which keeps duplicate detection independent of display formatting.
func NormalizeCode(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
