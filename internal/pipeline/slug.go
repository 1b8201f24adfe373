package pipeline

import "strings"

// Slugify derives the artifact identifier from a human-readable script name:
// lowercase, with runs of anything non-alphanumeric collapsed into single
// hyphens. The mapping is total; an input with no usable characters maps to
// "script".
func Slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(name) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			if b.Len() > 0 {
				pendingHyphen = true
			}
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	if b.Len() == 0 {
		return "script"
	}
	return b.String()
}

// DefaultSlug is the slug a module gets when its script does not override the
// scaffolded display name.
func DefaultSlug(module string) string {
	return Slugify(humanize(module))
}
