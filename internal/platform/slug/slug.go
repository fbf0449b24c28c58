package slug

import "strings"

const maxLen = 48

// Make lowercases input and collapses every run of non-alphanumeric
// characters into a single hyphen. Empty results become "practice".
func Make(input string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingDash = b.Len() > 0
			continue
		}
		if pendingDash {
			b.WriteByte('-')
			pendingDash = false
		}
		b.WriteRune(r)
		if b.Len() >= maxLen {
			break
		}
	}
	s := strings.TrimRight(b.String(), "-")
	if s == "" {
		return "practice"
	}
	return s
}
