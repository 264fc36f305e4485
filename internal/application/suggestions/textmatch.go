package suggestions

import "strings"

// helpers kecil untuk pencocokan teks; semua case-insensitive

// lowerAll returns a lower-cased, whitespace-trimmed copy with empties dropped.
func lowerAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// intersect returns elements of a that also appear in b, preserving a's order.
func intersect(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[s] = struct{}{}
	}
	var out []string
	for _, s := range a {
		if _, ok := set[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// containsAny cek apakah teks (lower-cased) memuat salah satu substring
func containsAny(text string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// hasWord cek kemunculan satu kata utuh, bukan substring; "no" tidak boleh
// match di dalam "know".
func hasWord(text, word string) bool {
	for _, t := range tokenize(text) {
		if t == word {
			return true
		}
	}
	return false
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
}
