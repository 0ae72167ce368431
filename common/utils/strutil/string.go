package strutil

import (
	"regexp"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
)

var tagRe = regexp.MustCompile(`(?:^|[\p{Zs}\s.,!?(){}[\]<>"'])#([\p{L}\d_]+)`)

// ExtractTags returns the distinct #hashtags in text, in order of appearance.
func ExtractTags(text string) []string {
	tags := make([]string, 0)
	for _, m := range tagRe.FindAllStringSubmatch(text, -1) {
		tags = append(tags, m[1])
	}
	return slice.Unique(tags)
}

// Truncate cuts s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return strings.TrimSpace(string(r[:n-3])) + "..."
}
