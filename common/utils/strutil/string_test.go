package strutil_test

import (
	"reflect"
	"testing"

	"github.com/mediaindex/mediaindex-bot/common/utils/strutil"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		text     string
		expected []string
	}{
		{
			text:     "Inception (2010) 1080p\n#scifi #nolan",
			expected: []string{"scifi", "nolan"},
		},
		{
			text:     "#drama, #drama and (#thriller)",
			expected: []string{"drama", "thriller"},
		},
		{
			text:     "no tags here, issue#42 is not a tag",
			expected: []string{},
		},
		{
			text:     "#アニメ #原创",
			expected: []string{"アニメ", "原创"},
		},
	}
	for _, tt := range tests {
		got := strutil.ExtractTags(tt.text)
		if len(got) == 0 && len(tt.expected) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("ExtractTags(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := strutil.Truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := strutil.Truncate("The Shawshank Redemption", 10); got != "The Sha..." {
		t.Fatalf("got %q", got)
	}
}
