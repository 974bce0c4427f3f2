package entity

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// BlogPost is a published article. Author is the creator's name and never changes.
type BlogPost struct {
	ID       int64
	Title    string
	Author   string
	Created  time.Time
	Modified *time.Time
	Tags     []string // ordered, no duplicates
	Body     string
}

// Tag labels blog posts. Name is the key.
type Tag struct {
	Name string
}

const maxTagNameLength = 64

// IsValidTagName reports whether name is 1 to 64 printable characters with no
// whitespace at either end.
func IsValidTagName(name string) bool {
	if name == "" || utf8.RuneCountInString(name) > maxTagNameLength {
		return false
	}
	if strings.TrimSpace(name) != name {
		return false
	}

	return !strings.ContainsFunc(name, func(r rune) bool { return !unicode.IsPrint(r) })
}
