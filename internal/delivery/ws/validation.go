package ws

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxNameRunes   = 32
	maxRoomIDRunes = 64
	maxTextRunes   = 2000
	maxEmojiBytes  = 32
)

var (
	htmlTagRegex     = regexp.MustCompile(`<[^>]*>`)
	controlCharRegex = regexp.MustCompile(`[\x00-\x1F\x7F]`)
)

// sanitize strips HTML tags and control characters, trims whitespace and
// caps the result at max runes
func sanitize(s string, max int) string {
	s = htmlTagRegex.ReplaceAllString(s, "")
	s = controlCharRegex.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	if utf8.RuneCountInString(s) > max {
		runes := []rune(s)
		s = string(runes[:max])
	}
	return s
}

// SanitizeName cleans a display name. Returns "" when nothing valid
// remains; the caller rejects the join then.
func SanitizeName(name string) string {
	return sanitize(name, maxNameRunes)
}

// SanitizeRoomID cleans a room identifier
func SanitizeRoomID(id string) string {
	return sanitize(id, maxRoomIDRunes)
}

// ValidMessageText trims and bounds a chat text. Empty or oversized input
// is rejected before any state mutation or broadcast.
func ValidMessageText(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" || utf8.RuneCountInString(text) > maxTextRunes {
		return "", false
	}
	return text, true
}
