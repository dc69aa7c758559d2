package utils

import "github.com/microcosm-cc/bluemonday"

// Jar names, reward names and descriptions are plain text, so the strict
// policy strips all markup instead of allowing UGC HTML.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips HTML from user-supplied strings.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
