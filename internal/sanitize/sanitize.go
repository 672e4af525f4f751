// Package sanitize cleans user-entered text before it is persisted. Book
// notes and favourite quotes are free-form fields typed by the admin but
// rendered to every visitor, so any markup that sneaks in (pasted rich text,
// a deliberate script tag) is stripped here rather than trusted downstream.
// Uses bluemonday's strict policy: the fields are plain text, not HTML.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton bluemonday policy for stripping markup.
// Initialized once via sync.Once for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared strict policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text strips all HTML from user-provided text and returns the trimmed plain
// text. Tags are removed and script/style content is dropped entirely.
// bluemonday escapes entities while sanitizing, so the output is unescaped
// afterwards: `Tom & Jerry` stays `Tom & Jerry`.
func Text(input string) string {
	cleaned := getPolicy().Sanitize(input)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
