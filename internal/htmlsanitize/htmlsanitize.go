// Package htmlsanitize cleans user-supplied rich text before it is stored.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	once.Do(func() {
		ugc = bluemonday.UGCPolicy()
		strict = bluemonday.StrictPolicy()
	})
	return ugc, strict
}

// Sanitize keeps basic formatting, links and lists and drops scripts, event
// handlers and javascript: URLs.
func Sanitize(s string) string {
	p, _ := policies()
	return strings.TrimSpace(p.Sanitize(s))
}

// PlainText strips all markup.
func PlainText(s string) string {
	_, p := policies()
	return strings.TrimSpace(p.Sanitize(s))
}
