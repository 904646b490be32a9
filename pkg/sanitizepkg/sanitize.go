// Package sanitizepkg neutralizes markup in free text before storage.
package sanitizepkg

import "strings"

var markupReplacer = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Markup replaces angle brackets with their HTML entities so that stored
// text is inert for any downstream rendering.
func Markup(s string) string {
	return markupReplacer.Replace(s)
}
