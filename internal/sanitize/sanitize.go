// Package sanitize strips the most dangerous HTML fragments from
// user-supplied text. This is defense in depth, not a substitute for output
// escaping by clients.
package sanitize

import "regexp"

var (
	scriptTagRe   = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	eventAttrDQRe = regexp.MustCompile(`(?i)\son\w+\s*=\s*"[^"]*"`)
	eventAttrSQRe = regexp.MustCompile(`(?i)\son\w+\s*=\s*'[^']*'`)
	jsProtocolRe  = regexp.MustCompile(`(?i)javascript:`)
)

// Strip removes <script> blocks, inline event-handler attributes and
// javascript: pseudo-protocol references from s.
func Strip(s string) string {
	if s == "" {
		return s
	}
	s = scriptTagRe.ReplaceAllString(s, "")
	s = eventAttrDQRe.ReplaceAllString(s, "")
	s = eventAttrSQRe.ReplaceAllString(s, "")
	s = jsProtocolRe.ReplaceAllString(s, "")
	return s
}
