package matchsrv

import (
	"regexp"
	"strings"
)

var (
	fenceOpenRe  = regexp.MustCompile("(?i)^```([a-z]+)?")
	fenceCloseRe = regexp.MustCompile("```$")
)

// stripCodeFence removes a leading ``` (with optional language tag) and a
// trailing ``` from a model response, so fenced and unfenced JSON parse the
// same way.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = fenceOpenRe.ReplaceAllString(s, "")
	s = fenceCloseRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
