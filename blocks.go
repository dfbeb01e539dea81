package blade

import (
	"regexp"
	"strings"
)

var (
	reComment  = regexp.MustCompile(`(?s){{--.*?--}}`)
	reVerbatim = regexp.MustCompile(`(?s)@verbatim(.*?)@endverbatim`)
	rePHPBlock = regexp.MustCompile(`(?s)@php(.*?)@endphp`)
)

// stripComments removes {{-- --}} spans. Idempotent: stripped output
// contains no comment markers.
func stripComments(content string) string {
	return reComment.ReplaceAllString(content, "")
}

// preserveVerbatim replaces @verbatim blocks with placeholder tokens.
// The enclosed content is stored untouched and survives all later
// passes literally.
func (s *compilation) preserveVerbatim(content string) string {
	return reVerbatim.ReplaceAllStringFunc(content, func(m string) string {
		body := reVerbatim.FindStringSubmatch(m)[1]
		return s.store("VERBATIM", body)
	})
}

// preserveRawPHP replaces @php blocks with placeholder tokens. The
// trimmed body is wrapped in PHP tags; an empty body collapses to an
// empty executable block.
func (s *compilation) preserveRawPHP(content string) string {
	return rePHPBlock.ReplaceAllStringFunc(content, func(m string) string {
		code := strings.TrimSpace(rePHPBlock.FindStringSubmatch(m)[1])
		if code == "" {
			return s.store("RAW", "<?php ?>")
		}
		return s.store("RAW", "<?php "+code+" ?>")
	})
}
