package blade

import "strings"

// extractExpression returns the text strictly between the opening
// parenthesis at start and its matching closing parenthesis. Nested
// parentheses are tracked with a depth counter; parentheses inside
// single- or double-quoted strings are ignored, and a backslash escapes
// exactly one following character. The second return value is false
// when start does not point at '(' or when the input ends before the
// depth returns to zero.
func extractExpression(text string, start int) (string, bool) {
	if start < 0 || start >= len(text) || text[start] != '(' {
		return "", false
	}

	depth := 0
	var quote byte
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return text[start+1 : i], true
			}
		}
	}

	return "", false
}

// indexDirective finds the next occurrence of marker (an "@name"
// prefix) at or after offset that is immediately followed by an opening
// parenthesis. Occurrences followed by any other character belong to a
// longer directive name and are skipped.
func indexDirective(content, marker string, offset int) int {
	for offset < len(content) {
		i := indexFrom(content, marker, offset)
		if i < 0 {
			return -1
		}
		next := i + len(marker)
		if next < len(content) && content[next] == '(' {
			return i
		}
		offset = next
	}
	return -1
}

func indexFrom(s, substr string, offset int) int {
	if offset >= len(s) {
		return -1
	}
	i := strings.Index(s[offset:], substr)
	if i < 0 {
		return -1
	}
	return offset + i
}
