package blade

import (
	"regexp"
	"strings"
)

type attrKind int

const (
	attrBool attrKind = iota
	attrLiteral
	attrExpr
)

// attribute is one parsed component-tag attribute. Four source shapes
// map onto the three kinds: a bare name is attrBool, name="text" is
// attrLiteral, and both :name="expr" and the :$var shorthand are
// attrExpr.
type attribute struct {
	name  string
	kind  attrKind
	value string
}

var (
	reAttribute     = regexp.MustCompile(`([:A-Za-z_][-\w.:$]*)(?:\s*=\s*("[^"]*"|'[^']*'))?`)
	reSelfClosing   = regexp.MustCompile(`(?s)<x-([-\w.]+)((?:[^>"']|"[^"]*"|'[^']*')*?)/>`)
	reWhitespaceRun = regexp.MustCompile(`\s+`)
	reCallShape     = regexp.MustCompile(`^[\w\\]+\(.*\)$`)
	reNumericShape  = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// rewriteComponents resolves <x-name> tags into component-invocation
// code. Each round rewrites self-closing tags, then content-bearing
// tags whose body holds no further tag, so the innermost tags resolve
// first; the loop stops when a full round produces no change.
// Tags that never match (for example, missing their closing tag) are
// left as literal text.
func rewriteComponents(content string) string {
	for {
		next := rewritePairedTags(rewriteSelfClosingTags(content))
		if next == content {
			return content
		}
		content = next
	}
}

func rewriteSelfClosingTags(content string) string {
	return reSelfClosing.ReplaceAllStringFunc(content, func(m string) string {
		sub := reSelfClosing.FindStringSubmatch(m)
		return componentCall(sub[1], parseAttributes(sub[2]), "")
	})
}

func rewritePairedTags(content string) string {
	var out strings.Builder
	pos := 0
	for {
		idx := indexFrom(content, "<x-", pos)
		if idx < 0 {
			out.WriteString(content[pos:])
			return out.String()
		}
		out.WriteString(content[pos:idx])

		name, attrsRaw, tagEnd, selfClosing := parseOpeningTag(content, idx)
		if tagEnd < 0 || selfClosing {
			// malformed, or left for the self-closing pass
			next := idx + len("<x-")
			if tagEnd > next {
				next = tagEnd
			}
			out.WriteString(content[idx:next])
			pos = next
			continue
		}

		bodyEnd, closeEnd := findClosingTag(content, tagEnd, name)
		if bodyEnd < 0 {
			out.WriteString(content[idx:tagEnd])
			pos = tagEnd
			continue
		}
		body := content[tagEnd:bodyEnd]
		if strings.Contains(body, "<x-") {
			// not innermost yet; a later round picks this tag up
			out.WriteString(content[idx:tagEnd])
			pos = tagEnd
			continue
		}
		out.WriteString(componentCall(name, parseAttributes(attrsRaw), body))
		pos = closeEnd
	}
}

// parseOpeningTag reads the tag starting at idx (which points at
// "<x-") and returns its name, raw attribute text, the index just past
// '>', and whether the tag self-closes. end is -1 for a malformed tag.
func parseOpeningTag(content string, idx int) (name, attrs string, end int, selfClosing bool) {
	i := idx + len("<x-")
	nameStart := i
	for i < len(content) && isTagNameChar(content[i]) {
		i++
	}
	name = content[nameStart:i]
	if name == "" {
		return "", "", -1, false
	}

	attrStart := i
	var quote byte
	for ; i < len(content); i++ {
		c := content[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '>':
			raw := strings.TrimSpace(content[attrStart:i])
			if strings.HasSuffix(raw, "/") {
				return name, strings.TrimSuffix(raw, "/"), i + 1, true
			}
			return name, raw, i + 1, false
		}
	}
	return "", "", -1, false
}

// findClosingTag locates </x-name> at or after from, matching the tag
// name exactly. Returns the body end (start of the closing tag) and
// the index just past its '>'.
func findClosingTag(content string, from int, name string) (bodyEnd, closeEnd int) {
	closer := "</x-" + name
	offset := from
	for {
		i := indexFrom(content, closer, offset)
		if i < 0 {
			return -1, -1
		}
		j := i + len(closer)
		for j < len(content) && isSpace(content[j]) {
			j++
		}
		if j < len(content) && content[j] == '>' {
			return i, j + 1
		}
		// closing tag of a longer name, keep looking
		offset = i + len(closer)
	}
}

func isTagNameChar(c byte) bool {
	return c == '-' || c == '.' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// parseAttributes splits raw attribute text into an ordered attribute
// list. Later duplicates overwrite the value of the earlier entry but
// keep its position.
func parseAttributes(raw string) []attribute {
	var attrs []attribute
	index := map[string]int{}
	for _, m := range reAttribute.FindAllStringSubmatch(raw, -1) {
		name, quoted := m[1], m[2]
		var a attribute
		switch {
		case strings.HasPrefix(name, ":$"):
			v := strings.TrimPrefix(name, ":$")
			a = attribute{name: v, kind: attrExpr, value: "$" + v}
		case strings.HasPrefix(name, ":"):
			a = attribute{name: strings.TrimPrefix(name, ":"), kind: attrExpr, value: unquote(quoted)}
		case quoted != "":
			a = attribute{name: name, kind: attrLiteral, value: unquote(quoted)}
		default:
			a = attribute{name: name, kind: attrBool}
		}
		if at, ok := index[a.name]; ok {
			attrs[at] = a
			continue
		}
		index[a.name] = len(attrs)
		attrs = append(attrs, a)
	}
	return attrs
}

// componentCall emits the invocation a resolved tag compiles to.
func componentCall(name string, attrs []attribute, body string) string {
	var parts []string
	for _, a := range attrs {
		switch a.kind {
		case attrBool:
			parts = append(parts, "'"+a.name+"' => true")
		case attrExpr:
			parts = append(parts, "'"+a.name+"' => "+a.value)
		case attrLiteral:
			if looksLikeExpression(a.value) {
				parts = append(parts, "'"+a.name+"' => "+a.value)
			} else {
				parts = append(parts, "'"+a.name+"' => '"+escapeLiteral(a.value)+"'")
			}
		}
	}
	if slot := slotEntry(body); slot != "" {
		parts = append(parts, slot)
	}
	return "<?php echo $__view->component('" + name + "', [" + strings.Join(parts, ", ") + "]); ?>"
}

// slotEntry compiles the tag body into the reserved slot attribute.
// Static text becomes a whitespace-normalized escaped literal; dynamic
// content is deferred behind an output-buffering closure so it
// evaluates at render time.
func slotEntry(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	if isStaticSlot(body) {
		text := reWhitespaceRun.ReplaceAllString(body, " ")
		return "'slot' => '" + escapeLiteral(text) + "'"
	}
	return "'slot' => function() use ($__view) { ob_start(); ?>" + body + "<?php return ob_get_clean(); }"
}

func isStaticSlot(body string) bool {
	return !strings.Contains(body, "<?") &&
		!strings.Contains(body, "{{") &&
		!strings.Contains(body, "{!!") &&
		!strings.Contains(body, "@")
}

// looksLikeExpression reports whether a literal attribute value has
// the shape of an expression: leading $, call syntax, array literal,
// numeric literal, or a bare true/false/null. Best effort: a literal
// that happens to look like a call reads as an expression.
func looksLikeExpression(s string) bool {
	s = strings.TrimSpace(s)
	if s == "true" || s == "false" || s == "null" {
		return true
	}
	if strings.HasPrefix(s, "$") || strings.HasPrefix(s, "[") {
		return true
	}
	return reNumericShape.MatchString(s) || reCallShape.MatchString(s)
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
