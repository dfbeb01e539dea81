package blade

import (
	"fmt"
	"regexp"
	"strings"
)

// DirectiveFunc turns the raw expression text of a custom @name(...)
// invocation into its replacement code.
type DirectiveFunc func(expr string) string

// UnbalancedError reports a directive or component tag whose argument
// list has no matching closing parenthesis before end of input. It
// aborts the compilation; no partial output is valid.
type UnbalancedError struct {
	Directive string
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("blade: @%s: unbalanced expression", e.Directive)
}

// directive maps a built-in name to its open/close expansion. Open is
// a format string with a single %s slot for the extracted expression;
// a zero close marks a single-expression directive with no @end pair.
type directive struct {
	name  string
	open  string
	close string
}

var conditionalDirectives = []directive{
	{name: "if", open: "<?php if(%s): ?>", close: "<?php endif; ?>"},
	{name: "elseif", open: "<?php elseif(%s): ?>"},
	{name: "unless", open: "<?php if(!(%s)): ?>", close: "<?php endif; ?>"},
	{name: "isset", open: "<?php if(isset(%s)): ?>", close: "<?php endif; ?>"},
	{name: "empty", open: "<?php if(empty(%s)): ?>", close: "<?php endif; ?>"},
	{name: "can", open: "<?php if(can(%s)): ?>", close: "<?php endif; ?>"},
	{name: "cannot", open: "<?php if(cannot(%s)): ?>", close: "<?php endif; ?>"},
	{name: "error", open: "<?php foreach(errors(%s) as $message): ?>", close: "<?php endforeach; ?>"},
	{name: "hasSection", open: "<?php if($__view->hasSection(%s)): ?>"},
	{name: "sectionMissing", open: "<?php if(! $__view->hasSection(%s)): ?>"},
}

var loopDirectives = []directive{
	{name: "foreach", open: "<?php foreach(%s): ?>", close: "<?php endforeach; ?>"},
	{name: "for", open: "<?php for(%s): ?>", close: "<?php endfor; ?>"},
	{name: "while", open: "<?php while(%s): ?>", close: "<?php endwhile; ?>"},
}

var outputDirectives = []directive{
	{name: "dump", open: "<?php dump(%s); ?>"},
	{name: "dd", open: "<?php dd(%s); ?>"},
	{name: "abort", open: "<?php abort(%s); ?>"},
	{name: "old", open: "<?php echo e(old(%s)); ?>"},
	{name: "share", open: "<?php share(%s); ?>"},
	{name: "authorize", open: "<?php authorize(%s); ?>"},
	{name: "json", open: "<?php echo json_encode(%s); ?>"},
	{name: "vite", open: "<?php echo vite(%s); ?>"},
	{name: "style", open: "<?php echo compileStyleArray(%s); ?>"},
	{name: "class", open: "<?php echo compileClassArray(%s); ?>"},
	{name: "checked", open: "<?php if(%s) echo 'checked'; ?>"},
	{name: "disabled", open: "<?php if(%s) echo 'disabled'; ?>"},
	{name: "selected", open: "<?php if(%s) echo 'selected'; ?>"},
	{name: "readonly", open: "<?php if(%s) echo 'readonly'; ?>"},
	{name: "required", open: "<?php if(%s) echo 'required'; ?>"},
}

// tokenDirectives are zero-argument directives compiled by plain
// whole-word substitution. Word boundaries keep @else from matching
// inside @elseif and so on.
var tokenDirectives = []struct {
	re   *regexp.Regexp
	code string
}{
	{regexp.MustCompile(`@else\b`), "<?php else: ?>"},
	{regexp.MustCompile(`@default\b`), "<?php default: ?>"},
	{regexp.MustCompile(`@break\b`), "<?php break; ?>"},
	{regexp.MustCompile(`@continue\b`), "<?php continue; ?>"},
	{regexp.MustCompile(`@csrf\b`), "<?php echo csrf(); ?>"},
	{regexp.MustCompile(`@auth\b`), "<?php if(!is_guest()): ?>"},
	{regexp.MustCompile(`@endauth\b`), "<?php endif; ?>"},
	{regexp.MustCompile(`@guest\b`), "<?php if(is_guest()): ?>"},
	{regexp.MustCompile(`@endguest\b`), "<?php endif; ?>"},
	{regexp.MustCompile(`@endsection\b`), "<?php $$__view->endSection(); ?>"},
	{regexp.MustCompile(`@currentSection\b`), "<?php echo $$__view->getCurrentSection(); ?>"},
}

// compiledDirective is a table entry with its close matcher resolved
// once at startup instead of per compilation.
type compiledDirective struct {
	directive
	gen     DirectiveFunc
	closeRe *regexp.Regexp
}

func compileTable(table []directive) []compiledDirective {
	out := make([]compiledDirective, 0, len(table))
	for _, d := range table {
		cd := compiledDirective{directive: d}
		open := d.open
		cd.gen = func(expr string) string { return fmt.Sprintf(open, expr) }
		if d.close != "" {
			cd.closeRe = regexp.MustCompile(`@end` + d.name + `\b`)
		}
		out = append(out, cd)
	}
	return out
}

var (
	conditionalTable = compileTable(conditionalDirectives)
	loopTable        = compileTable(loopDirectives)
	outputTable      = compileTable(outputDirectives)
)

// rewriteExpressionDirective expands every @name(expr) occurrence.
// The search offset advances past each replacement so generated code
// is never re-matched. A missing closing parenthesis is fatal.
func rewriteExpressionDirective(content, name string, gen DirectiveFunc) (string, error) {
	marker := "@" + name
	offset := 0
	for {
		idx := indexDirective(content, marker, offset)
		if idx < 0 {
			return content, nil
		}
		expr, ok := extractExpression(content, idx+len(marker))
		if !ok {
			return "", &UnbalancedError{Directive: name}
		}
		replacement := gen(expr)
		end := idx + len(marker) + len(expr) + 2
		content = content[:idx] + replacement + content[end:]
		offset = idx + len(replacement)
	}
}

// rewriteDirectiveTable runs one built-in table: expression expansion
// per entry, then unconditional whole-word replacement of the paired
// @end token. Close replacement does not depend on a matching open so
// a stray @endif still compiles, mirroring the leniency of the rest of
// the pipeline.
func rewriteDirectiveTable(content string, table []compiledDirective) (string, error) {
	var err error
	for _, d := range table {
		if content, err = rewriteExpressionDirective(content, d.name, d.gen); err != nil {
			return "", err
		}
		if d.closeRe != nil {
			content = d.closeRe.ReplaceAllString(content, d.close)
		}
	}
	return content, nil
}

var reEndSwitch = regexp.MustCompile(`@endswitch\b`)

// rewriteSwitchDirectives expands @switch and @case in one scan because
// case expansion depends on position. @switch leaves its PHP tag open
// (PHP forbids output between switch and the first case label), so the
// first @case only closes it; every later @case follows an already
// closed block and must reopen one.
func rewriteSwitchDirectives(content string) (string, error) {
	firstCase := false
	offset := 0
	for {
		si := indexDirective(content, "@switch", offset)
		ci := indexDirective(content, "@case", offset)
		idx, name := si, "switch"
		if si < 0 || (ci >= 0 && ci < si) {
			idx, name = ci, "case"
		}
		if idx < 0 {
			break
		}
		marker := "@" + name
		expr, ok := extractExpression(content, idx+len(marker))
		if !ok {
			return "", &UnbalancedError{Directive: name}
		}
		var replacement string
		switch {
		case name == "switch":
			replacement = "<?php switch(" + expr + "):"
			firstCase = true
		case firstCase:
			replacement = "case (" + expr + "): ?>"
			firstCase = false
		default:
			replacement = "<?php case (" + expr + "): ?>"
		}
		end := idx + len(marker) + len(expr) + 2
		content = content[:idx] + replacement + content[end:]
		offset = idx + len(replacement)
	}
	return reEndSwitch.ReplaceAllString(content, "<?php endswitch; ?>"), nil
}

func rewriteTokenDirectives(content string) string {
	for _, t := range tokenDirectives {
		content = t.re.ReplaceAllString(content, t.code)
	}
	return content
}

// stripQuotes removes every single and double quote, used for @use
// where the argument is a quoted import path.
func stripQuotes(s string) string {
	s = strings.ReplaceAll(s, `'`, "")
	return strings.ReplaceAll(s, `"`, "")
}
