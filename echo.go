package blade

import "regexp"

var (
	reRawEcho     = regexp.MustCompile(`(?s){!!\s*(.+?)\s*!!}`)
	reEscapedEcho = regexp.MustCompile(`(?s){{\s*(.+?)\s*}}`)
)

// rewriteEchoes compiles both interpolation forms. {!! expr !!} emits
// the value verbatim; {{ expr }} routes the trimmed expression through
// the runtime's HTML escaper. Runs after every other content pass so
// markers emitted by directive and component expansion compile too.
func rewriteEchoes(content string) string {
	content = reRawEcho.ReplaceAllString(content, "<?php echo $1; ?>")
	return reEscapedEcho.ReplaceAllString(content, "<?php echo e($1); ?>")
}
