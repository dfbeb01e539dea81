package blade

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCustomDirective(t *testing.T) {
	c := New()
	c.Directive("upper", func(expr string) string {
		return "<?php echo strtoupper(" + expr + "); ?>"
	})

	out, err := c.CompileString("t", "@upper($name)")
	require.NoError(t, err)
	require.Equal(t, "<?php echo strtoupper($name); ?>", out)
}

func TestCustomDirectiveReregisterReplacesHandler(t *testing.T) {
	c := New()
	c.Directive("tag", func(expr string) string { return "first" })
	c.Directive("tag", func(expr string) string { return "second" })

	out, err := c.CompileString("t", "@tag($x)")
	require.NoError(t, err)
	require.Equal(t, "second", out)
}

func TestCustomDirectivesRunInRegistrationOrder(t *testing.T) {
	c := New()
	// outer emits an inner invocation; it only compiles if inner runs after
	c.Directive("outer", func(expr string) string { return "@inner(" + expr + ")" })
	c.Directive("inner", func(expr string) string { return "[" + expr + "]" })

	out, err := c.CompileString("t", "@outer($x)")
	require.NoError(t, err)
	require.Equal(t, "[$x]", out)
}

func TestFullTemplate(t *testing.T) {
	src := "@extends('layouts.app')\n" +
		"@section('title'){{ $title }}@endsection\n" +
		"@section('content')\n" +
		"@foreach($posts as $post)<x-post :$post/>@endforeach\n" +
		"@endsection"

	out := compile(t, src)
	require.Equal(t,
		"<?php $__view->extends('layouts.app'); ?>\n"+
			"<?php $__view->startSection('title'); ?><?php echo e($title); ?><?php $__view->endSection(); ?>\n"+
			"<?php $__view->startSection('content'); ?>\n"+
			"<?php foreach($posts as $post): ?><?php echo $__view->component('post', ['post' => $post]); ?><?php endforeach; ?>\n"+
			"<?php $__view->endSection(); ?>",
		out)
}

func TestNoPlaceholderTokensSurvive(t *testing.T) {
	src := "@php $n = 1; @endphp @verbatim{{ raw }}@endverbatim @if($n)X@endif"
	out := compile(t, src)
	require.NotContains(t, out, "_BLOCK_")
	require.Contains(t, out, "<?php $n = 1; ?>")
	require.Contains(t, out, "{{ raw }}")
}

func TestCompilerIsReusable(t *testing.T) {
	c := New()
	for i := 0; i < 3; i++ {
		out, err := c.CompileString("t", "@php $a = 1; @endphp{{ $a }}")
		require.NoError(t, err)
		require.Equal(t, "<?php $a = 1; ?><?php echo e($a); ?>", out)
	}
}

func TestOptions(t *testing.T) {
	c := New(WithCacheDir("/tmp/custom"), WithExtensions(".tpl"))
	require.Equal(t, "/tmp/custom", c.CacheDir())
	require.True(t, c.hasTemplateExt("a.tpl"))
	require.False(t, c.hasTemplateExt("a.blade.php"))

	// empty values keep defaults
	c = New(WithCacheDir(""))
	require.Equal(t, DefaultCacheDir(), c.CacheDir())
	require.True(t, c.hasTemplateExt("a.blade.php"))
}

func TestCurrentSectionToken(t *testing.T) {
	out := compile(t, "@currentSection")
	require.Equal(t, "<?php echo $__view->getCurrentSection(); ?>", out)
}

func TestOutputNeverRescanned(t *testing.T) {
	c := New()
	c.Directive("loopy", func(expr string) string { return "@loopy(" + expr + ")x" })
	out, err := c.CompileString("t", "@loopy($a)")
	require.NoError(t, err)
	require.Equal(t, "@loopy($a)x", out)
	require.Equal(t, 1, strings.Count(out, "x"))
}
