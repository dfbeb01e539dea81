package blade

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerbatimRoundTrip(t *testing.T) {
	c := New()
	out, err := c.CompileString("t", "@verbatim{{ not-an-expr }}@endverbatim")
	require.NoError(t, err)
	require.Equal(t, "{{ not-an-expr }}", out)
}

func TestVerbatimShieldsDirectives(t *testing.T) {
	c := New()
	out, err := c.CompileString("t", "@verbatim@if($x)@endif@endverbatim")
	require.NoError(t, err)
	require.Equal(t, "@if($x)@endif", out)
}

func TestRawBlockRoundTrip(t *testing.T) {
	c := New()
	out, err := c.CompileString("t", "@php $x = 1; @endphp")
	require.NoError(t, err)
	require.Equal(t, "<?php $x = 1; ?>", out)
}

func TestRawBlockEmptyCollapses(t *testing.T) {
	c := New()
	out, err := c.CompileString("t", "@php   @endphp")
	require.NoError(t, err)
	require.Equal(t, "<?php ?>", out)
}

func TestCommentStrippingIdempotent(t *testing.T) {
	src := "a {{-- gone --}} b {{-- also\ngone --}} c"
	once := stripComments(src)
	require.Equal(t, "a  b  c", once)
	require.Equal(t, once, stripComments(once))
}

func TestPlaceholderTokensUniqueAcrossKinds(t *testing.T) {
	comp := newCompilation("t")
	a := comp.store("VERBATIM", "one")
	b := comp.store("RAW", "two")
	require.NotEqual(t, a, b)
	require.Contains(t, a, "__VERBATIM_BLOCK_0__")
	require.Contains(t, b, "__RAW_BLOCK_1__")
}

func TestRestoreDrainsTable(t *testing.T) {
	comp := newCompilation("t")
	token := comp.store("RAW", "<?php ?>")
	out := comp.restore("x" + token + "y")
	require.Equal(t, "x<?php ?>y", out)
	require.Empty(t, comp.rawBlocks)
}
