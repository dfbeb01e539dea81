package blade

import (
	"fmt"
	"strings"
)

// compilation carries the state threaded through the passes of a
// single CompileString call. Every compilation gets a fresh value, so
// placeholder counters are never shared between templates and parallel
// compilations cannot collide.
type compilation struct {
	name      string
	counter   int
	rawBlocks map[string]string
}

func newCompilation(name string) *compilation {
	return &compilation{
		name:      name,
		rawBlocks: map[string]string{},
	}
}

// store records content under a fresh placeholder token and returns
// the token. The counter is shared across block kinds so tokens stay
// unique within the compilation.
func (s *compilation) store(kind, content string) string {
	token := fmt.Sprintf("__%s_BLOCK_%d__", kind, s.counter)
	s.counter++
	s.rawBlocks[token] = content
	return token
}

// restore substitutes every stored block back into the compiled output
// and drains the table. Tokens are unique, so replacement order does
// not matter.
func (s *compilation) restore(content string) string {
	for token, block := range s.rawBlocks {
		content = strings.ReplaceAll(content, token, block)
	}
	s.rawBlocks = map[string]string{}
	return content
}
