// Package blade compiles Blade-syntax templates into PHP source for an
// external rendering runtime. The compiler is a multi-pass text
// rewriter: raw blocks are parked behind placeholder tokens, directive
// tables and component tags are expanded in a fixed order, echoes are
// compiled last, and the parked blocks are restored into the output.
package blade

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/bladekit/bladec/internal/logging"
)

// ValidFileExtensions lists the template file suffixes the compiler
// picks up when walking a directory.
var ValidFileExtensions = []string{".blade.php", ".blade"}

// Compiler holds the custom directive registry and cache settings.
// Compilation state lives in a per-call context, so one Compiler may
// compile many templates concurrently.
type Compiler struct {
	cacheDir    string
	exts        []string
	custom      map[string]DirectiveFunc
	customNames []string
	log         zerolog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithCacheDir overrides the directory compiled files are written to.
func WithCacheDir(dir string) Option {
	return func(c *Compiler) {
		if dir != "" {
			c.cacheDir = dir
		}
	}
}

// WithExtensions overrides the template file suffixes used by
// FindTemplates.
func WithExtensions(exts ...string) Option {
	return func(c *Compiler) {
		if len(exts) > 0 {
			c.exts = slices.Clone(exts)
		}
	}
}

// New creates a Compiler writing to the default cache directory unless
// configured otherwise.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		cacheDir: DefaultCacheDir(),
		exts:     slices.Clone(ValidFileExtensions),
		custom:   map[string]DirectiveFunc{},
		log:      logging.GetLogger("blade"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CacheDir returns the directory compiled files are written to.
func (c *Compiler) CacheDir() string {
	return c.cacheDir
}

// Directive registers a custom directive. The handler receives the raw
// expression text of @name(...) and returns its replacement code.
// Registering an existing name replaces the handler.
func (c *Compiler) Directive(name string, fn DirectiveFunc) {
	if _, ok := c.custom[name]; !ok {
		c.customNames = append(c.customNames, name)
	}
	c.custom[name] = fn
}

// CompileString compiles one template source to PHP. name identifies
// the template in logs and errors. The pass order is load-bearing:
// comments are stripped first, verbatim and raw blocks are parked
// before any rewriting, echoes compile after all directive and
// component passes, and parked blocks are restored last.
func (c *Compiler) CompileString(name, source string) (string, error) {
	comp := newCompilation(name)

	content := stripComments(source)
	content = comp.preserveVerbatim(content)
	content = comp.preserveRawPHP(content)

	var err error
	if content, err = c.rewriteImports(content); err != nil {
		return "", err
	}
	if content, err = c.rewriteStructural(content); err != nil {
		return "", err
	}
	if content, err = c.rewriteControlFlow(content); err != nil {
		return "", err
	}
	if content, err = rewriteDirectiveTable(content, outputTable); err != nil {
		return "", err
	}
	content = rewriteTokenDirectives(content)
	content = rewriteEchoes(content)
	content = comp.restore(content)

	c.log.Debug().Str("template", name).Int("bytes", len(content)).Msg("compiled template")
	return content, nil
}

func (c *Compiler) rewriteImports(content string) (string, error) {
	return rewriteExpressionDirective(content, "use", func(expr string) string {
		return "<?php use " + stripQuotes(expr) + "; ?>"
	})
}

// rewriteStructural expands the inheritance and composition layer in a
// fixed sub-order: extends, sections, yields, includes, then component
// tags.
func (c *Compiler) rewriteStructural(content string) (string, error) {
	steps := []struct {
		name string
		gen  DirectiveFunc
	}{
		{"extends", func(e string) string { return "<?php $__view->extends(" + e + "); ?>" }},
		{"section", func(e string) string { return "<?php $__view->startSection(" + e + "); ?>" }},
		{"yield", func(e string) string { return "<?php echo $__view->yieldSection(" + e + "); ?>" }},
		{"include", func(e string) string { return "<?php echo $__view->include(" + e + "); ?>" }},
		{"includeIf", func(e string) string {
			return "<?php if($__view->templateExists(" + e + ")) echo $__view->include(" + e + "); ?>"
		}},
	}
	var err error
	for _, s := range steps {
		if content, err = rewriteExpressionDirective(content, s.name, s.gen); err != nil {
			return "", err
		}
	}
	return rewriteComponents(content), nil
}

// rewriteControlFlow runs the switch pass and the built-in conditional
// and loop tables, then the custom registry in registration order.
func (c *Compiler) rewriteControlFlow(content string) (string, error) {
	var err error
	if content, err = rewriteSwitchDirectives(content); err != nil {
		return "", err
	}
	if content, err = rewriteDirectiveTable(content, conditionalTable); err != nil {
		return "", err
	}
	if content, err = rewriteDirectiveTable(content, loopTable); err != nil {
		return "", err
	}
	for _, name := range c.customNames {
		if content, err = rewriteExpressionDirective(content, name, c.custom[name]); err != nil {
			return "", err
		}
	}
	return content, nil
}
