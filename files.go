package blade

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Template is one discovered template file: its logical name relative
// to the root and its filesystem path.
type Template struct {
	Name string
	Path string
}

// FindTemplates walks root recursively and returns every file whose
// name ends in one of the compiler's template extensions.
func (c *Compiler) FindTemplates(root string) ([]Template, error) {
	var templates []Template
	err := fs.WalkDir(os.DirFS(root), ".", func(path string, info fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !c.hasTemplateExt(path) {
			return nil
		}
		templates = append(templates, Template{
			Name: c.normalizeName(path),
			Path: filepath.Join(root, filepath.FromSlash(path)),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (c *Compiler) hasTemplateExt(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range c.exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// normalizeName maps a template path to its logical name: quotes and
// spaces trimmed, the compiler's configured extensions dropped, slashes
// normalized.
func (c *Compiler) normalizeName(n string) string {
	n = strings.TrimSpace(n)
	n = strings.Trim(n, `"' `)
	for _, ext := range c.exts {
		if strings.HasSuffix(n, ext) {
			n = strings.TrimSuffix(n, ext)
			break
		}
	}
	return filepath.ToSlash(n)
}

// DefaultCacheDir resolves the compiled-file directory: the
// BLADEC_CACHE_DIR environment variable when set, otherwise the
// user's XDG cache home.
func DefaultCacheDir() string {
	if dir := os.Getenv("BLADEC_CACHE_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(xdg.CacheHome, "bladec")
}
