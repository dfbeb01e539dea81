package blade

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CompiledPath derives the target file for a template: the logical
// name mapped to filesystem-safe characters, a short content hash, and
// a .php extension, under the cache directory.
func (c *Compiler) CompiledPath(name string, source []byte) string {
	sum := sha256.Sum256(source)
	return filepath.Join(c.cacheDir, fmt.Sprintf("%s-%x.php", safeName(name), sum[:8]))
}

// CompileFile compiles the template at path and writes the result into
// the cache directory, creating it if absent. Returns the compiled
// file path.
func (c *Compiler) CompileFile(path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", path, err)
	}

	name := c.normalizeName(filepath.Base(path))
	compiled, err := c.CompileString(name, string(source))
	if err != nil {
		return "", fmt.Errorf("compile %s: %w", path, err)
	}

	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir %s: %w", c.cacheDir, err)
	}
	target := c.CompiledPath(name, source)
	if err := os.WriteFile(target, []byte(compiled), 0o644); err != nil {
		return "", fmt.Errorf("write compiled file %s: %w", target, err)
	}

	c.log.Debug().Str("source", path).Str("compiled", target).Msg("wrote compiled template")
	return target, nil
}

// Expired reports whether the compiled file needs regenerating: it is
// missing, or the source has been modified since it was written.
func (c *Compiler) Expired(sourcePath, compiledPath string) bool {
	srcInfo, err := os.Stat(sourcePath)
	if err != nil {
		return true
	}
	compiledInfo, err := os.Stat(compiledPath)
	if err != nil {
		return true
	}
	return srcInfo.ModTime().After(compiledInfo.ModTime())
}

// ClearCache deletes every compiled artifact in the cache directory.
// A missing cache directory counts as already clear.
func (c *Compiler) ClearCache() error {
	entries, err := os.ReadDir(c.cacheDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read cache dir %s: %w", c.cacheDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".php") {
			continue
		}
		if err := os.Remove(filepath.Join(c.cacheDir, entry.Name())); err != nil {
			return fmt.Errorf("remove compiled file %s: %w", entry.Name(), err)
		}
	}
	c.log.Debug().Str("dir", c.cacheDir).Msg("cleared compiled templates")
	return nil
}

// safeName maps a logical template name to a filesystem-safe file stem.
func safeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
