package blade

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindTemplates(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "home.blade.php", "home")
	writeTemplate(t, root, filepath.Join("admin", "users.blade"), "users")
	writeTemplate(t, root, "readme.md", "not a template")

	c := New()
	templates, err := c.FindTemplates(root)
	require.NoError(t, err)
	require.Len(t, templates, 2)

	byName := map[string]Template{}
	for _, tpl := range templates {
		byName[tpl.Name] = tpl
	}
	require.Contains(t, byName, "home")
	require.Contains(t, byName, "admin/users")
	require.Equal(t, filepath.Join(root, "home.blade.php"), byName["home"].Path)
	require.Equal(t, filepath.Join(root, "admin", "users.blade"), byName["admin/users"].Path)
}

func TestFindTemplatesHonorsConfiguredExtensions(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "page.tpl", "x")
	writeTemplate(t, root, "page.blade.php", "y")

	templates, err := New(WithExtensions(".tpl")).FindTemplates(root)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	require.Equal(t, filepath.Join(root, "page.tpl"), templates[0].Path)
}

func TestNormalizeName(t *testing.T) {
	c := New()
	cases := map[string]string{
		"home.blade.php":        "home",
		"admin/users.blade":     "admin/users",
		`'layouts.app'`:         "layouts.app",
		`  "nav.blade.php"  `:   "nav",
		"plain":                 "plain",
		"nested/deep.blade.php": "nested/deep",
	}
	for in, want := range cases {
		require.Equal(t, want, c.normalizeName(in), "input: %q", in)
	}
}

func TestNormalizeNameHonorsConfiguredExtensions(t *testing.T) {
	c := New(WithExtensions(".tpl"))
	require.Equal(t, "page", c.normalizeName("page.tpl"))
	// .blade.php is no longer a configured extension, so it stays
	require.Equal(t, "page.blade.php", c.normalizeName("page.blade.php"))

	templates, err := c.FindTemplates(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, templates)
}

func TestDefaultCacheDirEnvOverride(t *testing.T) {
	t.Setenv("BLADEC_CACHE_DIR", "/tmp/blade-env")
	require.Equal(t, "/tmp/blade-env", DefaultCacheDir())

	t.Setenv("BLADEC_CACHE_DIR", "")
	require.NotEmpty(t, DefaultCacheDir())
}
