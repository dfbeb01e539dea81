package blade

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// Inspector serves compiled template sources over HTTP for debugging:
// GET /templates lists the templates under the views directory, and
// GET /compiled/*name returns the PHP a template compiles to,
// recompiled on every request so edits show up immediately.
type Inspector struct {
	compiler *Compiler
	viewsDir string
}

// NewInspector creates an inspection server over viewsDir.
func NewInspector(c *Compiler, viewsDir string) *Inspector {
	return &Inspector{compiler: c, viewsDir: viewsDir}
}

// Router builds the gin engine serving the inspection endpoints.
func (i *Inspector) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/templates", i.listTemplates)
	r.GET("/compiled/*name", i.showCompiled)
	return r
}

func (i *Inspector) listTemplates(ctx *gin.Context) {
	templates, err := i.compiler.FindTemplates(i.viewsDir)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	names := make([]string, 0, len(templates))
	for _, t := range templates {
		names = append(names, t.Name)
	}
	ctx.JSON(http.StatusOK, gin.H{"templates": names})
}

func (i *Inspector) showCompiled(ctx *gin.Context) {
	name := strings.TrimPrefix(ctx.Param("name"), "/")
	t, ok := i.lookup(name)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "template not found", "name": name})
		return
	}

	source, err := os.ReadFile(t.Path)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	compiled, err := i.compiler.CompileString(t.Name, string(source))
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "name": name})
		return
	}
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(compiled))
}

func (i *Inspector) lookup(name string) (Template, bool) {
	templates, err := i.compiler.FindTemplates(i.viewsDir)
	if err != nil {
		return Template{}, false
	}
	name = i.compiler.normalizeName(name)
	for _, t := range templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}
