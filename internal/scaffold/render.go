package scaffold

import (
	"bytes"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/pixie-sh/errors-go"
	"golang.org/x/tools/imports"
)

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"pascal": Pascal,
		"camel":  Camel,
		"snake":  Snake,
		"kebab":  Kebab,
		"plural": Plural,
		"lower":  strings.ToLower,
		"upper":  strings.ToUpper,
		"join":   strings.Join,
	}
}

// Renderer renders templates from an embedded filesystem.
type Renderer struct {
	fsys fs.FS
}

// NewRenderer returns a Renderer over fsys.
func NewRenderer(fsys fs.FS) *Renderer {
	return &Renderer{fsys: fsys}
}

// Render executes the named template. Output of "*.go.tmpl" templates is
// gofmt-normalised.
func (r *Renderer) Render(name string, data interface{}) ([]byte, error) {
	return RenderTemplate(r.fsys, name, data)
}

// File renders name into a Replace file at dest.
func (r *Renderer) File(name, dest string, data interface{}) (File, error) {
	content, err := r.Render(name, data)
	if err != nil {
		return File{}, err
	}
	return File{Path: dest, Content: content}, nil
}

// RenderTemplate renders a template from fsys and returns the result as bytes.
func RenderTemplate(fsys fs.FS, templateName string, data interface{}) ([]byte, error) {
	content, err := fs.ReadFile(fsys, templateName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read template: %s", templateName)
	}

	tmpl, err := template.New(path.Base(templateName)).Funcs(Funcs()).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse template: %s", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "failed to execute template: %s", templateName)
	}

	if strings.HasSuffix(templateName, ".go.tmpl") {
		return FormatGo(strings.TrimSuffix(path.Base(templateName), ".tmpl"), buf.Bytes())
	}
	return buf.Bytes(), nil
}

// FormatGo gofmts src and sorts its imports without resolving missing ones.
func FormatGo(filename string, src []byte) ([]byte, error) {
	out, err := imports.Process(filename, src, &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
	if err != nil {
		return nil, errors.Wrap(err, "generated %s is not valid Go", filename)
	}
	return out, nil
}
