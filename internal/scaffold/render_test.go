package scaffold

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/hook.ts.tmpl":    {Data: []byte("export function {{camel .Name}}() {}\n")},
		"templates/entity.go.tmpl":  {Data: []byte("package entity\nimport (\n\"time\"\n\"fmt\"\n)\ntype {{pascal .Name}} struct{\nID uint\nAt time.Time\n}\nvar _ = fmt.Sprint\n")},
		"templates/broken.go.tmpl":  {Data: []byte("package {{.Name}\n")},
		"templates/invalid.go.tmpl": {Data: []byte("package x\nfunc {\n")},
	}
	data := map[string]string{"Name": "order-item"}

	out, err := RenderTemplate(fsys, "templates/hook.ts.tmpl", data)
	require.NoError(t, err)
	assert.Equal(t, "export function orderItem() {}\n", string(out))

	out, err = RenderTemplate(fsys, "templates/entity.go.tmpl", data)
	require.NoError(t, err)
	assert.Contains(t, string(out), "import (\n\t\"fmt\"\n\t\"time\"\n)")
	assert.Contains(t, string(out), "type OrderItem struct {\n\tID uint\n")

	_, err = RenderTemplate(fsys, "templates/broken.go.tmpl", data)
	assert.Error(t, err)

	_, err = RenderTemplate(fsys, "templates/invalid.go.tmpl", data)
	assert.Error(t, err)

	_, err = RenderTemplate(fsys, "templates/missing.tmpl", data)
	assert.Error(t, err)

	_, err = RenderTemplate(fsys, "templates/hook.ts.tmpl", map[string]string{})
	assert.Error(t, err, "missing keys must fail")
}

func TestRenderer_File(t *testing.T) {
	fsys := fstest.MapFS{"t/page.tsx.tmpl": {Data: []byte("export default function {{.Name}}() {}\n")}}
	f, err := NewRenderer(fsys).File("t/page.tsx.tmpl", "src/pages/Home.tsx", map[string]string{"Name": "Home"})
	require.NoError(t, err)
	assert.Equal(t, "src/pages/Home.tsx", f.Path)
	assert.Equal(t, Replace, f.Mode)
	assert.Equal(t, "export default function Home() {}\n", string(f.Content))
}
