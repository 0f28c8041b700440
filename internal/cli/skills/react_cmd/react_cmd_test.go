package react_cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
	"github.com/pixie-sh/skills-cli/internal/toolrunner"
)

func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	write(t, dir, "package.json", `{"name":"app"}`)
	return dir
}

func write(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func common(dir string, out *bytes.Buffer, runner toolrunner.Runner) shared.Common {
	return shared.Common{ProjectPath: dir, Out: out, Runner: runner}
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err, "reading %s", rel)
	return string(data)
}

func TestGenerateProject(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	runner := &toolrunner.Recorder{}
	err := generateProject(context.Background(), InitOptions{Common: common(dir, &out, runner), Name: "dash"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"npm create vite@latest dash -- --template react-ts",
		"npm install",
		"npm install -D tailwindcss @tailwindcss/vite",
		"npx shadcn@latest init -d",
		"npm install " + strings.Join(ExtraPackages, " "),
	}, runner.Lines())
	assert.Equal(t, dir, runner.Calls()[0].Dir)

	root := filepath.Join(dir, "dash")
	assert.Equal(t, root, runner.Calls()[1].Dir)
	assert.Contains(t, readFile(t, root, "vite.config.ts"), "tailwindcss()")
	assert.Equal(t, "@import \"tailwindcss\";\n", readFile(t, root, "src/index.css"))
	assert.Contains(t, readFile(t, root, "README.md"), "# dash")
	for _, d := range projectDirs {
		assert.DirExists(t, filepath.Join(root, filepath.FromSlash(d)))
	}
	// the recorder does not run vite, so there is no tsconfig.json to alias
	assert.Contains(t, out.String(), "could not update tsconfig.json")
}

func TestGenerateProject_ShadcnFallbackJS(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	runner := &toolrunner.Recorder{Fail: map[string]bool{"npx shadcn@latest init": true}}

	err := generateProject(context.Background(), InitOptions{
		Common:       common(dir, &out, runner),
		Name:         "site",
		NoTypeScript: true,
		SkipPackages: true,
	})
	require.NoError(t, err)

	lines := runner.Lines()
	assert.Equal(t, "npm create vite@latest site -- --template react", lines[0])
	assert.Equal(t, "npm install "+strings.Join(shadcnDeps, " "), lines[len(lines)-1])

	root := filepath.Join(dir, "site")
	assert.FileExists(t, filepath.Join(root, "vite.config.js"))
	assert.FileExists(t, filepath.Join(root, "src", "lib", "utils.js"))
	assert.Contains(t, readFile(t, root, "components.json"), `"tsx": false`)
	assert.NotContains(t, out.String(), "tsconfig.json")
}

func TestGenerateProject_Failures(t *testing.T) {
	dir := t.TempDir()

	runner := &toolrunner.Recorder{Fail: map[string]bool{"npm create": true}}
	err := generateProject(context.Background(), InitOptions{Common: common(dir, &bytes.Buffer{}, runner), Name: "a"})
	require.Error(t, err)
	assert.Len(t, runner.Calls(), 1)

	runner = &toolrunner.Recorder{Fail: map[string]bool{"npm install -D": true}}
	err = generateProject(context.Background(), InitOptions{Common: common(dir, &bytes.Buffer{}, runner), Name: "b"})
	require.Error(t, err)
	assert.Len(t, runner.Calls(), 3)

	var out bytes.Buffer
	runner = &toolrunner.Recorder{Fail: map[string]bool{"npm install react-router-dom": true}}
	err = generateProject(context.Background(), InitOptions{Common: common(dir, &out, runner), Name: "c", SkipShadcn: true})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "failed to install some packages")

	err = generateProject(context.Background(), InitOptions{Common: common(dir, &bytes.Buffer{}, runner), Name: "c"})
	assert.Equal(t, scaffold.KindPrecondition, scaffold.KindOf(err))

	err = generateProject(context.Background(), InitOptions{Common: common(dir, &bytes.Buffer{}, runner), Name: "Bad Name"})
	assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))
}

func TestAliasTSConfig(t *testing.T) {
	dir := t.TempDir()
	_, ok := aliasTSConfig(dir)
	assert.False(t, ok)

	write(t, dir, "tsconfig.json", "{\n  // comment\n}")
	_, ok = aliasTSConfig(dir)
	assert.False(t, ok)

	write(t, dir, "tsconfig.json", `{"files":[],"compilerOptions":{"strict":true}}`)
	file, ok := aliasTSConfig(dir)
	require.True(t, ok)
	assert.Equal(t, "tsconfig.json", file.Path)

	var cfg struct {
		Files           []string `json:"files"`
		CompilerOptions struct {
			Strict  bool                `json:"strict"`
			BaseURL string              `json:"baseUrl"`
			Paths   map[string][]string `json:"paths"`
		} `json:"compilerOptions"`
	}
	require.NoError(t, json.Unmarshal(file.Content, &cfg))
	assert.Empty(t, cfg.Files)
	assert.True(t, cfg.CompilerOptions.Strict)
	assert.Equal(t, ".", cfg.CompilerOptions.BaseURL)
	assert.Equal(t, []string{"./src/*"}, cfg.CompilerOptions.Paths["@/*"])
}

func TestGenerateComponent(t *testing.T) {
	dir := newProject(t)
	var out bytes.Buffer

	err := generateComponent(context.Background(), ComponentOptions{Common: common(dir, &out, nil), Name: "product-list", Type: "list", Dir: "components"})
	require.NoError(t, err)
	assert.Contains(t, readFile(t, dir, "src/components/ProductList.tsx"), "ProductList")
	assert.Equal(t, "export { ProductList } from './ProductList'\n", readFile(t, dir, "src/components/index.ts"))

	err = generateComponent(context.Background(), ComponentOptions{Common: common(dir, &out, nil), Name: "product-list", Type: "list", Dir: "components"})
	require.NoError(t, err)
	assert.Equal(t, "export { ProductList } from './ProductList'\n", readFile(t, dir, "src/components/index.ts"))

	err = generateComponent(context.Background(), ComponentOptions{Common: common(dir, &out, nil), Name: "x", Type: "modal", Dir: "components"})
	assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))
}

func TestGenerateHook(t *testing.T) {
	dir := newProject(t)
	var out bytes.Buffer

	for _, name := range []string{"window-size", "useWindowSize"} {
		err := generateHook(context.Background(), HookOptions{Common: common(dir, &out, nil), Name: name, Type: "media-query"})
		require.NoError(t, err)
	}
	assert.FileExists(t, filepath.Join(dir, "src", "hooks", "useWindowSize.ts"))
	assert.Equal(t, "export { useWindowSize } from './useWindowSize'\n", readFile(t, dir, "src/hooks/index.ts"))

	for _, kind := range []string{"throttle", "previous", "async"} {
		err := generateHook(context.Background(), HookOptions{Common: common(dir, &out, nil), Name: "x", Type: kind})
		assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err), kind)
	}
}

func TestGeneratePage(t *testing.T) {
	dir := newProject(t)
	var out bytes.Buffer

	err := generatePage(context.Background(), PageOptions{Common: common(dir, &out, nil), Name: "about", Type: "basic", WithLayout: true})
	require.NoError(t, err)
	about := readFile(t, dir, "src/pages/AboutPage.tsx")
	assert.Contains(t, about, "CardTitle")
	assert.Contains(t, out.String(), "import AboutPage from '@/pages/AboutPage'")
	assert.Contains(t, out.String(), `<Route path="/about" element={<AboutPage />} />`)

	out.Reset()
	err = generatePage(context.Background(), PageOptions{Common: common(dir, &out, nil), Name: "user-profile", Type: "data"})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "src", "pages", "UserProfilePage.tsx"))
	assert.Contains(t, out.String(), "Run: npm install @tanstack/react-query")

	err = generatePage(context.Background(), PageOptions{Common: common(dir, &out, nil), Name: "x", Type: "dashboard"})
	assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))
}

func TestAddComponents(t *testing.T) {
	dir := newProject(t)
	var out bytes.Buffer
	runner := &toolrunner.Recorder{Fail: map[string]bool{"npx shadcn@latest add dialog": true}}

	err := addComponents(context.Background(), AddComponentOptions{
		Common:     common(dir, &out, runner),
		Components: []string{"button,dialog", "card"},
	})
	require.Error(t, err)
	assert.Equal(t, []string{
		"npx shadcn@latest add button -y",
		"npx shadcn@latest add dialog -y",
		"npx shadcn@latest add card -y",
	}, runner.Lines())
	assert.Contains(t, out.String(), "Added card")
}

func TestAddComponents_Registry(t *testing.T) {
	dir := newProject(t)
	runner := &toolrunner.Recorder{}

	err := addComponents(context.Background(), AddComponentOptions{Common: common(dir, &bytes.Buffer{}, runner), Registry: "https://example.com/r/chat.json"})
	require.NoError(t, err)
	assert.Equal(t, []string{"npx shadcn@latest add https://example.com/r/chat.json -y"}, runner.Lines())

	err = addComponents(context.Background(), AddComponentOptions{Common: common(dir, &bytes.Buffer{}, runner), Registry: "chat.json"})
	assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))
}

func TestAddComponents_PresetAndList(t *testing.T) {
	dir := newProject(t)
	var out bytes.Buffer
	runner := &toolrunner.Recorder{}

	err := addComponents(context.Background(), AddComponentOptions{Common: common(dir, &out, runner), Preset: "layout"})
	require.NoError(t, err)
	assert.Len(t, runner.Calls(), len(shared.ComponentPresets["layout"]))

	out.Reset()
	err = addComponents(context.Background(), AddComponentOptions{Common: common(dir, &out, runner), List: true})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "ESSENTIAL")

	err = addComponents(context.Background(), AddComponentOptions{Common: common(dir, &out, runner)})
	assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))
}
