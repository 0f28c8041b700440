package monorepo_cmd

import (
	"embed"
	"path"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

//go:embed templates
var Templates embed.FS

var renderer = scaffold.NewRenderer(Templates)

// templateFile pairs an embedded template with its destination.
type templateFile struct {
	template string
	dest     string
}

func renderFiles(files []templateFile, data any) ([]scaffold.File, error) {
	out := make([]scaffold.File, 0, len(files))
	for _, f := range files {
		file, err := renderer.File(f.template, f.dest, data)
		if err != nil {
			return nil, err
		}
		out = append(out, file)
	}
	return out, nil
}

// PackageKind selects the layout of a workspace package.
type PackageKind string

const (
	PackageBackend  PackageKind = "backend"
	PackageFrontend PackageKind = "frontend"
	PackageLibrary  PackageKind = "library"
)

var PackageKinds = []PackageKind{PackageBackend, PackageFrontend, PackageLibrary}

// pkgData is the template data of one workspace package. Dir is the slash
// path of the package relative to the workspace root.
type pkgData struct {
	Name        string
	Scope       string
	FullName    string
	Title       string
	Dir         string
	Port        int
	BackendPort int
}

func newPkgData(name string, cfg shared.MonorepoConfig) pkgData {
	return pkgData{
		Name:        name,
		Scope:       cfg.Scope,
		FullName:    cfg.Scope + "/" + name,
		Title:       scaffold.Title(name),
		Dir:         path.Join(scaffold.PackagesDir, name),
		Port:        cfg.BackendPort,
		BackendPort: cfg.BackendPort,
	}
}

func (d pkgData) file(name string) string {
	return path.Join(d.Dir, name)
}

// dirs are the empty directories a package starts with.
var packageDirs = map[PackageKind][]string{
	PackageBackend:  {"src/routes", "src/middleware", "src/db"},
	PackageFrontend: {"src/components/ui", "src/hooks", "src/pages", "public"},
	PackageLibrary:  {"src"},
}

func (d pkgData) dirs(kind PackageKind) []string {
	out := make([]string, 0, len(packageDirs[kind]))
	for _, dir := range packageDirs[kind] {
		out = append(out, d.file(dir))
	}
	return out
}

// packageCatalog renders a package below packages/<name>.
var packageCatalog = scaffold.NewCatalog[PackageKind, pkgData]("package").
	Register(PackageBackend, planBackend).
	Register(PackageFrontend, planFrontend).
	Register(PackageLibrary, planLibrary)

func planBackend(d pkgData) (scaffold.Plan, error) {
	files, err := renderFiles([]templateFile{
		{"templates/backend/package.json.tmpl", d.file("package.json")},
		{"templates/backend/tsconfig.json.tmpl", d.file("tsconfig.json")},
		{"templates/backend/index.ts.tmpl", d.file("src/index.ts")},
		{"templates/backend/routes_index.ts.tmpl", d.file("src/routes/index.ts")},
	}, d)
	if err != nil {
		return scaffold.Plan{}, err
	}
	return scaffold.Plan{
		Files: files,
		Steps: []scaffold.Step{
			{Title: "Start the backend:", Lines: []string{"bun run --cwd " + d.Dir + " dev"}},
		},
	}, nil
}

func planFrontend(d pkgData) (scaffold.Plan, error) {
	files, err := renderFiles([]templateFile{
		{"templates/frontend/package.json.tmpl", d.file("package.json")},
		{"templates/frontend/tsconfig.json.tmpl", d.file("tsconfig.json")},
		{"templates/frontend/vite.config.ts.tmpl", d.file("vite.config.ts")},
		{"templates/frontend/components.json.tmpl", d.file("components.json")},
		{"templates/frontend/index.html.tmpl", d.file("index.html")},
		{"templates/frontend/index.css.tmpl", d.file("src/index.css")},
		{"templates/frontend/utils.ts.tmpl", d.file("src/lib/utils.ts")},
		{"templates/frontend/App.tsx.tmpl", d.file("src/App.tsx")},
		{"templates/frontend/main.tsx.tmpl", d.file("src/main.tsx")},
	}, d)
	if err != nil {
		return scaffold.Plan{}, err
	}
	return scaffold.Plan{
		Files: files,
		Steps: []scaffold.Step{
			{Title: "Start the frontend:", Lines: []string{"bun run --cwd " + d.Dir + " dev"}},
			{Title: "Add shadcn/ui components:", Lines: []string{"skills monorepo add-component --preset essential"}},
		},
	}, nil
}

func planLibrary(d pkgData) (scaffold.Plan, error) {
	files, err := renderFiles([]templateFile{
		{"templates/library/package.json.tmpl", d.file("package.json")},
		{"templates/library/tsconfig.json.tmpl", d.file("tsconfig.json")},
		{"templates/library/index.ts.tmpl", d.file("src/index.ts")},
	}, d)
	if err != nil {
		return scaffold.Plan{}, err
	}
	return scaffold.Plan{
		Files: files,
		Usage: "import { API_BASE_URL } from '" + d.FullName + "'",
		Steps: []scaffold.Step{
			{Title: "Depend on it from another package:", Lines: []string{`"` + d.FullName + `": "workspace:*"`}},
		},
	}, nil
}
