package gin_cmd

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// GoVersion is the go directive written to generated go.mod files.
const GoVersion = "1.23"

// InitOptions holds all the options for project creation.
type InitOptions struct {
	shared.Common
	Name       string
	ModulePath string
	WithCI     bool
}

// InitCmd returns the cobra command that creates a new Gin project.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a new Gin project",
		Long: `Create a new Gin project with a layered domain-driven layout:
cmd/api entry point, environment config, PostgreSQL via GORM, CORS
middleware and a JSON response envelope.

The project is created in <output>/<name>; an existing directory is never
overwritten. --with-ci adds a Makefile, a docker-compose.yaml running
PostgreSQL and GitHub Actions workflows for tests and release builds.

Examples:
  skills gin init blog
  skills gin init blog --module-path github.com/acme/blog --output ~/src
  skills gin init blog --with-ci
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var modulePath, _ = cmd.Flags().GetString("module-path")
			var output, _ = cmd.Flags().GetString("output")
			var withCI, _ = cmd.Flags().GetBool("with-ci")

			common := shared.CommonFromCmd(cmd)
			common.ProjectPath = output

			opts := InitOptions{
				Common:     common,
				Name:       args[0],
				ModulePath: modulePath,
				WithCI:     withCI,
			}

			return generateProject(cmd.Context(), opts)
		},
	}

	cmd.Flags().String("module-path", "", "Go module path (defaults to the project name)")
	cmd.Flags().String("output", ".", "Directory the project is created in")
	cmd.Flags().Bool("with-ci", false, "Also generate a Makefile, docker-compose.yaml and GitHub Actions workflows")

	return cmd
}

type projectData struct {
	Name       string
	Module     string
	GoVersion  string
	APIPrefix  string
	Port       int
	Config     layer
	Database   layer
	Middleware layer
	Layers     []string
}

func newProjectData(name, module string, cfg shared.GinConfig) (projectData, error) {
	layout, err := newGinLayout(module, cfg)
	if err != nil {
		return projectData{}, err
	}
	configLayer, err := layout.Infrastructure.Sub(module, "config")
	if err != nil {
		return projectData{}, err
	}
	databaseLayer, err := layout.Infrastructure.Sub(module, "database")
	if err != nil {
		return projectData{}, err
	}

	return projectData{
		Name:       name,
		Module:     module,
		GoVersion:  GoVersion,
		APIPrefix:  cfg.APIPrefix,
		Port:       cfg.Port,
		Config:     configLayer,
		Database:   databaseLayer,
		Middleware: layout.Middleware,
		Layers: []string{
			layout.Entities.Dir,
			layout.Repositories.Dir,
			layout.Usecases.Dir,
			layout.Handlers.Dir,
			layout.RepositoryImpls.Dir,
			layout.Infrastructure.Dir,
			layout.Middleware.Dir,
		},
	}, nil
}

// dirs returns every directory the project starts with, including empty
// layer packages.
func (d projectData) dirs() []string {
	return append([]string{"cmd/api", "pkg/response", "scripts", d.Config.Dir, d.Database.Dir}, d.Layers...)
}

type projectFile struct {
	template string
	dest     string
}

var ciFiles = []projectFile{
	{"templates/project/ci/Makefile.tmpl", "Makefile"},
	{"templates/project/ci/docker-compose.yaml.tmpl", "docker-compose.yaml"},
	{"templates/project/ci/tests.yaml.tmpl", ".github/workflows/tests.yaml"},
	{"templates/project/ci/build.yaml.tmpl", ".github/workflows/build.yaml"},
}

func planProject(d projectData, withCI bool) (scaffold.Plan, error) {
	files := []projectFile{
		{"templates/project/go.mod.tmpl", "go.mod"},
		{"templates/project/main.go.tmpl", "cmd/api/main.go"},
		{"templates/project/config.go.tmpl", d.Config.File("config.go")},
		{"templates/project/database.go.tmpl", d.Database.File("database.go")},
		{"templates/project/cors.go.tmpl", d.Middleware.File("cors.go")},
		{"templates/project/response.go.tmpl", path.Join("pkg/response", "response.go")},
		{"templates/project/env.example.tmpl", ".env.example"},
		{"templates/project/gitignore.tmpl", ".gitignore"},
		{"templates/project/README.md.tmpl", "README.md"},
	}
	if withCI {
		files = append(files, ciFiles...)
	}

	var plan scaffold.Plan
	for _, f := range files {
		file, err := renderer.File(f.template, f.dest, d)
		if err != nil {
			return scaffold.Plan{}, err
		}
		plan.Files = append(plan.Files, file)
	}

	plan.Steps = []scaffold.Step{
		{Title: "Enter the project:", Lines: []string{"cd " + d.Name}},
		{Title: "Configure the environment:", Lines: []string{"cp .env.example .env"}},
	}
	if withCI {
		plan.Steps = append(plan.Steps, scaffold.Step{Title: "Start PostgreSQL:", Lines: []string{"make up"}})
	}
	plan.Steps = append(plan.Steps, []scaffold.Step{
		{Title: "Install dependencies:", Lines: []string{"go mod tidy"}},
		{Title: "Generate your first domain:", Lines: []string{`skills gin domain product --fields "name:string,price:float64"`}},
		{Title: "Run the server:", Lines: []string{"go run ./cmd/api", fmt.Sprintf("curl http://localhost:%d/health", d.Port)}},
	}...)
	return plan, nil
}

func generateProject(ctx context.Context, opts InitOptions) error {
	if !scaffold.IsPackageName(opts.Name) {
		return scaffold.UsageError("invalid project name %q: use lowercase letters, digits, '.', '-' or '_'", opts.Name)
	}

	s, err := opts.Open(ctx)
	if err != nil {
		return err
	}

	target := filepath.Join(s.Root, opts.Name)
	if scaffold.FileExists(target) {
		return scaffold.PreconditionError("directory %s already exists", target)
	}

	module := firstNonEmpty(opts.ModulePath, s.Config.ModuleName, opts.Name)
	data, err := newProjectData(opts.Name, module, s.Config.Gin)
	if err != nil {
		return err
	}

	plan, err := planProject(data, opts.WithCI)
	if err != nil {
		return err
	}

	s.Reporter.Title("Creating Gin project: %s", opts.Name)
	s.Reporter.Detail("Module", module)
	s.Reporter.Detail("Location", target)
	s.Reporter.Blank()

	s.Writer = scaffold.NewWriter(target, s.Writer.DryRun())
	if err := s.Writer.MkdirAll(data.dirs()...); err != nil {
		return err
	}
	if err := s.Execute(plan); err != nil {
		return err
	}
	s.Reporter.Success("Project %s created successfully", opts.Name)
	return nil
}
