package react_cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pixie-sh/errors-go"
	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// InitOptions holds all the options for project creation.
type InitOptions struct {
	shared.Common
	Name         string
	NoTypeScript bool
	SkipShadcn   bool
	SkipPackages bool
}

// InitCmd returns the cobra command that creates a Vite + React project.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a new Vite + React project",
		Long: `Create a project with "npm create vite", then add Tailwind CSS through its
Vite plugin, the @ import alias, shadcn/ui and the usual client packages
(React Router, TanStack Query, Axios, Zustand).

When "shadcn init" fails, components.json and the cn() helper are written
directly instead.

Examples:
  skills react init dashboard
  skills react init site --no-typescript --skip-packages
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var noTS, _ = cmd.Flags().GetBool("no-typescript")
			var skipShadcn, _ = cmd.Flags().GetBool("skip-shadcn")
			var skipPackages, _ = cmd.Flags().GetBool("skip-packages")
			var output, _ = cmd.Flags().GetString("output")

			common := shared.CommonFromCmd(cmd)
			common.ProjectPath = output

			opts := InitOptions{
				Common:       common,
				Name:         args[0],
				NoTypeScript: noTS,
				SkipShadcn:   skipShadcn,
				SkipPackages: skipPackages,
			}

			return generateProject(cmd.Context(), opts)
		},
	}

	cmd.Flags().Bool("no-typescript", false, "Use JavaScript instead of TypeScript")
	cmd.Flags().Bool("skip-shadcn", false, "Skip shadcn/ui setup")
	cmd.Flags().Bool("skip-packages", false, "Skip the additional client packages")
	cmd.Flags().String("output", ".", "Directory the project is created in")

	return cmd
}

// ExtraPackages are installed into every new project.
var ExtraPackages = []string{
	"react-router-dom@^7.9.4",
	"@tanstack/react-query@^5.90.5",
	"axios@^1.12.2",
	"zustand@^5.0.8",
}

var (
	tailwindPackages = []string{"tailwindcss", "@tailwindcss/vite"}
	shadcnDeps       = []string{"class-variance-authority", "clsx", "tailwind-merge", "@radix-ui/react-slot"}
)

var projectDirs = []string{
	"src/components/ui",
	"src/components/layout",
	"src/pages",
	"src/hooks",
	"src/lib",
	"src/services",
	"src/store",
	"src/types",
	"src/utils",
}

type projectData struct {
	Name       string
	TypeScript bool
}

func (d projectData) template() string {
	if d.TypeScript {
		return "react-ts"
	}
	return "react"
}

func (d projectData) ext() string {
	if d.TypeScript {
		return "ts"
	}
	return "js"
}

// planTooling configures Tailwind and the @ alias, which shadcn init expects
// to find.
func planTooling(d projectData) (scaffold.Plan, error) {
	var files []scaffold.File
	for _, f := range []struct{ template, dest string }{
		{"templates/project/vite.config.tmpl", "vite.config." + d.ext()},
		{"templates/project/index.css.tmpl", "src/index.css"},
	} {
		file, err := renderer.File(f.template, f.dest, d)
		if err != nil {
			return scaffold.Plan{}, err
		}
		files = append(files, file)
	}
	return scaffold.Plan{Files: files}, nil
}

// planManualShadcn writes the files "shadcn init" would have created.
func planManualShadcn(d projectData) (scaffold.Plan, error) {
	components, err := renderer.File("templates/project/components.json.tmpl", "components.json", d)
	if err != nil {
		return scaffold.Plan{}, err
	}
	utils, err := renderer.File("templates/project/utils."+d.ext()+".tmpl", "src/lib/utils."+d.ext(), d)
	if err != nil {
		return scaffold.Plan{}, err
	}
	return scaffold.Plan{Files: []scaffold.File{components, utils}}, nil
}

func planProject(d projectData) (scaffold.Plan, error) {
	readme, err := renderer.File("templates/project/README.md.tmpl", "README.md", d)
	if err != nil {
		return scaffold.Plan{}, err
	}
	return scaffold.Plan{
		Files: []scaffold.File{readme},
		Steps: []scaffold.Step{
			{Title: "Enter the project:", Lines: []string{"cd " + d.Name}},
			{Title: "Start the development server:", Lines: []string{"npm run dev"}},
			{Title: "Add shadcn/ui components:", Lines: []string{"skills react add-component button card dialog"}},
		},
	}, nil
}

// aliasTSConfig returns tsconfig.json with the @/* path alias added. ok is
// false when the file is missing or is not plain JSON.
func aliasTSConfig(root string) (scaffold.File, bool) {
	data, err := os.ReadFile(filepath.Join(root, "tsconfig.json"))
	if err != nil {
		return scaffold.File{}, false
	}
	var cfg map[string]any
	if err := json.Unmarshal(data, &cfg); err != nil {
		return scaffold.File{}, false
	}
	opts, _ := cfg["compilerOptions"].(map[string]any)
	if opts == nil {
		opts = map[string]any{}
	}
	opts["baseUrl"] = "."
	opts["paths"] = map[string]any{"@/*": []string{"./src/*"}}
	cfg["compilerOptions"] = opts

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return scaffold.File{}, false
	}
	return scaffold.File{Path: "tsconfig.json", Content: append(out, '\n')}, true
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

	data := projectData{Name: opts.Name, TypeScript: !opts.NoTypeScript}
	plan, err := planProject(data)
	if err != nil {
		return err
	}
	tooling, err := planTooling(data)
	if err != nil {
		return err
	}

	s.Reporter.Title("Creating React project: %s", opts.Name)
	s.Reporter.Detail("Location", target)
	s.Reporter.Detail("Template", data.template())
	s.Reporter.Blank()

	if err := s.Run(s.Root, "npm", "create", "vite@latest", opts.Name, "--", "--template", data.template()); err != nil {
		return errors.Wrap(err, "npm create vite failed")
	}
	if err := s.Run(target, "npm", "install"); err != nil {
		return errors.Wrap(err, "npm install failed")
	}
	if err := s.Run(target, "npm", append([]string{"install", "-D"}, tailwindPackages...)...); err != nil {
		return errors.Wrap(err, "failed to install Tailwind CSS")
	}

	s.Writer = scaffold.NewWriter(target, s.Writer.DryRun())
	if data.TypeScript {
		if file, ok := aliasTSConfig(target); ok {
			tooling.Files = append(tooling.Files, file)
		} else if !s.Writer.DryRun() {
			s.Reporter.Warn("could not update tsconfig.json: add the @/* path alias by hand")
		}
	}
	if err := s.Writer.Apply(tooling, s.Reporter); err != nil {
		return err
	}

	if !opts.SkipShadcn {
		if err := s.Run(target, s.Config.PackageRunner, "shadcn@latest", "init", "-d"); err != nil {
			s.Reporter.Warn("shadcn init failed, configuring shadcn/ui manually")
			if err := s.Run(target, "npm", append([]string{"install"}, shadcnDeps...)...); err != nil {
				return errors.Wrap(err, "failed to install shadcn/ui dependencies")
			}
			manual, err := planManualShadcn(data)
			if err != nil {
				return err
			}
			plan.Files = append(manual.Files, plan.Files...)
		}
	}

	if !opts.SkipPackages {
		if err := s.Run(target, "npm", append([]string{"install"}, ExtraPackages...)...); err != nil {
			s.Reporter.Warn("failed to install some packages: %v", err)
		}
	}

	if err := s.Writer.MkdirAll(projectDirs...); err != nil {
		return err
	}
	if err := s.Execute(plan); err != nil {
		return err
	}
	s.Reporter.Success("Project %s initialized successfully", opts.Name)
	return nil
}
