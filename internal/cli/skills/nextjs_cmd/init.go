package nextjs_cmd

import (
	"context"
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
	PagesRouter  bool
	SkipShadcn   bool
	SkipPackages bool
}

// InitCmd returns the cobra command that creates a new Next.js project.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a new Next.js project",
		Long: `Create a Next.js project with create-next-app (Tailwind, ESLint, src/
directory, "@/*" import alias), initialise shadcn/ui, install TanStack Query,
Axios, Zustand and next-themes, and add the usual source directories, a
.env.local and a README.

If "shadcn init" fails, components.json and src/lib/utils.ts are written
directly and the shadcn/ui runtime dependencies are installed with npm.

Examples:
  skills nextjs init shop
  skills nextjs init shop --skip-packages --output ~/src
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var noTypeScript, _ = cmd.Flags().GetBool("no-typescript")
			var pagesRouter, _ = cmd.Flags().GetBool("pages-router")
			var skipShadcn, _ = cmd.Flags().GetBool("skip-shadcn")
			var skipPackages, _ = cmd.Flags().GetBool("skip-packages")
			var output, _ = cmd.Flags().GetString("output")

			common := shared.CommonFromCmd(cmd)
			common.ProjectPath = output

			opts := InitOptions{
				Common:       common,
				Name:         args[0],
				NoTypeScript: noTypeScript,
				PagesRouter:  pagesRouter,
				SkipShadcn:   skipShadcn,
				SkipPackages: skipPackages,
			}

			return generateProject(cmd.Context(), opts)
		},
	}

	cmd.Flags().Bool("no-typescript", false, "Use JavaScript instead of TypeScript")
	cmd.Flags().Bool("pages-router", false, "Use the Pages Router instead of the App Router")
	cmd.Flags().Bool("skip-shadcn", false, "Skip shadcn/ui initialisation")
	cmd.Flags().Bool("skip-packages", false, "Skip the additional npm packages")
	cmd.Flags().String("output", ".", "Directory the project is created in")

	return cmd
}

// ExtraPackages are installed into every new project.
var ExtraPackages = []string{
	"@tanstack/react-query@^5.90.5",
	"axios@^1.12.2",
	"zustand@^5.0.8",
	"next-themes@^0.4.4",
}

// shadcnDeps are installed when components.json is written by hand.
var shadcnDeps = []string{"class-variance-authority", "clsx", "tailwind-merge", "@radix-ui/react-slot"}

var projectDirs = []string{
	"src/components/ui",
	"src/components/layout",
	"src/lib",
	"src/hooks",
	"src/types",
	"src/utils",
	"src/services",
	"src/store",
}

type projectData struct {
	Name       string
	TypeScript bool
	AppRouter  bool
	GlobalsCSS string
}

func newProjectData(opts InitOptions) projectData {
	d := projectData{
		Name:       opts.Name,
		TypeScript: !opts.NoTypeScript,
		AppRouter:  !opts.PagesRouter,
		GlobalsCSS: "src/app/globals.css",
	}
	if !d.AppRouter {
		d.GlobalsCSS = "src/styles/globals.css"
	}
	return d
}

// createArgs are the create-next-app arguments for d.
func (d projectData) createArgs() []string {
	args := []string{"create-next-app@latest", d.Name}
	if d.TypeScript {
		args = append(args, "--typescript")
	} else {
		args = append(args, "--js")
	}
	args = append(args, "--tailwind", "--eslint")
	if d.AppRouter {
		args = append(args, "--app")
	} else {
		args = append(args, "--no-app")
	}
	return append(args, "--src-dir", "--import-alias", "@/*", "--no-git", "--yes")
}

func planProject(d projectData) (scaffold.Plan, error) {
	files, err := renderFiles([]templateFile{
		{"templates/project/env.local.tmpl", ".env.local"},
		{"templates/project/README.md.tmpl", "README.md"},
	}, d)
	if err != nil {
		return scaffold.Plan{}, err
	}
	return scaffold.Plan{
		Files: files,
		Steps: []scaffold.Step{
			{Title: "Enter the project:", Lines: []string{"cd " + d.Name}},
			{Title: "Start the development server:", Lines: []string{"npm run dev"}},
			{Title: "Add shadcn/ui components:", Lines: []string{"npx shadcn@latest add button card"}},
			{Title: "Add authentication:", Lines: []string{"skills nextjs auth --provider local", "skills nextjs auth --provider google"}},
		},
	}, nil
}

// planManualShadcn writes the files "shadcn init" would have created.
func planManualShadcn(d projectData) (scaffold.Plan, error) {
	utils := templateFile{"templates/project/utils.ts.tmpl", "src/lib/utils.ts"}
	if !d.TypeScript {
		utils = templateFile{"templates/project/utils.js.tmpl", "src/lib/utils.js"}
	}
	files, err := renderFiles([]templateFile{
		{"templates/project/components.json.tmpl", "components.json"},
		utils,
	}, d)
	if err != nil {
		return scaffold.Plan{}, err
	}
	return scaffold.Plan{Files: files}, nil
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

	data := newProjectData(opts)
	plan, err := planProject(data)
	if err != nil {
		return err
	}

	s.Reporter.Title("Creating Next.js project: %s", opts.Name)
	s.Reporter.Detail("Location", target)
	s.Reporter.Blank()

	if err := s.Run(s.Root, s.Config.PackageRunner, data.createArgs()...); err != nil {
		return errors.Wrap(err, "create-next-app failed")
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

	s.Writer = scaffold.NewWriter(target, s.Writer.DryRun())
	if err := s.Writer.MkdirAll(projectDirs...); err != nil {
		return err
	}
	if err := s.Execute(plan); err != nil {
		return err
	}
	s.Reporter.Success("Project %s initialized successfully", opts.Name)
	return nil
}
