package monorepo_cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// InitOptions holds all the options for monorepo creation.
type InitOptions struct {
	shared.Common
	Name        string
	SkipGit     bool
	SkipInstall bool
}

// InitCmd returns the cobra command that creates a new monorepo.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a new Bun workspace monorepo",
		Long: `Create a Bun workspace with three packages:

  packages/backend   Hono API on Bun
  packages/frontend  Vite + React + Tailwind + shadcn/ui
  packages/shared    shared types and utilities

Then initialise a git repository and install dependencies with bun, unless
skipped. An existing directory is never overwritten.

Examples:
  skills monorepo init shop
  skills monorepo init shop --skip-install --output ~/src
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var skipGit, _ = cmd.Flags().GetBool("skip-git")
			var skipInstall, _ = cmd.Flags().GetBool("skip-install")
			var output, _ = cmd.Flags().GetString("output")

			common := shared.CommonFromCmd(cmd)
			common.ProjectPath = output

			opts := InitOptions{
				Common:      common,
				Name:        args[0],
				SkipGit:     skipGit,
				SkipInstall: skipInstall,
			}

			return generateMonorepo(cmd.Context(), opts)
		},
	}

	cmd.Flags().Bool("skip-git", false, "Skip git init")
	cmd.Flags().Bool("skip-install", false, "Skip bun install")
	cmd.Flags().String("output", ".", "Directory the monorepo is created in")

	return cmd
}

// workspacePackages are the packages every new monorepo starts with.
var workspacePackages = []struct {
	name string
	kind PackageKind
}{
	{"backend", PackageBackend},
	{"frontend", PackageFrontend},
	{"shared", PackageLibrary},
}

func planMonorepo(name string, cfg shared.MonorepoConfig) (scaffold.Plan, []string, error) {
	root := newPkgData(name, cfg)
	files, err := renderFiles([]templateFile{
		{"templates/root/package.json.tmpl", "package.json"},
		{"templates/root/bunfig.toml.tmpl", "bunfig.toml"},
		{"templates/root/gitignore.tmpl", ".gitignore"},
		{"templates/root/README.md.tmpl", "README.md"},
	}, root)
	if err != nil {
		return scaffold.Plan{}, nil, err
	}

	plan := scaffold.Plan{Files: files}
	var dirs []string
	for _, p := range workspacePackages {
		d := newPkgData(p.name, cfg)
		pkgPlan, err := packageCatalog.Generate(p.kind, d)
		if err != nil {
			return scaffold.Plan{}, nil, err
		}
		// package follow-ups are replaced by the workspace ones below
		pkgPlan.Steps = nil
		pkgPlan.Usage = ""
		plan.Merge(pkgPlan)
		dirs = append(dirs, d.dirs(p.kind)...)
	}

	plan.Steps = []scaffold.Step{
		{Title: "Enter the project:", Lines: []string{"cd " + name}},
		{Title: "Start the development servers:", Lines: []string{"bun run dev"}},
		{Title: "Add shadcn/ui components:", Lines: []string{"skills monorepo add-component --preset essential"}},
		{Title: "Generate your first component:", Lines: []string{"skills monorepo component user-card --type card"}},
	}
	return plan, dirs, nil
}

func generateMonorepo(ctx context.Context, opts InitOptions) error {
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

	plan, dirs, err := planMonorepo(opts.Name, s.Config.Monorepo)
	if err != nil {
		return err
	}

	s.Reporter.Title("Creating monorepo: %s", opts.Name)
	s.Reporter.Detail("Scope", s.Config.Monorepo.Scope)
	s.Reporter.Detail("Location", target)
	s.Reporter.Blank()

	s.Writer = scaffold.NewWriter(target, s.Writer.DryRun())
	if err := s.Writer.MkdirAll(dirs...); err != nil {
		return err
	}
	if err := s.Writer.Apply(plan, s.Reporter); err != nil {
		return err
	}

	if !opts.SkipGit {
		if err := s.Run(target, "git", "init"); err != nil {
			s.Reporter.Warn("git init failed: %v", err)
		}
	}
	if !opts.SkipInstall {
		if err := s.Run(target, "bun", "install"); err != nil {
			s.Reporter.Warn("bun install failed: %v", err)
			plan.Steps = append([]scaffold.Step{{Title: "Install dependencies:", Lines: []string{"bun install"}}}, plan.Steps...)
		}
	}

	s.Reporter.Plan(plan)
	s.Reporter.Success("Monorepo %s created successfully", opts.Name)
	return nil
}
