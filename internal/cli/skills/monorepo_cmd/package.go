package monorepo_cmd

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// PackageOptions holds all the options for package creation.
type PackageOptions struct {
	shared.Common
	Name string
	Type string
	Port int
}

// PackageCmd returns the cobra command that adds a workspace package.
func PackageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "package <name>",
		Short: "Add a package to the monorepo",
		Long: `Add a backend (Hono), frontend (Vite + React + shadcn/ui) or library
package under packages/<name>. An existing package is never overwritten.

Examples:
  skills monorepo package admin --type frontend
  skills monorepo package worker --type backend --port 3002
  skills monorepo package utils --type library
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind, _ = cmd.Flags().GetString("type")
			var port, _ = cmd.Flags().GetInt("port")

			opts := PackageOptions{
				Common: shared.CommonFromCmd(cmd),
				Name:   args[0],
				Type:   kind,
				Port:   port,
			}

			return generatePackage(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	cmd.Flags().String("type", string(PackageLibrary), "Package type: "+scaffold.JoinChoices(PackageKinds))
	cmd.Flags().Int("port", 0, "Backend port (defaults to the configured backend port)")
	scaffold.RegisterChoices(cmd, "type", PackageKinds)

	return cmd
}

func generatePackage(ctx context.Context, opts PackageOptions) error {
	kind, err := scaffold.Choose("type", opts.Type, PackageKinds)
	if err != nil {
		return err
	}
	if !scaffold.IsPackageName(opts.Name) {
		return scaffold.UsageError("invalid package name %q: use lowercase letters, digits, '.', '-' or '_'", opts.Name)
	}
	if opts.Port < 0 || opts.Port > 65535 {
		return scaffold.UsageError("invalid --port %d", opts.Port)
	}

	s, err := opts.Open(ctx, scaffold.NodeProject)
	if err != nil {
		return err
	}
	packagesDir := filepath.Join(s.Root, scaffold.PackagesDir)
	if !scaffold.FileExists(packagesDir) {
		return scaffold.PreconditionError("not a monorepo project: %s directory not found in %s", scaffold.PackagesDir, s.Root)
	}
	if target := filepath.Join(packagesDir, opts.Name); scaffold.FileExists(target) {
		return scaffold.PreconditionError("package %s already exists", target)
	}

	data := newPkgData(opts.Name, s.Config.Monorepo)
	if opts.Port != 0 {
		data.Port = opts.Port
	}

	plan, err := packageCatalog.Generate(kind, data)
	if err != nil {
		return err
	}
	plan.Steps = append([]scaffold.Step{{Title: "Install workspace dependencies:", Lines: []string{"bun install"}}}, plan.Steps...)

	s.Reporter.Title("Adding %s package: %s", kind, data.FullName)
	if kind == PackageBackend {
		s.Reporter.Detail("Port", strconv.Itoa(data.Port))
	}
	s.Reporter.Blank()

	if err := s.Writer.MkdirAll(data.dirs(kind)...); err != nil {
		return err
	}
	if err := s.Execute(plan); err != nil {
		return err
	}
	s.Reporter.Success("Package %s created successfully", data.FullName)
	return nil
}
