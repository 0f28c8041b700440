package monorepo_cmd

import (
	"context"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/frontend"
	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

var ComponentKinds = []frontend.ComponentKind{
	frontend.ComponentBasic,
	frontend.ComponentChildren,
	frontend.ComponentState,
	frontend.ComponentForm,
	frontend.ComponentCard,
	frontend.ComponentList,
	frontend.ComponentModal,
}

// ComponentOptions holds all the options for component generation.
type ComponentOptions struct {
	shared.Common
	Name    string
	Type    string
	Dir     string
	Package string
}

// ComponentCmd returns the cobra command that generates a React component.
func ComponentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "component <name>",
		Short: "Generate a React component in the frontend package",
		Long: `Generate src/components/[dir/]<Name>.tsx in the frontend package and
export it from the sibling index.ts.

Types:
  basic     props and a wrapper div
  children  wraps children
  state     useState counter
  form      controlled form with submit handler
  card      shadcn/ui card
  list      generic item list
  modal     shadcn/ui dialog

Examples:
  skills monorepo component user-card --type card
  skills monorepo component login-form --type form --dir auth
  skills monorepo component confirm --type modal --package admin
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind, _ = cmd.Flags().GetString("type")
			var dir, _ = cmd.Flags().GetString("dir")
			var pkg, _ = cmd.Flags().GetString("package")

			opts := ComponentOptions{
				Common:  shared.CommonFromCmd(cmd),
				Name:    args[0],
				Type:    kind,
				Dir:     dir,
				Package: pkg,
			}

			return generateComponent(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	addPackageFlag(cmd, "frontend")
	cmd.Flags().String("type", string(frontend.ComponentBasic), "Component type: "+scaffold.JoinChoices(ComponentKinds))
	cmd.Flags().String("dir", "", "Subdirectory of src/components")
	scaffold.RegisterChoices(cmd, "type", ComponentKinds)

	return cmd
}

func addPackageFlag(cmd *cobra.Command, kind string) {
	cmd.Flags().String("package", "", "Workspace package name (defaults to the first "+kind+" package)")
}

// subdir validates a user supplied directory below a package source folder.
func subdir(dir string) (string, error) {
	dir = strings.Trim(strings.ReplaceAll(dir, "\\", "/"), "/")
	if dir == "" {
		return "", nil
	}
	clean := path.Clean(dir)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", scaffold.UsageError("invalid --dir %q: must stay inside the package", dir)
	}
	return clean, nil
}

// locate resolves a workspace package and returns its slash path relative to
// the session root.
func locate(s *shared.Session, name string, m scaffold.Marker) (string, error) {
	dir, err := scaffold.LocatePackage(s.Root, name, m)
	if err != nil {
		return "", err
	}
	return s.Rel(dir), nil
}

// generateUnit writes a frontend unit produced by catalog and reports it.
func generateUnit[K ~string](s *shared.Session, catalog *scaffold.Catalog[K, frontend.Unit], kind K, u frontend.Unit, pkgDir string) error {
	u.Runner = s.Config.PackageRunner
	plan, err := catalog.Generate(kind, u)
	if err != nil {
		return err
	}
	if len(plan.Dependencies) > 0 {
		plan.Install = "bun add --cwd " + pkgDir
	}

	s.Reporter.Title("Generating %s %s: %s", kind, catalog.Category(), u.Name)
	s.Reporter.Detail("Package", pkgDir)
	s.Reporter.Detail("Location", u.Dir)
	s.Reporter.Blank()

	if err := s.Execute(plan); err != nil {
		return err
	}
	s.Reporter.Success("%s %s created successfully", scaffold.Pascal(catalog.Category()), u.Name)
	return nil
}

func generateComponent(ctx context.Context, opts ComponentOptions) error {
	kind, err := scaffold.Choose("type", opts.Type, ComponentKinds)
	if err != nil {
		return err
	}
	dir, err := subdir(opts.Dir)
	if err != nil {
		return err
	}

	s, err := opts.Open(ctx)
	if err != nil {
		return err
	}
	pkgDir, err := locate(s, opts.Package, scaffold.FrontendPackage)
	if err != nil {
		return err
	}

	importPath := path.Join("@/components", dir)
	unit, err := frontend.NewComponent(opts.Name, path.Join(pkgDir, "src/components", dir), importPath)
	if err != nil {
		return err
	}
	return generateUnit(s, frontend.Components, kind, unit, pkgDir)
}
