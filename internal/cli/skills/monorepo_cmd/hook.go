package monorepo_cmd

import (
	"context"
	"path"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/frontend"
	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

var HookKinds = []frontend.HookKind{
	frontend.HookBasic,
	frontend.HookFetch,
	frontend.HookLocalStorage,
	frontend.HookDebounce,
	frontend.HookThrottle,
	frontend.HookToggle,
	frontend.HookPrevious,
	frontend.HookAsync,
}

// HookOptions holds all the options for hook generation.
type HookOptions struct {
	shared.Common
	Name    string
	Type    string
	Package string
}

// HookCmd returns the cobra command that generates a React hook.
func HookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook <name>",
		Short: "Generate a React hook in the frontend package",
		Long: `Generate src/hooks/<useName>.ts in the frontend package and export it
from src/hooks/index.ts. The "use" prefix is added when missing.

Types:
  basic          useState wrapper
  fetch          data fetching with loading and error state
  local-storage  state persisted to localStorage
  debounce       debounced value
  throttle       throttled value
  toggle         boolean toggle
  previous       previous render value
  async          run an async function on demand

Examples:
  skills monorepo hook counter
  skills monorepo hook users --type fetch
  skills monorepo hook useTheme --type local-storage
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind, _ = cmd.Flags().GetString("type")
			var pkg, _ = cmd.Flags().GetString("package")

			opts := HookOptions{
				Common:  shared.CommonFromCmd(cmd),
				Name:    args[0],
				Type:    kind,
				Package: pkg,
			}

			return generateHook(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	addPackageFlag(cmd, "frontend")
	cmd.Flags().String("type", string(frontend.HookBasic), "Hook type: "+scaffold.JoinChoices(HookKinds))
	scaffold.RegisterChoices(cmd, "type", HookKinds)

	return cmd
}

func generateHook(ctx context.Context, opts HookOptions) error {
	kind, err := scaffold.Choose("type", opts.Type, HookKinds)
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

	unit, err := frontend.NewHook(opts.Name, path.Join(pkgDir, "src/hooks"), "@/hooks")
	if err != nil {
		return err
	}
	return generateUnit(s, frontend.Hooks, kind, unit, pkgDir)
}
