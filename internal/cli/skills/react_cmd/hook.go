package react_cmd

import (
	"context"

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
	frontend.HookMediaQuery,
	frontend.HookToggle,
}

// HookOptions holds all the options for hook generation.
type HookOptions struct {
	shared.Common
	Name string
	Type string
}

// HookCmd returns the cobra command that generates a custom hook.
func HookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook <name>",
		Short: "Generate a custom React hook",
		Long: `Generate src/hooks/<useName>.ts and export it from src/hooks/index.ts.
A "use" prefix is added to the name when missing.

Types: basic, fetch, local-storage, debounce, media-query, toggle

Examples:
  skills react hook user-data --type fetch
  skills react hook useTheme --type local-storage
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind, _ = cmd.Flags().GetString("type")

			opts := HookOptions{
				Common: shared.CommonFromCmd(cmd),
				Name:   args[0],
				Type:   kind,
			}

			return generateHook(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	cmd.Flags().String("type", string(frontend.HookBasic), "Hook type: "+scaffold.JoinChoices(HookKinds))
	scaffold.RegisterChoices(cmd, "type", HookKinds)

	return cmd
}

func generateHook(ctx context.Context, opts HookOptions) error {
	kind, err := scaffold.Choose("type", opts.Type, HookKinds)
	if err != nil {
		return err
	}

	s, err := opts.Open(ctx, scaffold.NodeProject)
	if err != nil {
		return err
	}

	unit, err := frontend.NewHook(opts.Name, "src/hooks", "@/hooks")
	if err != nil {
		return err
	}
	return generateUnit(s, frontend.Hooks, kind, unit)
}
