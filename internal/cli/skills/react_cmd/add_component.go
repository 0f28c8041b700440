package react_cmd

import (
	"context"
	"net/url"

	"github.com/pixie-sh/errors-go"
	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// AddComponentOptions holds all the options for installing shadcn/ui
// components.
type AddComponentOptions struct {
	shared.Common
	Components []string
	Preset     string
	Registry   string
	List       bool
}

// AddComponentCmd returns the cobra command that installs shadcn/ui
// components.
func AddComponentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-component [components...]",
		Short: "Install shadcn/ui components",
		Long: `Run "shadcn add" for each component. A failing component is reported and
the remaining ones are still added. --registry installs a single item from a
registry URL instead.

Examples:
  skills react add-component button card
  skills react add-component --preset overlay
  skills react add-component --registry https://example.com/r/chat.json
  skills react add-component --list
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var preset, _ = cmd.Flags().GetString("preset")
			var registry, _ = cmd.Flags().GetString("registry")
			var list, _ = cmd.Flags().GetBool("list")

			opts := AddComponentOptions{
				Common:     shared.CommonFromCmd(cmd),
				Components: args,
				Preset:     preset,
				Registry:   registry,
				List:       list,
			}

			return addComponents(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	cmd.Flags().String("preset", "", "Component preset: "+scaffold.JoinChoices(shared.PresetNames()))
	cmd.Flags().String("registry", "", "Registry item URL to add")
	cmd.Flags().Bool("list", false, "List the available presets")
	scaffold.RegisterChoices(cmd, "preset", shared.PresetNames())

	return cmd
}

func addComponents(ctx context.Context, opts AddComponentOptions) error {
	if opts.List {
		s, err := opts.Open(ctx)
		if err != nil {
			return err
		}
		shared.PrintPresets(s)
		return nil
	}

	if opts.Registry != "" {
		u, err := url.Parse(opts.Registry)
		if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			return scaffold.UsageError("invalid --registry %q: expected an http(s) URL", opts.Registry)
		}
		s, err := opts.Open(ctx, scaffold.NodeProject)
		if err != nil {
			return err
		}
		if err := s.Run(s.Root, s.Config.PackageRunner, "shadcn@latest", "add", opts.Registry, "-y"); err != nil {
			return errors.Wrap(err, "failed to add %s", opts.Registry)
		}
		s.Reporter.Success("Added %s", opts.Registry)
		return nil
	}

	components, err := shared.ResolveComponents(opts.Components, opts.Preset)
	if err != nil {
		return err
	}

	s, err := opts.Open(ctx, scaffold.NodeProject)
	if err != nil {
		return err
	}
	if err := shared.AddComponents(s, s.Root, components); err != nil {
		return err
	}
	s.Reporter.Success("Added %d component(s)", len(components))
	return nil
}
