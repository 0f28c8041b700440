// Package commands provides public access to the skills generators for
// embedding in other CLIs.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/gin_cmd"
	"github.com/pixie-sh/skills-cli/internal/cli/skills/monorepo_cmd"
	"github.com/pixie-sh/skills-cli/internal/cli/skills/nextjs_cmd"
	"github.com/pixie-sh/skills-cli/internal/cli/skills/react_cmd"
	"github.com/pixie-sh/skills-cli/internal/cli/skills/validate_cmd"
)

// GinCmd returns the gin command group: init, domain, infra, middleware,
// auth and docs.
func GinCmd() *cobra.Command {
	return gin_cmd.GinCmd()
}

// MonorepoCmd returns the monorepo command group.
func MonorepoCmd() *cobra.Command {
	return monorepo_cmd.MonorepoCmd()
}

// NextjsCmd returns the nextjs command group.
func NextjsCmd() *cobra.Command {
	return nextjs_cmd.NextjsCmd()
}

// ReactCmd returns the react command group.
func ReactCmd() *cobra.Command {
	return react_cmd.ReactCmd()
}

// ValidateCmd returns the skill bundle validator.
func ValidateCmd() *cobra.Command {
	return validate_cmd.ValidateCmd()
}

// All returns every command group, in the order the skills binary registers
// them. The groups read the persistent --config, --debug and --dry-run flags
// when the embedding root defines them.
func All() []*cobra.Command {
	return []*cobra.Command{GinCmd(), MonorepoCmd(), NextjsCmd(), ReactCmd(), ValidateCmd()}
}
