package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/gin_cmd"
	"github.com/pixie-sh/skills-cli/internal/cli/skills/monorepo_cmd"
	"github.com/pixie-sh/skills-cli/internal/cli/skills/nextjs_cmd"
	"github.com/pixie-sh/skills-cli/internal/cli/skills/react_cmd"
	"github.com/pixie-sh/skills-cli/internal/cli/skills/validate_cmd"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
	"github.com/pixie-sh/skills-cli/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "skills",
		Short: "Skills CLI - Scaffolding Generators",
		Long: `Skills CLI generates project skeletons and code for Gin DDD backends, Bun
workspace monorepos, Next.js and Vite + React applications, and validates
skill bundles.`,
		Version:       version.Info(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var debug, _ = cmd.Flags().GetBool("debug")
			level := slog.LevelWarn
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	// Custom version template
	rootCmd.SetVersionTemplate("skills version {{.Version}}\n")

	rootCmd.PersistentFlags().String("config", "", "Path to a skills config file (default: .skills.yaml in the project)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Print what would be written without touching disk or running tools")

	// Register stacks
	rootCmd.AddCommand(gin_cmd.GinCmd())
	rootCmd.AddCommand(monorepo_cmd.MonorepoCmd())
	rootCmd.AddCommand(nextjs_cmd.NextjsCmd())
	rootCmd.AddCommand(react_cmd.ReactCmd())
	rootCmd.AddCommand(validate_cmd.ValidateCmd())

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Build().String())
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !scaffold.IsReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(scaffold.ExitCode(err))
	}
}
