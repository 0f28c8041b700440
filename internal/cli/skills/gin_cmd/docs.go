package gin_cmd

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/openapi"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// DocsOptions holds all the options for OpenAPI generation.
type DocsOptions struct {
	shared.Common
	Output string
	Format string
}

// DocsCmd returns the cobra command that builds an OpenAPI document from the
// project's handlers.
func DocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate an OpenAPI document from Gin handlers",
		Long: `Statically analyse the handler packages for RegisterRoutes route
registrations and write an OpenAPI 3.0 document.

Request bodies are resolved from the structs bound with ShouldBindJSON in the
entity and auth dto packages. Routes behind an auth middleware are marked
with bearer security. Title, version and servers come from the docs_* keys
of the generator config.

Examples:
  skills gin docs
  skills gin docs --format json --output api/openapi.json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var output, _ = cmd.Flags().GetString("output")
			var format, _ = cmd.Flags().GetString("format")

			opts := DocsOptions{
				Common: shared.CommonFromCmd(cmd),
				Output: output,
				Format: format,
			}

			return generateDocs(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	cmd.Flags().StringP("output", "o", "", "Output file (default docs/openapi.<format>)")
	cmd.Flags().String("format", string(openapi.FormatYAML), "Output format: "+scaffold.JoinChoices(openapi.Formats))
	scaffold.RegisterChoices(cmd, "format", openapi.Formats)

	return cmd
}

func generateDocs(ctx context.Context, opts DocsOptions) error {
	format, err := scaffold.Choose("format", opts.Format, openapi.Formats)
	if err != nil {
		return err
	}
	output := opts.Output
	if output == "" {
		output = "docs/openapi." + string(format)
	}

	s, err := opts.Open(ctx, scaffold.GoModule)
	if err != nil {
		return err
	}
	cfg := s.Config.Gin
	authDir := path.Join(path.Dir(cfg.EntityDir), "auth")

	var routes []openapi.Route
	for _, dir := range []string{cfg.HandlerDir, path.Join(authDir, "handler")} {
		full := filepath.Join(s.Root, filepath.FromSlash(dir))
		if !isDir(full) {
			continue
		}
		found, err := openapi.ExtractRoutes(full)
		if err != nil {
			return scaffold.IOError(full, err)
		}
		routes = append(routes, found...)
	}
	if len(routes) == 0 {
		return scaffold.PreconditionError("no routes found in %s: generate a domain first", cfg.HandlerDir)
	}

	resolver := openapi.NewSchemaResolver()
	for _, dir := range []string{cfg.EntityDir, path.Join(authDir, "dto")} {
		full := filepath.Join(s.Root, filepath.FromSlash(dir))
		if err := resolver.LoadDir(full); err != nil {
			return scaffold.IOError(full, err)
		}
	}

	doc := openapi.Build(routes, openapi.BuildOptions{
		Title:       cfg.DocsTitle,
		Version:     cfg.DocsVersion,
		Description: "Generated from the Gin route registrations",
		Servers:     cfg.DocsServers,
		Prefix:      cfg.APIPrefix,
	}, resolver)

	content, err := doc.Encode(format)
	if err != nil {
		return err
	}

	s.Reporter.Title("Generating OpenAPI document")
	s.Reporter.Detail("Handlers", cfg.HandlerDir)
	s.Reporter.Detail("Routes", strconv.Itoa(len(routes)))
	s.Reporter.Detail("Format", string(format))
	s.Reporter.Blank()

	plan := scaffold.Plan{
		Files: []scaffold.File{{Path: filepath.ToSlash(output), Content: content}},
		Steps: []scaffold.Step{
			{Title: "Preview the document:", Lines: []string{"npx @redocly/cli preview-docs " + filepath.ToSlash(output)}},
		},
	}
	if err := s.Execute(plan); err != nil {
		return err
	}
	s.Reporter.Success("OpenAPI document generated")
	return nil
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
