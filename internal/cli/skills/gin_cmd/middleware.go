package gin_cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// MiddlewareKind names a generated middleware.
type MiddlewareKind string

const (
	MiddlewareCORS        MiddlewareKind = "cors"
	MiddlewareRateLimit   MiddlewareKind = "ratelimit"
	MiddlewareLogging     MiddlewareKind = "logging"
	MiddlewareRecovery    MiddlewareKind = "recovery"
	MiddlewareTimeout     MiddlewareKind = "timeout"
	MiddlewareCompression MiddlewareKind = "compression"
	MiddlewareSecurity    MiddlewareKind = "security"
	MiddlewareRequestID   MiddlewareKind = "requestid"
	MiddlewareMetrics     MiddlewareKind = "metrics"
	MiddlewareValidation  MiddlewareKind = "validation"
)

var MiddlewareKinds = []MiddlewareKind{
	MiddlewareCORS, MiddlewareRateLimit, MiddlewareLogging, MiddlewareRecovery, MiddlewareTimeout,
	MiddlewareCompression, MiddlewareSecurity, MiddlewareRequestID, MiddlewareMetrics, MiddlewareValidation,
}

var middlewareDeps = map[MiddlewareKind][]string{
	MiddlewareCORS:        {"github.com/gin-contrib/cors"},
	MiddlewareRateLimit:   {"golang.org/x/time/rate"},
	MiddlewareCompression: {"github.com/gin-contrib/gzip"},
	MiddlewareRequestID:   {"github.com/google/uuid"},
	MiddlewareMetrics: {
		"github.com/prometheus/client_golang/prometheus",
		"github.com/prometheus/client_golang/prometheus/promauto",
	},
	MiddlewareValidation: {"github.com/go-playground/validator/v10"},
}

var middlewareCatalog = func() *scaffold.Catalog[MiddlewareKind, layer] {
	c := scaffold.NewCatalog[MiddlewareKind, layer]("middleware")
	for _, k := range MiddlewareKinds {
		c.Register(k, middlewareGenerator(k))
	}
	return c
}()

func middlewareGenerator(kind MiddlewareKind) scaffold.Generator[layer] {
	return func(dir layer) (scaffold.Plan, error) {
		name := string(kind)
		file, err := renderer.File("templates/middleware/"+name+".go.tmpl", dir.File(name+".go"), dir)
		if err != nil {
			return scaffold.Plan{}, err
		}
		usage, err := renderer.Render("templates/middleware/usage/"+name+".txt", dir)
		if err != nil {
			return scaffold.Plan{}, err
		}
		return scaffold.Plan{
			Files:        []scaffold.File{file},
			Dependencies: middlewareDeps[kind],
			Install:      "go get",
			Usage:        string(usage),
		}, nil
	}
}

// MiddlewareOptions holds all the options for middleware generation.
type MiddlewareOptions struct {
	shared.Common
	Types      []string
	ModuleName string
}

// MiddlewareCmd returns the cobra command for middleware generation.
func MiddlewareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "middleware",
		Short: "Add HTTP middleware to a Gin project",
		Long: `Add one or more middleware files to <middleware_dir>.

Available types:
  cors, ratelimit, logging, recovery, timeout, compression, security,
  requestid, metrics, validation

The cors middleware keeps the CORS(origins) constructor used by the project
skeleton, so regenerating it does not break cmd/api/main.go.

Examples:
  skills gin middleware --type ratelimit
  skills gin middleware --type requestid --type logging --type recovery
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var types, _ = cmd.Flags().GetStringSlice("type")
			var moduleName, _ = cmd.Flags().GetString("module-name")

			opts := MiddlewareOptions{
				Common:     shared.CommonFromCmd(cmd),
				Types:      types,
				ModuleName: moduleName,
			}

			return generateMiddleware(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	cmd.Flags().StringSlice("type", nil, "Middleware type (repeatable): "+scaffold.JoinChoices(MiddlewareKinds))
	cmd.Flags().String("module-name", "", "Go module name (auto-detected from go.mod if not provided)")
	_ = cmd.MarkFlagRequired("type")
	scaffold.RegisterChoices(cmd, "type", MiddlewareKinds)

	return cmd
}

func generateMiddleware(ctx context.Context, opts MiddlewareOptions) error {
	kinds, err := scaffold.ChooseAll("type", opts.Types, MiddlewareKinds)
	if err != nil {
		return err
	}
	if len(kinds) == 0 {
		return scaffold.UsageError("at least one --type is required (choose from: %s)", scaffold.JoinChoices(MiddlewareKinds))
	}

	s, err := opts.Open(ctx, scaffold.GoModule)
	if err != nil {
		return err
	}
	module, err := shared.ResolveModule(firstNonEmpty(opts.ModuleName, s.Config.ModuleName), s.Root)
	if err != nil {
		return scaffold.PreconditionError("%v", err)
	}
	layout, err := newGinLayout(module, s.Config.Gin)
	if err != nil {
		return err
	}

	return shared.Batch(s, kinds, func(k MiddlewareKind) error {
		s.Reporter.Title("Adding %s middleware", k)

		plan, err := middlewareCatalog.Generate(k, layout.Middleware)
		if err != nil {
			return err
		}
		if err := s.Execute(plan); err != nil {
			return err
		}
		s.Reporter.Success("%s middleware added successfully", k)
		return nil
	})
}
