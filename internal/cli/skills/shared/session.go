package shared

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/scaffold"
	"github.com/pixie-sh/skills-cli/internal/toolrunner"
)

// Common holds the options every generator command shares.
type Common struct {
	ProjectPath string
	ConfigPath  string
	DryRun      bool
	Out         io.Writer
	Runner      toolrunner.Runner // defaults to an exec runner on Out
}

// AddProjectPathFlag registers --project-path on cmd.
func AddProjectPathFlag(cmd *cobra.Command) {
	cmd.Flags().String("project-path", ".", "Path to the target project")
}

// CommonFromCmd reads the shared flags of cmd and its parents.
func CommonFromCmd(cmd *cobra.Command) Common {
	var projectPath, _ = cmd.Flags().GetString("project-path")
	var configPath, _ = cmd.Flags().GetString("config")
	var dryRun, _ = cmd.Flags().GetBool("dry-run")

	if projectPath == "" {
		projectPath = "."
	}

	return Common{
		ProjectPath: projectPath,
		ConfigPath:  configPath,
		DryRun:      dryRun,
		Out:         cmd.OutOrStdout(),
	}
}

// Session is the per-invocation state of a generator: the resolved project
// root, its configuration and the writer and reporter bound to it.
type Session struct {
	Ctx      context.Context
	Root     string
	Config   GeneratorConfig
	Writer   *scaffold.Writer
	Reporter *scaffold.Reporter
	Runner   toolrunner.Runner
}

// Open resolves the project root, checks the given markers and loads the
// project configuration.
func (c Common) Open(ctx context.Context, markers ...scaffold.Marker) (*Session, error) {
	root := c.ProjectPath
	if root == "" {
		root = "."
	}
	for _, m := range markers {
		if _, err := scaffold.RequireProject(root, m); err != nil {
			return nil, err
		}
	}

	cfg, err := LoadConfig(root, c.ConfigPath)
	if err != nil {
		return nil, scaffold.UsageError("%v", err)
	}

	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	runner := c.Runner
	if runner == nil {
		runner = toolrunner.NewRunner(out)
	}

	return &Session{
		Ctx:      ctx,
		Root:     filepath.Clean(root),
		Config:   cfg,
		Writer:   scaffold.NewWriter(root, c.DryRun),
		Reporter: scaffold.NewReporter(out, c.DryRun),
		Runner:   runner,
	}, nil
}

// Execute writes plan below the session root and reports its follow-ups.
func (s *Session) Execute(plan scaffold.Plan) error {
	return scaffold.Execute(s.Writer, s.Reporter, plan)
}

// Rel returns path relative to the session root in slash form, for use in
// planned file paths.
func (s *Session) Rel(path string) string {
	rel, err := filepath.Rel(s.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Run executes an external tool in dir. In dry-run mode the command is only
// reported.
func (s *Session) Run(dir, name string, args ...string) error {
	s.Reporter.Title("Running: %s", commandLine(name, args))
	if s.Writer.DryRun() {
		return nil
	}
	_, err := s.Runner.Run(s.Ctx, dir, name, args...)
	return err
}

// Batch runs fn for every item. A failing item is reported once and the rest
// are still attempted; the joined error is returned at the end, marked as
// reported.
func Batch[T any](s *Session, items []T, fn func(T) error) error {
	var errs []error
	for _, item := range items {
		if err := fn(item); err != nil {
			if !scaffold.IsReported(err) {
				s.Reporter.Failure(err)
			}
			errs = append(errs, err)
		}
	}
	return scaffold.Reported(joinErrors(errs))
}
