package validate_cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

var (
	markPass = color.New(color.FgGreen).Sprint("✓")
	markWarn = color.New(color.FgYellow).Sprint("⚠")
	markFail = color.New(color.FgRed).Sprint("✗")
)

// ValidateOptions holds all the options for skill validation.
type ValidateOptions struct {
	shared.Common
	Dir   string
	Stack string
}

// ValidateCmd returns the cobra command that checks a skill bundle.
func ValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <skill-dir>",
		Short: "Validate a skill bundle",
		Long: `Check the layout of a skill bundle: SKILL.md with YAML front matter
(name, description), README.md, scripts/, references/ and examples/, the
required sections and the scripts of the stack.

The stack is taken from --stack, or inferred from the front matter name
("gin-developer" selects gin). Without a stack only the common layout is
checked.

Failures exit with status 1; warnings are printed but do not fail.

Examples:
  skills validate ./skills/gin-developer
  skills validate . --stack react
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var stack, _ = cmd.Flags().GetString("stack")

			opts := ValidateOptions{
				Common: shared.CommonFromCmd(cmd),
				Dir:    args[0],
				Stack:  stack,
			}

			return validateSkill(cmd.Context(), opts)
		},
	}

	cmd.Flags().String("stack", "", "Skill stack: "+scaffold.JoinChoices(Stacks))
	scaffold.RegisterChoices(cmd, "stack", Stacks)

	return cmd
}

func loadSkill(dir string) *skill {
	sk := &skill{dir: dir}
	if data, err := os.ReadFile(filepath.Join(dir, "SKILL.md")); err == nil {
		sk.hasSkill = true
		sk.skillMD = string(data)
		sk.fm, sk.body, sk.fmErr = ParseFrontMatter(sk.skillMD)
	}
	if data, err := os.ReadFile(filepath.Join(dir, "README.md")); err == nil {
		sk.readme = string(data)
	}
	return sk
}

// resolveStack picks the profile from the flag, the front matter name or the
// bundle directory name, in that order.
func resolveStack(flag string, sk *skill) (Stack, error) {
	if flag != "" {
		return scaffold.Choose("stack", flag, Stacks)
	}
	if s, ok := inferStack(sk.fm.Name); ok {
		return s, nil
	}
	if s, ok := inferStack(filepath.Base(filepath.Clean(sk.dir))); ok {
		return s, nil
	}
	return "", nil
}

// Validate runs every check against the bundle in dir.
func Validate(dir string, stack Stack) []Check {
	return runChecks(loadSkill(dir), stack)
}

func runChecks(sk *skill, stack Stack) []Check {
	sk.profile = ProfileFor(stack)
	return []Check{
		checkStructure(sk),
		checkSkillMD(sk),
		checkScripts(sk),
		checkDocumentation(sk),
	}
}

func validateSkill(_ context.Context, opts ValidateOptions) error {
	info, err := os.Stat(opts.Dir)
	if err != nil || !info.IsDir() {
		return scaffold.PreconditionError("skill directory %q does not exist", opts.Dir)
	}

	sk := loadSkill(opts.Dir)
	stack, err := resolveStack(opts.Stack, sk)
	if err != nil {
		return err
	}
	slog.Debug("validating skill", "dir", opts.Dir, "stack", stack)

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	checks := runChecks(sk, stack)
	failed := printReport(out, opts.Dir, stack, checks)
	if failed > 0 {
		return scaffold.InvalidError("%d of %d checks failed", failed, len(checks))
	}
	return nil
}

func printReport(w io.Writer, dir string, stack Stack, checks []Check) int {
	name := "generic"
	if stack != "" {
		name = string(stack)
	}
	fmt.Fprintf(w, "Validating skill %s (%s)\n", dir, name)

	warnings := 0
	for _, c := range checks {
		fmt.Fprintf(w, "\n=== %s ===\n\n", c.Name)
		for _, f := range c.Findings {
			mark := markPass
			switch f.Level {
			case Warn:
				mark = markWarn
			case Fail:
				mark = markFail
			}
			fmt.Fprintf(w, "  %s %s\n", mark, f.Message)
		}
		warnings += c.count(Warn)
	}

	rule := strings.Repeat("=", 50)
	fmt.Fprintf(w, "\n%s\nVALIDATION SUMMARY\n%s\n", rule, rule)
	failed := 0
	for _, c := range checks {
		status := color.New(color.FgGreen).Sprint("PASS")
		if !c.Passed() {
			status = color.New(color.FgRed).Sprint("FAIL")
			failed++
		}
		fmt.Fprintf(w, "%s: %s\n", status, c.Name)
	}
	fmt.Fprintf(w, "\nTotal: %d/%d checks passed, %d warning(s)\n", len(checks)-failed, len(checks), warnings)
	if failed == 0 {
		fmt.Fprintln(w, "\nAll validations passed.")
	}
	return failed
}
