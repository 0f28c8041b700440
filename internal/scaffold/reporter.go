package scaffold

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	labelCreate    = color.New(color.FgGreen).Sprint("CREATE   ")
	labelUpdate    = color.New(color.FgYellow).Sprint("UPDATE   ")
	labelAppend    = color.New(color.FgCyan).Sprint("APPEND   ")
	labelUnchanged = color.New(color.FgBlue).Sprint("UNCHANGED")
	labelError     = color.New(color.FgRed).Sprint("ERROR    ")
	labelWarning   = color.New(color.FgYellow).Sprint("WARNING:")
)

// Reporter prints human-readable progress. Its output is not a stable format.
type Reporter struct {
	out    io.Writer
	dryRun bool
}

// NewReporter returns a Reporter writing to out.
func NewReporter(out io.Writer, dryRun bool) *Reporter {
	return &Reporter{out: out, dryRun: dryRun}
}

// Writer returns the underlying output.
func (r *Reporter) Writer() io.Writer {
	return r.out
}

// Title prints the heading of an operation.
func (r *Reporter) Title(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Detail prints an indented "Label: value" line under the title.
func (r *Reporter) Detail(label, value string) {
	fmt.Fprintf(r.out, "   %s: %s\n", label, value)
}

// Blank prints an empty line.
func (r *Reporter) Blank() {
	fmt.Fprintln(r.out)
}

// File prints the status line for one planned file.
func (r *Reporter) File(action Action, path string) {
	label := labelCreate
	switch action {
	case ActionUpdate:
		label = labelUpdate
	case ActionAppend:
		label = labelAppend
	case ActionUnchanged:
		label = labelUnchanged
	}
	suffix := ""
	if r.dryRun && action != ActionUnchanged {
		suffix = " (dry run)"
	}
	fmt.Fprintf(r.out, "   %s %s%s\n", label, path, suffix)
}

// Failure prints an operation or file level error and lets the caller continue.
func (r *Reporter) Failure(err error) {
	fmt.Fprintf(r.out, "   %s %v\n", labelError, err)
}

// Warn prints a non-fatal warning.
func (r *Reporter) Warn(format string, args ...interface{}) {
	fmt.Fprintf(r.out, "   %s %s\n", labelWarning, fmt.Sprintf(format, args...))
}

// Success prints a closing line.
func (r *Reporter) Success(format string, args ...interface{}) {
	fmt.Fprintf(r.out, "\n"+format+"\n", args...)
}

// Plan prints everything that follows the file list: dependencies, usage and
// next steps.
func (r *Reporter) Plan(plan Plan) {
	r.Dependencies(plan.Dependencies, plan.Install)
	r.Usage(plan.Usage)
	r.NextSteps(plan.Steps)
}

// Dependencies prints the packages the generated code needs.
func (r *Reporter) Dependencies(deps []string, install string) {
	if len(deps) == 0 {
		return
	}
	fmt.Fprintf(r.out, "\nRequired dependencies:\n")
	for _, d := range deps {
		fmt.Fprintf(r.out, "   - %s\n", d)
	}
	if install != "" {
		fmt.Fprintf(r.out, "\nRun: %s %s\n", install, strings.Join(deps, " "))
	}
}

// Usage prints a code snippet showing how to use the generated code.
func (r *Reporter) Usage(snippet string) {
	snippet = strings.Trim(snippet, "\n")
	if snippet == "" {
		return
	}
	fmt.Fprintf(r.out, "\nUsage example:\n\n%s\n", snippet)
}

// NextSteps prints a numbered list of follow-up instructions.
func (r *Reporter) NextSteps(steps []Step) {
	if len(steps) == 0 {
		return
	}
	fmt.Fprintf(r.out, "\nNext steps:\n\n")
	for i, s := range steps {
		fmt.Fprintf(r.out, "%d. %s\n", i+1, s.Title)
		for _, l := range s.Lines {
			fmt.Fprintf(r.out, "   %s\n", l)
		}
		fmt.Fprintln(r.out)
	}
}
