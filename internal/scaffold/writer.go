package scaffold

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Action is what the Writer did, or would do in a dry run, to one file.
type Action string

const (
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionAppend    Action = "append"
	ActionUnchanged Action = "unchanged"
)

// Writer applies planned files below a root directory.
type Writer struct {
	root   string
	dryRun bool
}

// NewWriter returns a Writer rooted at root. A dry-run writer reports
// actions without touching disk.
func NewWriter(root string, dryRun bool) *Writer {
	return &Writer{root: root, dryRun: dryRun}
}

// Root returns the directory planned paths are resolved against.
func (w *Writer) Root() string {
	return w.root
}

// DryRun reports whether the writer is in dry-run mode.
func (w *Writer) DryRun() bool {
	return w.dryRun
}

// Write applies a single planned file.
func (w *Writer) Write(f File) (Action, error) {
	path := filepath.Join(w.root, filepath.FromSlash(f.Path))
	if f.Mode == AppendOnce {
		return w.appendOnce(path, f)
	}
	return w.replace(path, f.Content)
}

// Apply writes every file of the plan in order. A failing file is reported
// and skipped; the remaining files are still attempted. The returned error is
// marked as reported.
func (w *Writer) Apply(plan Plan, rep *Reporter) error {
	var errs []error
	for _, f := range plan.Files {
		action, err := w.Write(f)
		if err != nil {
			rep.Failure(err)
			errs = append(errs, err)
			continue
		}
		rep.File(action, f.Path)
	}
	return Reported(stderrors.Join(errs...))
}

// MkdirAll creates empty directories below the root.
func (w *Writer) MkdirAll(dirs ...string) error {
	if w.dryRun {
		return nil
	}
	for _, dir := range dirs {
		full := filepath.Join(w.root, filepath.FromSlash(dir))
		if err := os.MkdirAll(full, 0o755); err != nil {
			return IOError(full, err)
		}
	}
	return nil
}

func (w *Writer) replace(path string, content []byte) (Action, error) {
	action := ActionCreate
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(existing, content) {
			return ActionUnchanged, nil
		}
		action = ActionUpdate
	case !os.IsNotExist(err):
		return "", IOError(path, err)
	}

	if w.dryRun {
		return action, nil
	}
	if err := writeFile(path, content); err != nil {
		return "", err
	}
	slog.Debug("wrote file", "path", path, "action", action, "bytes", len(content))
	return action, nil
}

func (w *Writer) appendOnce(path string, f File) (Action, error) {
	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		seed := f.Seed
		if seed == nil {
			seed = f.Content
		}
		if !w.dryRun {
			if err := writeFile(path, seed); err != nil {
				return "", err
			}
		}
		return ActionCreate, nil
	}
	if err != nil {
		return "", IOError(path, err)
	}

	sentinel := f.Sentinel
	if sentinel == "" {
		sentinel = strings.TrimSpace(string(f.Content))
	}
	if strings.Contains(string(existing), sentinel) {
		return ActionUnchanged, nil
	}

	buf := make([]byte, 0, len(existing)+len(f.Content)+1)
	buf = append(buf, existing...)
	if len(buf) > 0 && buf[len(buf)-1] != '\n' {
		buf = append(buf, '\n')
	}
	buf = append(buf, f.Content...)

	if w.dryRun {
		return ActionAppend, nil
	}
	if err := writeFile(path, buf); err != nil {
		return "", err
	}
	slog.Debug("appended block", "path", path, "sentinel", sentinel)
	return ActionAppend, nil
}

func writeFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return IOError(dir, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return IOError(path, err)
	}
	return nil
}

// Execute writes plan and prints its follow-up block. Follow-ups are only
// printed when every file was written.
func Execute(w *Writer, rep *Reporter, plan Plan) error {
	if err := w.Apply(plan, rep); err != nil {
		return err
	}
	rep.Plan(plan)
	return nil
}
