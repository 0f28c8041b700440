package scaffold

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Marker identifies a project or package kind by a filesystem artifact.
type Marker struct {
	Kind   string // human readable kind, e.g. "backend"
	Name   string // artifact relative to the candidate directory
	Dir    bool   // artifact must be a directory
	Absent string // artifact that must not exist, if set
}

var (
	GoModule        = Marker{Kind: "Go", Name: "go.mod"}
	NodeProject     = Marker{Kind: "Node", Name: "package.json"}
	BackendPackage  = Marker{Kind: "backend", Name: "src", Dir: true, Absent: "components.json"}
	FrontendPackage = Marker{Kind: "frontend", Name: "components.json"}
)

// PackagesDir is the monorepo workspace directory searched for packages.
const PackagesDir = "packages"

// Satisfied reports whether dir carries the marker.
func (m Marker) Satisfied(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, m.Name))
	if err != nil || info.IsDir() != m.Dir {
		return false
	}
	if m.Absent != "" && FileExists(filepath.Join(dir, m.Absent)) {
		return false
	}
	return true
}

func (m Marker) describe() string {
	s := m.Name
	if m.Dir {
		s += "/"
	}
	if m.Absent != "" {
		s += " without " + m.Absent
	}
	return s
}

// RequireProject checks that root exists and carries the marker.
func RequireProject(root string, m Marker) (string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return "", PreconditionError("project path %q does not exist", root)
	}
	if !m.Satisfied(root) {
		return "", PreconditionError("not a %s project: %s not found in %s", m.Kind, m.describe(), root)
	}
	return filepath.Clean(root), nil
}

// LocatePackage resolves the monorepo package the output belongs to.
// With an explicit name the package is resolved directly and re-validated;
// otherwise the first package under packages/ carrying the marker wins.
func LocatePackage(root, name string, m Marker) (string, error) {
	packagesDir := filepath.Join(root, PackagesDir)
	if info, err := os.Stat(packagesDir); err != nil || !info.IsDir() {
		return "", PreconditionError("not a monorepo project: %s directory not found in %s", PackagesDir, root)
	}

	if name != "" {
		dir := filepath.Join(packagesDir, name)
		if !m.Satisfied(dir) {
			return "", PreconditionError("%s package %q not found or not configured (expected %s)", m.Kind, name, m.describe())
		}
		return dir, nil
	}

	// os.ReadDir sorts by name, so the first match does not depend on the filesystem.
	entries, err := os.ReadDir(packagesDir)
	if err != nil {
		return "", IOError(packagesDir, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(packagesDir, e.Name())
		if m.Satisfied(dir) {
			slog.Debug("located package", "kind", m.Kind, "dir", dir)
			return dir, nil
		}
	}

	return "", PreconditionError("no %s package found in %s (expected %s)", m.Kind, packagesDir, m.describe())
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
