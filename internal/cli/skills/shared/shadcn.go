package shared

import (
	"strings"

	"github.com/fatih/color"
	"github.com/pixie-sh/errors-go"
)

// AddComponents installs shadcn/ui components into dir one at a time. A
// failed component is reported and the rest are still added.
func AddComponents(s *Session, dir string, components []string) error {
	s.Reporter.Title("Adding %d component(s) to %s", len(components), s.Rel(dir))
	return Batch(s, components, func(c string) error {
		if err := s.Run(dir, s.Config.PackageRunner, "shadcn@latest", "add", c, "-y"); err != nil {
			return errors.Wrap(err, "failed to add %s", c)
		}
		s.Reporter.Success("Added %s", c)
		return nil
	})
}

// PrintPresets lists every preset and its components.
func PrintPresets(s *Session) {
	s.Reporter.Title("Available shadcn/ui components:")
	for _, name := range PresetNames() {
		s.Reporter.Blank()
		s.Reporter.Title("  %s", color.New(color.Bold).Sprint(strings.ToUpper(name)))
		for _, c := range ComponentPresets[name] {
			s.Reporter.Title("    - %s", c)
		}
	}
}
