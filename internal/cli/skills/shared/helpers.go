package shared

import (
	stderrors "errors"
	"sort"
	"strings"

	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// ParseList parses a comma-separated list, trimming entries and dropping
// empty and repeated ones.
func ParseList(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// ComponentPresets groups shadcn/ui components for add-component --preset.
var ComponentPresets = map[string][]string{
	"forms":      {"button", "input", "label", "select", "checkbox", "radio-group", "switch", "textarea", "form"},
	"data":       {"table", "card", "badge", "avatar", "skeleton", "pagination"},
	"overlay":    {"dialog", "alert-dialog", "sheet", "popover", "tooltip", "hover-card"},
	"navigation": {"tabs", "accordion", "dropdown-menu", "menubar", "navigation-menu", "command"},
	"feedback":   {"alert", "toast", "sonner", "progress"},
	"layout":     {"separator", "scroll-area", "resizable", "aspect-ratio"},
	"essential":  {"button", "card", "input", "label", "dialog", "alert", "toast"},
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(ComponentPresets))
	for name := range ComponentPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveComponents expands preset and appends the explicit names, keeping
// the first occurrence of each component.
func ResolveComponents(names []string, preset string) ([]string, error) {
	var all []string
	if preset != "" {
		p, err := scaffold.Choose("preset", preset, PresetNames())
		if err != nil {
			return nil, err
		}
		all = append(all, ComponentPresets[p]...)
	}
	for _, n := range names {
		all = append(all, ParseList(n)...)
	}
	if len(all) == 0 {
		return nil, scaffold.UsageError("specify components to add or use --preset (choose from: %s)", strings.Join(PresetNames(), ", "))
	}

	out := make([]string, 0, len(all))
	seen := make(map[string]bool, len(all))
	for _, c := range all {
		if !scaffold.IsPackageName(c) {
			return nil, scaffold.UsageError("invalid component name %q", c)
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out, nil
}

func commandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

func joinErrors(errs []error) error {
	return stderrors.Join(errs...)
}
