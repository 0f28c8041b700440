// Package frontend holds the React templates shared by the monorepo, react
// and nextjs command groups: components, hooks and pages, each dispatched
// through a closed catalog.
package frontend

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

//go:embed templates
var Templates embed.FS

var renderer = scaffold.NewRenderer(Templates)

// ComponentKind selects a component template.
type ComponentKind string

const (
	ComponentBasic    ComponentKind = "basic"
	ComponentChildren ComponentKind = "children"
	ComponentState    ComponentKind = "state"
	ComponentForm     ComponentKind = "form"
	ComponentCard     ComponentKind = "card"
	ComponentList     ComponentKind = "list"
	ComponentModal    ComponentKind = "modal"
)

// HookKind selects a hook template.
type HookKind string

const (
	HookBasic        HookKind = "basic"
	HookFetch        HookKind = "fetch"
	HookLocalStorage HookKind = "local-storage"
	HookDebounce     HookKind = "debounce"
	HookThrottle     HookKind = "throttle"
	HookToggle       HookKind = "toggle"
	HookPrevious     HookKind = "previous"
	HookAsync        HookKind = "async"
	HookMediaQuery   HookKind = "media-query"
)

// PageKind selects a page template.
type PageKind string

const (
	PageBasic     PageKind = "basic"
	PageList      PageKind = "list"
	PageDetail    PageKind = "detail"
	PageForm      PageKind = "form"
	PageDashboard PageKind = "dashboard"
	PageData      PageKind = "data"
)

// Unit is one generated React module.
type Unit struct {
	Name   string // exported identifier, also the file name
	Title  string // human readable heading
	Dir    string // slash directory relative to the package root
	Import string // import specifier of Dir, e.g. "@/components/forms"
	Route  string // kebab-case route segment
	Client bool   // emit a "use client" directive
	Layout bool   // wrap basic pages in a card
	Runner string // package runner used in follow-up hints
}

// NewComponent returns the unit of component name placed in dir.
func NewComponent(name, dir, importPath string) (Unit, error) {
	pascal, ok := scaffold.ExportedName(name)
	if !ok {
		return Unit{}, scaffold.UsageError("invalid component name %q", name)
	}
	return Unit{
		Name:   pascal,
		Title:  scaffold.Title(name),
		Dir:    path.Clean(dir),
		Import: importPath,
		Route:  scaffold.Kebab(name),
	}, nil
}

// HookName returns the camelCase hook identifier of name with a "use" prefix.
func HookName(name string) string {
	camel := scaffold.Camel(name)
	if strings.HasPrefix(camel, "use") && len(camel) > 3 && strings.ToUpper(camel[3:4]) == camel[3:4] {
		return camel
	}
	return "use" + scaffold.Pascal(name)
}

// NewHook returns the unit of hook name placed in dir.
func NewHook(name, dir, importPath string) (Unit, error) {
	hook := HookName(name)
	if _, ok := scaffold.ExportedName(name); !ok || !scaffold.IsGoIdentifier(hook) {
		return Unit{}, scaffold.UsageError("invalid hook name %q", name)
	}
	return Unit{
		Name:   hook,
		Title:  scaffold.Title(name),
		Dir:    path.Clean(dir),
		Import: importPath,
		Route:  scaffold.Kebab(name),
	}, nil
}

// NewPage returns the unit of page name placed in dir. suffix is appended
// to the component name, e.g. "Page".
func NewPage(name, suffix, dir, importPath string) (Unit, error) {
	pascal, ok := scaffold.ExportedName(name)
	if !ok {
		return Unit{}, scaffold.UsageError("invalid page name %q", name)
	}
	if suffix != "" && strings.HasSuffix(pascal, suffix) {
		suffix = ""
	}
	return Unit{
		Name:   pascal + suffix,
		Title:  scaffold.Title(name),
		Dir:    path.Clean(dir),
		Import: importPath,
		Route:  scaffold.Kebab(name),
	}, nil
}

// SourceDir validates a directory relative to src/ and returns it cleaned.
func SourceDir(dir string) (string, error) {
	dir = strings.Trim(strings.ReplaceAll(dir, "\\", "/"), "/")
	if dir == "" {
		return "", scaffold.UsageError("--dir must not be empty")
	}
	clean := path.Clean(dir)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", scaffold.UsageError("invalid --dir %q: must stay inside src/", dir)
	}
	return clean, nil
}

// File returns the slash path of file name inside the unit directory.
func (u Unit) File(name string) string {
	return path.Join(u.Dir, name)
}

// IndexExport is the append-once re-export of the unit in its directory's
// index.ts.
func (u Unit) IndexExport() scaffold.File {
	return scaffold.File{
		Path:    u.File("index.ts"),
		Content: []byte(fmt.Sprintf("export { %s } from './%s'\n", u.Name, u.Name)),
		Mode:    scaffold.AppendOnce,
	}
}

// uiComponents are the shadcn/ui components a template imports.
var uiComponents = map[string][]string{
	"components/state": {"button"},
	"components/form":  {"button", "input", "label"},
	"components/card":  {"card"},
	"components/modal": {"button", "dialog"},
	"pages/basic":      {"card"},
	"pages/list":       {"button", "input"},
	"pages/detail":     {"button"},
	"pages/form":       {"button", "card", "input", "label"},
	"pages/dashboard":  {"card"},
	"pages/data":       {"card", "skeleton"},
}

var pageDeps = map[PageKind][]string{
	PageDetail: {"react-router-dom"},
	PageData:   {"@tanstack/react-query"},
}

func uiStep(key string, u Unit) []scaffold.Step {
	ui := uiComponents[key]
	if key == "pages/basic" && !u.Layout {
		ui = nil
	}
	if len(ui) == 0 {
		return nil
	}
	runner := u.Runner
	if runner == "" {
		runner = "npx"
	}
	return []scaffold.Step{{
		Title: "Add the shadcn/ui components it uses:",
		Lines: []string{runner + " shadcn@latest add " + strings.Join(ui, " ")},
	}}
}

// Components dispatches every component kind.
var Components = func() *scaffold.Catalog[ComponentKind, Unit] {
	c := scaffold.NewCatalog[ComponentKind, Unit]("component")
	for _, k := range []ComponentKind{
		ComponentBasic, ComponentChildren, ComponentState, ComponentForm,
		ComponentCard, ComponentList, ComponentModal,
	} {
		c.Register(k, componentGenerator(k))
	}
	return c
}()

func componentGenerator(kind ComponentKind) scaffold.Generator[Unit] {
	return func(u Unit) (scaffold.Plan, error) {
		file, err := renderer.File("templates/components/"+string(kind)+".tsx.tmpl", u.File(u.Name+".tsx"), u)
		if err != nil {
			return scaffold.Plan{}, err
		}
		return scaffold.Plan{
			Files: []scaffold.File{file, u.IndexExport()},
			Usage: fmt.Sprintf("import { %s } from '%s'", u.Name, u.Import),
			Steps: uiStep("components/"+string(kind), u),
		}, nil
	}
}

// Hooks dispatches every hook kind.
var Hooks = func() *scaffold.Catalog[HookKind, Unit] {
	c := scaffold.NewCatalog[HookKind, Unit]("hook")
	for _, k := range []HookKind{
		HookBasic, HookFetch, HookLocalStorage, HookDebounce, HookThrottle,
		HookToggle, HookPrevious, HookAsync, HookMediaQuery,
	} {
		c.Register(k, hookGenerator(k))
	}
	return c
}()

func hookGenerator(kind HookKind) scaffold.Generator[Unit] {
	return func(u Unit) (scaffold.Plan, error) {
		file, err := renderer.File("templates/hooks/"+string(kind)+".ts.tmpl", u.File(u.Name+".ts"), u)
		if err != nil {
			return scaffold.Plan{}, err
		}
		return scaffold.Plan{
			Files: []scaffold.File{file, u.IndexExport()},
			Usage: fmt.Sprintf("import { %s } from '%s'", u.Name, u.Import),
		}, nil
	}
}

// Pages dispatches every page kind.
var Pages = func() *scaffold.Catalog[PageKind, Unit] {
	c := scaffold.NewCatalog[PageKind, Unit]("page")
	for _, k := range []PageKind{PageBasic, PageList, PageDetail, PageForm, PageDashboard, PageData} {
		c.Register(k, pageGenerator(k))
	}
	return c
}()

func pageGenerator(kind PageKind) scaffold.Generator[Unit] {
	return func(u Unit) (scaffold.Plan, error) {
		file, err := renderer.File("templates/pages/"+string(kind)+".tsx.tmpl", u.File(u.Name+".tsx"), u)
		if err != nil {
			return scaffold.Plan{}, err
		}
		route := "/" + u.Route
		if kind == PageDetail {
			route += "/:id"
		}
		return scaffold.Plan{
			Files:        []scaffold.File{file},
			Dependencies: pageDeps[kind],
			Usage: fmt.Sprintf("import %s from '%s/%s'\n\n<Route path=\"%s\" element={<%s />} />",
				u.Name, u.Import, u.Name, route, u.Name),
			Steps: uiStep("pages/"+string(kind), u),
		}, nil
	}
}
