package nextjs_cmd

import (
	"context"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// PageKind selects an App Router page template.
type PageKind string

const (
	PageBasic     PageKind = "basic"
	PageData      PageKind = "data"
	PageForm      PageKind = "form"
	PageProtected PageKind = "protected"
	PageAPI       PageKind = "api"
)

var PageKinds = []PageKind{PageBasic, PageData, PageForm, PageProtected, PageAPI}

// PageOptions holds all the options for page generation.
type PageOptions struct {
	shared.Common
	Name  string
	Route string
	Type  string
}

// PageCmd returns the cobra command that generates an App Router page.
func PageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page <name>",
		Short: "Generate an App Router page or API route",
		Long: `Generate src/app/<route>/page.tsx, or src/app/api/<route>/route.ts for
the api type. The route defaults to the kebab-case page name.

Types:
  basic      static page
  data       async server component with a Suspense fallback
  form       client form posting to /api/<route>
  protected  server page that redirects to /auth/signin without a session
  api        GET and POST route handlers

Examples:
  skills nextjs page about
  skills nextjs page settings --route account/settings --type protected
  skills nextjs page contact --type api
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var route, _ = cmd.Flags().GetString("route")
			var kind, _ = cmd.Flags().GetString("type")

			opts := PageOptions{
				Common: shared.CommonFromCmd(cmd),
				Name:   args[0],
				Route:  route,
				Type:   kind,
			}

			return generatePage(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	cmd.Flags().String("route", "", "Route path, e.g. dashboard or profile/settings")
	cmd.Flags().String("type", string(PageBasic), "Page type: "+scaffold.JoinChoices(PageKinds))
	scaffold.RegisterChoices(cmd, "type", PageKinds)

	return cmd
}

type pageData struct {
	Name  string
	Title string
	Route string
}

// routeSegment accepts plain, dynamic ([id], [...slug]) and group ((auth)) segments.
var routeSegment = regexp.MustCompile(`^([a-z0-9][a-z0-9._-]*|\[(\.\.\.)?[A-Za-z_][A-Za-z0-9_]*\]|\([a-z0-9-]+\))$`)

func newPageData(name, route string) (pageData, error) {
	pascal, ok := scaffold.ExportedName(name)
	pascal = strings.TrimSuffix(pascal, "Page")
	if !ok || !scaffold.IsGoIdentifier(pascal) {
		return pageData{}, scaffold.UsageError("invalid page name %q", name)
	}
	if route == "" {
		route = scaffold.Kebab(name)
	}
	route = strings.Trim(route, "/")
	for _, seg := range strings.Split(route, "/") {
		if !routeSegment.MatchString(seg) {
			return pageData{}, scaffold.UsageError("invalid --route %q: bad segment %q", route, seg)
		}
	}
	return pageData{Name: pascal, Title: scaffold.Title(pascal), Route: route}, nil
}

var pageCatalog = func() *scaffold.Catalog[PageKind, pageData] {
	c := scaffold.NewCatalog[PageKind, pageData]("page")
	for _, k := range PageKinds {
		c.Register(k, pageGenerator(k))
	}
	return c
}()

var pageUI = map[PageKind][]string{
	PageForm: {"button", "card", "input", "label"},
}

func pageGenerator(kind PageKind) scaffold.Generator[pageData] {
	return func(d pageData) (scaffold.Plan, error) {
		tmpl := "templates/pages/" + string(kind) + ".tsx.tmpl"
		dest := path.Join("src/app", d.Route, "page.tsx")
		url := "/" + d.Route
		if kind == PageAPI {
			tmpl = "templates/pages/api.ts.tmpl"
			dest = path.Join("src/app/api", d.Route, "route.ts")
			url = "/api/" + d.Route
		}

		file, err := renderer.File(tmpl, dest, d)
		if err != nil {
			return scaffold.Plan{}, err
		}
		plan := scaffold.Plan{
			Files: []scaffold.File{file},
			Usage: "Route: " + url,
		}
		if ui := pageUI[kind]; len(ui) > 0 {
			plan.Steps = append(plan.Steps, scaffold.Step{
				Title: "Add the shadcn/ui components it uses:",
				Lines: []string{"npx shadcn@latest add " + strings.Join(ui, " ")},
			})
		}
		if kind == PageForm {
			plan.Steps = append(plan.Steps, scaffold.Step{
				Title: "Add the API route it posts to:",
				Lines: []string{"skills nextjs page " + scaffold.Kebab(d.Name) + " --route " + d.Route + " --type api"},
			})
		}
		return plan, nil
	}
}

func generatePage(ctx context.Context, opts PageOptions) error {
	kind, err := scaffold.Choose("type", opts.Type, PageKinds)
	if err != nil {
		return err
	}
	data, err := newPageData(opts.Name, opts.Route)
	if err != nil {
		return err
	}

	s, err := opts.Open(ctx, scaffold.NodeProject)
	if err != nil {
		return err
	}

	plan, err := pageCatalog.Generate(kind, data)
	if err != nil {
		return err
	}

	s.Reporter.Title("Generating %s page: %s", kind, data.Name)
	s.Reporter.Detail("Route", "/"+data.Route)
	s.Reporter.Blank()

	if kind == PageProtected && !scaffold.FileExists(filepath.Join(s.Root, "src", "lib", "auth.ts")) {
		s.Reporter.Warn("src/lib/auth.ts not found: run skills nextjs auth first")
	}
	if err := s.Execute(plan); err != nil {
		return err
	}
	s.Reporter.Success("Page generated successfully")
	return nil
}
