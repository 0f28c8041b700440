package monorepo_cmd

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/openapi"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// DocsFormat selects the documentation output.
type DocsFormat string

const (
	DocsMarkdown DocsFormat = "markdown"
	DocsOpenAPI  DocsFormat = "openapi"
)

var DocsFormats = []DocsFormat{DocsMarkdown, DocsOpenAPI}

// DocsOptions holds all the options for docs generation.
type DocsOptions struct {
	shared.Common
	Name string
	Type string
	Port int
}

// DocsCmd returns the cobra command that generates API documentation.
func DocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs <name>",
		Short: "Generate API documentation for a backend service",
		Long: `Generate a starting point for the API documentation of a service: a
health check and CRUD endpoints for a resource, with bearer authentication
on the write endpoints.

Types:
  markdown  docs/<Name>_API.md
  openapi   docs/<Name>_OpenAPI.yaml (OpenAPI 3.0)

Examples:
  skills monorepo docs shop
  skills monorepo docs shop --type openapi --port 3001
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind, _ = cmd.Flags().GetString("type")
			var port, _ = cmd.Flags().GetInt("port")

			opts := DocsOptions{
				Common: shared.CommonFromCmd(cmd),
				Name:   args[0],
				Type:   kind,
				Port:   port,
			}

			return generateDocs(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	cmd.Flags().String("type", string(DocsMarkdown), "Documentation type: "+scaffold.JoinChoices(DocsFormats))
	cmd.Flags().Int("port", 0, "Backend port (defaults to the configured backend port)")
	scaffold.RegisterChoices(cmd, "type", DocsFormats)

	return cmd
}

// endpoint is one documented route.
type endpoint struct {
	Method   string
	Path     string
	Summary  string
	Auth     bool
	Query    []string
	Body     string
	Result   string
	List     bool
	Statuses []string
}

type docsData struct {
	Title     string
	Pascal    string
	Port      int
	Resource  string
	Endpoints []endpoint
}

func newDocsData(name string, port int) docsData {
	resource := "Item"
	base := "/api/items"
	return docsData{
		Title:    scaffold.Title(name),
		Pascal:   scaffold.Pascal(name),
		Port:     port,
		Resource: resource,
		Endpoints: []endpoint{
			{Method: http.MethodGet, Path: "/health", Summary: "Health check", Statuses: []string{"200"}},
			{Method: http.MethodGet, Path: base, Summary: "List items", Query: []string{"page", "limit", "search"},
				Result: resource, List: true, Statuses: []string{"200"}},
			{Method: http.MethodGet, Path: base + "/{id}", Summary: "Get an item by ID",
				Result: resource, Statuses: []string{"200", "404"}},
			{Method: http.MethodPost, Path: base, Summary: "Create an item", Auth: true,
				Body: "CreateItemRequest", Result: resource, Statuses: []string{"201", "400", "401"}},
			{Method: http.MethodPut, Path: base + "/{id}", Summary: "Update an item", Auth: true,
				Body: "UpdateItemRequest", Result: resource, Statuses: []string{"200", "400", "401", "404"}},
			{Method: http.MethodDelete, Path: base + "/{id}", Summary: "Delete an item", Auth: true,
				Statuses: []string{"204", "401", "404"}},
		},
	}
}

var docsCatalog = scaffold.NewCatalog[DocsFormat, docsData]("docs").
	Register(DocsMarkdown, planMarkdownDocs).
	Register(DocsOpenAPI, planOpenAPIDocs)

func planMarkdownDocs(d docsData) (scaffold.Plan, error) {
	file, err := renderer.File("templates/docs/api.md.tmpl", "docs/"+d.Pascal+"_API.md", d)
	if err != nil {
		return scaffold.Plan{}, err
	}
	return scaffold.Plan{Files: []scaffold.File{file}}, nil
}

func planOpenAPIDocs(d docsData) (scaffold.Plan, error) {
	content, err := buildOpenAPI(d).Encode(openapi.FormatYAML)
	if err != nil {
		return scaffold.Plan{}, err
	}
	dest := "docs/" + d.Pascal + "_OpenAPI.yaml"
	return scaffold.Plan{
		Files: []scaffold.File{{Path: dest, Content: content}},
		Steps: []scaffold.Step{
			{Title: "Preview the document:", Lines: []string{"npx @redocly/cli preview-docs " + dest}},
		},
	}, nil
}

var statusText = map[string]string{
	"200": "Successful response",
	"201": "Created",
	"204": "No content",
	"400": "Invalid request",
	"401": "Unauthorized",
	"404": "Not found",
}

func buildOpenAPI(d docsData) *openapi.Spec {
	doc := openapi.New(d.Title+" API", "1.0.0", "API documentation for the "+d.Title+" service")
	doc.Servers = []openapi.Server{{URL: fmt.Sprintf("http://localhost:%d", d.Port), Description: "Development server"}}
	doc.AddBearerAuth()

	str := &openapi.Schema{Type: "string"}
	stamp := &openapi.Schema{Type: "string", Format: "date-time"}
	integer := &openapi.Schema{Type: "integer"}
	doc.AddSchema(d.Resource, &openapi.Schema{
		Type:       "object",
		Required:   []string{"id", "name"},
		Properties: map[string]*openapi.Schema{"id": str, "name": str, "created_at": stamp, "updated_at": stamp},
	})
	doc.AddSchema("CreateItemRequest", &openapi.Schema{
		Type:       "object",
		Required:   []string{"name"},
		Properties: map[string]*openapi.Schema{"name": str},
	})
	doc.AddSchema("UpdateItemRequest", &openapi.Schema{
		Type:       "object",
		Properties: map[string]*openapi.Schema{"name": str},
	})
	doc.AddSchema("Pagination", &openapi.Schema{
		Type:       "object",
		Properties: map[string]*openapi.Schema{"page": integer, "limit": integer, "total": integer, "pages": integer},
	})
	doc.AddSchema("Error", &openapi.Schema{
		Type:       "object",
		Properties: map[string]*openapi.Schema{"error": str},
	})

	for _, e := range d.Endpoints {
		op := &openapi.Operation{
			Summary:     e.Summary,
			OperationID: operationID(e),
			Responses:   make(map[string]openapi.Response),
		}
		if strings.HasPrefix(e.Path, "/api/") {
			op.Tags = []string{d.Resource + "s"}
		}
		if strings.Contains(e.Path, "{id}") {
			op.Parameters = append(op.Parameters, openapi.Parameter{Name: "id", In: "path", Required: true, Schema: str})
		}
		for _, q := range e.Query {
			schema := str
			if q != "search" {
				schema = integer
			}
			op.Parameters = append(op.Parameters, openapi.Parameter{Name: q, In: "query", Schema: schema})
		}
		if e.Body != "" {
			op.RequestBody = &openapi.RequestBody{
				Required: true,
				Content:  map[string]openapi.MediaType{"application/json": {Schema: openapi.Ref(e.Body)}},
			}
		}
		if e.Auth {
			op.Security = []map[string][]string{{"bearerAuth": {}}}
		}
		for _, status := range e.Statuses {
			op.Responses[status] = response(d, e, status)
		}
		doc.AddOperation(e.Path, e.Method, op)
	}
	return doc
}

func response(d docsData, e endpoint, status string) openapi.Response {
	r := openapi.Response{Description: statusText[status]}
	var schema *openapi.Schema
	switch {
	case status[0] != '2':
		schema = openapi.Ref("Error")
	case e.List:
		schema = &openapi.Schema{
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":       {Type: "array", Items: openapi.Ref(e.Result)},
				"pagination": openapi.Ref("Pagination"),
			},
		}
	case e.Result != "":
		schema = openapi.Ref(e.Result)
	case status == "204":
		return r
	default:
		schema = &openapi.Schema{Type: "object", Properties: map[string]*openapi.Schema{"status": {Type: "string", Example: "ok"}}}
	}
	r.Content = map[string]openapi.MediaType{"application/json": {Schema: schema}}
	return r
}

func operationID(e endpoint) string {
	parts := []string{strings.ToLower(e.Method)}
	for _, seg := range strings.Split(e.Path, "/") {
		switch {
		case seg == "" || seg == "api":
		case strings.HasPrefix(seg, "{"):
			parts = append(parts, "by", strings.Trim(seg, "{}"))
		default:
			parts = append(parts, seg)
		}
	}
	return scaffold.Camel(strings.Join(parts, "_"))
}

func generateDocs(ctx context.Context, opts DocsOptions) error {
	format, err := scaffold.Choose("type", opts.Type, DocsFormats)
	if err != nil {
		return err
	}
	if _, ok := scaffold.ExportedName(opts.Name); !ok {
		return scaffold.UsageError("invalid service name %q", opts.Name)
	}
	if opts.Port < 0 || opts.Port > 65535 {
		return scaffold.UsageError("invalid --port %d", opts.Port)
	}

	s, err := opts.Open(ctx)
	if err != nil {
		return err
	}
	port := opts.Port
	if port == 0 {
		port = s.Config.Monorepo.BackendPort
	}

	plan, err := docsCatalog.Generate(format, newDocsData(opts.Name, port))
	if err != nil {
		return err
	}

	s.Reporter.Title("Generating %s documentation: %s", format, opts.Name)
	s.Reporter.Blank()

	if err := s.Execute(plan); err != nil {
		return err
	}
	s.Reporter.Success("Documentation generated successfully")
	return nil
}
