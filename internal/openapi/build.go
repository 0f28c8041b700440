package openapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
)

// BuildOptions configures Build.
type BuildOptions struct {
	Title       string
	Version     string
	Description string
	Servers     []string
	Prefix      string // prepended to every route path, e.g. "/api/v1"
}

// responseSchema is the envelope written by the generated pkg/response package.
var responseSchema = &Schema{
	Type: "object",
	Properties: map[string]*Schema{
		"success": {Type: "boolean"},
		"message": {Type: "string"},
		"data":    {},
		"error":   {Type: "string"},
	},
	Required: []string{"success", "message"},
}

// Build assembles a document from extracted routes. Request bodies are
// resolved with resolver when it is non-nil.
func Build(routes []Route, opts BuildOptions, resolver *SchemaResolver) *Spec {
	spec := New(opts.Title, opts.Version, opts.Description)
	for _, url := range opts.Servers {
		spec.Servers = append(spec.Servers, Server{URL: url})
	}
	spec.AddSchema("Response", responseSchema)

	tags := make(map[string]bool)
	secured := false

	for _, route := range routes {
		full := normalizePath(opts.Prefix, route.Path)
		tag := firstSegment(route.Path)
		op := &Operation{
			Summary:     summary(route.Handler),
			OperationID: operationID(route),
			Responses:   make(map[string]Response),
		}
		if tag != "" {
			op.Tags = []string{tag}
			tags[tag] = true
		}

		params := PathParams(full)
		for _, p := range params {
			op.Parameters = append(op.Parameters, Parameter{
				Name:     p,
				In:       "path",
				Required: true,
				Schema:   paramSchema(p),
			})
		}
		if route.Method == http.MethodGet && len(params) == 0 && isListHandler(route.Handler) {
			op.Parameters = append(op.Parameters,
				Parameter{Name: "limit", In: "query", Schema: &Schema{Type: "integer", Example: 10}},
				Parameter{Name: "offset", In: "query", Schema: &Schema{Type: "integer", Example: 0}},
			)
		}

		if resolver != nil && route.BindType != "" {
			if ref := resolver.Resolve(route.BindType); ref != nil {
				op.RequestBody = &RequestBody{
					Required: true,
					Content:  map[string]MediaType{"application/json": {Schema: ref}},
				}
			}
		}

		success := "200"
		if route.Method == http.MethodPost {
			success = "201"
		}
		op.Responses[success] = jsonResponse("Successful response")
		if op.RequestBody != nil || len(params) > 0 {
			op.Responses["400"] = jsonResponse("Invalid request")
		}
		if len(params) > 0 {
			op.Responses["404"] = jsonResponse("Not found")
		}
		if requiresAuth(route.Middleware) {
			secured = true
			op.Security = []map[string][]string{{"bearerAuth": {}}}
			op.Responses["401"] = jsonResponse("Unauthorized")
		}
		op.Responses["500"] = jsonResponse("Internal server error")

		spec.AddOperation(OpenAPIPath(full), route.Method, op)
	}

	if resolver != nil {
		for name, schema := range resolver.Schemas() {
			spec.AddSchema(name, schema)
		}
	}
	if secured {
		spec.AddBearerAuth()
	}

	names := make([]string, 0, len(tags))
	for t := range tags {
		names = append(names, t)
	}
	sort.Strings(names)
	for _, t := range names {
		spec.Tags = append(spec.Tags, Tag{Name: t})
	}

	return spec
}

func jsonResponse(description string) Response {
	return Response{
		Description: description,
		Content:     map[string]MediaType{"application/json": {Schema: Ref("Response")}},
	}
}

func firstSegment(path string) string {
	for _, seg := range strings.Split(path, "/") {
		if seg != "" && !strings.HasPrefix(seg, ":") && !strings.HasPrefix(seg, "*") {
			return seg
		}
	}
	return ""
}

func summary(handler string) string {
	words := strcase.ToDelimited(handler, ' ')
	if words == "" {
		return ""
	}
	return strings.ToUpper(words[:1]) + words[1:]
}

func operationID(r Route) string {
	prefix := strings.TrimSuffix(r.Receiver, "Handler")
	return strcase.ToLowerCamel(prefix + "_" + r.Handler)
}

func paramSchema(name string) *Schema {
	if name == "id" || strings.HasSuffix(name, "_id") || strings.HasSuffix(name, "Id") {
		return &Schema{Type: "integer", Format: "int64"}
	}
	return &Schema{Type: "string"}
}

func isListHandler(handler string) bool {
	return strings.HasPrefix(handler, "GetAll") || strings.HasPrefix(handler, "List")
}

func requiresAuth(middleware []string) bool {
	for _, mw := range middleware {
		if strings.Contains(strings.ToLower(mw), "auth") {
			return true
		}
	}
	return false
}
