package openapi

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pixie-sh/errors-go"
)

// Route is one HTTP endpoint registration found in source.
type Route struct {
	Method     string // upper case, e.g. "GET"
	Path       string // gin syntax, e.g. "/products/:id"
	Handler    string // e.g. "GetByID"
	Receiver   string // handler receiver type, e.g. "ProductHandler"
	Middleware []string
	File       string

	// BindType is the struct bound with ShouldBindJSON in the handler, if any.
	BindType string
}

// ExtractRoutes walks dir and returns every gin route registration in its Go
// files, in file then source order. Test files are skipped.
func ExtractRoutes(dir string) ([]Route, error) {
	var routes []Route
	binds := make(map[string]string)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		found, fileBinds, err := parseRouteFile(path)
		if err != nil {
			slog.Warn("skipping unparsable file", "file", path, "error", err)
			return nil
		}
		routes = append(routes, found...)
		for k, v := range fileBinds {
			binds[k] = v
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan handler directory %s", dir)
	}

	for i := range routes {
		routes[i].BindType = binds[routes[i].Receiver+"."+routes[i].Handler]
	}

	return routes, nil
}

// parseRouteFile parses a Go file and extracts route registrations plus the
// request types bound by its handler methods.
func parseRouteFile(filePath string) ([]Route, map[string]string, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filePath, nil, 0)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse file")
	}

	var routes []Route
	binds := make(map[string]string)

	for _, decl := range node.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}
		receiver := receiverType(fn)

		// Route groups are tracked per function; each function sees only its own groups.
		ctx := &parseContext{
			groupPaths:      make(map[string]string),
			groupMiddleware: make(map[string][]string),
			receiver:        receiver,
			file:            filePath,
		}
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			switch x := n.(type) {
			case *ast.AssignStmt:
				ctx.handleAssignment(x)
			case *ast.CallExpr:
				if r := ctx.parseHTTPMethodCall(x); r != nil {
					routes = append(routes, *r)
				}
			}
			return true
		})

		if receiver != "" {
			if bound := boundType(fn); bound != "" {
				binds[receiver+"."+fn.Name.Name] = bound
			}
		}
	}

	return routes, binds, nil
}

type parseContext struct {
	groupPaths      map[string]string   // variable name -> group path
	groupMiddleware map[string][]string // variable name -> middleware list
	receiver        string
	file            string
}

// handleAssignment tracks `v := parent.Group("/path", mw...)`.
func (ctx *parseContext) handleAssignment(assign *ast.AssignStmt) {
	if len(assign.Lhs) != 1 || len(assign.Rhs) != 1 {
		return
	}
	lhs, ok := assign.Lhs[0].(*ast.Ident)
	if !ok {
		return
	}
	call, ok := assign.Rhs[0].(*ast.CallExpr)
	if !ok {
		return
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Group" || len(call.Args) == 0 {
		return
	}

	groupPath := extractStringLiteral(call.Args[0])
	var middleware []string
	if parent, ok := sel.X.(*ast.Ident); ok {
		if parentPath, exists := ctx.groupPaths[parent.Name]; exists {
			groupPath = normalizePath(parentPath, groupPath)
			middleware = append(middleware, ctx.groupMiddleware[parent.Name]...)
		}
	}
	for _, arg := range call.Args[1:] {
		if mw := expressionString(arg); mw != "" {
			middleware = append(middleware, mw)
		}
	}

	ctx.groupPaths[lhs.Name] = groupPath
	ctx.groupMiddleware[lhs.Name] = middleware
}

// parseHTTPMethodCall recognises `group.GET(path, [middleware...], handler)`.
func (ctx *parseContext) parseHTTPMethodCall(call *ast.CallExpr) *Route {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || !isHTTPMethod(sel.Sel.Name) || len(call.Args) < 2 {
		return nil
	}

	path, ok := stringLiteral(call.Args[0])
	if !ok {
		return nil
	}

	var groupPath string
	var middleware []string
	if ident, ok := sel.X.(*ast.Ident); ok {
		groupPath = ctx.groupPaths[ident.Name]
		middleware = append(middleware, ctx.groupMiddleware[ident.Name]...)
	}

	last := len(call.Args) - 1
	handler := extractHandlerName(call.Args[last])
	if handler == "" {
		return nil
	}
	for _, arg := range call.Args[1:last] {
		if mw := expressionString(arg); mw != "" {
			middleware = append(middleware, mw)
		}
	}

	return &Route{
		Method:     sel.Sel.Name,
		Path:       normalizePath(groupPath, path),
		Handler:    handler,
		Receiver:   ctx.receiver,
		Middleware: middleware,
		File:       ctx.file,
	}
}

// isHTTPMethod checks if a string is a gin route registration method
func isHTTPMethod(method string) bool {
	switch method {
	case "GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS":
		return true
	}
	return false
}

func receiverType(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	t := fn.Recv.List[0].Type
	if star, ok := t.(*ast.StarExpr); ok {
		t = star.X
	}
	if ident, ok := t.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}

// boundType finds `var req T` followed by c.ShouldBindJSON(&req) and returns T.
func boundType(fn *ast.FuncDecl) string {
	vars := make(map[string]string)
	var bound string

	ast.Inspect(fn.Body, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.ValueSpec:
			for _, name := range x.Names {
				if x.Type != nil {
					vars[name.Name] = expressionString(x.Type)
				}
			}
		case *ast.CallExpr:
			sel, ok := x.Fun.(*ast.SelectorExpr)
			if !ok || len(x.Args) != 1 {
				return true
			}
			if sel.Sel.Name != "ShouldBindJSON" && sel.Sel.Name != "BindJSON" {
				return true
			}
			if unary, ok := x.Args[0].(*ast.UnaryExpr); ok && unary.Op == token.AND {
				if ident, ok := unary.X.(*ast.Ident); ok && bound == "" {
					bound = vars[ident.Name]
				}
			}
		}
		return true
	})

	return bound
}

// extractStringLiteral extracts a string value from an AST expression
func extractStringLiteral(expr ast.Expr) string {
	s, _ := stringLiteral(expr)
	return s
}

func stringLiteral(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	value, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return value, true
}

// extractHandlerName extracts the handler function name from an AST expression
func extractHandlerName(expr ast.Expr) string {
	switch x := expr.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.SelectorExpr:
		return x.Sel.Name
	case *ast.CallExpr:
		return extractHandlerName(x.Fun)
	case *ast.FuncLit:
		return "inline"
	}
	return ""
}

// expressionString converts an AST expression to its string representation
func expressionString(expr ast.Expr) string {
	switch x := expr.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.SelectorExpr:
		return expressionString(x.X) + "." + x.Sel.Name
	case *ast.StarExpr:
		return expressionString(x.X)
	case *ast.ArrayType:
		return "[]" + expressionString(x.Elt)
	case *ast.CallExpr:
		return expressionString(x.Fun) + "()"
	case *ast.BasicLit:
		return x.Value
	}
	return ""
}

// normalizePath combines a group path and endpoint path, handling double slashes
func normalizePath(groupPath, endpointPath string) string {
	switch {
	case groupPath == "" && endpointPath == "":
		return "/"
	case groupPath == "":
		if !strings.HasPrefix(endpointPath, "/") {
			return "/" + endpointPath
		}
		return endpointPath
	case endpointPath == "":
		return groupPath
	}

	groupPath = strings.TrimSuffix(groupPath, "/")
	if !strings.HasPrefix(endpointPath, "/") {
		endpointPath = "/" + endpointPath
	}
	return groupPath + endpointPath
}

var ginParam = regexp.MustCompile(`[:*]([A-Za-z_][A-Za-z0-9_]*)`)

// OpenAPIPath converts gin path syntax to OpenAPI templating:
// "/products/:id" -> "/products/{id}".
func OpenAPIPath(path string) string {
	return ginParam.ReplaceAllString(path, "{$1}")
}

// PathParams returns the parameter names of a gin path in order.
func PathParams(path string) []string {
	var out []string
	for _, m := range ginParam.FindAllStringSubmatch(path, -1) {
		out = append(out, m[1])
	}
	return out
}

// String renders the route as "GET /path".
func (r Route) String() string {
	return fmt.Sprintf("%s %s", r.Method, r.Path)
}
